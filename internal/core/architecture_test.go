package core

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyCorePackageImportsResourceBackends ensures that only this package
// wires the durable resource backends. Other packages must depend on the
// store.Resource interface instead of importing the backends directly.
func TestOnlyCorePackageImportsResourceBackends(t *testing.T) {
	backendPrefix := "propertycore/internal/infra/resource"
	allowedPrefix := "propertycore/internal/core"

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "propertycore/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})

	for _, pkg := range pkgs {
		if strings.HasPrefix(pkg.PkgPath, allowedPrefix) {
			continue
		}
		if strings.HasPrefix(pkg.PkgPath, backendPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if isBackendImport(importPath, backendPrefix) {
				pos := filepath.Join(pkg.PkgPath, "...")
				seen[pos+": "+importPath] = struct{}{}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of resource backend: %s", v)
		}
		t.Fatalf("found %d forbidden imports of resource backends", len(violations))
	}
}

func isBackendImport(importPath, prefix string) bool {
	return importPath == prefix || strings.HasPrefix(importPath, prefix+"/")
}
