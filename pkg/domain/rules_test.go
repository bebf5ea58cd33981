package domain

import (
	"context"
	"errors"
	"testing"
)

type staticView struct{}

func (staticView) ListBuildings() []Building           { return nil }
func (staticView) ListApartments() []Apartment         { return nil }
func (staticView) ListTenants() []Tenant               { return nil }
func (staticView) FindApartment(int) (Apartment, bool) { return Apartment{}, false }
func (staticView) FindTenant(int) (Tenant, bool)       { return Tenant{}, false }

type stubRule struct {
	name string
	res  Result
	err  error
}

func (r stubRule) Name() string { return r.name }
func (r stubRule) Evaluate(context.Context, RuleView, []Change) (Result, error) {
	return r.res, r.err
}

func TestEngineAggregatesViolations(t *testing.T) {
	engine := NewRulesEngine()
	engine.Register(stubRule{name: "warns", res: Result{Violations: []Violation{{Rule: "warns", Severity: SeverityWarn}}}})
	engine.Register(stubRule{name: "blocks", res: Result{Violations: []Violation{{Rule: "blocks", Severity: SeverityBlock}}}})

	res, err := engine.Evaluate(context.Background(), staticView{}, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 2 {
		t.Fatalf("violations = %d, want 2", len(res.Violations))
	}
	if !res.HasBlocking() {
		t.Fatalf("expected blocking result")
	}
	first, ok := res.FirstBlocking()
	if !ok || first.Rule != "blocks" {
		t.Fatalf("first blocking = %+v", first)
	}
}

func TestEngineStopsOnRuleError(t *testing.T) {
	boom := errors.New("boom")
	engine := NewRulesEngine()
	engine.Register(stubRule{name: "fails", err: boom})
	engine.Register(stubRule{name: "never", res: Result{Violations: []Violation{{Severity: SeverityBlock}}}})

	res, err := engine.Evaluate(context.Background(), staticView{}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("failed evaluation must not leak partial results: %+v", res)
	}
}
