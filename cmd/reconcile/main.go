// Command reconcile recomputes every tenant's payment standing from the
// ledger files and writes back the tenants whose standing changed.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"propertycore/internal/core"
)

func main() {
	dataDir := flag.String("data-dir", envOr("PROPERTYCORE_DATA_DIR", "./data"), "directory holding the collection JSON files")
	metricsAddr := flag.String("metrics-addr", os.Getenv("PROPERTYCORE_METRICS_ADDR"), "optional listen address for Prometheus metrics (empty = disabled)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	log, err := buildLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(*dataDir, *metricsAddr, log); err != nil {
		log.Error("reconciliation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(dataDir, metricsAddr string, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics core.MetricsRecorder = core.NopMetricsRecorder{}
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		rec, err := core.NewPrometheusMetricsRecorder(reg)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		metrics = rec
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	resources, closer, err := core.OpenResourcesFromEnv(ctx, dataDir)
	if err != nil {
		return fmt.Errorf("open collection backend: %w", err)
	}
	if closer != nil {
		defer closer() //nolint:errcheck
	}
	svc, err := core.Open(ctx, core.Config{
		Resources: resources,
		Logger:    log,
		Metrics:   metrics,
	})
	if err != nil {
		return err
	}

	report, err := svc.Reconcile(ctx)
	if err != nil {
		return err
	}
	log.Info("reconciliation complete",
		zap.Int("examined", report.Examined),
		zap.Int("changed", report.Changed))
	for standing, n := range report.Counts {
		fmt.Printf("%s\t%d\n", standing, n)
	}
	return nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	return cfg.Build()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
