package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ReconcileReport summarizes one reconciliation run.
type ReconcileReport struct {
	Examined int
	Changed  int
	Counts   map[PaymentStanding]int
}

// Reconcile recomputes the standing of every tenant from the current ledger
// and persists only the tenants whose standing actually changed. The payment
// collection is reloaded first so a run sees rows written by a previous
// process against the same files.
func (s *Service) Reconcile(ctx context.Context) (_ ReconcileReport, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "reconcile", start, retErr) }(time.Now())

	if err := s.payments.Reload(ctx); err != nil {
		return ReconcileReport{}, fmt.Errorf("reload payments: %w", err)
	}
	if err := s.tenants.Reload(ctx); err != nil {
		return ReconcileReport{}, fmt.Errorf("reload tenants: %w", err)
	}

	byTenant := make(map[int][]Payment)
	for _, p := range s.payments.GetAll() {
		byTenant[p.TenantID] = append(byTenant[p.TenantID], p)
	}

	now := s.nowFn()
	report := ReconcileReport{Counts: make(map[PaymentStanding]int)}
	for _, tenant := range s.tenants.GetAll() {
		report.Examined++
		standing := ComputeStanding(tenant, byTenant[tenant.ID], now)
		report.Counts[standing]++
		if standing == tenant.Standing {
			continue
		}
		_, _, err := s.tenants.Update(ctx, tenant.ID, func(t *Tenant) error {
			t.Standing = standing
			return nil
		})
		if err != nil {
			return report, fmt.Errorf("update tenant %d standing: %w", tenant.ID, err)
		}
		report.Changed++
		s.log.Info("tenant standing reconciled",
			zap.Int("tenant_id", tenant.ID),
			zap.String("from", string(tenant.Standing)),
			zap.String("to", string(standing)))
	}
	s.metrics.ObserveReconciliation(ctx, report.Counts)
	return report, nil
}
