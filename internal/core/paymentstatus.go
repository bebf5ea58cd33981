package core

import (
	"strings"
	"time"

	"propertycore/pkg/domain"
)

// Payment standing thresholds, in days.
const (
	// registrationGraceDays is how long after entry a tenant without payments
	// stays pending-registration before turning overdue.
	registrationGraceDays = 5
	// currentWindowDays is the age of the latest payment up to which a tenant
	// counts as current.
	currentWindowDays = 30
	// overdueWindowDays is the age beyond which a tenant stops being overdue
	// and becomes inactive.
	overdueWindowDays = 90
	// paymentCycleDays is the expected gap between payments, used for the
	// next-due-date calculation.
	paymentCycleDays = 30
)

// ComputeStanding derives a tenant's payment standing from the entry date,
// the tenant's payment history, and a reference date. It is pure and never
// returns an error: any date that fails to parse resolves to overdue.
// TODO: confirm with the product owner whether the overdue fallback on
// unparsable dates is intended or should be surfaced.
func ComputeStanding(tenant Tenant, payments []Payment, today time.Time) PaymentStanding {
	latest, ok, err := latestPaymentDate(payments)
	if err != nil {
		return domain.StandingOverdue
	}
	if !ok {
		if strings.TrimSpace(tenant.EntryDate) == "" {
			return domain.StandingOverdue
		}
		entry, err := domain.ParseDate(tenant.EntryDate)
		if err != nil {
			return domain.StandingOverdue
		}
		if daysBetween(entry, today) <= registrationGraceDays {
			return domain.StandingPendingRegistration
		}
		return domain.StandingOverdue
	}
	switch days := daysBetween(latest, today); {
	case days <= currentWindowDays:
		return domain.StandingCurrent
	case days <= overdueWindowDays:
		return domain.StandingOverdue
	default:
		return domain.StandingInactive
	}
}

// DueInfo carries the reminder calculation derived from the latest payment.
// It is not a standing; it feeds the notification module.
type DueInfo struct {
	NextDueDate time.Time
	DaysOverdue int
	HasPayments bool
}

// NextDue computes the next expected payment date and how many days past it
// the reference date is. With no (parsable) payment history it reports
// HasPayments false.
func NextDue(payments []Payment, today time.Time) DueInfo {
	latest, ok, err := latestPaymentDate(payments)
	if err != nil || !ok {
		return DueInfo{}
	}
	due := latest.AddDate(0, 0, paymentCycleDays)
	overdue := daysBetween(due, today)
	if overdue < 0 {
		overdue = 0
	}
	return DueInfo{NextDueDate: due, DaysOverdue: overdue, HasPayments: true}
}

// latestPaymentDate returns the most recent payment date. Any unparsable
// fecha_pago poisons the whole history via the returned error, which callers
// resolve to the overdue fallback.
func latestPaymentDate(payments []Payment) (time.Time, bool, error) {
	var latest time.Time
	found := false
	for _, p := range payments {
		d, err := domain.ParseDate(p.Date)
		if err != nil {
			return time.Time{}, false, err
		}
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found, nil
}

// daysBetween counts whole calendar days from one date to another, ignoring
// the time of day on either side.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
