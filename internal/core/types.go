package core

import (
	"strings"
	"time"

	"propertycore/internal/store"
	"propertycore/pkg/domain"
)

type (
	EntityType      = domain.EntityType
	Building        = domain.Building
	Apartment       = domain.Apartment
	Tenant          = domain.Tenant
	Payment         = domain.Payment
	FloorSpec       = domain.FloorSpec
	SpecialUnitSpec = domain.SpecialUnitSpec
	PaymentStanding = domain.PaymentStanding
	Change          = domain.Change
	Violation       = domain.Violation
	Result          = domain.Result
)

const (
	EntityBuilding  = domain.EntityBuilding
	EntityApartment = domain.EntityApartment
	EntityTenant    = domain.EntityTenant
	EntityPayment   = domain.EntityPayment
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)

// Collection descriptors -----------------------------------------------------
//
// One descriptor per entity wires identity, timestamps, validity and the
// canonical listing order into the generic collection store.

func buildingDescriptor() store.Descriptor[Building] {
	return store.Descriptor[Building]{
		Entity: EntityBuilding,
		ID:     func(b Building) int { return b.ID },
		SetID:  func(b *Building, id int) { b.ID = id },
		Less:   func(a, b Building) bool { return a.ID < b.ID },
		Clone:  cloneBuilding,
	}
}

func apartmentDescriptor() store.Descriptor[Apartment] {
	return store.Descriptor[Apartment]{
		Entity: EntityApartment,
		ID:     func(a Apartment) int { return a.ID },
		SetID:  func(a *Apartment, id int) { a.ID = id },
		Stamp: func(a *Apartment, now time.Time, created bool) {
			if created {
				a.CreatedAt = now
			}
			a.UpdatedAt = now
		},
		// An apartment without a building reference is an orphan, purged on load.
		Valid: func(a Apartment) bool { return a.BuildingID > 0 },
		Less: func(a, b Apartment) bool {
			if c := domain.CompareNatural(a.Number, b.Number); c != 0 {
				return c < 0
			}
			return a.ID < b.ID
		},
	}
}

func tenantDescriptor() store.Descriptor[Tenant] {
	return store.Descriptor[Tenant]{
		Entity: EntityTenant,
		ID:     func(t Tenant) int { return t.ID },
		SetID:  func(t *Tenant, id int) { t.ID = id },
		Stamp: func(t *Tenant, now time.Time, created bool) {
			if created {
				t.CreatedAt = now
			}
			t.UpdatedAt = now
		},
		Less: func(a, b Tenant) bool {
			if c := domain.CompareNatural(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
				return c < 0
			}
			return a.ID < b.ID
		},
		Clone: cloneTenant,
	}
}

func paymentDescriptor() store.Descriptor[Payment] {
	return store.Descriptor[Payment]{
		Entity: EntityPayment,
		ID:     func(p Payment) int { return p.ID },
		SetID:  func(p *Payment, id int) { p.ID = id },
		Stamp: func(p *Payment, now time.Time, created bool) {
			if created {
				p.CreatedAt = now
			}
		},
		// The ledger lists most recent first; rows with unparsable dates sink
		// to the end.
		Less: paymentLess,
	}
}

func paymentLess(a, b Payment) bool {
	ad, aErr := domain.ParseDate(a.Date)
	bd, bErr := domain.ParseDate(b.Date)
	switch {
	case aErr == nil && bErr == nil:
		if !ad.Equal(bd) {
			return ad.After(bd)
		}
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	}
	return a.ID > b.ID
}

func cloneBuilding(b Building) Building {
	cp := b
	cp.Floors = append([]FloorSpec(nil), b.Floors...)
	cp.SpecialUnits = append([]SpecialUnitSpec(nil), b.SpecialUnits...)
	return cp
}

func cloneTenant(t Tenant) Tenant {
	cp := t
	if t.ApartmentID != nil {
		id := *t.ApartmentID
		cp.ApartmentID = &id
	}
	cp.Attachments = append([]string(nil), t.Attachments...)
	return cp
}
