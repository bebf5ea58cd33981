package core

import (
	"context"
	"fmt"

	"propertycore/pkg/domain"
)

// RuleOccupiedUnitDelete is the name of the occupied-apartment delete guard.
const RuleOccupiedUnitDelete = "occupied_unit_delete"

// OccupiedUnitDeleteRule refuses to delete an apartment while it is occupied;
// the tenant must be unassigned or deleted first.
type OccupiedUnitDeleteRule struct{}

// NewOccupiedUnitDeleteRule constructs the rule.
func NewOccupiedUnitDeleteRule() OccupiedUnitDeleteRule { return OccupiedUnitDeleteRule{} }

// Name returns the rule identifier.
func (OccupiedUnitDeleteRule) Name() string { return RuleOccupiedUnitDelete }

// Evaluate blocks deletion of apartments whose status is occupied.
func (OccupiedUnitDeleteRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	var result domain.Result
	for _, change := range changes {
		if change.Entity != domain.EntityApartment || change.Action != domain.ActionDelete {
			continue
		}
		before, ok := change.Before.(domain.Apartment)
		if !ok || before.Status != domain.ApartmentOccupied {
			continue
		}
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     RuleOccupiedUnitDelete,
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf("apartment %s is occupied", before.Number),
			Entity:   domain.EntityApartment,
			EntityID: before.ID,
		})
	}
	return result, nil
}
