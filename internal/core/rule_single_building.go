package core

import (
	"context"
	"fmt"

	"propertycore/pkg/domain"
)

// RuleSingleBuilding is the name of the single-installation licensing rule.
const RuleSingleBuilding = "single_building"

// SingleBuildingRule blocks creation of a second building. At most one
// building record may exist at any time.
type SingleBuildingRule struct{}

// NewSingleBuildingRule constructs the rule.
func NewSingleBuildingRule() SingleBuildingRule { return SingleBuildingRule{} }

// Name returns the rule identifier.
func (SingleBuildingRule) Name() string { return RuleSingleBuilding }

// Evaluate blocks any building create while a building already exists.
func (SingleBuildingRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	var result domain.Result
	for _, change := range changes {
		if change.Entity != domain.EntityBuilding || change.Action != domain.ActionCreate {
			continue
		}
		existing := view.ListBuildings()
		if len(existing) == 0 {
			continue
		}
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     RuleSingleBuilding,
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf("building %d already registered", existing[0].ID),
			Entity:   domain.EntityBuilding,
			EntityID: existing[0].ID,
		})
	}
	return result, nil
}
