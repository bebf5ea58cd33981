package core

import "propertycore/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in policy set:
// the single-building licensing rule and the occupied-apartment delete guard.
func NewDefaultRulesEngine() *domain.RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewSingleBuildingRule())
	engine.Register(NewOccupiedUnitDeleteRule())
	return engine
}
