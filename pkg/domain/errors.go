package domain

import "fmt"

// ValidationError reports a missing or malformed field on create or update.
type ValidationError struct {
	Entity EntityType
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Entity, e.Field, e.Reason)
}

// NotFoundError reports an unknown id referenced by an operation.
type NotFoundError struct {
	Entity EntityType
	ID     int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// DuplicateBuildingError is returned when a second building creation is
// attempted while one already exists (single-installation licensing rule).
type DuplicateBuildingError struct {
	ExistingID int
}

func (e DuplicateBuildingError) Error() string {
	return fmt.Sprintf("building %d already registered: only one building is supported", e.ExistingID)
}

// IntegrityViolationError reports a mutation refused to preserve referential
// integrity, such as deleting an occupied apartment.
type IntegrityViolationError struct {
	Entity EntityType
	ID     int
	Reason string
}

func (e IntegrityViolationError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason)
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	if v, ok := e.Result.FirstBlocking(); ok {
		return fmt.Sprintf("blocked by rule %s: %s", v.Rule, v.Message)
	}
	return "blocked by rules"
}
