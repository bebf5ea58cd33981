// Package domain defines the persistent entities, value types, typed errors,
// ordering comparators, and rule evaluation primitives used by propertycore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityBuilding identifies the building record.
	EntityBuilding EntityType = "building"
	// EntityApartment identifies an apartment record.
	EntityApartment EntityType = "apartment"
	// EntityTenant identifies a tenant record.
	EntityTenant EntityType = "tenant"
	// EntityPayment identifies a payment ledger record.
	EntityPayment EntityType = "payment"
)

// UnitType classifies an apartment unit.
type UnitType string

// Canonical unit types. Special units created during building setup carry the
// type given in their specification; generated floor slots are standard.
const (
	UnitStandard   UnitType = "standard"
	UnitCommercial UnitType = "commercial"
	UnitPenthouse  UnitType = "penthouse"
	UnitStorage    UnitType = "storage"
	UnitOther      UnitType = "other"
)

// ParseUnitType maps free-form unit type text to a canonical UnitType.
// Unknown values collapse to UnitOther rather than failing.
func ParseUnitType(s string) UnitType {
	switch UnitType(normalizeEnum(s)) {
	case UnitStandard:
		return UnitStandard
	case UnitCommercial:
		return UnitCommercial
	case UnitPenthouse:
		return UnitPenthouse
	case UnitStorage:
		return UnitStorage
	default:
		return UnitOther
	}
}

// ApartmentStatus tracks occupancy of a unit.
type ApartmentStatus string

// Apartment occupancy states.
const (
	ApartmentAvailable   ApartmentStatus = "available"
	ApartmentOccupied    ApartmentStatus = "occupied"
	ApartmentMaintenance ApartmentStatus = "maintenance"
)

// PaymentStanding is the derived payment state of a tenant. It is stored on
// the tenant record as a materialized value and refreshed by explicit
// recomputation, never computed on read.
type PaymentStanding string

// Tenant payment standings, persisted with the legacy wire values.
const (
	StandingPendingRegistration PaymentStanding = "pendiente_registro"
	StandingCurrent             PaymentStanding = "al_dia"
	StandingOverdue             PaymentStanding = "moroso"
	StandingInactive            PaymentStanding = "inactivo"
)

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

// Payment methods, persisted with the legacy wire values.
const (
	MethodCash     PaymentMethod = "efectivo"
	MethodTransfer PaymentMethod = "transferencia"
	MethodCheque   PaymentMethod = "cheque"
)

// DateLayout is the day/month/year layout used by fecha_ingreso and
// fecha_pago. All other timestamps are ISO-8601 (time.Time JSON encoding).
const DateLayout = "02/01/2006"

// ParseDate parses a dd/mm/yyyy calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a calendar date in the dd/mm/yyyy wire layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FloorSpec describes one floor of the building and how many standard
// apartments it holds.
type FloorSpec struct {
	FloorNumber    int `json:"floor_number"`
	ApartmentCount int `json:"apartment_count"`
}

// SpecialUnitSpec describes a non-standard unit (storage room, commercial
// local, penthouse) created alongside the building.
type SpecialUnitSpec struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Floor string `json:"floor"`
}

// Building is the single installation record. The derived counters are
// computed once at creation and stored; they are not recomputed on read.
type Building struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	FloorCount       int               `json:"floor_count"`
	ApartmentCount   int               `json:"apartment_count"`
	SpecialUnitCount int               `json:"special_unit_count"`
	Floors           []FloorSpec       `json:"floors"`
	SpecialUnits     []SpecialUnitSpec `json:"special_units"`
}

// Apartment is one unit of the building. Every persisted apartment carries a
// positive BuildingID; records without one are orphans and are purged during
// load.
type Apartment struct {
	ID          int             `json:"id"`
	BuildingID  int             `json:"building_id"`
	Number      string          `json:"number"`
	Floor       string          `json:"floor"`
	UnitType    UnitType        `json:"unit_type"`
	Status      ApartmentStatus `json:"status"`
	BaseRent    string          `json:"base_rent"`
	Rooms       string          `json:"rooms"`
	Bathrooms   string          `json:"bathrooms"`
	Area        string          `json:"area"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Tenant is an occupant. ApartmentID may be unset at intake; the occupancy
// link lives here, not on the apartment. Wire field names follow the legacy
// resources.
type Tenant struct {
	ID             int             `json:"id"`
	Name           string          `json:"nombre"`
	DocumentID     string          `json:"numero_documento"`
	Phone          string          `json:"telefono"`
	Email          string          `json:"email,omitempty"`
	ApartmentID    *int            `json:"apartamento"`
	RentValue      float64         `json:"valor_arriendo"`
	EntryDate      string          `json:"fecha_ingreso"`
	Standing       PaymentStanding `json:"estado_pago"`
	Deposit        string          `json:"deposito,omitempty"`
	EmergencyName  string          `json:"contacto_emergencia,omitempty"`
	EmergencyPhone string          `json:"telefono_emergencia,omitempty"`
	Attachments    []string        `json:"adjuntos,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Payment is one row of the append-mostly ledger. TenantName is denormalized
// at write time and never re-synced with the tenant record.
type Payment struct {
	ID           int           `json:"id"`
	TenantID     int           `json:"id_inquilino"`
	TenantName   string        `json:"nombre_inquilino"`
	Date         string        `json:"fecha_pago"`
	Amount       float64       `json:"monto"`
	Method       PaymentMethod `json:"metodo"`
	Observations string        `json:"observaciones,omitempty"`
	CreatedAt    time.Time     `json:"created_at,omitzero"`
}

// Change describes a mutation applied to an entity.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported mutations.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks the mutation.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows the mutation.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID int
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// FirstBlocking returns the first blocking violation, if any.
func (r Result) FirstBlocking() (Violation, bool) {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return v, true
		}
	}
	return Violation{}, false
}
