// Package core implements the referential-integrity coordinator over the
// per-entity collection stores, the payment status engine, and the batch
// reconciliation job.
package core

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"propertycore/internal/blob"
	"propertycore/internal/infra/resource/file"
	"propertycore/internal/store"
	"propertycore/pkg/domain"
)

// ResourceSet names the backing resource of each collection. All four must
// be set; FileResources builds the default JSON-file layout.
type ResourceSet struct {
	Buildings  store.Resource
	Apartments store.Resource
	Tenants    store.Resource
	Payments   store.Resource
}

// FileResources returns the default file-backed resource set under dataDir.
func FileResources(dataDir string) (ResourceSet, error) {
	if dataDir == "" {
		dataDir = "./data"
	}
	var set ResourceSet
	var err error
	if set.Buildings, err = file.New(filepath.Join(dataDir, "buildings.json")); err != nil {
		return ResourceSet{}, err
	}
	if set.Apartments, err = file.New(filepath.Join(dataDir, "apartments.json")); err != nil {
		return ResourceSet{}, err
	}
	if set.Tenants, err = file.New(filepath.Join(dataDir, "tenants.json")); err != nil {
		return ResourceSet{}, err
	}
	if set.Payments, err = file.New(filepath.Join(dataDir, "payments.json")); err != nil {
		return ResourceSet{}, err
	}
	return set, nil
}

// Config assembles a Service. Zero-value optional fields get safe defaults.
type Config struct {
	Resources   ResourceSet
	Engine      *domain.RulesEngine // nil = built-in policy set
	Attachments blob.Store          // optional; attachment ops fail without it
	Logger      *zap.Logger
	Metrics     MetricsRecorder
}

// Service coordinates the four collection stores. It is the explicit context
// object holding one store instance per entity, constructed once at process
// start; callers must serialize mutations on the same collection (single
// logical thread of control).
type Service struct {
	buildings  *store.Collection[Building]
	apartments *store.Collection[Apartment]
	tenants    *store.Collection[Tenant]
	payments   *store.Collection[Payment]

	engine      *domain.RulesEngine
	attachments blob.Store
	log         *zap.Logger
	metrics     MetricsRecorder
	nowFn       func() time.Time
}

// Open loads all four collections (applying self-healing per collection) and
// returns the coordinator.
func Open(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.Resources.Buildings == nil || cfg.Resources.Apartments == nil ||
		cfg.Resources.Tenants == nil || cfg.Resources.Payments == nil {
		return nil, fmt.Errorf("core: all four collection resources are required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NopMetricsRecorder{}
	}
	engine := cfg.Engine
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}

	s := &Service{
		engine:      engine,
		attachments: cfg.Attachments,
		log:         log,
		metrics:     metrics,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
	var err error
	if s.buildings, err = store.Open(ctx, buildingDescriptor(), cfg.Resources.Buildings, log); err != nil {
		return nil, fmt.Errorf("open buildings: %w", err)
	}
	if s.apartments, err = store.Open(ctx, apartmentDescriptor(), cfg.Resources.Apartments, log); err != nil {
		return nil, fmt.Errorf("open apartments: %w", err)
	}
	if s.tenants, err = store.Open(ctx, tenantDescriptor(), cfg.Resources.Tenants, log); err != nil {
		return nil, fmt.Errorf("open tenants: %w", err)
	}
	if s.payments, err = store.Open(ctx, paymentDescriptor(), cfg.Resources.Payments, log); err != nil {
		return nil, fmt.Errorf("open payments: %w", err)
	}
	return s, nil
}

// SetNowFunc overrides the clock on the service and all stores, for tests.
func (s *Service) SetNowFunc(fn func() time.Time) {
	s.nowFn = fn
	s.buildings.SetNowFunc(fn)
	s.apartments.SetNowFunc(fn)
	s.tenants.SetNowFunc(fn)
	s.payments.SetNowFunc(fn)
}

// Rule evaluation -------------------------------------------------------------

type storesView struct{ svc *Service }

func (v storesView) ListBuildings() []Building   { return v.svc.buildings.GetAll() }
func (v storesView) ListApartments() []Apartment { return v.svc.apartments.GetAll() }
func (v storesView) ListTenants() []Tenant       { return v.svc.tenants.GetAll() }
func (v storesView) FindApartment(id int) (Apartment, bool) {
	return v.svc.apartments.GetByID(id)
}
func (v storesView) FindTenant(id int) (Tenant, bool) {
	return v.svc.tenants.GetByID(id)
}

func (s *Service) view() domain.RuleView { return storesView{svc: s} }

// evaluate runs the rules engine over proposed changes and maps blocking
// violations from the built-in rules onto the typed errors callers handle.
func (s *Service) evaluate(ctx context.Context, changes ...Change) error {
	res, err := s.engine.Evaluate(ctx, s.view(), changes)
	if err != nil {
		return err
	}
	for _, v := range res.Violations {
		if v.Severity == domain.SeverityWarn {
			s.log.Warn("rule warning", zap.String("rule", v.Rule), zap.String("message", v.Message))
		}
	}
	if v, ok := res.FirstBlocking(); ok {
		switch v.Rule {
		case RuleSingleBuilding:
			return domain.DuplicateBuildingError{ExistingID: v.EntityID}
		case RuleOccupiedUnitDelete:
			return domain.IntegrityViolationError{Entity: v.Entity, ID: v.EntityID, Reason: v.Message}
		default:
			return domain.RuleViolationError{Result: res}
		}
	}
	return nil
}

func (s *Service) observe(ctx context.Context, operation string, start time.Time, err error) {
	s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
}

// Buildings -------------------------------------------------------------------

// Buildings returns all building records in canonical order.
func (s *Service) Buildings() []Building { return s.buildings.GetAll() }

// Building returns the building with the given id.
func (s *Service) Building(id int) (Building, bool) { return s.buildings.GetByID(id) }

// CreateBuilding registers the building and generates its apartments: one
// standard unit per floor slot numbered "{floor}{seq:02d}", plus one unit per
// special specification. The building record is persisted before apartment
// generation starts; a failure mid-generation leaves the building and the
// apartments created so far in place (no rollback; see
// DeleteApartmentsForBuilding for the manual compensating action).
func (s *Service) CreateBuilding(ctx context.Context, name string, floors []FloorSpec, special []SpecialUnitSpec) (_ Building, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "create_building", start, retErr) }(time.Now())

	if strings.TrimSpace(name) == "" {
		return Building{}, domain.ValidationError{Entity: EntityBuilding, Field: "name", Reason: "required"}
	}
	apartmentCount := 0
	for _, f := range floors {
		if f.ApartmentCount < 0 {
			return Building{}, domain.ValidationError{Entity: EntityBuilding, Field: "floors", Reason: "apartment count cannot be negative"}
		}
		apartmentCount += f.ApartmentCount
	}
	candidate := Building{
		Name:             strings.TrimSpace(name),
		FloorCount:       len(floors),
		ApartmentCount:   apartmentCount,
		SpecialUnitCount: len(special),
		Floors:           floors,
		SpecialUnits:     special,
	}
	if err := s.evaluate(ctx, Change{Entity: EntityBuilding, Action: ActionCreate, After: candidate}); err != nil {
		return Building{}, err
	}

	created, err := s.buildings.Create(ctx, candidate)
	if err != nil {
		return Building{}, err
	}
	for _, f := range floors {
		for seq := 1; seq <= f.ApartmentCount; seq++ {
			apt := Apartment{
				BuildingID: created.ID,
				Number:     fmt.Sprintf("%d%02d", f.FloorNumber, seq),
				Floor:      strconv.Itoa(f.FloorNumber),
				UnitType:   domain.UnitStandard,
				Status:     domain.ApartmentAvailable,
				BaseRent:   "0",
				Rooms:      "0",
				Bathrooms:  "0",
				Area:       "0",
			}
			if _, err := s.apartments.Create(ctx, apt); err != nil {
				s.log.Error("apartment generation stopped mid-way; building and earlier units remain",
					zap.Int("building_id", created.ID), zap.String("number", apt.Number), zap.Error(err))
				return created, fmt.Errorf("generate apartment %s: %w", apt.Number, err)
			}
		}
	}
	for _, su := range special {
		apt := Apartment{
			BuildingID: created.ID,
			Number:     su.Name,
			Floor:      su.Floor,
			UnitType:   domain.ParseUnitType(su.Type),
			Status:     domain.ApartmentAvailable,
			BaseRent:   "0",
			Rooms:      "0",
			Bathrooms:  "0",
			Area:       "0",
		}
		if _, err := s.apartments.Create(ctx, apt); err != nil {
			s.log.Error("special unit generation stopped mid-way; building and earlier units remain",
				zap.Int("building_id", created.ID), zap.String("number", apt.Number), zap.Error(err))
			return created, fmt.Errorf("generate special unit %s: %w", su.Name, err)
		}
	}
	return created, nil
}

// Apartments ------------------------------------------------------------------

// Apartments returns all apartments in natural number order.
func (s *Service) Apartments() []Apartment { return s.apartments.GetAll() }

// ApartmentsByPriority returns apartments in the management listing order:
// basements and storage first, floors ascending with unit type ranking,
// penthouses last.
func (s *Service) ApartmentsByPriority() []Apartment {
	out := s.apartments.GetAll()
	sort.SliceStable(out, func(i, j int) bool { return domain.ListingLess(out[i], out[j]) })
	return out
}

// Apartment returns the apartment with the given id.
func (s *Service) Apartment(id int) (Apartment, bool) { return s.apartments.GetByID(id) }

// CreateApartment adds a single unit to an existing building.
func (s *Service) CreateApartment(ctx context.Context, apt Apartment) (_ Apartment, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "create_apartment", start, retErr) }(time.Now())

	if apt.BuildingID <= 0 {
		return Apartment{}, domain.ValidationError{Entity: EntityApartment, Field: "building_id", Reason: "required"}
	}
	if _, ok := s.buildings.GetByID(apt.BuildingID); !ok {
		return Apartment{}, domain.NotFoundError{Entity: EntityBuilding, ID: apt.BuildingID}
	}
	if strings.TrimSpace(apt.Number) == "" {
		return Apartment{}, domain.ValidationError{Entity: EntityApartment, Field: "number", Reason: "required"}
	}
	if apt.UnitType == "" {
		apt.UnitType = domain.UnitStandard
	}
	if apt.Status == "" {
		apt.Status = domain.ApartmentAvailable
	}
	return s.apartments.Create(ctx, apt)
}

// UpdateApartment applies the mutator to the apartment. The building
// reference must stay valid.
func (s *Service) UpdateApartment(ctx context.Context, id int, mutate func(*Apartment) error) (_ Apartment, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "update_apartment", start, retErr) }(time.Now())

	updated, found, err := s.apartments.Update(ctx, id, func(a *Apartment) error {
		if err := mutate(a); err != nil {
			return err
		}
		if a.BuildingID <= 0 {
			return domain.ValidationError{Entity: EntityApartment, Field: "building_id", Reason: "required"}
		}
		return nil
	})
	if err != nil {
		return Apartment{}, err
	}
	if !found {
		return Apartment{}, domain.NotFoundError{Entity: EntityApartment, ID: id}
	}
	return updated, nil
}

// DeleteApartment removes an apartment. Deleting an occupied apartment fails
// with an integrity violation; unassign or delete the tenant first.
func (s *Service) DeleteApartment(ctx context.Context, id int) (retErr error) {
	defer func(start time.Time) { s.observe(ctx, "delete_apartment", start, retErr) }(time.Now())

	apt, ok := s.apartments.GetByID(id)
	if !ok {
		return domain.NotFoundError{Entity: EntityApartment, ID: id}
	}
	if err := s.evaluate(ctx, Change{Entity: EntityApartment, Action: ActionDelete, Before: apt}); err != nil {
		return err
	}
	if _, err := s.apartments.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// DeleteApartmentsForBuilding bulk-removes all apartments of a building.
// Used to clean up after a failed or superseded building setup.
func (s *Service) DeleteApartmentsForBuilding(ctx context.Context, buildingID int) (removed int, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "delete_building_apartments", start, retErr) }(time.Now())

	for _, apt := range s.apartments.GetAll() {
		if apt.BuildingID != buildingID {
			continue
		}
		ok, err := s.apartments.Delete(ctx, apt.ID)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

// Tenants ---------------------------------------------------------------------

// Tenants returns all tenants in natural name order.
func (s *Service) Tenants() []Tenant { return s.tenants.GetAll() }

// Tenant returns the tenant with the given id.
func (s *Service) Tenant(id int) (Tenant, bool) { return s.tenants.GetByID(id) }

// CreateTenant registers a tenant with standing pendiente_registro. When an
// apartment is assigned at intake the unit flips to occupied (last writer
// wins; no availability check).
func (s *Service) CreateTenant(ctx context.Context, tenant Tenant) (_ Tenant, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "create_tenant", start, retErr) }(time.Now())

	if strings.TrimSpace(tenant.Name) == "" {
		return Tenant{}, domain.ValidationError{Entity: EntityTenant, Field: "nombre", Reason: "required"}
	}
	if strings.TrimSpace(tenant.DocumentID) == "" {
		return Tenant{}, domain.ValidationError{Entity: EntityTenant, Field: "numero_documento", Reason: "required"}
	}
	if tenant.EntryDate != "" {
		if _, err := domain.ParseDate(tenant.EntryDate); err != nil {
			return Tenant{}, domain.ValidationError{Entity: EntityTenant, Field: "fecha_ingreso", Reason: "expected dd/mm/yyyy"}
		}
	}
	tenant.Standing = domain.StandingPendingRegistration
	created, err := s.tenants.Create(ctx, tenant)
	if err != nil {
		return Tenant{}, err
	}
	if created.ApartmentID != nil {
		s.occupyApartment(ctx, *created.ApartmentID, created.ID)
	}
	return created, nil
}

// UpdateTenant applies the mutator to the tenant. The payment standing is a
// derived field and cannot be edited here; changes to it are discarded. When
// the apartment assignment changes, the newly assigned unit flips to
// occupied. The previous unit is not released until the tenant is deleted.
func (s *Service) UpdateTenant(ctx context.Context, id int, mutate func(*Tenant) error) (_ Tenant, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "update_tenant", start, retErr) }(time.Now())

	before, ok := s.tenants.GetByID(id)
	if !ok {
		return Tenant{}, domain.NotFoundError{Entity: EntityTenant, ID: id}
	}
	updated, found, err := s.tenants.Update(ctx, id, func(t *Tenant) error {
		if err := mutate(t); err != nil {
			return err
		}
		t.Standing = before.Standing
		if t.EntryDate != "" {
			if _, err := domain.ParseDate(t.EntryDate); err != nil {
				return domain.ValidationError{Entity: EntityTenant, Field: "fecha_ingreso", Reason: "expected dd/mm/yyyy"}
			}
		}
		return nil
	})
	if err != nil {
		return Tenant{}, err
	}
	if !found {
		return Tenant{}, domain.NotFoundError{Entity: EntityTenant, ID: id}
	}
	if apartmentChanged(before.ApartmentID, updated.ApartmentID) && updated.ApartmentID != nil {
		s.occupyApartment(ctx, *updated.ApartmentID, updated.ID)
	}
	return updated, nil
}

// DeleteTenant removes the tenant and releases the associated apartment. A
// missing apartment makes the release a no-op, not a failure.
func (s *Service) DeleteTenant(ctx context.Context, id int) (retErr error) {
	defer func(start time.Time) { s.observe(ctx, "delete_tenant", start, retErr) }(time.Now())

	tenant, ok := s.tenants.GetByID(id)
	if !ok {
		return domain.NotFoundError{Entity: EntityTenant, ID: id}
	}
	if _, err := s.tenants.Delete(ctx, id); err != nil {
		return err
	}
	if tenant.ApartmentID != nil {
		s.releaseApartment(ctx, *tenant.ApartmentID, id)
	}
	return nil
}

func apartmentChanged(before, after *int) bool {
	switch {
	case before == nil && after == nil:
		return false
	case before == nil || after == nil:
		return true
	default:
		return *before != *after
	}
}

func (s *Service) occupyApartment(ctx context.Context, apartmentID, tenantID int) {
	_, found, err := s.apartments.Update(ctx, apartmentID, func(a *Apartment) error {
		a.Status = domain.ApartmentOccupied
		return nil
	})
	if err != nil {
		s.log.Warn("failed to mark apartment occupied",
			zap.Int("apartment_id", apartmentID), zap.Int("tenant_id", tenantID), zap.Error(err))
		return
	}
	if !found {
		s.log.Warn("assigned apartment does not exist",
			zap.Int("apartment_id", apartmentID), zap.Int("tenant_id", tenantID))
	}
}

func (s *Service) releaseApartment(ctx context.Context, apartmentID, tenantID int) {
	_, found, err := s.apartments.Update(ctx, apartmentID, func(a *Apartment) error {
		a.Status = domain.ApartmentAvailable
		return nil
	})
	if err != nil {
		s.log.Warn("failed to release apartment",
			zap.Int("apartment_id", apartmentID), zap.Int("tenant_id", tenantID), zap.Error(err))
		return
	}
	if !found {
		s.log.Warn("release skipped, apartment no longer exists",
			zap.Int("apartment_id", apartmentID), zap.Int("tenant_id", tenantID))
	}
}

// Payments --------------------------------------------------------------------

// Payments returns the full ledger, most recent first.
func (s *Service) Payments() []Payment { return s.payments.GetAll() }

// PaymentsForTenant returns the tenant's ledger rows, most recent first.
func (s *Service) PaymentsForTenant(tenantID int) []Payment {
	var out []Payment
	for _, p := range s.payments.GetAll() {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out
}

// CreatePayment appends a ledger row, snapshotting the tenant name at write
// time, then recomputes the tenant's standing.
func (s *Service) CreatePayment(ctx context.Context, payment Payment) (_ Payment, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "create_payment", start, retErr) }(time.Now())

	tenant, ok := s.tenants.GetByID(payment.TenantID)
	if !ok {
		return Payment{}, domain.NotFoundError{Entity: EntityTenant, ID: payment.TenantID}
	}
	if payment.Amount < 0 {
		return Payment{}, domain.ValidationError{Entity: EntityPayment, Field: "monto", Reason: "cannot be negative"}
	}
	if _, err := domain.ParseDate(payment.Date); err != nil {
		return Payment{}, domain.ValidationError{Entity: EntityPayment, Field: "fecha_pago", Reason: "expected dd/mm/yyyy"}
	}
	switch payment.Method {
	case domain.MethodCash, domain.MethodTransfer, domain.MethodCheque:
	default:
		return Payment{}, domain.ValidationError{Entity: EntityPayment, Field: "metodo", Reason: "unknown payment method"}
	}
	payment.TenantName = tenant.Name
	created, err := s.payments.Create(ctx, payment)
	if err != nil {
		return Payment{}, err
	}
	if _, _, err := s.RecalculateTenantStanding(ctx, created.TenantID); err != nil {
		return created, fmt.Errorf("payment recorded, standing recompute failed: %w", err)
	}
	return created, nil
}

// UpdatePayment edits a ledger row administratively and recomputes the
// standing of every tenant involved.
func (s *Service) UpdatePayment(ctx context.Context, id int, mutate func(*Payment) error) (_ Payment, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "update_payment", start, retErr) }(time.Now())

	before, ok := s.payments.GetByID(id)
	if !ok {
		return Payment{}, domain.NotFoundError{Entity: EntityPayment, ID: id}
	}
	updated, found, err := s.payments.Update(ctx, id, func(p *Payment) error {
		if err := mutate(p); err != nil {
			return err
		}
		if _, err := domain.ParseDate(p.Date); err != nil {
			return domain.ValidationError{Entity: EntityPayment, Field: "fecha_pago", Reason: "expected dd/mm/yyyy"}
		}
		if p.Amount < 0 {
			return domain.ValidationError{Entity: EntityPayment, Field: "monto", Reason: "cannot be negative"}
		}
		return nil
	})
	if err != nil {
		return Payment{}, err
	}
	if !found {
		return Payment{}, domain.NotFoundError{Entity: EntityPayment, ID: id}
	}
	if _, _, err := s.RecalculateTenantStanding(ctx, before.TenantID); err != nil {
		return updated, err
	}
	if updated.TenantID != before.TenantID {
		if _, _, err := s.RecalculateTenantStanding(ctx, updated.TenantID); err != nil {
			return updated, err
		}
	}
	return updated, nil
}

// DeletePayment removes a ledger row administratively and recomputes the
// tenant's standing.
func (s *Service) DeletePayment(ctx context.Context, id int) (retErr error) {
	defer func(start time.Time) { s.observe(ctx, "delete_payment", start, retErr) }(time.Now())

	before, ok := s.payments.GetByID(id)
	if !ok {
		return domain.NotFoundError{Entity: EntityPayment, ID: id}
	}
	if _, err := s.payments.Delete(ctx, id); err != nil {
		return err
	}
	_, _, err := s.RecalculateTenantStanding(ctx, before.TenantID)
	return err
}

// RecalculateTenantStanding recomputes one tenant's standing from the ledger
// and persists it only when it changed. It reports the resulting standing
// and whether a persist happened. Unknown tenants are a silent no-op so the
// payment hooks tolerate administratively deleted tenants.
func (s *Service) RecalculateTenantStanding(ctx context.Context, tenantID int) (PaymentStanding, bool, error) {
	tenant, ok := s.tenants.GetByID(tenantID)
	if !ok {
		return "", false, nil
	}
	standing := ComputeStanding(tenant, s.PaymentsForTenant(tenantID), s.nowFn())
	if standing == tenant.Standing {
		return standing, false, nil
	}
	_, _, err := s.tenants.Update(ctx, tenantID, func(t *Tenant) error {
		t.Standing = standing
		return nil
	})
	if err != nil {
		return standing, false, err
	}
	return standing, true, nil
}

// TenantDueInfo derives the reminder calculation for one tenant.
func (s *Service) TenantDueInfo(tenantID int) (DueInfo, error) {
	if _, ok := s.tenants.GetByID(tenantID); !ok {
		return DueInfo{}, domain.NotFoundError{Entity: EntityTenant, ID: tenantID}
	}
	return NextDue(s.PaymentsForTenant(tenantID), s.nowFn()), nil
}

// Attachments -----------------------------------------------------------------

// AttachTenantDocument stores an attachment under tenants/{id}/{filename}
// and appends the reference to the tenant record. Requires an attachment
// store to be configured.
func (s *Service) AttachTenantDocument(ctx context.Context, tenantID int, filename string, r io.Reader, contentType string) (_ string, retErr error) {
	defer func(start time.Time) { s.observe(ctx, "attach_tenant_document", start, retErr) }(time.Now())

	if s.attachments == nil {
		return "", fmt.Errorf("attachment storage not configured")
	}
	if _, ok := s.tenants.GetByID(tenantID); !ok {
		return "", domain.NotFoundError{Entity: EntityTenant, ID: tenantID}
	}
	if strings.TrimSpace(filename) == "" {
		return "", domain.ValidationError{Entity: EntityTenant, Field: "adjuntos", Reason: "filename required"}
	}
	key := fmt.Sprintf("tenants/%d/%s", tenantID, filename)
	if _, err := s.attachments.Put(ctx, key, r, blob.PutOptions{ContentType: contentType}); err != nil {
		return "", err
	}
	_, _, err := s.tenants.Update(ctx, tenantID, func(t *Tenant) error {
		t.Attachments = append(t.Attachments, key)
		return nil
	})
	if err != nil {
		return key, fmt.Errorf("attachment stored, tenant reference not persisted: %w", err)
	}
	return key, nil
}

// TenantDocument opens a stored attachment by key.
func (s *Service) TenantDocument(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	if s.attachments == nil {
		return blob.Info{}, nil, fmt.Errorf("attachment storage not configured")
	}
	return s.attachments.Get(ctx, key)
}
