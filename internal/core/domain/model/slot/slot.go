package slot

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrSlotIsNotConstructed indicates that the Slot was not properly initialized
// through the NewSlot or RestoreSlot constructor functions.
var ErrSlotIsNotConstructed = errors.New("Slot must be created via NewSlot or RestoreSlot constructor")

// Slot represents one fulfillment time window for one tenant. It is the aggregate
// root of the capacity core: it owns the window bounds and the three capacity
// ceilings that admission decisions are checked against.
//
// Key business rules:
//   - Must be constructed through NewSlot or RestoreSlot
//   - The window's end is strictly after its start (enforced by kernel.TimeWindow)
//   - Each ceiling is non-negative and immutable once set; there is no operation
//     that shrinks a ceiling below current usage
//
// Example usage:
//
//	window, _ := kernel.NewTimeWindow(start, start.Add(time.Hour))
//	ceilings, _ := slot.NewCeilings(20, 100, 100)
//	s, err := slot.NewSlot(kernel.NewUUID(), tenantID, window, ceilings, "lunch rush")
//	if err != nil {
//	    return err
//	}
//
//	if err := s.CanAdmit(usage, 6, 4); err != nil {
//	    // admission refused, err carries the exceeded dimension
//	}
type Slot struct {
	// id uniquely identifies the slot within its tenant
	id kernel.UUID

	// tenantID scopes the slot to one tenant
	tenantID kernel.UUID

	// window is the fulfillment time window this slot covers
	window kernel.TimeWindow

	// ceilings are the three capacity limits checked during admission
	ceilings Ceilings

	// notes is optional free-text attached by the administrator
	notes string

	// guard ensures the aggregate was properly initialized
	guard guard.ConstructorGuard
}

// NewSlot creates a new Slot aggregate with the specified parameters.
// All validation errors are aggregated and returned as a single error.
func NewSlot(
	id kernel.UUID,
	tenantID kernel.UUID,
	window kernel.TimeWindow,
	ceilings Ceilings,
	notes string,
) (*Slot, error) {
	s := &Slot{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
		s.setWindow(window),
		s.setCeilings(ceilings),
	); err != nil {
		return nil, err
	}

	s.notes = notes
	return s, nil
}

// RestoreSlot reconstructs a Slot aggregate from persistent storage.
// The restored slot behaves identically to one created through NewSlot.
func RestoreSlot(
	id kernel.UUID,
	tenantID kernel.UUID,
	window kernel.TimeWindow,
	ceilings Ceilings,
	notes string,
) (*Slot, error) {
	return NewSlot(id, tenantID, window, ceilings, notes)
}

// Validate checks if the Slot was properly constructed.
func (s *Slot) Validate() error {
	return s.guard.Validate(ErrSlotIsNotConstructed)
}

// ID returns the unique identifier of the slot.
func (s *Slot) ID() kernel.UUID {
	return s.id
}

// TenantID returns the tenant this slot belongs to.
func (s *Slot) TenantID() kernel.UUID {
	return s.tenantID
}

// Window returns the fulfillment time window of this slot.
func (s *Slot) Window() kernel.TimeWindow {
	return s.window
}

// Ceilings returns the three capacity ceilings of this slot.
func (s *Slot) Ceilings() Ceilings {
	return s.ceilings
}

// Notes returns the optional administrator notes.
func (s *Slot) Notes() string {
	return s.notes
}

// IsEqual compares two slots by identity, following DDD entity equality.
func (s *Slot) IsEqual(other *Slot) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// CanAdmit decides whether one more order with the given load contributions fits
// within the remaining capacity, given the current usage snapshot. The three
// dimensions are checked in a fixed order - orders, kitchen, storage - and the
// first exceeded dimension is reported.
//
// A nil return authorizes the caller to bind the order to this slot. The check
// and the caller's bind write must be treated as one critical section; CanAdmit
// itself performs no mutation.
//
// A ceiling of zero in any dimension refuses every request that contributes to
// that dimension, including the first order when MaxOrders is zero.
func (s *Slot) CanAdmit(usage Usage, kitchenLoad, storageLoad int) error {
	if kitchenLoad < 0 {
		return errs.NewValueIsInvalidError("kitchenLoad")
	}
	if storageLoad < 0 {
		return errs.NewValueIsInvalidError("storageLoad")
	}

	if usage.OrderCount+1 > s.ceilings.MaxOrders() {
		return NewCapacityExceededError(DimensionOrders)
	}
	if usage.KitchenLoad+kitchenLoad > s.ceilings.MaxKitchenLoad() {
		return NewCapacityExceededError(DimensionKitchen)
	}
	if usage.StorageLoad+storageLoad > s.ceilings.MaxStorageLoad() {
		return NewCapacityExceededError(DimensionStorage)
	}

	return nil
}

// Enrich combines the slot with a usage snapshot into the view that is served
// to readers and broadcast to subscribers.
func (s *Slot) Enrich(usage Usage) EnrichedSlot {
	return EnrichedSlot{
		Slot:      s,
		Usage:     usage,
		Remaining: s.ceilings.Remaining(usage),
	}
}

func (s *Slot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	s.id = id
	return nil
}

func (s *Slot) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}

	s.tenantID = tenantID
	return nil
}

func (s *Slot) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}

	s.window = window
	return nil
}

func (s *Slot) setCeilings(ceilings Ceilings) error {
	if err := ceilings.Validate(); err != nil {
		return err
	}

	s.ceilings = ceilings
	return nil
}
