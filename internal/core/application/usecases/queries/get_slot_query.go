// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read through gorm directly and enrich slots with their live
// usage snapshot; they never mutate state.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetSlotQueryIsNotConstructed = errors.New(
	"GetSlotQuery must be created via NewGetSlotQuery constructor",
)

// GetSlotQuery retrieves one slot together with its usage snapshot and
// remaining capacity.
type GetSlotQuery struct {
	slotID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSlotQuery creates a query for a single enriched slot view.
func NewGetSlotQuery(slotID kernel.UUID) (GetSlotQuery, error) {
	if err := slotID.Validate(); err != nil {
		return GetSlotQuery{}, err
	}

	return GetSlotQuery{
		slotID: slotID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSlotQuery) Validate() error {
	return q.guard.Validate(ErrGetSlotQueryIsNotConstructed)
}

// SlotID returns the requested slot identifier.
func (q GetSlotQuery) SlotID() kernel.UUID {
	return q.slotID
}
