// Package ports defines repository interfaces for the capacity core.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"
)

// SlotRepository defines the persistence contract for slot aggregates.
type SlotRepository interface {
	// Add persists a new slot aggregate to storage.
	// The slot must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *slot.Slot) error

	// Get retrieves a slot aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when the slot does not exist.
	Get(ctx context.Context, id kernel.UUID) (*slot.Slot, error)

	// GetForUpdate retrieves a slot and takes an exclusive row lock on it for the
	// duration of the surrounding transaction. Two concurrent reservations against
	// the same slot serialize on this lock, which is what makes the read-check-admit
	// sequence of the reservation path race-free. Must be called inside an active
	// transaction; outside one the lock would be released immediately.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*slot.Slot, error)
}
