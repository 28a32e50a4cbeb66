package slot

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is the sentinel for admission refusals. Use errors.Is to
// classify and errors.As to extract the exceeded dimension.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// Dimension names one of the three independent capacity dimensions of a slot.
type Dimension string

const (
	DimensionOrders  Dimension = "orders"
	DimensionKitchen Dimension = "kitchen"
	DimensionStorage Dimension = "storage"
)

// CapacityExceededError reports an admission refusal in one dimension.
// It is an expected business outcome, not an internal fault: callers surface a
// capacity message to the user and must not retry the same request unchanged.
type CapacityExceededError struct {
	Dimension Dimension
}

// NewCapacityExceededError creates an admission refusal for the given dimension.
func NewCapacityExceededError(dimension Dimension) *CapacityExceededError {
	return &CapacityExceededError{Dimension: dimension}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCapacityExceeded, e.Dimension)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// Usage is the live, derived consumption snapshot of one slot: the count of
// active order bindings plus the sums of their load contributions. Usage is
// computed at query time and never stored; caching it beyond a single admission
// check would reintroduce the race the reservation path exists to close.
type Usage struct {
	OrderCount  int
	KitchenLoad int
	StorageLoad int
}

// IsZero reports whether the slot has no active bindings.
func (u Usage) IsZero() bool {
	return u == Usage{}
}

// Remaining is ceiling minus usage per dimension, floored at zero.
type Remaining struct {
	Orders      int
	KitchenLoad int
	StorageLoad int
}

// EnrichedSlot is a Slot combined with its usage snapshot and remaining
// capacity. It is the unit served to readers and broadcast to subscribers.
type EnrichedSlot struct {
	Slot      *Slot
	Usage     Usage
	Remaining Remaining
}
