package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"
)

// UsageReader computes the live consumption of a slot from the order store.
// Implementations must execute the computation as a single consistent aggregate
// query, not a read-then-filter in application code, so the value cannot drift
// between the count and the sums. No side effects; returns zeros for a slot
// with no active bindings.
type UsageReader interface {
	Usage(ctx context.Context, slotID kernel.UUID) (slot.Usage, error)
}
