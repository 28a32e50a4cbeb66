package queries

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrListUpcomingSlotIDsQueryIsNotConstructed = errors.New(
	"ListUpcomingSlotIDsQuery must be created via NewListUpcomingSlotIDsQuery constructor",
)

// ListUpcomingSlotIDsQuery retrieves the identifiers of every slot, across all
// tenants, whose window starts within the given horizon from now. Used by the
// snapshot broadcast job to republish enriched views.
type ListUpcomingSlotIDsQuery struct {
	horizon time.Duration

	guard guard.ConstructorGuard
}

// NewListUpcomingSlotIDsQuery creates the query. The horizon must be positive.
func NewListUpcomingSlotIDsQuery(horizon time.Duration) (ListUpcomingSlotIDsQuery, error) {
	if horizon <= 0 {
		return ListUpcomingSlotIDsQuery{}, errs.NewValueIsInvalidError("horizon")
	}

	return ListUpcomingSlotIDsQuery{
		horizon: horizon,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListUpcomingSlotIDsQuery) Validate() error {
	return q.guard.Validate(ErrListUpcomingSlotIDsQueryIsNotConstructed)
}

// Horizon returns how far ahead of now slot windows are considered upcoming.
func (q ListUpcomingSlotIDsQuery) Horizon() time.Duration {
	return q.horizon
}
