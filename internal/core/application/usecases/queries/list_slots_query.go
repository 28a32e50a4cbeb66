package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrListSlotsQueryIsNotConstructed = errors.New(
	"ListSlotsQuery must be created via NewListSlotsQuery constructor",
)

// ListSlotsQuery retrieves all slots of a tenant starting at or after a lower
// time bound and, when an upper bound is given, ending at or before it.
// Results are ordered by start time ascending and each entry is enriched
// independently.
type ListSlotsQuery struct {
	tenantID kernel.UUID
	from     time.Time
	to       *time.Time

	guard guard.ConstructorGuard
}

// NewListSlotsQuery creates a tenant-scoped slot listing query.
// A zero from defaults to the current time. to is optional; when set it must
// not precede from.
func NewListSlotsQuery(tenantID kernel.UUID, from time.Time, to *time.Time) (ListSlotsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return ListSlotsQuery{}, err
	}

	if from.IsZero() {
		from = time.Now()
	}

	if to != nil && to.Before(from) {
		return ListSlotsQuery{}, errs.NewValueIsInvalidError("to")
	}

	return ListSlotsQuery{
		tenantID: tenantID,
		from:     from,
		to:       to,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListSlotsQuery) Validate() error {
	return q.guard.Validate(ErrListSlotsQueryIsNotConstructed)
}

// TenantID returns the tenant whose slots are listed.
func (q ListSlotsQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// From returns the lower bound on slot start time.
func (q ListSlotsQuery) From() time.Time {
	return q.from
}

// To returns the optional upper bound on slot end time.
func (q ListSlotsQuery) To() *time.Time {
	return q.to
}
