package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/slot"

	"gorm.io/gorm"
)

// slotRowDTO carries the scalar slot columns shared by the query handlers.
type slotRowDTO struct {
	startTime      time.Time
	endTime        time.Time
	maxOrders      int
	maxKitchenLoad int
	maxStorageLoad int
}

// ListSlotsQueryHandler lists a tenant's upcoming slots as enriched views.
// Each slot is enriched independently; there is no shared mutable state between
// entries, so the per-slot usage reads are free to run in any order.
type ListSlotsQueryHandler struct {
	db    *gorm.DB
	usage UsageReader
}

// NewListSlotsQueryHandler creates a handler for tenant slot listings.
func NewListSlotsQueryHandler(db *gorm.DB, usage UsageReader) ListSlotsQueryHandler {
	return ListSlotsQueryHandler{db: db, usage: usage}
}

// Handle executes the query. Slots are filtered by start >= from and, when an
// upper bound is set, end <= to; ordered by start time ascending.
func (h ListSlotsQueryHandler) Handle(ctx context.Context, query ListSlotsQuery) ([]slot.EnrichedSlot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			tenant_id,
			start_time,
			end_time,
			max_orders,
			max_kitchen_load,
			max_storage_load,
			notes
		FROM slots
		WHERE tenant_id = ? AND start_time >= ?
	`
	args := []any{query.TenantID().Bytes(), query.From()}

	if to := query.To(); to != nil {
		sql += " AND end_time <= ?"
		args = append(args, *to)
	}
	sql += " ORDER BY start_time ASC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	slots := make([]*slot.Slot, 0)
	for rows.Next() {
		aggregate, scanErr := scanSlotRow(rows.Scan)
		if scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		slots = append(slots, aggregate)
	}

	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	views := make([]slot.EnrichedSlot, 0, len(slots))
	for _, aggregate := range slots {
		usage, usageErr := h.usage.Usage(ctx, aggregate.ID())
		if usageErr != nil {
			return nil, usageErr
		}
		views = append(views, aggregate.Enrich(usage))
	}

	return views, nil
}
