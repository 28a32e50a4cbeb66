package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSlotQueryHandler retrieves a slot from the database and enriches it with
// the live usage snapshot. Repeated calls with no intervening writes return
// identical enriched views.
type GetSlotQueryHandler struct {
	db    *gorm.DB
	usage UsageReader
}

// UsageReader computes the live consumption of a slot.
// Mirrors ports.UsageReader so query handlers stay decoupled from the ports package.
type UsageReader interface {
	Usage(ctx context.Context, slotID kernel.UUID) (slot.Usage, error)
}

// NewGetSlotQueryHandler creates a handler for single-slot reads.
func NewGetSlotQueryHandler(db *gorm.DB, usage UsageReader) GetSlotQueryHandler {
	return GetSlotQueryHandler{db: db, usage: usage}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the slot
// does not exist.
func (h GetSlotQueryHandler) Handle(ctx context.Context, query GetSlotQuery) (slot.EnrichedSlot, error) {
	if err := query.Validate(); err != nil {
		return slot.EnrichedSlot{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
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
		WHERE id = ?
	`, query.SlotID().Bytes()).Row()

	aggregate, err := scanSlotRow(row.Scan)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
			return slot.EnrichedSlot{}, errs.NewObjectNotFoundError("slotID", query.SlotID().String())
		}
		return slot.EnrichedSlot{}, err
	}

	usage, err := h.usage.Usage(ctx, aggregate.ID())
	if err != nil {
		return slot.EnrichedSlot{}, err
	}

	return aggregate.Enrich(usage), nil
}

// scanSlotRow rebuilds a slot aggregate from one result row.
// Shared by the single-slot and list handlers.
func scanSlotRow(scan func(dest ...any) error) (*slot.Slot, error) {
	var (
		id          uuid.UUID
		tenantID    uuid.UUID
		dto         slotRowDTO
		notesColumn *string
	)

	if err := scan(
		&id,
		&tenantID,
		&dto.startTime,
		&dto.endTime,
		&dto.maxOrders,
		&dto.maxKitchenLoad,
		&dto.maxStorageLoad,
		&notesColumn,
	); err != nil {
		return nil, err
	}

	slotID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	tenant, err := kernel.UUIDFromBytes(tenantID[:])
	if err != nil {
		return nil, err
	}

	window, err := kernel.NewTimeWindow(dto.startTime, dto.endTime)
	if err != nil {
		return nil, err
	}

	ceilings, err := slot.NewCeilings(dto.maxOrders, dto.maxKitchenLoad, dto.maxStorageLoad)
	if err != nil {
		return nil, err
	}

	notes := ""
	if notesColumn != nil {
		notes = *notesColumn
	}

	return slot.RestoreSlot(slotID, tenant, window, ceilings, notes)
}
