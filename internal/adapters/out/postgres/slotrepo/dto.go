// Package slotrepo provides data transfer objects and mapping functions for slot
// persistence. This package implements the repository pattern for the slot
// aggregate, handling the conversion between domain entities and database rows.
package slotrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"

	"github.com/google/uuid"
)

// SlotDTO represents the database structure for persisting slot aggregates.
// Indexed by tenant and start time to serve the tenant-scoped window listings.
type SlotDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid;index:idx_slots_tenant_start"`
	StartTime      time.Time `gorm:"index:idx_slots_tenant_start"`
	EndTime        time.Time
	MaxOrders      int
	MaxKitchenLoad int
	MaxStorageLoad int
	Notes          string
}

// TableName specifies the database table name for slot entities.
// Overrides GORM's default naming convention to use "slots".
func (SlotDTO) TableName() string {
	return "slots"
}

// fromDomain converts a slot domain aggregate to its database representation.
func fromDomain(aggregate *slot.Slot) SlotDTO {
	return SlotDTO{
		ID:             aggregate.ID().Bytes(),
		TenantID:       aggregate.TenantID().Bytes(),
		StartTime:      aggregate.Window().Start(),
		EndTime:        aggregate.Window().End(),
		MaxOrders:      aggregate.Ceilings().MaxOrders(),
		MaxKitchenLoad: aggregate.Ceilings().MaxKitchenLoad(),
		MaxStorageLoad: aggregate.Ceilings().MaxStorageLoad(),
		Notes:          aggregate.Notes(),
	}
}

// toDomain converts a database DTO to a slot domain aggregate using RestoreSlot.
func toDomain(dto SlotDTO) (*slot.Slot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	window, err := kernel.NewTimeWindow(dto.StartTime, dto.EndTime)
	if err != nil {
		return nil, err
	}

	ceilings, err := slot.NewCeilings(dto.MaxOrders, dto.MaxKitchenLoad, dto.MaxStorageLoad)
	if err != nil {
		return nil, err
	}

	return slot.RestoreSlot(id, tenantID, window, ceilings, dto.Notes)
}
