package slotrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSlotRepository implements SlotRepository using GORM.
type GormSlotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSlotRepository creates a new GORM slot repository.
func NewGormSlotRepository(db *gorm.DB, tracker aggregateTracker) *GormSlotRepository {
	return &GormSlotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new slot to the database.
func (r *GormSlotRepository) Add(ctx context.Context, aggregate *slot.Slot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a slot by ID.
func (r *GormSlotRepository) Get(ctx context.Context, id kernel.UUID) (*slot.Slot, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a slot and locks its row until the surrounding
// transaction ends. This is the per-slot serialization point of the
// reservation path: the second of two concurrent reservations blocks here
// until the first commits, then observes its committed usage.
func (r *GormSlotRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*slot.Slot, error) {
	return r.get(ctx, id, true)
}

func (r *GormSlotRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*slot.Slot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto SlotDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("slot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
