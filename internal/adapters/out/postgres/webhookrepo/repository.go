package webhookrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/webhook"

	"gorm.io/gorm"
)

// GormWebhookTargetRepository implements WebhookTargetRepository using GORM.
type GormWebhookTargetRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWebhookTargetRepository creates a new GORM webhook target repository.
func NewGormWebhookTargetRepository(db *gorm.DB, tracker aggregateTracker) *GormWebhookTargetRepository {
	return &GormWebhookTargetRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new webhook target to the database.
func (r *GormWebhookTargetRepository) Add(ctx context.Context, target *webhook.Target) error {
	if err := target.Validate(); err != nil {
		return err
	}

	dto := fromDomain(target)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(target.ID(), target)
	return nil
}

// GetAllForTenant retrieves every registered target of the tenant.
func (r *GormWebhookTargetRepository) GetAllForTenant(
	ctx context.Context,
	tenantID kernel.UUID,
) ([]*webhook.Target, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []WebhookTargetDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "tenant_id = ?", tenantID.Bytes()).Error; err != nil {
		return nil, err
	}

	targets := make([]*webhook.Target, 0, len(dtos))
	for _, dto := range dtos {
		target, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	return targets, nil
}
