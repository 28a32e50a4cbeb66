// Package webhookrepo provides persistence for registered webhook targets.
package webhookrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/webhook"

	"github.com/google/uuid"
)

// WebhookTargetDTO represents the database structure for webhook targets.
type WebhookTargetDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index"`
	URL      string
	Secret   string
}

// TableName specifies the database table name for webhook targets.
func (WebhookTargetDTO) TableName() string {
	return "webhook_targets"
}

func fromDomain(target *webhook.Target) WebhookTargetDTO {
	return WebhookTargetDTO{
		ID:       target.ID().Bytes(),
		TenantID: target.TenantID().Bytes(),
		URL:      target.URL(),
		Secret:   target.Secret(),
	}
}

func toDomain(dto WebhookTargetDTO) (*webhook.Target, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return webhook.RestoreTarget(id, tenantID, dto.URL, dto.Secret)
}
