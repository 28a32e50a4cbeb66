package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/webhook"
)

// WebhookTargetRepository defines the persistence contract for webhook targets.
type WebhookTargetRepository interface {
	// Add persists a new webhook target.
	Add(ctx context.Context, target *webhook.Target) error

	// GetAllForTenant retrieves every registered target of the tenant.
	GetAllForTenant(ctx context.Context, tenantID kernel.UUID) ([]*webhook.Target, error)
}
