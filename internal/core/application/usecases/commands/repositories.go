// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SlotRepoFactory provides access to the slot repository within a transaction.
	SlotRepoFactory interface {
		SlotRepository() ports.SlotRepository
	}

	// UsageReaderFactory provides access to the usage reader within a transaction.
	UsageReaderFactory interface {
		UsageReader() ports.UsageReader
	}

	// WebhookRepoFactory provides access to the webhook target repository within a transaction.
	WebhookRepoFactory interface {
		WebhookTargetRepository() ports.WebhookTargetRepository
	}

	// SlotUoW manages transactions for slot-only operations.
	SlotUoW interface {
		TxManager
		SlotRepoFactory
	}

	// SlotUoWFactory creates new slot unit of work instances.
	SlotUoWFactory interface {
		Create() SlotUoW
	}

	// ReservationUoW manages transactions for the reservation path, which needs
	// the slot row lock and the usage snapshot inside one transaction.
	ReservationUoW interface {
		TxManager
		SlotRepoFactory
		UsageReaderFactory
	}

	// ReservationUoWFactory creates new reservation unit of work instances.
	ReservationUoWFactory interface {
		Create() ReservationUoW
	}

	// WebhookUoW manages transactions for webhook target registration.
	WebhookUoW interface {
		TxManager
		WebhookRepoFactory
	}

	// WebhookUoWFactory creates new webhook unit of work instances.
	WebhookUoWFactory interface {
		Create() WebhookUoW
	}
)

// SlotPublisher notifies interested parties that a slot's derived state changed.
// Publication is best-effort and runs after the triggering write has committed;
// implementations must never fail the write path.
type SlotPublisher interface {
	Publish(ctx context.Context, slotID kernel.UUID)
}
