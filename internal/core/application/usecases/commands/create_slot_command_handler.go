package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/slot"
)

// CreateSlotCommandHandler handles the business logic for opening a new slot.
// Persists the slot and notifies the broadcaster after a successful commit.
type CreateSlotCommandHandler struct {
	uowFactory SlotUoWFactory
	publisher  SlotPublisher
}

// NewCreateSlotCommandHandler creates a handler for slot creation operations.
// Requires a SlotUoWFactory for transactional persistence and a SlotPublisher
// for the post-commit broadcast.
func NewCreateSlotCommandHandler(uowFactory SlotUoWFactory, publisher SlotPublisher) CreateSlotCommandHandler {
	return CreateSlotCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the slot creation command. Returns the enriched view of the
// new slot, which carries a fresh zero usage snapshot by definition.
func (h *CreateSlotCommandHandler) Handle(ctx context.Context, cmd CreateSlotCommand) (slot.EnrichedSlot, error) {
	if err := cmd.Validate(); err != nil {
		return slot.EnrichedSlot{}, err
	}

	aggregate, err := slot.NewSlot(cmd.SlotID(), cmd.TenantID(), cmd.Window(), cmd.Ceilings(), cmd.Notes())
	if err != nil {
		return slot.EnrichedSlot{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return slot.EnrichedSlot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SlotRepository().Add(ctx, aggregate); err != nil {
		return slot.EnrichedSlot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return slot.EnrichedSlot{}, err
	}

	h.publisher.Publish(ctx, aggregate.ID())

	return aggregate.Enrich(slot.Usage{}), nil
}
