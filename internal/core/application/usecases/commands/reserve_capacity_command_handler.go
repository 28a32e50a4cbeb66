package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/slot"
)

// ReserveCapacityCommandHandler is the write path of admission control.
//
// The check-then-admit sequence runs inside one transaction with an exclusive
// row lock on the slot, so concurrent reservations against the same slot
// serialize at the database and can never jointly exceed a ceiling. The handler
// makes a pure admission decision: the order-to-slot binding write belongs to
// the order aggregate and stays with the caller, who must perform it before the
// transaction commits elsewhere closes the critical section it was granted.
type ReserveCapacityCommandHandler struct {
	uowFactory ReservationUoWFactory
	publisher  SlotPublisher
}

// NewReserveCapacityCommandHandler creates a handler for capacity reservations.
func NewReserveCapacityCommandHandler(
	uowFactory ReservationUoWFactory,
	publisher SlotPublisher,
) ReserveCapacityCommandHandler {
	return ReserveCapacityCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reservation command.
//
// Steps: load the slot under an exclusive lock, take the usage snapshot within
// the same transaction, run the ordered admission checks, commit. On success the
// caller is authorized to bind the order to the slot and the new derived state
// is broadcast. A CapacityExceededError is an expected outcome, not a fault.
func (h *ReserveCapacityCommandHandler) Handle(ctx context.Context, cmd ReserveCapacityCommand) (*slot.Slot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.SlotRepository().GetForUpdate(ctx, cmd.SlotID())
	if err != nil {
		return nil, err
	}

	usage, err := uow.UsageReader().Usage(ctx, cmd.SlotID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.CanAdmit(usage, cmd.KitchenLoad(), cmd.StorageLoad()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, aggregate.ID())

	return aggregate, nil
}
