package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReserveCapacityCommandIsNotConstructed = errors.New(
	"ReserveCapacityCommand must be created via NewReserveCapacityCommand constructor",
)

// ReserveCapacityCommand represents a request to admit one more order with the
// given load contributions into a slot. A zero load in either dimension is valid:
// an order may contribute to only one of the load dimensions.
type ReserveCapacityCommand struct { //nolint:recvcheck //using for validation
	slotID      kernel.UUID
	kitchenLoad int
	storageLoad int

	guard guard.ConstructorGuard
}

// NewReserveCapacityCommand creates a command to reserve capacity on a slot.
// Loads must be non-negative.
func NewReserveCapacityCommand(slotID kernel.UUID, kitchenLoad, storageLoad int) (ReserveCapacityCommand, error) {
	cmd := ReserveCapacityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSlotID(slotID),
		cmd.setLoads(kitchenLoad, storageLoad),
	); err != nil {
		return ReserveCapacityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReserveCapacityCommand) Validate() error {
	return c.guard.Validate(ErrReserveCapacityCommandIsNotConstructed)
}

// SlotID returns the slot the reservation targets.
func (c ReserveCapacityCommand) SlotID() kernel.UUID {
	return c.slotID
}

// KitchenLoad returns the requested kitchen load contribution.
func (c ReserveCapacityCommand) KitchenLoad() int {
	return c.kitchenLoad
}

// StorageLoad returns the requested storage load contribution.
func (c ReserveCapacityCommand) StorageLoad() int {
	return c.storageLoad
}

func (c *ReserveCapacityCommand) setSlotID(slotID kernel.UUID) error {
	if err := slotID.Validate(); err != nil {
		return err
	}

	c.slotID = slotID
	return nil
}

func (c *ReserveCapacityCommand) setLoads(kitchenLoad, storageLoad int) error {
	if kitchenLoad < 0 {
		return errs.NewValueIsInvalidError("kitchenLoad")
	}
	if storageLoad < 0 {
		return errs.NewValueIsInvalidError("storageLoad")
	}

	c.kitchenLoad = kitchenLoad
	c.storageLoad = storageLoad
	return nil
}
