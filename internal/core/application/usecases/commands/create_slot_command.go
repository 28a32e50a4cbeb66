package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateSlotCommandIsNotConstructed = errors.New(
	"CreateSlotCommand must be created via NewCreateSlotCommand constructor",
)

// CreateSlotCommand represents an administrative request to open a new
// fulfillment time window with its three capacity ceilings.
//
// Example:
//
//	window, _ := kernel.NewTimeWindow(start, start.Add(time.Hour))
//	ceilings, _ := slot.NewCeilings(20, 100, 100)
//	cmd, err := NewCreateSlotCommand(kernel.NewUUID(), tenantID, window, ceilings, "lunch")
//	if err != nil {
//	    return fmt.Errorf("invalid slot data: %w", err)
//	}
//
//	handler := NewCreateSlotCommandHandler(uowFactory, publisher)
//	view, err := handler.Handle(ctx, cmd)
type CreateSlotCommand struct { //nolint:recvcheck //using for validation
	slotID   kernel.UUID
	tenantID kernel.UUID
	window   kernel.TimeWindow
	ceilings slot.Ceilings
	notes    string

	guard guard.ConstructorGuard
}

// NewCreateSlotCommand creates a command to open a new slot.
// Window and ceiling validation happens in their value-object constructors;
// this constructor only checks that properly constructed values were passed.
func NewCreateSlotCommand(
	slotID kernel.UUID,
	tenantID kernel.UUID,
	window kernel.TimeWindow,
	ceilings slot.Ceilings,
	notes string,
) (CreateSlotCommand, error) {
	cmd := CreateSlotCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSlotID(slotID),
		cmd.setTenantID(tenantID),
		cmd.setWindow(window),
		cmd.setCeilings(ceilings),
	); err != nil {
		return CreateSlotCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateSlotCommand) Validate() error {
	return c.guard.Validate(ErrCreateSlotCommandIsNotConstructed)
}

// SlotID returns the identifier for the new slot.
func (c CreateSlotCommand) SlotID() kernel.UUID {
	return c.slotID
}

// TenantID returns the tenant the slot is scoped to.
func (c CreateSlotCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// Window returns the requested fulfillment time window.
func (c CreateSlotCommand) Window() kernel.TimeWindow {
	return c.window
}

// Ceilings returns the requested capacity ceilings.
func (c CreateSlotCommand) Ceilings() slot.Ceilings {
	return c.ceilings
}

// Notes returns the optional free-text notes.
func (c CreateSlotCommand) Notes() string {
	return c.notes
}

func (c *CreateSlotCommand) setSlotID(slotID kernel.UUID) error {
	if err := slotID.Validate(); err != nil {
		return err
	}

	c.slotID = slotID
	return nil
}

func (c *CreateSlotCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateSlotCommand) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}

	c.window = window
	return nil
}

func (c *CreateSlotCommand) setCeilings(ceilings slot.Ceilings) error {
	if err := ceilings.Validate(); err != nil {
		return err
	}

	c.ceilings = ceilings
	return nil
}
