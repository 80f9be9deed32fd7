package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents an admin override of an order's status.
// Overrides move the status only; they never touch stock or lifecycle
// timestamps. The regular cancel/ship/deliver commands are the stock-aware
// path.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID
	target      order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to override an order's
// status. The raw status string is parsed case-insensitively.
func NewUpdateOrderStatusCommand(
	orderID, requesterID kernel.UUID, rawStatus string,
) (UpdateOrderStatusCommand, error) {
	target, err := order.ParseStatus(rawStatus)
	if err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	statusCommand := UpdateOrderStatusCommand{
		target: target,
		guard:  guard.NewConstructorGuard(),
	}

	if err = errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setRequesterID(requesterID),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order whose status is overridden.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequesterID returns the identity requesting the override.
func (c UpdateOrderStatusCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Target returns the desired status.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}
