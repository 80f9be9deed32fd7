package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/guard"
)

var ErrUpdatePaymentStatusCommandIsNotConstructed = errors.New(
	"UpdatePaymentStatusCommand must be created via NewUpdatePaymentStatusCommand constructor",
)

// UpdatePaymentStatusCommand represents a payment state change on an order.
// Payment status moves independently of fulfillment status.
type UpdatePaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID
	target      order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewUpdatePaymentStatusCommand creates a command to update payment status.
// The raw payment status string is parsed case-insensitively.
func NewUpdatePaymentStatusCommand(
	orderID, requesterID kernel.UUID, rawStatus string,
) (UpdatePaymentStatusCommand, error) {
	target, err := order.ParsePaymentStatus(rawStatus)
	if err != nil {
		return UpdatePaymentStatusCommand{}, err
	}

	paymentCommand := UpdatePaymentStatusCommand{
		target: target,
		guard:  guard.NewConstructorGuard(),
	}

	if err = errors.Join(
		paymentCommand.setOrderID(orderID),
		paymentCommand.setRequesterID(requesterID),
	); err != nil {
		return UpdatePaymentStatusCommand{}, err
	}

	return paymentCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentStatusCommandIsNotConstructed)
}

// OrderID returns the order whose payment status changes.
func (c UpdatePaymentStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequesterID returns the identity requesting the change.
func (c UpdatePaymentStatusCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Target returns the desired payment status.
func (c UpdatePaymentStatusCommand) Target() order.PaymentStatus {
	return c.target
}

func (c *UpdatePaymentStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdatePaymentStatusCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}
