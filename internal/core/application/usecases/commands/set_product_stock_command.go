package commands

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var ErrSetProductStockCommandIsNotConstructed = errors.New(
	"SetProductStockCommand must be created via NewSetProductStockCommand constructor",
)

// SetProductStockCommand represents an absolute stock correction, used for
// restocks and inventory reconciliation. It replaces the balance rather than
// adjusting it.
type SetProductStockCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	requesterID kernel.UUID
	quantity    int

	guard guard.ConstructorGuard
}

// NewSetProductStockCommand creates a command to set a product's stock level.
func NewSetProductStockCommand(productID, requesterID kernel.UUID, quantity int) (SetProductStockCommand, error) {
	stockCommand := SetProductStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		stockCommand.setProductID(productID),
		stockCommand.setRequesterID(requesterID),
		stockCommand.setQuantity(quantity),
	); err != nil {
		return SetProductStockCommand{}, err
	}

	return stockCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SetProductStockCommand) Validate() error {
	return c.guard.Validate(ErrSetProductStockCommandIsNotConstructed)
}

// ProductID returns the product to restock.
func (c SetProductStockCommand) ProductID() kernel.UUID {
	return c.productID
}

// RequesterID returns the identity requesting the correction.
func (c SetProductStockCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Quantity returns the absolute stock level to set.
func (c SetProductStockCommand) Quantity() int {
	return c.quantity
}

func (c *SetProductStockCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *SetProductStockCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}

func (c *SetProductStockCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: got %d", ErrStockIsInvalid, quantity)
	}

	c.quantity = quantity
	return nil
}
