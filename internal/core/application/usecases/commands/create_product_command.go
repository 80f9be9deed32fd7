package commands

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateProductCommandIsNotConstructed = errors.New(
		"CreateProductCommand must be created via NewCreateProductCommand constructor",
	)
	ErrSKUIsRequired         = errors.New("sku is required")
	ErrProductNameIsRequired = errors.New("product name is required")
	ErrPriceIsInvalid        = errors.New("price must not be negative")
	ErrStockIsInvalid        = errors.New("stock quantity must not be negative")
)

// CreateProductCommand represents a request to add a product to the catalog.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID       kernel.UUID
	requesterID     kernel.UUID
	sku             string
	name            string
	price           decimal.Decimal
	quantityInStock int

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to add a catalog product.
func NewCreateProductCommand(
	productID kernel.UUID,
	requesterID kernel.UUID,
	sku string,
	name string,
	price decimal.Decimal,
	quantityInStock int,
) (CreateProductCommand, error) {
	productCommand := CreateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productCommand.setProductID(productID),
		productCommand.setRequesterID(requesterID),
		productCommand.setSKU(sku),
		productCommand.setName(name),
		productCommand.setPrice(price),
		productCommand.setQuantityInStock(quantityInStock),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return productCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// ProductID returns the new product's identity.
func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// RequesterID returns the identity requesting the creation.
func (c CreateProductCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// SKU returns the new product's stock keeping unit.
func (c CreateProductCommand) SKU() string {
	return c.sku
}

// Name returns the new product's display name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// Price returns the new product's unit price.
func (c CreateProductCommand) Price() decimal.Decimal {
	return c.price
}

// QuantityInStock returns the initial stock quantity.
func (c CreateProductCommand) QuantityInStock() int {
	return c.quantityInStock
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}

func (c *CreateProductCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	c.sku = sku
	return nil
}

func (c *CreateProductCommand) setName(name string) error {
	if name == "" {
		return ErrProductNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateProductCommand) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrPriceIsInvalid, price)
	}

	c.price = price
	return nil
}

func (c *CreateProductCommand) setQuantityInStock(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: got %d", ErrStockIsInvalid, quantity)
	}

	c.quantityInStock = quantity
	return nil
}
