package order

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem")

// Item is a line of an order: a quantity of one product at the unit price the
// product carried when the order was created. The price is a snapshot; later
// catalog price changes never flow into existing orders.
//
// Items exist only inside an Order and are immutable once the order is
// created. The line total is always derived as unitPrice * quantity, never
// stored independently, so it cannot drift from its factors.
type Item struct {
	productID kernel.UUID
	quantity  int
	unitPrice decimal.Decimal

	isConstructed bool
}

// NewItem creates an order line with validation.
//
// Parameters:
//   - productID: the product the quantity was reserved from (must be valid)
//   - quantity: positive number of units
//   - unitPrice: non-negative price snapshot taken at order time
func NewItem(productID kernel.UUID, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}

	return nil
}

// ProductID returns the product this line was drawn from. The reference is
// non-owning: cancelling or deleting the order never affects the product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the number of units reserved for this line.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot taken when the order was created.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// TotalPrice returns unitPrice * quantity, exact fixed-point arithmetic.
// The value is recomputed from its factors on every call.
func (i Item) TotalPrice() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
