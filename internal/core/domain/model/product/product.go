package product

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrProductIsNotConstructed is returned when a Product instance was not created
// through the NewProduct factory method or RestoreProduct.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// Product is a stock-bearing catalog entity. Its available quantity is the
// shared resource that concurrent order creation and cancellation compete for.
//
// Product maintains these invariants:
//   - SKU is non-empty and unique across the catalog (uniqueness enforced by storage)
//   - Price is a non-negative fixed-point decimal
//   - QuantityInStock is never negative
//
// The entity itself never mutates stock. All stock movement goes through the
// storage-level atomic reserve/release/set operations, so that the
// check-and-decrement is a single step with respect to concurrent writers.
type Product struct {
	id              kernel.UUID
	sku             string
	name            string
	price           decimal.Decimal
	quantityInStock int
	isActive        bool

	isConstructed bool
}

// NewProduct creates a new active Product with validation.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - sku: stock keeping unit, non-empty
//   - name: display name, non-empty
//   - price: unit price, non-negative
//   - quantityInStock: initial stock, non-negative
func NewProduct(id kernel.UUID, sku, name string, price decimal.Decimal, quantityInStock int) (*Product, error) {
	p := &Product{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setSKU(sku),
		p.setName(name),
		p.setPrice(price),
		p.setQuantityInStock(quantityInStock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence, including its
// active flag. The same validation rules as NewProduct apply.
func RestoreProduct(id kernel.UUID, sku, name string, price decimal.Decimal, quantityInStock int, isActive bool) (*Product, error) {
	p, err := NewProduct(id, sku, name, price, quantityInStock)
	if err != nil {
		return nil, err
	}

	p.isActive = isActive
	return p, nil
}

// Validate ensures the Product was created through one of the constructors.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}

	return nil
}

// IsEqual compares two products by identity.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// SKU returns the product's stock keeping unit.
func (p *Product) SKU() string {
	return p.sku
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current unit price. Orders snapshot this value into
// their items at creation time; later price changes never affect existing orders.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// QuantityInStock returns the available quantity as of the moment the entity
// was loaded. It is a snapshot for display and validation messages; the
// authoritative balance lives in storage and only moves through the atomic
// ledger operations.
func (p *Product) QuantityInStock() int {
	return p.quantityInStock
}

// IsActive reports whether the product can be ordered.
func (p *Product) IsActive() bool {
	return p.isActive
}

// IsQuantityAvailable reports whether the loaded stock snapshot covers the
// requested quantity. A positive answer is advisory only; the atomic reserve
// at commit time is what actually prevents overselling.
func (p *Product) IsQuantityAvailable(requested int) bool {
	return requested > 0 && p.quantityInStock >= requested
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	p.sku = sku
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	p.price = price
	return nil
}

func (p *Product) setQuantityInStock(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityInStock", fmt.Errorf("%d is negative", quantity))
	}
	p.quantityInStock = quantity
	return nil
}
