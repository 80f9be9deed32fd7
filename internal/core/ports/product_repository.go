package ports

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/product"
)

// ProductRepository is the persistence contract for products and the stock
// ledger over them. The three stock operations are the only way any caller
// mutates available quantity.
//
// Concurrency contract: Reserve's availability check and decrement happen as
// one atomic step with respect to every other Reserve/Release/SetStock call
// on the same product. Two racing reservations are observed in some serial
// order; the loser of a race for the last units receives an
// InsufficientStockError, never a negative balance.
type ProductRepository interface {
	// Add persists a new product. The SKU must be unique.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by identity.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetBySKU retrieves a product by its stock keeping unit.
	GetBySKU(ctx context.Context, sku string) (*product.Product, error)

	// Reserve atomically decrements available stock by quantity.
	// Fails with InsufficientStockError when quantity exceeds the available
	// balance, or ObjectNotFoundError when the product does not exist.
	Reserve(ctx context.Context, id kernel.UUID, quantity int) error

	// Release increments available stock by quantity, returning previously
	// reserved units. It succeeds for any existing product; there is no upper
	// bound check.
	Release(ctx context.Context, id kernel.UUID, quantity int) error

	// SetStock sets the absolute available quantity. Negative quantities are
	// rejected with a validation error.
	SetStock(ctx context.Context, id kernel.UUID, quantity int) error
}
