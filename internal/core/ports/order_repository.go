// Package ports defines the contracts between the application core and
// infrastructure. These interfaces establish dependency inversion: command
// and query handlers depend on them, storage adapters implement them.
package ports

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations persist the order row and its item rows together; a bound
// unit-of-work transaction provides the all-or-nothing guarantee.
type OrderRepository interface {
	// Add persists a new order aggregate together with all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists lifecycle changes to an existing order.
	// Items are immutable after creation and are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by internal identity.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order with its items by its order number.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetStalePending retrieves orders still PENDING and UNPAID that were
	// placed before the given cutoff. Used by the stale-order cancellation job.
	GetStalePending(ctx context.Context, before time.Time) ([]*order.Order, error)
}
