package commands

import (
	"errors"
	"fmt"
	"time"

	"commerce/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
	ErrStaleTTLIsInvalid = errors.New("stale order TTL must be greater than 0")
)

// CancelStaleOrdersCommand represents a sweep over PENDING orders that were
// never paid. Orders older than the TTL are cancelled and their stock
// returned, keeping abandoned carts from pinning inventory.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel unpaid orders older
// than the given duration.
func NewCancelStaleOrdersCommand(olderThan time.Duration) (CancelStaleOrdersCommand, error) {
	if olderThan <= 0 {
		return CancelStaleOrdersCommand{}, fmt.Errorf("%w: got %s", ErrStaleTTLIsInvalid, olderThan)
	}

	return CancelStaleOrdersCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// OlderThan returns the age beyond which an unpaid PENDING order is stale.
func (c CancelStaleOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}
