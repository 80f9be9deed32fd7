package commands

import (
	"context"

	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// SetProductStockCommandHandler handles absolute stock corrections.
type SetProductStockCommandHandler struct {
	uowFactory ProductUoWFactory
	policy     ports.AccessPolicy
}

// NewSetProductStockCommandHandler creates a handler for stock corrections.
func NewSetProductStockCommandHandler(
	uowFactory ProductUoWFactory, policy ports.AccessPolicy,
) SetProductStockCommandHandler {
	return SetProductStockCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the stock correction. Only admins may set stock levels.
func (h *SetProductStockCommandHandler) Handle(ctx context.Context, cmd SetProductStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	isAdmin, err := h.policy.HasRole(ctx, cmd.RequesterID(), ports.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errs.NewForbiddenError("set product stock", cmd.RequesterID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().SetStock(ctx, cmd.ProductID(), cmd.Quantity()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
