package commands

import (
	"context"

	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler handles admin status overrides.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     ports.AccessPolicy
}

// NewUpdateOrderStatusCommandHandler creates a handler for status overrides.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory, policy ports.AccessPolicy,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the status override. Only admins may override, and the
// target must be reachable under the override rules of the order aggregate.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	isAdmin, err := h.policy.HasRole(ctx, cmd.RequesterID(), ports.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errs.NewForbiddenError("update order status", cmd.RequesterID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	overridden, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = overridden.OverrideStatus(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, overridden); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
