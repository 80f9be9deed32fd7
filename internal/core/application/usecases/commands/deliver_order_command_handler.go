package commands

import (
	"context"
	"time"

	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// DeliverOrderCommandHandler handles the SHIPPED to DELIVERED transition.
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     ports.AccessPolicy
}

// NewDeliverOrderCommandHandler creates a handler for delivery confirmation.
func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory, policy ports.AccessPolicy) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the delivery confirmation. Only admins may confirm, and
// only orders currently in SHIPPED.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	isAdmin, err := h.policy.HasRole(ctx, cmd.RequesterID(), ports.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errs.NewForbiddenError("deliver order", cmd.RequesterID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	delivered, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = delivered.Deliver(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, delivered); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
