package commands

import (
	"context"
	"time"

	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// ShipOrderCommandHandler handles the PROCESSING to SHIPPED transition.
type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     ports.AccessPolicy
}

// NewShipOrderCommandHandler creates a handler for order shipment.
func NewShipOrderCommandHandler(uowFactory OrderUoWFactory, policy ports.AccessPolicy) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the shipment command. Only admins may ship, and only
// orders currently in PROCESSING.
func (h *ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	isAdmin, err := h.policy.HasRole(ctx, cmd.RequesterID(), ports.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errs.NewForbiddenError("ship order", cmd.RequesterID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	shipped, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = shipped.Ship(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, shipped); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
