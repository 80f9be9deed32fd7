package commands

import (
	"context"
	"log/slog"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// CancelStaleOrdersCommandHandler sweeps unpaid PENDING orders past their
// TTL. Each order is cancelled in its own transaction so one bad row cannot
// block the rest of the sweep.
type CancelStaleOrdersCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale order sweep.
func NewCancelStaleOrdersCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the sweep and returns the number of orders handled.
// Per-order failures are logged and skipped.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.OlderThan())

	listing := h.uowFactory.Create()
	staleOrders, err := listing.OrderRepository().GetStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, staleOrder := range staleOrders {
		if err = h.cancelOne(ctx, staleOrder.ID(), now); err != nil {
			h.logger.ErrorContext(ctx, "stale order cancellation failed",
				slog.String("orderID", staleOrder.ID().String()),
				slog.String("orderNumber", staleOrder.OrderNumber()),
				slog.Any("error", err),
			)
			continue
		}
		cancelled++
	}

	return cancelled, nil
}

// cancelOne re-reads the order inside its own transaction before cancelling,
// so an order paid between the listing and the sweep is left alone.
func (h *CancelStaleOrdersCommandHandler) cancelOne(ctx context.Context, orderID kernel.UUID, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	staleOrder, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if staleOrder.Status() != order.Pending || staleOrder.PaymentStatus() != order.Unpaid {
		return nil
	}

	if err = staleOrder.Cancel(now); err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	for _, item := range staleOrder.Items() {
		if err = productRepo.Release(ctx, item.ProductID(), item.Quantity()); err != nil {
			h.logger.WarnContext(ctx, "stock release failed during stale order sweep",
				slog.String("orderID", staleOrder.ID().String()),
				slog.String("productID", item.ProductID().String()),
				slog.Int("quantity", item.Quantity()),
				slog.Any("error", err),
			)
		}
	}

	if err = orderRepo.Update(ctx, staleOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
