package commands

import (
	"context"
	"fmt"
	"time"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// It snapshots catalog prices into the order lines, reserves stock per line,
// draws an order number, and persists the order, all within one transaction.
// A failure on any line rolls back every reservation taken before it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, numberGenerator)
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	fmt.Printf("Order %s placed", placed.OrderNumber())
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	numbers    ports.OrderNumberGenerator
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory spanning orders and stock, and an order number generator.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, numbers ports.OrderNumberGenerator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
	}
}

// Handle processes the order placement command and returns the placed order.
// Inactive or unknown products and insufficient stock fail the whole request.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	items := make([]order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		p, err := productRepo.Get(ctx, line.ProductID())
		if err != nil {
			return nil, err
		}

		if !p.IsActive() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"productID", fmt.Errorf("product %s is not active", p.ID()),
			)
		}

		if err = productRepo.Reserve(ctx, line.ProductID(), line.Quantity()); err != nil {
			return nil, err
		}

		item, err := order.NewItem(line.ProductID(), line.Quantity(), p.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	orderNumber, err := h.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(
		cmd.OrderID(),
		orderNumber,
		cmd.CustomerID(),
		cmd.ShippingAddress(),
		cmd.BillingAddress(),
		cmd.PaymentMethod(),
		cmd.Notes(),
		items,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}
