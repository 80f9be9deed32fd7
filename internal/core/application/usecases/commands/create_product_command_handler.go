package commands

import (
	"context"

	"commerce/internal/core/domain/model/product"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// CreateProductCommandHandler handles catalog product creation.
type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
	policy     ports.AccessPolicy
}

// NewCreateProductCommandHandler creates a handler for product creation.
func NewCreateProductCommandHandler(
	uowFactory ProductUoWFactory, policy ports.AccessPolicy,
) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the product creation command. Only admins may add
// products; SKU uniqueness is enforced by storage.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	isAdmin, err := h.policy.HasRole(ctx, cmd.RequesterID(), ports.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, errs.NewForbiddenError("create product", cmd.RequesterID().String())
	}

	created, err := product.NewProduct(
		cmd.ProductID(),
		cmd.SKU(),
		cmd.Name(),
		cmd.Price(),
		cmd.QuantityInStock(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
