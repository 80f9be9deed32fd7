package commands_test

import (
	"testing"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateProductCommand_ValidInput(t *testing.T) {
	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(
		productID, kernel.NewUUID(), "SKU-1", "Widget", decimal.RequireFromString("19.99"), 10,
	)
	require.NoError(t, err)
	assert.Equal(t, productID, cmd.ProductID())
	assert.Equal(t, "SKU-1", cmd.SKU())
	assert.Equal(t, 10, cmd.QuantityInStock())
}

func TestNewCreateProductCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateProductCommand(
		kernel.NewUUID(), kernel.NewUUID(), "", "", decimal.NewFromInt(-1), -1,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrSKUIsRequired)
	assert.ErrorIs(t, err, commands.ErrProductNameIsRequired)
	assert.ErrorIs(t, err, commands.ErrPriceIsInvalid)
	assert.ErrorIs(t, err, commands.ErrStockIsInvalid)
}

func TestCreateProductCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(
		kernel.NewUUID(), adminID, "SKU-1", "Widget", decimal.RequireFromString("19.99"), 10,
	)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	policy := new(MockAccessPolicy)
	uow := new(MockUoW)

	mock.InOrder(
		policy.On("HasRole", ctx, adminID, ports.RoleAdmin).Return(true, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Add", ctx, mock.AnythingOfType("*product.Product")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateProductCommandHandler(factory, policy)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "SKU-1", created.SKU())
	assert.True(t, created.IsActive())
	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateProductCommandHandler_Handle_NonAdminForbidden(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(
		kernel.NewUUID(), requesterID, "SKU-1", "Widget", decimal.RequireFromString("19.99"), 10,
	)
	require.NoError(t, err)

	policy := new(MockAccessPolicy)
	policy.On("HasRole", ctx, requesterID, ports.RoleAdmin).Return(false, nil).Once()

	factory := new(MockProductUoWFactory)
	handler := commands.NewCreateProductCommandHandler(factory, policy)

	_, err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestSetProductStockCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	productID := kernel.NewUUID()
	cmd, err := commands.NewSetProductStockCommand(productID, adminID, 42)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	policy := new(MockAccessPolicy)
	uow := new(MockUoW)

	mock.InOrder(
		policy.On("HasRole", ctx, adminID, ports.RoleAdmin).Return(true, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("SetStock", ctx, productID, 42).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetProductStockCommandHandler(factory, policy)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestNewSetProductStockCommand_NegativeQuantity(t *testing.T) {
	_, err := commands.NewSetProductStockCommand(kernel.NewUUID(), kernel.NewUUID(), -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrStockIsInvalid)
}

func TestSetProductStockCommandHandler_Handle_NonAdminForbidden(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	cmd, err := commands.NewSetProductStockCommand(kernel.NewUUID(), requesterID, 42)
	require.NoError(t, err)

	policy := new(MockAccessPolicy)
	policy.On("HasRole", ctx, requesterID, ports.RoleAdmin).Return(false, nil).Once()

	factory := new(MockProductUoWFactory)
	handler := commands.NewSetProductStockCommandHandler(factory, policy)

	err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}
