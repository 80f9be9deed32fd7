package commands_test

import (
	"testing"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShipOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	stored := newStoredOrder(t, kernel.NewUUID())
	require.NoError(t, stored.OverrideStatus(order.Processing))

	cmd, err := commands.NewShipOrderCommand(stored.ID(), adminID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policy := new(MockAccessPolicy)
	uow := new(MockUoW)

	mock.InOrder(
		policy.On("HasRole", ctx, adminID, ports.RoleAdmin).Return(true, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("Update", ctx, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, policy)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Shipped, stored.Status())
	assert.NotNil(t, stored.ShippedAt())
	orderRepo.AssertExpectations(t)
	policy.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestShipOrderCommandHandler_Handle_NonAdminForbidden(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	cmd, err := commands.NewShipOrderCommand(kernel.NewUUID(), requesterID)
	require.NoError(t, err)

	policy := new(MockAccessPolicy)
	policy.On("HasRole", ctx, requesterID, ports.RoleAdmin).Return(false, nil).Once()

	factory := new(MockOrderUoWFactory)
	handler := commands.NewShipOrderCommandHandler(factory, policy)

	err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestShipOrderCommandHandler_Handle_PendingOrderRejected(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	stored := newStoredOrder(t, kernel.NewUUID())

	cmd, err := commands.NewShipOrderCommand(stored.ID(), adminID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policy := new(MockAccessPolicy)
	uow := new(MockUoW)

	mock.InOrder(
		policy.On("HasRole", ctx, adminID, ports.RoleAdmin).Return(true, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, policy)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Pending, stored.Status())
	assert.Nil(t, stored.ShippedAt())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDeliverOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	stored := newStoredOrder(t, kernel.NewUUID())
	require.NoError(t, stored.OverrideStatus(order.Processing))
	require.NoError(t, stored.Ship(time.Now().UTC()))

	cmd, err := commands.NewDeliverOrderCommand(stored.ID(), adminID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policy := new(MockAccessPolicy)
	uow := new(MockUoW)

	mock.InOrder(
		policy.On("HasRole", ctx, adminID, ports.RoleAdmin).Return(true, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("Update", ctx, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory, policy)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, stored.Status())
	assert.NotNil(t, stored.DeliveredAt())
}

func TestDeliverOrderCommandHandler_Handle_NotShippedRejected(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	stored := newStoredOrder(t, kernel.NewUUID())

	cmd, err := commands.NewDeliverOrderCommand(stored.ID(), adminID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	policy := new(MockAccessPolicy)
	uow := new(MockUoW)

	mock.InOrder(
		policy.On("HasRole", ctx, adminID, ports.RoleAdmin).Return(true, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory, policy)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}
