package commands

import (
	"context"

	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// UpdatePaymentStatusCommandHandler handles payment status changes. Payment
// state is owned by the payment subsystem, so only admins may move it; this
// is how captures and refunds are recorded.
type UpdatePaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     ports.AccessPolicy
}

// NewUpdatePaymentStatusCommandHandler creates a handler for payment status changes.
func NewUpdatePaymentStatusCommandHandler(
	uowFactory OrderUoWFactory, policy ports.AccessPolicy,
) UpdatePaymentStatusCommandHandler {
	return UpdatePaymentStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the payment status change. Only admins may change it.
func (h *UpdatePaymentStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePaymentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	isAdmin, err := h.policy.HasRole(ctx, cmd.RequesterID(), ports.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errs.NewForbiddenError("update payment status", cmd.RequesterID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	updated, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = updated.MarkPaymentStatus(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, updated); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
