package queries

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler lists a customer's orders newest first.
// The access check happens before any row is read: the requester either is
// the customer or holds the admin role.
type GetCustomerOrdersQueryHandler struct {
	db     *gorm.DB
	policy ports.AccessPolicy
}

// NewGetCustomerOrdersQueryHandler creates a handler for order history queries.
// Requires a GORM database connection and an access policy.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB, policy ports.AccessPolicy) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db, policy: policy}
}

// Handle executes the query to list the customer's orders ordered by
// placement time, most recent first. An empty history yields an empty slice.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]GetCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	allowed, err := h.policy.CanAccess(ctx, query.RequesterID(), query.CustomerID())
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errs.NewForbiddenError(
			"list customer orders", query.RequesterID().String(),
		)
	}

	orders := make([]GetCustomerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.payment_status,
			o.total_amount,
			COUNT(i.id) AS item_count,
			o.ordered_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.customer_id = ?
		GROUP BY o.id
		ORDER BY o.ordered_at DESC
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetCustomerOrdersQueryResponse
		var id uuid.UUID
		var status, paymentStatus int

		err = rows.Scan(
			&id,
			&orderResp.OrderNumber,
			&status,
			&paymentStatus,
			&orderResp.TotalAmount,
			&orderResp.ItemCount,
			&orderResp.OrderedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.Status = order.Status(status).String()
		orderResp.PaymentStatus = order.PaymentStatus(paymentStatus).String()
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
