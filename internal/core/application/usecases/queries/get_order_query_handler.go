package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order with its line items from the
// database. Access is checked after the row is loaded: the requester must be
// the owner or hold the admin role.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db, policy)
//	query, err := NewGetOrderQuery(orderID, requesterID)
//	if err != nil {
//	    return err
//	}
//
//	found, err := handler.Handle(ctx, query)
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy ports.AccessPolicy
}

// NewGetOrderQueryHandler creates a handler for single-order retrieval.
// Requires a GORM database connection and an access policy.
func NewGetOrderQueryHandler(db *gorm.DB, policy ports.AccessPolicy) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: policy}
}

// Handle executes the query to retrieve one order with its items.
// Returns an ObjectNotFoundError when the order does not exist and a
// ForbiddenError when the requester may not see it.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			status,
			payment_status,
			total_amount,
			shipping_address,
			billing_address,
			payment_method,
			notes,
			ordered_at,
			shipped_at,
			delivered_at,
			cancelled_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id            uuid.UUID
		orderNumber   string
		customerID    uuid.UUID
		status        int
		paymentStatus int
		totalAmount   decimal.Decimal
		shipping      string
		billing       string
		paymentMethod string
		notes         string
		orderedAt     time.Time
		shippedAt     sql.NullTime
		deliveredAt   sql.NullTime
		cancelledAt   sql.NullTime
	)

	err := row.Scan(
		&id,
		&orderNumber,
		&customerID,
		&status,
		&paymentStatus,
		&totalAmount,
		&shipping,
		&billing,
		&paymentMethod,
		&notes,
		&orderedAt,
		&shippedAt,
		&deliveredAt,
		&cancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError(
				"orderID", query.OrderID().String(),
			)
		}
		return GetOrderQueryResponse{}, err
	}

	ownerID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	allowed, err := h.policy.CanAccess(ctx, query.RequesterID(), ownerID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if !allowed {
		return GetOrderQueryResponse{}, errs.NewForbiddenError(
			"view order", query.RequesterID().String(),
		)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:              orderID,
		OrderNumber:     orderNumber,
		CustomerID:      ownerID,
		Status:          order.Status(status).String(),
		PaymentStatus:   order.PaymentStatus(paymentStatus).String(),
		TotalAmount:     totalAmount,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		PaymentMethod:   paymentMethod,
		Notes:           notes,
		OrderedAt:       orderedAt,
		ShippedAt:       nullableTime(shippedAt),
		DeliveredAt:     nullableTime(deliveredAt),
		CancelledAt:     nullableTime(cancelledAt),
		Items:           items,
	}, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	items := make([]OrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			quantity,
			unit_price,
			total_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var productID uuid.UUID

		err = rows.Scan(
			&productID,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
		)
		if err != nil {
			return nil, err
		}

		item.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
