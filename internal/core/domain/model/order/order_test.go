package order_test

import (
	"testing"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, quantity int, unitPrice string) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), quantity, decimal.RequireFromString(unitPrice))
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, items ...order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []order.Item{mustItem(t, 1, "10.00")}
	}
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-2026-000001",
		kernel.NewUUID(),
		"1 Shipping Lane",
		"2 Billing Road",
		"card",
		"",
		items,
		time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("computes_exact_line_total", func(t *testing.T) {
		item := mustItem(t, 3, "19.99")

		assert.True(t, item.TotalPrice().Equal(decimal.RequireFromString("59.97")))
	})

	t.Run("rejects_zero_quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 0, decimal.NewFromInt(1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative_quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), -2, decimal.NewFromInt(1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative_unit_price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 1, decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_invalid_product_id", func(t *testing.T) {
		_, err := order.NewItem(kernel.UUID{}, 1, decimal.NewFromInt(1))

		require.Error(t, err)
	})

	t.Run("zero_value_item_is_invalid", func(t *testing.T) {
		var item order.Item

		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_pending_unpaid_order", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.Unpaid, o.PaymentStatus())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Nil(t, o.CancelledAt())
		require.NoError(t, o.Validate())
	})

	t.Run("total_is_sum_of_line_totals", func(t *testing.T) {
		o := newTestOrder(t,
			mustItem(t, 2, "10.00"),
			mustItem(t, 3, "5.00"),
		)

		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("35.00")),
			"got %s", o.TotalAmount())
	})

	t.Run("rejects_empty_item_list", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-2026-000002", kernel.NewUUID(),
			"ship", "bill", "card", "", nil, time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_empty_order_number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "", kernel.NewUUID(),
			"ship", "bill", "card", "", []order.Item{mustItem(t, 1, "1.00")}, time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_missing_addresses", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-2026-000003", kernel.NewUUID(),
			"", "", "card", "", []order.Item{mustItem(t, 1, "1.00")}, time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("items_accessor_returns_copy", func(t *testing.T) {
		o := newTestOrder(t, mustItem(t, 2, "10.00"))

		items := o.Items()
		items[0] = order.Item{}

		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("20.00")))
	})
}

func TestOrder_Cancel(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("cancels_pending_order_and_stamps_time", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Cancel(now))

		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.CancelledAt())
		assert.Equal(t, now, *o.CancelledAt())
	})

	t.Run("second_cancel_fails_and_leaves_state", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(now))

		later := now.Add(time.Minute)
		err := o.Cancel(later)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, now, *o.CancelledAt())
	})
}

func TestOrder_ShipAndDeliver(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("ship_from_pending_fails_and_leaves_status", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Ship(now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.ShippedAt())
	})

	t.Run("full_happy_path", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.OverrideStatus(order.Processing))

		require.NoError(t, o.Ship(now))
		assert.Equal(t, order.Shipped, o.Status())
		require.NotNil(t, o.ShippedAt())

		delivered := now.Add(48 * time.Hour)
		require.NoError(t, o.Deliver(delivered))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, delivered, *o.DeliveredAt())
	})

	t.Run("deliver_before_ship_fails", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.OverrideStatus(order.Processing))

		err := o.Deliver(now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.DeliveredAt())
	})
}

func TestOrder_OverrideStatus(t *testing.T) {
	t.Run("override_does_not_stamp_timestamps", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.OverrideStatus(order.Cancelled))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.CancelledAt(), "override bypasses cancel side effects")
	})

	t.Run("override_rejected_from_terminal_state", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.OverrideStatus(order.Delivered))

		err := o.OverrideStatus(order.Pending)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_MarkPaymentStatus(t *testing.T) {
	t.Run("moves_payment_state_independently", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.MarkPaymentStatus(order.Paid))

		assert.Equal(t, order.Paid, o.PaymentStatus())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("rejects_unknown_payment_status", func(t *testing.T) {
		o := newTestOrder(t)

		require.ErrorIs(t, o.MarkPaymentStatus(order.PaymentStatusUnknown), errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_full_lifecycle_state", func(t *testing.T) {
		id := kernel.NewUUID()
		customerID := kernel.NewUUID()
		orderedAt := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
		shippedAt := orderedAt.Add(24 * time.Hour)
		items := []order.Item{mustItem(t, 4, "2.50")}

		o, err := order.RestoreOrder(
			id, "ORD-2026-000042", customerID,
			order.Shipped, order.Paid,
			"ship", "bill", "card", "leave at door",
			orderedAt, &shippedAt, nil, nil, items,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, order.Paid, o.PaymentStatus())
		assert.Equal(t, shippedAt, *o.ShippedAt())
		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-2026-000043", kernel.NewUUID(),
			order.StatusUnknown, order.Unpaid,
			"ship", "bill", "card", "",
			time.Now(), nil, nil, nil, []order.Item{mustItem(t, 1, "1.00")},
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
