package order

import (
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the checkout domain. It owns its ordered
// sequence of Items exclusively (items cannot exist outside an order) and
// enforces the lifecycle state machine on every transition.
//
// Order maintains these invariants:
//   - orderNumber is non-empty and immutable once assigned
//   - the owning customer reference is immutable after creation
//   - the item list is non-empty and immutable after creation
//   - TotalAmount always equals the sum of the items' line totals
//   - shippedAt/deliveredAt/cancelledAt are set exactly once, by the
//     corresponding transition, and never cleared
//
// Orders are never physically deleted; CANCELLED is terminal but retained.
type Order struct {
	id              kernel.UUID
	orderNumber     string
	customerID      kernel.UUID
	status          Status
	paymentStatus   PaymentStatus
	shippingAddress string
	billingAddress  string
	paymentMethod   string
	notes           string
	orderedAt       time.Time
	shippedAt       *time.Time
	deliveredAt     *time.Time
	cancelledAt     *time.Time
	items           []Item

	isConstructed bool
}

// NewOrder creates a new Order in PENDING / UNPAID state with validation.
// The items must already carry their unit price snapshots; the order total is
// derived from them and is never set independently.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	shippingAddress string,
	billingAddress string,
	paymentMethod string,
	notes string,
	items []Item,
	orderedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: Unpaid,
		paymentMethod: paymentMethod,
		notes:         notes,
		orderedAt:     orderedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setShippingAddress(shippingAddress),
		o.setBillingAddress(billingAddress),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with its full lifecycle
// state. Used by the storage adapter; application code creates orders through
// NewOrder only.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	shippingAddress string,
	billingAddress string,
	paymentMethod string,
	notes string,
	orderedAt time.Time,
	shippedAt *time.Time,
	deliveredAt *time.Time,
	cancelledAt *time.Time,
	items []Item,
) (*Order, error) {
	o, err := NewOrder(id, orderNumber, customerID, shippingAddress, billingAddress, paymentMethod, notes, items, orderedAt)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.shippedAt = shippedAt
	o.deliveredAt = deliveredAt
	o.cancelledAt = cancelledAt
	return o, nil
}

// Validate ensures the Order was created through one of the constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's internal identity.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the externally visible unique order identifier.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the owning customer's identity.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// ShippingAddress returns the delivery address.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// BillingAddress returns the billing address.
func (o *Order) BillingAddress() string {
	return o.billingAddress
}

// PaymentMethod returns the payment method label supplied at creation.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Notes returns free-form notes supplied at creation.
func (o *Order) Notes() string {
	return o.notes
}

// OrderedAt returns the creation timestamp.
func (o *Order) OrderedAt() time.Time {
	return o.orderedAt
}

// ShippedAt returns the ship timestamp, nil until the order ships.
func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

// DeliveredAt returns the delivery timestamp, nil until delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CancelledAt returns the cancellation timestamp, nil unless cancelled.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// Items returns the order's line items. The returned slice is a copy;
// the order's own sequence cannot be mutated from outside.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the exact sum of the line totals. The value is derived
// from the items on every call, so the totals invariant holds by construction.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// CanBeCancelled reports whether the order is in a cancellable status.
func (o *Order) CanBeCancelled() bool {
	return o.status.CanBeCancelled()
}

// Cancel transitions the order to CANCELLED and stamps cancelledAt.
//
// Legal only from PENDING, CONFIRMED, or PROCESSING; any other source state
// yields an InvalidTransitionError and leaves the order unchanged. The caller
// is responsible for releasing each item's reserved quantity back to stock
// within the same unit of work.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelledAt = &now
	return nil
}

// Ship transitions the order to SHIPPED and stamps shippedAt.
// Legal only from PROCESSING.
func (o *Order) Ship(now time.Time) error {
	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.shippedAt = &now
	return nil
}

// Deliver transitions the order to DELIVERED and stamps deliveredAt.
// Legal only from SHIPPED.
func (o *Order) Deliver(now time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &now
	return nil
}

// OverrideStatus applies an administrative status change. Only the status
// field moves: no timestamps are stamped and no stock is released, which is
// why an override to CANCELLED is not a substitute for Cancel.
func (o *Order) OverrideStatus(target Status) error {
	newStatus, err := o.status.Override(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkPaymentStatus sets the payment status. Payment state is orthogonal to
// the fulfillment lifecycle and carries no transition restrictions here.
func (o *Order) MarkPaymentStatus(target PaymentStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}

	o.paymentStatus = target
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setShippingAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("shippingAddress")
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setBillingAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("billingAddress")
	}
	o.billingAddress = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
