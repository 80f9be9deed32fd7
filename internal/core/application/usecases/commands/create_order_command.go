package commands

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrShippingAddressIsRequired = errors.New("shipping address is required")
	ErrBillingAddressIsRequired  = errors.New("billing address is required")
	ErrPaymentMethodIsRequired   = errors.New("payment method is required")
	ErrOrderLinesAreRequired     = errors.New("at least one order line is required")
	ErrLineQuantityIsInvalid     = errors.New("line quantity must be greater than 0")
)

// OrderLine is a single requested product and quantity within a create order
// command. Unit prices are not part of the request; they are snapshotted from
// the catalog when the order is placed.
type OrderLine struct {
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewOrderLine creates a validated order line.
func NewOrderLine(productID kernel.UUID, quantity int) (OrderLine, error) {
	if err := productID.Validate(); err != nil {
		return OrderLine{}, err
	}
	if quantity <= 0 {
		return OrderLine{}, fmt.Errorf("%w: got %d", ErrLineQuantityIsInvalid, quantity)
	}

	return OrderLine{
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// ProductID returns the requested product's identity.
func (l OrderLine) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the requested quantity.
func (l OrderLine) Quantity() int {
	return l.quantity
}

// Validate ensures the line was created through the constructor.
func (l OrderLine) Validate() error {
	return l.guard.Validate(ErrLineQuantityIsInvalid)
}

// CreateOrderCommand represents a request to place a new order. Each line's
// stock is reserved atomically with the order itself: if any line cannot be
// covered, no stock moves and no order is written.
//
// Example:
//
//	line, _ := NewOrderLine(productID, 2)
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), customerID,
//	    "1 Main Street", "1 Main Street", "CARD", "",
//	    []OrderLine{line},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	shippingAddress string
	billingAddress  string
	paymentMethod   string
	notes           string
	lines           []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identities, addresses, payment method, and that each line was
// properly constructed. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	shippingAddress string,
	billingAddress string,
	paymentMethod string,
	notes string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setShippingAddress(shippingAddress),
		orderCommand.setBillingAddress(billingAddress),
		orderCommand.setPaymentMethod(paymentMethod),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identity of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ShippingAddress returns the delivery destination.
func (c CreateOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

// BillingAddress returns the billing destination.
func (c CreateOrderCommand) BillingAddress() string {
	return c.billingAddress
}

// PaymentMethod returns the selected payment method.
func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// Notes returns free-form order notes, possibly empty.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(address string) error {
	if address == "" {
		return ErrShippingAddressIsRequired
	}

	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setBillingAddress(address string) error {
	if address == "" {
		return ErrBillingAddressIsRequired
	}

	c.billingAddress = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return ErrPaymentMethodIsRequired
	}

	c.paymentMethod = paymentMethod
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
