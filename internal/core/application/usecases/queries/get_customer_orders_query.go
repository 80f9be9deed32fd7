package queries

import (
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery lists a customer's order history. The requester must
// be the customer themselves or hold the admin role.
type GetCustomerOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query listing orders of one customer.
func NewGetCustomerOrdersQuery(customerID, requesterID kernel.UUID) (GetCustomerOrdersQuery, error) {
	ordersQuery := GetCustomerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ordersQuery.setCustomerID(customerID),
		ordersQuery.setRequesterID(requesterID),
	); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return ordersQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are listed.
func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// RequesterID returns the identity requesting the listing.
func (q GetCustomerOrdersQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

func (q *GetCustomerOrdersQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	q.customerID = customerID
	return nil
}

func (q *GetCustomerOrdersQuery) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	q.requesterID = requesterID
	return nil
}

// GetCustomerOrdersQueryResponse is one row of a customer's order history.
type GetCustomerOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	Status        string
	PaymentStatus string
	TotalAmount   decimal.Decimal
	ItemCount     int
	OrderedAt     time.Time
}
