package order

import (
	"fmt"
	"strings"

	"commerce/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the correct fulfillment workflow.
//
// State transitions:
//
//	PENDING ────> CONFIRMED ────> PROCESSING ────> SHIPPED ────> DELIVERED
//	   │              │               │
//	   └──────────────┴───────────────┴──────────> CANCELLED
//
// PENDING may additionally be driven to any valid status by an administrative
// override; CONFIRMED may be overridden to PROCESSING. DELIVERED, CANCELLED,
// and REFUNDED are terminal: no transition leaves them, override included.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status of every newly created order.
	Pending

	// Confirmed indicates the order has been acknowledged for fulfillment.
	Confirmed

	// Processing indicates the order is being prepared for shipment.
	Processing

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled and its stock restored. Terminal.
	Cancelled

	// Refunded indicates the order was refunded after payment. Terminal.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "UNKNOWN",
		Pending:       "PENDING",
		Confirmed:     "CONFIRMED",
		Processing:    "PROCESSING",
		Shipped:       "SHIPPED",
		Delivered:     "DELIVERED",
		Cancelled:     "CANCELLED",
		Refunded:      "REFUNDED",
	}
}

// getValidStatusStrings returns only valid Status values, to support validation
// and parsing of externally supplied status names.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDING",
		Confirmed:  "CONFIRMED",
		Processing: "PROCESSING",
		Shipped:    "SHIPPED",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
		Refunded:   "REFUNDED",
	}
}

// ParseStatus converts an externally supplied status name into a Status.
// Matching is case-insensitive. Unknown names yield a validation error.
func ParseStatus(s string) (Status, error) {
	upper := strings.ToUpper(s)
	for status, name := range getValidStatusStrings() {
		if name == upper {
			return status, nil
		}
	}

	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the defined order statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name. It implements fmt.Stringer and is safe to
// call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the state machine defines no transition out of s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// CanBeCancelled reports whether cancel() is legal from s.
// Orders can be cancelled while PENDING, CONFIRMED, or PROCESSING.
func (s Status) CanBeCancelled() bool {
	return s == Pending || s == Confirmed || s == Processing
}

// Cancel transitions the status to Cancelled.
//
// Valid source states: PENDING, CONFIRMED, PROCESSING.
// Returns (0, InvalidTransitionError) from any other state, so a repeated
// cancel of an already cancelled order fails instead of releasing stock twice.
func (s Status) Cancel() (Status, error) {
	if !s.CanBeCancelled() {
		return 0, errs.NewInvalidTransitionError(s.String(), Cancelled.String())
	}

	return Cancelled, nil
}

// Ship transitions the status to Shipped.
//
// Valid source state: PROCESSING only.
func (s Status) Ship() (Status, error) {
	if s != Processing {
		return 0, errs.NewInvalidTransitionError(s.String(), Shipped.String())
	}

	return Shipped, nil
}

// Deliver transitions the status to Delivered.
//
// Valid source state: SHIPPED only.
func (s Status) Deliver() (Status, error) {
	if s != Shipped {
		return 0, errs.NewInvalidTransitionError(s.String(), Delivered.String())
	}

	return Delivered, nil
}

// Override applies an administrative status change, bypassing the
// action-specific side effects of cancel/ship/deliver.
//
// Allowed overrides:
//   - PENDING -> any valid status
//   - CONFIRMED -> PROCESSING
//
// Terminal states reject every override. Stock is never reconciled on this
// path; callers that intend a stock-restoring cancellation must use Cancel.
func (s Status) Override(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	switch {
	case s == Pending:
		return target, nil
	case s == Confirmed && target == Processing:
		return target, nil
	default:
		return 0, errs.NewInvalidTransitionError(s.String(), target.String())
	}
}
