package order

import (
	"fmt"
	"strings"

	"commerce/internal/pkg/errs"
)

// PaymentStatus tracks the payment state of an order, independent of the
// fulfillment lifecycle. Orders start UNPAID; administrative updates move it
// between the valid values without touching order status or stock.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// Unpaid is the initial payment status of every order.
	Unpaid

	// Paid indicates payment has been captured.
	Paid

	// PaymentRefunded indicates a captured payment was returned.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "UNKNOWN",
		Unpaid:               "UNPAID",
		Paid:                 "PAID",
		PaymentRefunded:      "REFUNDED",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		Unpaid:          "UNPAID",
		Paid:            "PAID",
		PaymentRefunded: "REFUNDED",
	}
}

// ParsePaymentStatus converts an externally supplied payment status name.
// Matching is case-insensitive. Unknown names yield a validation error.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	upper := strings.ToUpper(s)
	for status, name := range getValidPaymentStatusStrings() {
		if name == upper {
			return status, nil
		}
	}

	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Validate checks if the PaymentStatus value is one of the defined values.
func (p PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the payment status name. Safe on any value.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}
