// Package order provides the Order aggregate root and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root owning the item sequence, totals, and timestamps
//   - Item: an immutable order line with a creation-time unit price snapshot
//   - Status: the fulfillment state machine
//   - PaymentStatus: the orthogonal payment state
//
// Key business rules:
//   - Orders are created PENDING/UNPAID and are never physically deleted
//   - The order total always equals the exact sum of unitPrice * quantity
//     over the items; both values are derived, not stored, so they cannot drift
//   - cancel is legal from PENDING, CONFIRMED, and PROCESSING and obliges the
//     caller to release the items' reserved stock in the same unit of work
//   - ship is legal only from PROCESSING, deliver only from SHIPPED
//   - DELIVERED, CANCELLED, and REFUNDED are terminal
//   - administrative overrides move the status column only, with no stock
//     side effects
//
// The package follows Domain-Driven Design principles: private fields,
// constructor validation, and transitions that reject illegal requests with
// typed errors naming the current and attempted state.
package order
