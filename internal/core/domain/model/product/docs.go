// Package product contains the Product catalog entity. A product carries a
// unique SKU, a fixed-point price, and the available stock quantity that the
// order workflow reserves against.
//
// Stock quantity is a hot shared resource: many concurrent order creations
// and cancellations mutate it. The entity therefore only exposes read
// accessors for stock; every mutation is performed by the storage layer's
// atomic ledger operations so the non-negativity invariant can never be
// violated by interleaved writers.
package product
