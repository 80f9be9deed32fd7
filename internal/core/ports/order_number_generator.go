package ports

import "context"

// OrderNumberGenerator produces the externally visible order identifiers,
// format ORD-{year}-{seq:06d}.
//
// Next is globally unique across arbitrarily many concurrent callers and
// server instances: the backing counter increments atomically and durably,
// so no two calls ever return the same string. Sequence values are not
// gap-free; a creation that rolls back after drawing a number simply burns
// that value.
type OrderNumberGenerator interface {
	Next(ctx context.Context) (string, error)
}
