// Package kernel provides core domain primitives shared by all aggregates
// of the commerce system. It currently contains the UUID value object used
// as entity identity throughout the domain model.
//
// Kernel types are immutable value objects: they are created through
// constructor functions, validate themselves, and are safe to copy and to
// share between goroutines.
package kernel
