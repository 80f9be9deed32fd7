package ports

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
)

// RoleAdmin is the role name privileged transitions require.
const RoleAdmin = "ADMIN"

// AccessPolicy is the authorization collaborator consulted before privileged
// order transitions. The requester identity is threaded through every
// workflow call explicitly; there is no ambient security context.
//
// The core treats both methods as pure predicates: they report, they never
// enforce. Supplied by the authentication subsystem.
type AccessPolicy interface {
	// CanAccess reports whether requester may act on a resource owned by owner.
	// Owners always may; admins may act on anyone's resources.
	CanAccess(ctx context.Context, requesterID, ownerID kernel.UUID) (bool, error)

	// HasRole reports whether the requester holds the named role.
	HasRole(ctx context.Context, requesterID kernel.UUID, role string) (bool, error)
}
