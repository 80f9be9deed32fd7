// Package accesspolicy implements the authorization port over the users
// table. Roles are plain strings on the user row; the policy only reads them.
package accesspolicy

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO is the database representation of a user account. Only the fields
// the policy needs are mapped; authentication itself lives elsewhere.
type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string    `gorm:"uniqueIndex;not null"`
	Role  string    `gorm:"not null"`
}

// TableName specifies the database table name for user accounts.
func (UserDTO) TableName() string {
	return "users"
}

// GormAccessPolicy implements ports.AccessPolicy by reading roles from the
// users table. An unknown requester simply holds no roles; lookups never
// fail on missing rows.
type GormAccessPolicy struct {
	db *gorm.DB
}

// NewGormAccessPolicy creates a new access policy over the given connection.
func NewGormAccessPolicy(db *gorm.DB) *GormAccessPolicy {
	return &GormAccessPolicy{
		db: db,
	}
}

// CanAccess reports whether requester may act on a resource owned by owner.
// Owners always may; otherwise the requester must hold the admin role.
func (p *GormAccessPolicy) CanAccess(ctx context.Context, requesterID, ownerID kernel.UUID) (bool, error) {
	if err := requesterID.Validate(); err != nil {
		return false, err
	}
	if err := ownerID.Validate(); err != nil {
		return false, err
	}

	if requesterID.IsEqual(ownerID) {
		return true, nil
	}

	return p.HasRole(ctx, requesterID, ports.RoleAdmin)
}

// HasRole reports whether the requester holds the named role.
func (p *GormAccessPolicy) HasRole(ctx context.Context, requesterID kernel.UUID, role string) (bool, error) {
	if err := requesterID.Validate(); err != nil {
		return false, err
	}

	var dto UserDTO
	err := p.db.WithContext(ctx).
		Select("role").
		First(&dto, "id = ?", requesterID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return dto.Role == role, nil
}
