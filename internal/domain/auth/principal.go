package auth

import (
	"slices"

	"hotel-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Principal is the authenticated caller as established by the transport layer.
type Principal struct {
	UserID uuid.UUID
	Role   user.Role
}

func NewPrincipal(userID uuid.UUID, role user.Role) Principal {
	return Principal{UserID: userID, Role: role}
}

// HasRole reports whether the principal's role is in the allowed set.
func (p Principal) HasRole(allowed ...user.Role) bool {
	return p.UserID != uuid.Nil && slices.Contains(allowed, p.Role)
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(user.RoleAdmin)
}

// CanActOn reports whether the principal may act on a resource owned by ownerID.
func (p Principal) CanActOn(ownerID uuid.UUID) bool {
	if p.UserID == uuid.Nil {
		return false
	}
	return p.IsAdmin() || p.UserID == ownerID
}
