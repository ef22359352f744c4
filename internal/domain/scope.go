package domain

import "github.com/google/uuid"

// Scope is the caller's resolved access context. It is built once by the auth
// middleware and threaded into every service method, so row filtering happens
// in one place instead of being re-derived per endpoint.
type Scope struct {
	Role   Role
	UserID uuid.UUID
}

func AdminScope(userID uuid.UUID) Scope  { return Scope{Role: RoleAdmin, UserID: userID} }
func OwnerScope(userID uuid.UUID) Scope  { return Scope{Role: RoleOwner, UserID: userID} }
func TenantScope(userID uuid.UUID) Scope { return Scope{Role: RoleTenant, UserID: userID} }

func (s Scope) IsAdmin() bool  { return s.Role == RoleAdmin }
func (s Scope) IsOwner() bool  { return s.Role == RoleOwner }
func (s Scope) IsTenant() bool { return s.Role == RoleTenant }

// CanActFor reports whether the scope may read data belonging to userID.
// Admins see everything; everyone else only themselves.
func (s Scope) CanActFor(userID uuid.UUID) bool {
	return s.IsAdmin() || s.UserID == userID
}
