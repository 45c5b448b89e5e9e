package model

import "time"

// Role names stored in users.role.
const (
	RoleDonor        = "DONOR"
	RoleCharityAdmin = "CHARITY_ADMIN"
	RoleAdmin        = "ADMIN"
)

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown on donations and messages.
//  Email        – unique email address used for login.
//  PasswordHash – bcrypt hashed password.
//  Role         – name of the role (e.g. DONOR or CHARITY_ADMIN).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
