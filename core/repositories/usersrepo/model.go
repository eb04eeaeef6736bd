package usersrepo

import "time"

// Set of user roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether role is a known role.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}

// User represents a household member account.
type User struct {
	UserID       string    `db:"user_id" json:"user_id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	Role         string    `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CreateUser contains fields for creating a new user. The password arrives
// in plain text and is hashed by the repository before it reaches storage.
type CreateUser struct {
	Email    string
	Name     string
	Role     string
	Password string
}

// UpdateUser contains fields for updating an existing user. All fields are
// optional to support partial updates.
type UpdateUser struct {
	Email    *string
	Name     *string
	Role     *string
	Password *string
}
