package usersrepobridge

import (
	"fmt"
	"net/mail"

	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
)

// CreateUserRequest carries fields for creating a new member account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (r CreateUserRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email: %q", r.Email)
	}
	if r.Name == "" {
		return fmt.Errorf("missing required field: name")
	}
	if !usersrepo.ValidRole(r.Role) {
		return fmt.Errorf("unknown role: %q", r.Role)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func (r CreateUserRequest) toRepo() usersrepo.CreateUser {
	return usersrepo.CreateUser{
		Email:    r.Email,
		Name:     r.Name,
		Role:     r.Role,
		Password: r.Password,
	}
}

// UpdateUserRequest carries optional fields for a partial update.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

func (r UpdateUserRequest) Validate() error {
	if r.Email != nil {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			return fmt.Errorf("invalid email: %q", *r.Email)
		}
	}
	if r.Name != nil && *r.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if r.Role != nil && !usersrepo.ValidRole(*r.Role) {
		return fmt.Errorf("unknown role: %q", *r.Role)
	}
	if r.Password != nil && len(*r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func (r UpdateUserRequest) toRepo() usersrepo.UpdateUser {
	return usersrepo.UpdateUser{
		Email:    r.Email,
		Name:     r.Name,
		Role:     r.Role,
		Password: r.Password,
	}
}
