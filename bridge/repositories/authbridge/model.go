package authbridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hearthkeep/hearthkeep/core/repositories/sessionsrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
)

func errMissingField(field string) error {
	return fmt.Errorf("missing required field: %s", field)
}

// LoginRequest carries the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return errMissingField("email")
	}
	if r.Password == "" {
		return errMissingField("password")
	}
	return nil
}

// LoginResponse returns the session token and the authenticated user.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt string         `json:"expires_at"`
	User      usersrepo.User `json:"user"`
}

func newLoginResponse(session sessionsrepo.Session, user usersrepo.User) LoginResponse {
	return LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		User:      user,
	}
}

func (r LoginResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}
