// Package usersrepo provides access to user account storage.
package usersrepo

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// ErrAuthenticationFailure is returned when a login attempt fails. It does
// not distinguish an unknown email from a bad password.
var ErrAuthenticationFailure = errors.New("authentication failed")

// Storer defines the data storage interface for User.
type Storer interface {
	Create(ctx context.Context, input CreateUser, passwordHash string) (User, error)
	Get(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter UserFilter, orderBy fop.By, page fop.PageStringCursor) ([]User, error)
	Update(ctx context.Context, userID string, updates UpdateUser, passwordHash *string) error
	Delete(ctx context.Context, userID string) error
}

// Repository provides access to user storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new User repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create adds a new user, hashing the supplied password.
func (r *Repository) Create(ctx context.Context, input CreateUser) (User, error) {
	if !ValidRole(input.Role) {
		return User{}, fmt.Errorf("invalid role %q", input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := r.storer.Create(ctx, input, string(hash))
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}

	r.log.Info(ctx, "created user", "user_id", user.UserID, "role", user.Role)
	return user, nil
}

// Get retrieves a user by id.
func (r *Repository) Get(ctx context.Context, userID string) (User, error) {
	user, err := r.storer.Get(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

// List retrieves users matching the filter.
func (r *Repository) List(ctx context.Context, filter UserFilter, orderBy fop.By, page fop.PageStringCursor) ([]User, error) {
	users, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update modifies a user. A new password, if supplied, is re-hashed.
func (r *Repository) Update(ctx context.Context, userID string, updates UpdateUser) error {
	if updates.Role != nil && !ValidRole(*updates.Role) {
		return fmt.Errorf("invalid role %q", *updates.Role)
	}

	var passwordHash *string
	if updates.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*updates.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		s := string(hash)
		passwordHash = &s
	}

	if err := r.storer.Update(ctx, userID, updates, passwordHash); err != nil {
		return fmt.Errorf("update user %s: %w", userID, err)
	}
	return nil
}

// Delete removes a user.
func (r *Repository) Delete(ctx context.Context, userID string) error {
	if err := r.storer.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return nil
}

// Authenticate verifies an email/password pair and returns the matching
// user on success.
func (r *Repository) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := r.storer.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return User{}, ErrAuthenticationFailure
		}
		return User{}, fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrAuthenticationFailure
	}

	return user, nil
}
