// Package repositories holds types shared by every entity repository.
package repositories

import (
	"context"
	"errors"

	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

var (
	ErrOperationNotSupported = errors.New("operation not supported")
	ErrNotFound              = errors.New("record not found")
	ErrAlreadyExists         = errors.New("record already exists")
	ErrInvalidTransition     = errors.New("invalid status transition")
)

// Store is the unified interface shape the entity stores follow. Entity
// Storer interfaces narrow or extend it as the entity requires.
type Store[T any, ID comparable, C any, U any, F any] interface {
	Create(ctx context.Context, payload C) (T, error)
	Get(ctx context.Context, id ID, filter F) (T, error)
	List(ctx context.Context, filter F, orderBy fop.By, page fop.PageStringCursor) ([]T, error)
	Update(ctx context.Context, id ID, updates U) error
	Delete(ctx context.Context, id ID) error
}
