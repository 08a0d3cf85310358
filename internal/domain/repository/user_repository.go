package repository

import (
	"context"
	"errors"

	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
)

var (
	// ErrNotFound means no record matched the lookup key.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail means an insert violated the unique email constraint.
	// The database index is the atomicity boundary for create-if-absent.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository is the user directory: the persistent store of identity
// records keyed by email (unique) and by id.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
