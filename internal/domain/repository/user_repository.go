package repository

import (
	"context"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
)

// UserRepository is the credential store contract. Both engines implement it
// and return canonical entities. Lookups return (nil, nil) when nothing matches.
type UserRepository interface {
	// Create hashes password before writing. A taken email yields apperr.ErrDuplicateEmail.
	Create(ctx context.Context, name, email, password string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.Credentials, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	VerifyPassword(plain, hash string) bool
	ListAll(ctx context.Context) ([]*entity.User, error)
}
