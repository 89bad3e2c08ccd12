package repository

import (
	"context"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
)

// ProductRepository is the catalog store contract. Malformed ids fail with
// apperr.ErrInvalidID; well-formed ids that match nothing return (nil, nil).
type ProductRepository interface {
	Create(ctx context.Context, in entity.ProductInput) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error)
	// Delete returns the record as it was before removal.
	Delete(ctx context.Context, id string) (*entity.Product, error)
}
