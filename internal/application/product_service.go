package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	repo "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

// ProductService turns "absent" results of the catalog store into NotFound
// errors. Validation and id checks stay in the store.
type ProductService struct {
	Repo   repo.ProductRepository
	Logger *logrus.Logger
}

func NewProductService(r repo.ProductRepository, logger *logrus.Logger) *ProductService {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	return &ProductService{Repo: r, Logger: logger}
}

func (s *ProductService) Create(ctx context.Context, in entity.ProductInput) (*entity.Product, error) {
	p, err := s.Repo.Create(ctx, in)
	if err != nil {
		return nil, logFailure(s.Logger, "create product", err)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	list, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, logFailure(s.Logger, "list products", err)
	}
	return list, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	return s.found("get product", p, err)
}

// Update applies patch. An empty patch still refreshes updatedAt.
func (s *ProductService) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	if patch.IsEmpty() {
		s.Logger.WithField("id", id).Debug("empty product patch, only updatedAt changes")
	}
	p, err := s.Repo.Update(ctx, id, patch)
	return s.found("update product", p, err)
}

// Delete returns the removed product.
func (s *ProductService) Delete(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.Delete(ctx, id)
	return s.found("delete product", p, err)
}

func (s *ProductService) found(op string, p *entity.Product, err error) (*entity.Product, error) {
	if err != nil {
		return nil, logFailure(s.Logger, op, err)
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}
	return p, nil
}
