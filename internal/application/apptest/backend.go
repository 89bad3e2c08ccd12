package apptest

import (
	"context"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/engine"
)

// Backend is an engine.Backend over the in-memory repositories.
type Backend struct {
	UserRepo    *UserRepo
	ProductRepo *ProductRepo
	// PingErr is returned by Ping.
	PingErr error
	Closed  bool
}

func NewBackend() *Backend {
	return &Backend{UserRepo: NewUserRepo(), ProductRepo: NewProductRepo()}
}

// Handle wraps b as a bound storage handle.
func (b *Backend) Handle() *engine.Handle {
	return &engine.Handle{Backend: b, Report: engine.SchemaReport{Engine: b.Name()}}
}

func (b *Backend) Name() engine.Name                { return engine.Relational }
func (b *Backend) Connect(context.Context) error    { return nil }
func (b *Backend) Ping(context.Context) error       { return b.PingErr }
func (b *Backend) Users() repository.UserRepository { return b.UserRepo }

func (b *Backend) Products() repository.ProductRepository { return b.ProductRepo }

func (b *Backend) EnsureSchema(context.Context) (engine.SchemaReport, error) {
	return engine.SchemaReport{Engine: b.Name()}, nil
}

func (b *Backend) Close(context.Context) error {
	b.Closed = true
	return nil
}
