package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/config"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/engine"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

func init() {
	engine.Register(engine.Relational, func(cfg *config.Config, logger *logrus.Logger) engine.Backend {
		return NewBackend(cfg, logger)
	})
}

// Backend is the relational engine: one pgx pool shared by both repositories.
type Backend struct {
	cfg    *config.Config
	logger *logrus.Logger

	pool     *pgxpool.Pool
	users    *UserRepository
	products *ProductRepository
}

func NewBackend(cfg *config.Config, logger *logrus.Logger) *Backend {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	return &Backend{cfg: cfg, logger: logger}
}

func (b *Backend) Name() engine.Name { return engine.Relational }

func (b *Backend) Connect(ctx context.Context) error {
	pool, err := NewPool(ctx, b.cfg.PostgresDSN(), b.cfg.DBMaxConns, b.cfg.DBMinConns, b.cfg.DBMaxConnLife)
	if err != nil {
		return apperr.Storage("connect postgres", err)
	}
	b.pool = pool
	b.users = NewUserRepository(pool, helpers.NewPasswordHasher(b.cfg.BcryptCost))
	b.products = NewProductRepository(pool)
	helpers.LogInfo(b.logger, "postgres connected", logrus.Fields{"host": b.cfg.DBHost, "db": b.cfg.DBName})
	return nil
}

func (b *Backend) EnsureSchema(ctx context.Context) (engine.SchemaReport, error) {
	report := engine.SchemaReport{Engine: engine.Relational}
	if b.pool == nil {
		return report, apperr.Storage("ensure schema", fmt.Errorf("postgres not connected"))
	}

	existing, err := existingTables(ctx, b.pool)
	discovered := err == nil
	if err != nil {
		report.Warnings = append(report.Warnings, "list tables: "+err.Error())
	}
	report.Existing = existing

	if err := runMigrations(b.pool); err != nil {
		return report, apperr.Storage("provision postgres schema", err)
	}
	if discovered {
		report.Provisioned = missing(Tables, existing)
	}
	return report, nil
}

func (b *Backend) Users() repository.UserRepository       { return b.users }
func (b *Backend) Products() repository.ProductRepository { return b.products }

func (b *Backend) Ping(ctx context.Context) error {
	if b.pool == nil {
		return apperr.Storage("ping postgres", fmt.Errorf("not connected"))
	}
	return b.pool.Ping(ctx)
}

func (b *Backend) Close(context.Context) error {
	if b.pool != nil {
		b.pool.Close()
		b.pool = nil
	}
	return nil
}

func missing(all, have []string) []string {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	var out []string
	for _, a := range all {
		if !set[a] {
			out = append(out, a)
		}
	}
	return out
}
