package mongodb

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/config"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/engine"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

func init() {
	engine.Register(engine.Document, func(cfg *config.Config, logger *logrus.Logger) engine.Backend {
		return NewBackend(cfg, logger)
	})
}

// Backend is the document engine: one client, one database.
type Backend struct {
	cfg    *config.Config
	logger *logrus.Logger

	client   *mongo.Client
	db       *mongo.Database
	users    *UserRepository
	products *ProductRepository
}

func NewBackend(cfg *config.Config, logger *logrus.Logger) *Backend {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	return &Backend{cfg: cfg, logger: logger}
}

func (b *Backend) Name() engine.Name { return engine.Document }

func (b *Backend) Connect(ctx context.Context) error {
	client, err := NewClient(ctx, b.cfg.MongoURI, b.cfg.MongoTimeout)
	if err != nil {
		return apperr.Storage("connect mongodb", err)
	}
	b.client = client
	b.db = client.Database(b.cfg.MongoDB)
	hasher := helpers.NewPasswordHasher(b.cfg.BcryptCost)
	b.users = NewUserRepository(b.db.Collection(UsersCollection), hasher)
	b.products = NewProductRepository(b.db.Collection(ProductsCollection))
	helpers.LogInfo(b.logger, "mongodb connected", logrus.Fields{"db": b.cfg.MongoDB})
	return nil
}

func (b *Backend) EnsureSchema(ctx context.Context) (engine.SchemaReport, error) {
	report := engine.SchemaReport{Engine: engine.Document}
	if b.db == nil {
		return report, apperr.Storage("ensure schema", fmt.Errorf("mongodb not connected"))
	}

	existing, err := existingCollections(ctx, b.db)
	if err != nil {
		report.Warnings = append(report.Warnings, "list collections: "+err.Error())
	}
	report.Existing = existing

	created, warnings, err := ensureSchema(ctx, b.db)
	report.Provisioned = created
	report.Warnings = append(report.Warnings, warnings...)
	if err != nil {
		return report, apperr.Storage("provision mongodb schema", err)
	}
	return report, nil
}

func (b *Backend) Users() repository.UserRepository       { return b.users }
func (b *Backend) Products() repository.ProductRepository { return b.products }

func (b *Backend) Ping(ctx context.Context) error {
	if b.client == nil {
		return apperr.Storage("ping mongodb", fmt.Errorf("not connected"))
	}
	return b.client.Ping(ctx, readpref.Primary())
}

func (b *Backend) Close(ctx context.Context) error {
	if b.client == nil {
		return nil
	}
	err := b.client.Disconnect(ctx)
	b.client, b.db = nil, nil
	return err
}
