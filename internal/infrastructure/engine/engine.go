// Package engine binds exactly one storage backend at startup. Everything
// downstream talks to the repositories of the bound backend and never asks
// which engine it is.
package engine

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/config"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

// Backend is implemented by each storage engine. Connect and EnsureSchema are
// separate so either can be exercised alone.
type Backend interface {
	Name() Name
	Connect(ctx context.Context) error
	// EnsureSchema provisions missing tables/collections and indexes. It never
	// drops or alters what exists. An error means the store is unusable.
	EnsureSchema(ctx context.Context) (SchemaReport, error)
	Users() repository.UserRepository
	Products() repository.ProductRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// SchemaReport describes what EnsureSchema found and created. It is logged
// and otherwise ignored.
type SchemaReport struct {
	Engine      Name
	Existing    []string
	Provisioned []string
	// Warnings collects discovery problems that did not stop provisioning.
	Warnings []string
}

// Handle is the process-wide storage handle.
type Handle struct {
	Backend
	Report SchemaReport
}

// Select resolves cfg.DBEngine, builds the backend and binds it.
func Select(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Handle, error) {
	name, err := ParseName(cfg.DBEngine)
	if err != nil {
		return nil, err
	}
	factory, ok := lookup(name)
	if !ok {
		return nil, apperr.Configuration("engine %q is not linked into this binary (linked: %s)",
			name, strings.Join(Registered(), ", "))
	}
	return Bind(ctx, factory(cfg, logger), logger)
}

// Bind connects b, ensures its schema and logs the discovery report. On any
// failure the backend is closed again.
func Bind(ctx context.Context, b Backend, logger *logrus.Logger) (*Handle, error) {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	if err := b.Connect(ctx); err != nil {
		return nil, err
	}
	report, err := b.EnsureSchema(ctx)
	if err != nil {
		_ = b.Close(ctx)
		return nil, err
	}
	if report.Engine == "" {
		report.Engine = b.Name()
	}
	logReport(logger, report)
	return &Handle{Backend: b, Report: report}, nil
}

func logReport(logger *logrus.Logger, r SchemaReport) {
	for _, w := range r.Warnings {
		helpers.LogWarn(logger, "schema discovery", nil, logrus.Fields{"engine": r.Engine, "detail": w})
	}
	helpers.LogInfo(logger, "storage ready", logrus.Fields{
		"engine":      r.Engine,
		"existing":    r.Existing,
		"provisioned": r.Provisioned,
	})
}
