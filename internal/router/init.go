package router

import (
	"fmt"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/container"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/gql"
	handlers "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/http"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/router/modules"
)

// Version is reported by GET /.
const Version = "1.0.0"

type Deps struct {
	Users    *application.UserService
	Products *application.ProductService
}

// buildDeps constructs the services over the repositories of the bound engine.
func buildDeps() Deps {
	store := container.GetStorage()
	logger := container.GetLogger()
	return Deps{
		Users:    application.NewUserService(store.Users(), container.GetJWT(), logger),
		Products: application.NewProductService(store.Products(), logger),
	}
}

// InitModules wires every module into the registry. It must run after the
// container holds a bound storage handle and a JWT manager.
func InitModules(r *Registry) error {
	deps := buildDeps()
	logger := container.GetLogger()
	mediator := container.GetMediator()

	schema, err := gql.NewSchema(deps.Users, deps.Products, logger)
	if err != nil {
		return fmt.Errorf("parse graphql schema: %w", err)
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.Users, logger), handlers.NewUserHandler(deps.Users), mediator))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(deps.Products), mediator))
	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}

	store := container.GetStorage()
	r.AddRoot(modules.NewSystemModule(handlers.NewSystemHandler(Version, string(store.Name()), store)))
	r.AddRoot(modules.NewGraphQLModule(gql.NewHandler(schema, mediator)))
	return nil
}
