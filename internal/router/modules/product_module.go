package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/container"
	handlers "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/http"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/middleware"
)

// ProductModule wires /api/productos. Every route requires a bearer token.
type ProductModule struct {
	Handler  *handlers.ProductHandler
	Mediator *application.AccessMediator
}

func NewProductModule(h *handlers.ProductHandler, m *application.AccessMediator) *ProductModule {
	return &ProductModule{Handler: h, Mediator: m}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/productos")
	g.Use(middleware.Auth(m.Mediator))
	g.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil, container.GetLogger()))
	{
		g.POST("", m.Handler.Create)
		g.GET("", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
