package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/container"
	handlers "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/http"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/middleware"
)

// SystemInfoLimit caps GET / per client IP per minute.
const SystemInfoLimit = 60

// SystemModule serves GET / and GET /health. Health probes from load
// balancers and private networks are never limited.
type SystemModule struct {
	Handler *handlers.SystemHandler
}

func NewSystemModule(h *handlers.SystemHandler) *SystemModule {
	return &SystemModule{Handler: h}
}

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	allow := middleware.AnyAllow(middleware.AllowPrivateIP(), middleware.AllowPaths("/health"))
	rl := middleware.RateLimit(container.GetRedis(), SystemInfoLimit, time.Minute, middleware.KeyByIPAndPath(), allow, container.GetLogger())
	rg.GET("/", rl, m.Handler.Info)
	rg.GET("/health", rl, m.Handler.Health)
}
