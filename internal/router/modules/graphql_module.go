package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/container"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/middleware"
)

// GraphQLModule mounts POST /graphql. Authorization happens inside the handler.
type GraphQLModule struct {
	Handler http.Handler
}

func NewGraphQLModule(h http.Handler) *GraphQLModule {
	return &GraphQLModule{Handler: h}
}

func (m *GraphQLModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil, container.GetLogger())
	rg.POST("/graphql", rl, gin.WrapH(m.Handler))
}
