package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/response"
)

// Pinger is the part of the storage handle the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

type SystemHandler struct {
	Version  string
	Engine   string
	Store    Pinger
	Started  time.Time
	Endpoint map[string]string
}

func NewSystemHandler(version, engine string, store Pinger) *SystemHandler {
	return &SystemHandler{
		Version: version,
		Engine:  engine,
		Store:   store,
		Started: time.Now(),
		Endpoint: map[string]string{
			"auth":      "/api/auth",
			"usuarios":  "/api/usuarios",
			"productos": "/api/productos",
			"graphql":   "/graphql",
			"health":    "/health",
		},
	}
}

// Info GET /
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "product catalog API (REST + GraphQL)",
		"version":   h.Version,
		"database":  h.Engine,
		"endpoints": h.Endpoint,
	})
}

// Health GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()
	data := gin.H{"database": h.Engine, "uptime": time.Since(h.Started).Round(time.Second).String()}
	if h.Store == nil || h.Store.Ping(ctx) != nil {
		data["status"] = "down"
		response.Abort(c, response.Error[any](c, http.StatusServiceUnavailable, "storage unavailable", data))
		return
	}
	data["status"] = "up"
	resp := response.Success(c, http.StatusOK, data, "ok")
	c.JSON(resp.Status, resp)
}
