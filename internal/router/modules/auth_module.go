package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/container"
	handlers "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/http"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/middleware"
)

// AuthModule wires account routes.
// Public: POST /api/auth/registro, POST /api/auth/login
// Protected: GET /api/auth/perfil, GET /api/usuarios
type AuthModule struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Mediator *application.AccessMediator
}

func NewAuthModule(auth *handlers.AuthHandler, users *handlers.UserHandler, m *application.AccessMediator) *AuthModule {
	return &AuthModule{Auth: auth, Users: users, Mediator: m}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	logger := container.GetLogger()
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil, logger)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil, logger)

	rg.POST("/auth/registro", registerLimiter, m.Auth.Register)
	rg.POST("/auth/login", loginLimiter, m.Auth.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Mediator))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil, logger))
	{
		auth.GET("/auth/perfil", m.Users.GetProfile)
		auth.GET("/usuarios", m.Users.List)
	}
}
