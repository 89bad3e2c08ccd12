package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/config"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/engine"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

// app-level container to share constructed components across packages.
// main fills it once at startup; the router reads it to wire modules.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	storage     *engine.Handle
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	mediator   *application.AccessMediator
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func SetStorage(h *engine.Handle)  { storage = h }
func GetStorage() *engine.Handle   { return storage }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	return logger
}

// GetMediator lazily builds the access mediator over the configured JWT manager.
func GetMediator() *application.AccessMediator {
	if mediator == nil {
		mediator = application.NewAccessMediator(GetJWT(), GetLogger())
	}
	return mediator
}

// Reset clears every singleton. Tests use it between cases.
func Reset() {
	cfg, logger, storage, redisClient, jwtManager, mediator = nil, nil, nil, nil, nil, nil
}
