package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/middleware"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/response"
)

type UserHandler struct {
	Users *application.UserService
}

func NewUserHandler(users *application.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// GetProfile GET /api/auth/perfil
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		fail(c, apperr.Unauthenticated("", nil))
		return
	}
	u, err := h.Users.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, u, "")
	c.JSON(resp.Status, resp)
}

// List GET /api/usuarios
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.List[*entity.User](c, users, "")
	c.JSON(resp.Status, resp)
}
