package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/response"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/validation"
)

type AuthHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(users *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/registro
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	res, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, res, "user registered")
	c.JSON(resp.Status, resp)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	res, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, res, "login successful")
	c.JSON(resp.Status, resp)
}

func invalidPayload(c *gin.Context, err error) {
	response.Abort(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
}

func fail(c *gin.Context, err error) {
	response.Abort(c, response.FromError(c, err))
}
