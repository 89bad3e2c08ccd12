package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/response"
)

// Auth resolves the Authorization header through the access mediator and
// stores the identity on the Gin context. Requests without a valid bearer
// token stop here with 401.
func Auth(m *application.AccessMediator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := m.Authorize(c.GetHeader("Authorization"))
		if err != nil {
			response.Abort(c, response.FromError(c, err))
			return
		}
		setIdentity(c, id)
		c.Request = c.Request.WithContext(application.WithAuth(c.Request.Context(), id, nil))
		c.Next()
	}
}
