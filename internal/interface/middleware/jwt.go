package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
)

const (
	CtxUserIDKey   = "userID"
	CtxIdentityKey = "identity"
)

func setIdentity(c *gin.Context, id *entity.Identity) {
	c.Set(CtxIdentityKey, id)
	c.Set(CtxUserIDKey, id.UserID)
}

// CurrentIdentity returns the identity stored by Auth.
func CurrentIdentity(c *gin.Context) (*entity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*entity.Identity)
	return id, ok && id != nil
}
