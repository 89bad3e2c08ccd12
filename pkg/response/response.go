package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
)

type APIResponse[T any] struct {
	Status    int             `json:"status"`
	Timestamp entity.JSONTime `json:"timestamp"`
	RequestID string          `json:"request_id,omitempty"`
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Data      T               `json:"data"`
	Cantidad  *int            `json:"cantidad,omitempty"`
	Error     interface{}     `json:"error,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: entity.JSONTime(time.Now()),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	}
}

// List is Success for collections; it always reports cantidad, zero included.
func List[T any](ctx *gin.Context, items []T, message string) APIResponse[[]T] {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	resp := Success(ctx, http.StatusOK, items, message)
	resp.Cantidad = &n
	return resp
}

func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: entity.JSONTime(time.Now()),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
}

// FromError builds the failure envelope for a classified error.
func FromError(ctx *gin.Context, err error) APIResponse[any] {
	return Error[any](ctx, StatusOf(err), apperr.PublicMessage(err), apperr.KindOf(err).String())
}

// Abort writes resp and stops the handler chain.
func Abort[T any](ctx *gin.Context, resp APIResponse[T]) {
	ctx.AbortWithStatusJSON(resp.Status, resp)
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindInvalidID:
		return http.StatusBadRequest
	case apperr.KindDuplicateEmail:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnauthenticated, apperr.KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
