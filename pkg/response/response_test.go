package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation("bad"), http.StatusBadRequest},
		{apperr.InvalidID("x"), http.StatusBadRequest},
		{apperr.DuplicateEmail(nil), http.StatusConflict},
		{apperr.NotFound("product"), http.StatusNotFound},
		{apperr.Unauthenticated("", nil), http.StatusUnauthorized},
		{apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperr.Storage("insert", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusOf(tc.err), tc.err.Error())
	}
}

func TestListReportsCantidad(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")

	resp := List[string](c, nil, "ok")
	c.JSON(resp.Status, resp)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["cantidad"])
	assert.Equal(t, []any{}, body["data"])
	assert.Equal(t, "rid-1", body["request_id"])
	assert.Equal(t, true, body["success"])
}

func TestFromErrorHidesStorageDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Abort(c, FromError(c, apperr.Storage("insert", errors.New("dial tcp: refused"))))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())
	assert.NotContains(t, w.Body.String(), "refused")
	assert.Contains(t, w.Body.String(), "internal server error")
}
