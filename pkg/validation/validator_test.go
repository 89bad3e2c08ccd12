package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"nombre" binding:"required,max=5"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func TestNewUsesJSONNamesAndAliases(t *testing.T) {
	err := New().Struct(signup{Name: "toolongname", Email: "nope", Password: "123"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, map[string]string{
		"nombre":   "must be at most 5 characters long",
		"email":    "must be a valid email",
		"password": "must be at least 6 characters long",
	}, details)
	assert.Equal(t,
		"email must be a valid email; nombre must be at most 5 characters long; password must be at least 6 characters long",
		Message(details))
}

func TestToDetailsJSONErrors(t *testing.T) {
	var v struct{ N int }
	err := json.Unmarshal([]byte(`{"N":"x"}`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
