package gql

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application/apptest"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	tokens := helpers.NewJWTManager("test-secret", "")
	users := application.NewUserService(apptest.NewUserRepo(), tokens, nil)
	products := application.NewProductService(apptest.NewProductRepo(), nil)
	schema, err := NewSchema(users, products, helpers.DiscardLogger())
	require.NoError(t, err)
	return NewHandler(schema, application.NewAccessMediator(tokens, nil))
}

func exec(t *testing.T, h http.Handler, token, query string, vars map[string]any) gqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var out gqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func code(t *testing.T, res gqlResponse) string {
	t.Helper()
	require.NotEmpty(t, res.Errors)
	c, _ := res.Errors[0].Extensions["code"].(string)
	return c
}

const registroMutation = `mutation($n: String!, $e: String!, $p: String!) {
  registro(nombre: $n, email: $e, password: $p) { success token usuario { id nombre email fecha_registro } }
}`

const loginMutation = `mutation($e: String!, $p: String!) {
  login(email: $e, password: $p) { success message token usuario { email } }
}`

func registerAna(t *testing.T, h http.Handler) string {
	t.Helper()
	res := exec(t, h, "", registroMutation, map[string]any{"n": "Ana", "e": "ana@x.com", "p": "secret1"})
	require.Empty(t, res.Errors)
	var payload struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Data["registro"], &payload))
	require.True(t, payload.Success)
	return payload.Token
}

func TestSchemaParses(t *testing.T) {
	_, err := NewSchema(nil, nil, nil)
	require.NoError(t, err)
}

func TestLoginScenario(t *testing.T) {
	h := newTestHandler(t)
	registerAna(t, h)

	res := exec(t, h, "", loginMutation, map[string]any{"e": "ana@x.com", "p": "secret1"})
	require.Empty(t, res.Errors)
	assert.Contains(t, string(res.Data["login"]), `"email":"ana@x.com"`)

	res = exec(t, h, "", loginMutation, map[string]any{"e": "ana@x.com", "p": "wrong"})
	assert.Equal(t, CodeUnauthenticated, code(t, res))
	assert.Equal(t, "invalid credentials", res.Errors[0].Message)

	res = exec(t, h, "", registroMutation, map[string]any{"n": "Ana", "e": "ANA@x.com", "p": "secret1"})
	assert.Equal(t, CodeBadUserInput, code(t, res))

	res = exec(t, h, "", registroMutation, map[string]any{"n": "Bob", "e": "bob@x.com", "p": "123"})
	assert.Equal(t, CodeBadUserInput, code(t, res))
}

func TestProtectedFields(t *testing.T) {
	h := newTestHandler(t)

	res := exec(t, h, "", `{ productos { cantidad } }`, nil)
	assert.Equal(t, CodeUnauthenticated, code(t, res))
	assert.Equal(t, "authentication required", res.Errors[0].Message)

	res = exec(t, h, "not-a-token", `{ perfil { email } }`, nil)
	assert.Equal(t, CodeUnauthenticated, code(t, res))
	assert.Equal(t, "invalid or expired token", res.Errors[0].Message)

	token := registerAna(t, h)
	res = exec(t, h, token, `{ perfil { email } usuarios { nombre } }`, nil)
	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{"email":"ana@x.com"}`, string(res.Data["perfil"]))
	assert.JSONEq(t, `[{"nombre":"Ana"}]`, string(res.Data["usuarios"]))
}

func TestProductScenario(t *testing.T) {
	h := newTestHandler(t)
	token := registerAna(t, h)

	res := exec(t, h, token, `mutation($in: ProductoInput!) {
	  crearProducto(input: $in) { success data { id precio activo fecha_creacion createdAt updatedAt fecha_actualizacion } }
	}`, map[string]any{"in": map[string]any{
		"nombre": "Widget", "descripcion": "desc", "precio": 9.99, "stock": 5, "categoria": "tools", "activo": true,
	}})
	require.Empty(t, res.Errors)
	var created struct {
		Data struct {
			ID                 string  `json:"id"`
			Precio             float64 `json:"precio"`
			FechaCreacion      string  `json:"fecha_creacion"`
			CreatedAt          string  `json:"createdAt"`
			UpdatedAt          string  `json:"updatedAt"`
			FechaActualizacion string  `json:"fecha_actualizacion"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Data["crearProducto"], &created))
	assert.Equal(t, 9.99, created.Data.Precio)
	assert.Equal(t, created.Data.CreatedAt, created.Data.FechaCreacion)
	assert.Equal(t, created.Data.UpdatedAt, created.Data.FechaActualizacion)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, created.Data.CreatedAt)
	id := created.Data.ID

	res = exec(t, h, token, `{ productos(filtros: {activo: true, categoria: "tools"}) { cantidad data { nombre } } }`, nil)
	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{"cantidad":1,"data":[{"nombre":"Widget"}]}`, string(res.Data["productos"]))

	res = exec(t, h, token, `{ productos(filtros: {activo: false}) { cantidad data { nombre } } }`, nil)
	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{"cantidad":0,"data":[]}`, string(res.Data["productos"]))

	res = exec(t, h, token, `mutation($id: ID!) { actualizarProducto(id: $id, input: {stock: 2}) { data { stock nombre } } }`,
		map[string]any{"id": id})
	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{"data":{"stock":2,"nombre":"Widget"}}`, string(res.Data["actualizarProducto"]))

	res = exec(t, h, token, `mutation($id: ID!) { eliminarProducto(id: $id) { success data { id } } }`, map[string]any{"id": id})
	require.Empty(t, res.Errors)

	res = exec(t, h, token, `query($id: ID!) { producto(id: $id) { data { id } } }`, map[string]any{"id": id})
	assert.Equal(t, CodeNotFound, code(t, res))

	res = exec(t, h, token, `{ producto(id: "abc") { data { id } } }`, nil)
	assert.Equal(t, CodeBadUserInput, code(t, res))

	res = exec(t, h, token, `mutation { crearProducto(input: {nombre: " ", descripcion: "d", precio: -1, stock: 1, categoria: "c"}) { success } }`, nil)
	assert.Equal(t, CodeBadUserInput, code(t, res))
}

func TestInvalidInputAlwaysCarriesCode(t *testing.T) {
	h := newTestHandler(t)
	token := registerAna(t, h)

	res := exec(t, h, token, `mutation { actualizarProducto(id: "1", input: {precio: -2.5}) { success } }`, nil)
	assert.Equal(t, CodeBadUserInput, code(t, res))

	res = exec(t, h, token, `mutation($in: ProductoInput!) { crearProducto(input: $in) { success } }`,
		map[string]any{"in": map[string]any{"nombre": "W", "descripcion": "d", "precio": -1, "stock": 1, "categoria": "c"}})
	assert.Equal(t, CodeBadUserInput, code(t, res))

	res = exec(t, h, token, `mutation($in: ProductoInput!) { crearProducto(input: $in) { success } }`,
		map[string]any{"in": map[string]any{"nombre": strings.Repeat("n", 201), "descripcion": "d", "precio": 1, "stock": 1, "categoria": "c"}})
	assert.Equal(t, CodeBadUserInput, code(t, res))

	res = exec(t, h, token, `{ productos { nope } }`, nil)
	assert.Equal(t, CodeBadUserInput, code(t, res))

	res = exec(t, h, token, `{ productos(`, nil)
	assert.Equal(t, CodeBadUserInput, code(t, res))
}

func TestClassifyFieldErrorsWithoutCode(t *testing.T) {
	errs := []*qerrors.QueryError{
		{Message: "panic occurred", Path: []interface{}{"productos"}},
		{Message: "syntax error"},
		{Message: "not found", Extensions: map[string]interface{}{"code": CodeNotFound}},
		nil,
	}
	classify(errs)
	assert.Equal(t, CodeInternal, errs[0].Extensions["code"])
	assert.Equal(t, CodeBadUserInput, errs[1].Extensions["code"])
	assert.Equal(t, CodeNotFound, errs[2].Extensions["code"])
}
