package gql

import (
	"encoding/json"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	qerrors "github.com/graph-gophers/graphql-go/errors"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
)

// Handler resolves the Authorization header once per request and leaves the
// per-field decision to the resolvers, since registro and login are public.
type Handler struct {
	Schema   *graphql.Schema
	Mediator *application.AccessMediator
}

func NewHandler(schema *graphql.Schema, mediator *application.AccessMediator) *Handler {
	return &Handler{Schema: schema, Mediator: mediator}
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var params request
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "invalid graphql request body", http.StatusBadRequest)
		return
	}

	id, authErr := h.Mediator.Authorize(r.Header.Get("Authorization"))
	ctx := application.WithAuth(r.Context(), id, authErr)

	resp := h.Schema.Exec(ctx, params.Query, params.OperationName, params.Variables)
	classify(resp.Errors)

	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to encode graphql response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// classify gives every error an extensions.code. Errors raised before any
// resolver ran (parse, validation, variable coercion) carry no path and are
// the caller's fault; field errors without a code are internal.
func classify(errs []*qerrors.QueryError) {
	for _, e := range errs {
		if e == nil {
			continue
		}
		if _, ok := e.Extensions["code"]; ok {
			continue
		}
		if e.Extensions == nil {
			e.Extensions = map[string]interface{}{}
		}
		if len(e.Path) == 0 {
			e.Extensions["code"] = CodeBadUserInput
		} else {
			e.Extensions["code"] = CodeInternal
		}
	}
}
