package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc "))
	assert.Empty(t, BearerToken("Basic abc"))
	assert.Empty(t, BearerToken("abc"))
	assert.Empty(t, BearerToken(""))
}

func TestAuthorize(t *testing.T) {
	tokens := helpers.NewJWTManager("test-secret", "")
	m := NewAccessMediator(tokens, nil)

	token, _, err := tokens.Issue("7", "ana@x.com")
	require.NoError(t, err)

	id, err := m.Authorize("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "7", id.UserID)
	assert.Equal(t, "ana@x.com", id.Email)

	_, err = m.Authorize("")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.Equal(t, "authentication required", apperr.PublicMessage(err))

	_, err = m.Authorize("Bearer garbage")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.Equal(t, "invalid or expired token", apperr.PublicMessage(err))

	other := helpers.NewJWTManager("other-secret", "")
	forged, _, err := other.Issue("7", "ana@x.com")
	require.NoError(t, err)
	_, err = m.Authorize("Bearer " + forged)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestAuthorizeExpired(t *testing.T) {
	tokens := helpers.NewJWTManager("test-secret", "")
	tokens.TTL = -time.Minute
	token, _, err := tokens.Issue("7", "ana@x.com")
	require.NoError(t, err)

	_, err = NewAccessMediator(tokens, nil).AuthorizeToken(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestIdentityFromContext(t *testing.T) {
	_, err := IdentityFrom(context.Background())
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	tokens := helpers.NewJWTManager("test-secret", "")
	m := NewAccessMediator(tokens, nil)
	token, _, err := tokens.Issue("7", "ana@x.com")
	require.NoError(t, err)

	ctx := WithAuth(context.Background(), nil, nil)
	_, err = IdentityFrom(ctx)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	id, authErr := m.Authorize("Bearer " + token)
	got, err := IdentityFrom(WithAuth(context.Background(), id, authErr))
	require.NoError(t, err)
	assert.Equal(t, "7", got.UserID)

	id, authErr = m.Authorize("Bearer nope")
	_, err = IdentityFrom(WithAuth(context.Background(), id, authErr))
	assert.Equal(t, "invalid or expired token", apperr.PublicMessage(err))
}
