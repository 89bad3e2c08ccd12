package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

const msgBadToken = "invalid or expired token"

type TokenVerifier interface {
	Verify(token string) (*helpers.Claims, error)
}

// AccessMediator is the single gate in front of every protected operation on
// both the REST and GraphQL surfaces. Callers only ever see Unauthenticated;
// the reason is logged.
type AccessMediator struct {
	Tokens TokenVerifier
	Logger *logrus.Logger
}

func NewAccessMediator(tokens TokenVerifier, logger *logrus.Logger) *AccessMediator {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	return &AccessMediator{Tokens: tokens, Logger: logger}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authorize resolves an Authorization header into an identity.
func (m *AccessMediator) Authorize(header string) (*entity.Identity, error) {
	token := BearerToken(header)
	if token == "" {
		return nil, apperr.Unauthenticated("", nil)
	}
	return m.AuthorizeToken(token)
}

func (m *AccessMediator) AuthorizeToken(token string) (*entity.Identity, error) {
	claims, err := m.Tokens.Verify(token)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, helpers.ErrExpiredToken) {
			reason = "expired"
		}
		m.Logger.WithError(err).WithField("reason", reason).Debug("token rejected")
		return nil, apperr.Unauthenticated(msgBadToken, err)
	}
	return &entity.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

type authKey struct{}

type authResult struct {
	identity *entity.Identity
	err      error
}

// WithAuth stores the outcome of Authorize on ctx for transports that resolve
// authorization once per request and check it per operation.
func WithAuth(ctx context.Context, id *entity.Identity, err error) context.Context {
	return context.WithValue(ctx, authKey{}, authResult{identity: id, err: err})
}

// IdentityFrom returns the identity stored by WithAuth, or Unauthenticated.
func IdentityFrom(ctx context.Context) (*entity.Identity, error) {
	res, ok := ctx.Value(authKey{}).(authResult)
	if !ok {
		return nil, apperr.Unauthenticated("", nil)
	}
	if res.err != nil {
		return nil, res.err
	}
	if res.identity == nil {
		return nil, apperr.Unauthenticated("", nil)
	}
	return res.identity, nil
}
