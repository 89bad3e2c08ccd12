package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	repo "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/validation"
)

type TokenIssuer interface {
	Issue(userID, email string) (string, time.Time, error)
}

type UserService struct {
	Repo     repo.UserRepository
	Tokens   TokenIssuer
	Logger   *logrus.Logger
	validate *validator.Validate
}

func NewUserService(r repo.UserRepository, tokens TokenIssuer, logger *logrus.Logger) *UserService {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	return &UserService{Repo: r, Tokens: tokens, Logger: logger, validate: validation.New()}
}

type RegisterInput struct {
	Name     string `json:"nombre" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,pwd,max=72"`
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	User      *entity.User `json:"usuario"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (r AuthResult) MarshalJSON() ([]byte, error) {
	type plain AuthResult
	return json.Marshal(struct {
		plain
		ExpiresAt entity.JSONTime `json:"expiresAt"`
	}{plain: plain(r), ExpiresAt: entity.JSONTime(r.ExpiresAt)})
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = entity.NormalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.Validation("%s", validation.Message(validation.ToDetails(err)))
	}

	existing, err := s.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, s.fail("register: lookup email", err)
	}
	if existing != nil {
		return nil, apperr.DuplicateEmail(nil)
	}

	u, err := s.Repo.Create(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		return nil, s.fail("register: create user", err)
	}
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	return s.issue(u)
}

// Login answers ErrInvalidCredentials for an unknown email and a wrong password alike.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	creds, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.fail("login: lookup email", err)
	}
	if creds == nil || !s.Repo.VerifyPassword(password, creds.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}
	u := creds.User
	return s.issue(&u)
}

func (s *UserService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if errors.Is(err, apperr.ErrInvalidID) || (err == nil && u == nil) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, s.fail("profile", err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, s.fail("list users", err)
	}
	return users, nil
}

func (s *UserService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, s.fail("issue token", err)
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *UserService) fail(op string, err error) error {
	return logFailure(s.Logger, op, err)
}

// logFailure logs server-side failures with their cause and passes err through.
// Caller mistakes (validation, not found, ...) are not logged.
func logFailure(logger *logrus.Logger, op string, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindStorage, apperr.KindInternal, apperr.KindConfiguration:
		helpers.LogError(logger, op+" failed", err, nil)
	}
	return err
}
