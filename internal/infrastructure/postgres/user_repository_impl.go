package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/normalize"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

const uniqueViolation = "23505"

const userColumns = `id, nombre, email, password, COALESCE(fecha_registro, 'epoch'::timestamp)`

type UserRepository struct {
	db     DBTX
	hasher helpers.PasswordHasher
	now    func() time.Time
}

func NewUserRepository(db DBTX, hasher helpers.PasswordHasher) *UserRepository {
	return &UserRepository{db: db, hasher: hasher, now: time.Now}
}

func scanUser(row pgx.Row) (*normalize.PGUser, error) {
	var u normalize.PGUser
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.RegisteredAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, name, email, password string) (*entity.User, error) {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := entity.CanonicalTime(r.now())
	rec, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO usuarios (nombre, email, password, fecha_registro)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, entity.NormalizeEmail(email), hash, now))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.DuplicateEmail(err)
		}
		return nil, apperr.Storage("create user", err)
	}
	return normalize.User(rec), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.Credentials, error) {
	rec, err := scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM usuarios
		WHERE LOWER(email) = $1
		LIMIT 1
	`, entity.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage("find user by email", err)
	}
	return normalize.Credentials(rec), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	rec, err := scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM usuarios
		WHERE id = $1
	`, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage("find user by id", err)
	}
	return normalize.User(rec), nil
}

func (r *UserRepository) VerifyPassword(plain, hash string) bool {
	return r.hasher.Compare(hash, plain)
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM usuarios
		ORDER BY fecha_registro DESC NULLS LAST, id DESC
	`)
	if err != nil {
		return nil, apperr.Storage("list users", err)
	}
	defer rows.Close()

	users := []*entity.User{}
	for rows.Next() {
		rec, err := scanUser(rows)
		if err != nil {
			return nil, apperr.Storage("scan user", err)
		}
		users = append(users, normalize.User(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list users", err)
	}
	return users, nil
}

// parseID accepts the positive base-10 integers a SERIAL column can hold.
func parseID(id string) (int32, error) {
	n, err := strconv.ParseInt(id, 10, 32)
	if err != nil || n <= 0 {
		return 0, apperr.InvalidID(id)
	}
	return int32(n), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ repository.UserRepository = (*UserRepository)(nil)
