// Package storetest holds the behavioral contract every storage engine must
// satisfy. Engine packages run it from env-gated integration tests.
package storetest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
)

// IDs gives the contract one well-formed id that matches nothing and one
// malformed id for the engine under test.
type IDs struct {
	Absent    string
	Malformed string
}

func unique(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// RunProducts exercises the catalog store contract.
func RunProducts(t *testing.T, repo repository.ProductRepository, ids IDs) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		created, err := repo.Create(ctx, entity.ProductInput{
			Name: "Lamp", Description: "desk lamp", Price: 12.5, Stock: 4, Category: unique("home"),
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
		assert.Equal(t, got.CreatedAt, got.CreationDate)
		assert.Equal(t, got.UpdatedAt, got.UpdateDate)
	})

	t.Run("empty update only moves updatedAt", func(t *testing.T) {
		created, err := repo.Create(ctx, entity.ProductInput{
			Name: "Cup", Description: "mug", Price: 3, Stock: 1, Category: unique("kitchen"),
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, entity.ProductPatch{})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)

		updated.UpdatedAt, updated.UpdateDate = created.UpdatedAt, created.UpdateDate
		assert.Equal(t, created, updated)
	})

	t.Run("absent and malformed ids", func(t *testing.T) {
		p, err := repo.GetByID(ctx, ids.Absent)
		require.NoError(t, err)
		assert.Nil(t, p)

		p, err = repo.Update(ctx, ids.Absent, entity.ProductPatch{})
		require.NoError(t, err)
		assert.Nil(t, p)

		p, err = repo.Delete(ctx, ids.Absent)
		require.NoError(t, err)
		assert.Nil(t, p)

		_, err = repo.Delete(ctx, ids.Malformed)
		assert.ErrorIs(t, err, apperr.ErrInvalidID)
		_, err = repo.GetByID(ctx, ids.Malformed)
		assert.ErrorIs(t, err, apperr.ErrInvalidID)
	})

	t.Run("negative values rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, entity.ProductInput{Name: "x", Description: "y", Category: "z", Stock: -1})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("widget lifecycle", func(t *testing.T) {
		category := unique("tools")
		active := true
		w, err := repo.Create(ctx, entity.ProductInput{
			Name: "Widget", Description: "blue widget", Price: 9.99, Stock: 3, Category: category,
		})
		require.NoError(t, err)
		_, err = repo.Create(ctx, entity.ProductInput{
			Name: "Old widget", Description: "retired", Price: 1, Stock: 0, Category: category, Active: new(bool),
		})
		require.NoError(t, err)

		list, err := repo.List(ctx, entity.ProductFilter{Active: &active, Category: category})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, w.ID, list[0].ID)

		all, err := repo.List(ctx, entity.ProductFilter{Category: category})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.False(t, all[0].CreatedAt.Before(all[1].CreatedAt), "newest first")

		price := 14.5
		updated, err := repo.Update(ctx, w.ID, entity.ProductPatch{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 14.5, updated.Price)
		assert.Equal(t, "Widget", updated.Name)

		list, err = repo.List(ctx, entity.ProductFilter{Active: &active, Category: category})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 14.5, list[0].Price)

		gone, err := repo.Delete(ctx, w.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, gone)

		after, err := repo.GetByID(ctx, w.ID)
		require.NoError(t, err)
		assert.Nil(t, after)
	})
}

// RunUsers exercises the credential store contract.
func RunUsers(t *testing.T, repo repository.UserRepository, ids IDs) {
	ctx := context.Background()
	email := unique("ana") + "@example.com"

	created, err := repo.Create(ctx, "Ana", email, "secret1")
	require.NoError(t, err)
	assert.Equal(t, email, created.Email)

	t.Run("duplicate email ignores case", func(t *testing.T) {
		_, err := repo.Create(ctx, "Ana Again", "  "+strings.ToUpper(email), "another")
		assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	})

	t.Run("find by email verifies password", func(t *testing.T) {
		creds, err := repo.FindByEmail(ctx, strings.ToUpper(email))
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, created.ID, creds.User.ID)
		assert.NotEqual(t, "secret1", creds.PasswordHash)
		assert.True(t, repo.VerifyPassword("secret1", creds.PasswordHash))
		assert.False(t, repo.VerifyPassword("secret2", creds.PasswordHash))
	})

	t.Run("find by id", func(t *testing.T) {
		u, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, u)

		u, err = repo.FindByID(ctx, ids.Absent)
		require.NoError(t, err)
		assert.Nil(t, u)

		_, err = repo.FindByID(ctx, ids.Malformed)
		assert.ErrorIs(t, err, apperr.ErrInvalidID)
	})

	t.Run("list includes the new user", func(t *testing.T) {
		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		var found bool
		for _, u := range all {
			found = found || u.ID == created.ID
		}
		assert.True(t, found)
	})

	creds, err := repo.FindByEmail(ctx, "missing-"+email)
	require.NoError(t, err)
	assert.Nil(t, creds)
}
