package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/storetest"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

// TestPostgresContract runs the shared store contract against a live database.
func TestPostgresContract(t *testing.T) {
	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("set PG_TEST_DSN to run the postgres integration test")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, 4, 0, 0)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, runMigrations(pool))
	// a second run must be a no-op
	require.NoError(t, runMigrations(pool))

	existing, err := existingTables(ctx, pool)
	require.NoError(t, err)
	require.ElementsMatch(t, Tables, existing)

	ids := storetest.IDs{Absent: "2147483000", Malformed: "not-a-number"}
	t.Run("users", func(t *testing.T) {
		storetest.RunUsers(t, NewUserRepository(pool, helpers.NewPasswordHasher(10)), ids)
	})
	t.Run("products", func(t *testing.T) {
		storetest.RunProducts(t, NewProductRepository(pool), ids)
	})
}
