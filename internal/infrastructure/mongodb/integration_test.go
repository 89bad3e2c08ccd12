package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/storetest"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

// TestMongoContract runs the shared store contract against a live server.
func TestMongoContract(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("set MONGO_TEST_URI to run the mongodb integration test")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, uri, 10*time.Second)
	require.NoError(t, err)
	db := client.Database(fmt.Sprintf("productos_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	created, _, err := ensureSchema(ctx, db)
	require.NoError(t, err)
	require.ElementsMatch(t, Collections, created)

	// second pass must not fail on existing collections or indexes
	created, _, err = ensureSchema(ctx, db)
	require.NoError(t, err)
	require.Empty(t, created)

	existing, err := existingCollections(ctx, db)
	require.NoError(t, err)
	require.ElementsMatch(t, Collections, existing)

	ids := storetest.IDs{Absent: primitive.NewObjectID().Hex(), Malformed: "42"}
	t.Run("users", func(t *testing.T) {
		storetest.RunUsers(t, NewUserRepository(db.Collection(UsersCollection), helpers.NewPasswordHasher(10)), ids)
	})
	t.Run("products", func(t *testing.T) {
		storetest.RunProducts(t, NewProductRepository(db.Collection(ProductsCollection)), ids)
	})
}
