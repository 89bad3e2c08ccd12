package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

func TestMalformedIDsFailWithoutServer(t *testing.T) {
	products := NewProductRepository(nil)
	users := NewUserRepository(nil, helpers.NewPasswordHasher(10))
	ctx := context.Background()

	for _, id := range []string{"", "42", "zzzzzzzzzzzzzzzzzzzzzzzz", "507f1f77bcf86cd79943901"} {
		_, err := products.GetByID(ctx, id)
		assert.ErrorIs(t, err, apperr.ErrInvalidID, id)
		_, err = products.Update(ctx, id, entity.ProductPatch{})
		assert.ErrorIs(t, err, apperr.ErrInvalidID, id)
		_, err = products.Delete(ctx, id)
		assert.ErrorIs(t, err, apperr.ErrInvalidID, id)
		_, err = users.FindByID(ctx, id)
		assert.ErrorIs(t, err, apperr.ErrInvalidID, id)
	}
}

func TestCreateValidatesWithoutServer(t *testing.T) {
	_, err := NewProductRepository(nil).Create(context.Background(), entity.ProductInput{
		Name: "a", Description: "b", Category: "c", Price: -3,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListFilter(t *testing.T) {
	yes, no := true, false

	assert.Empty(t, listFilter(entity.ProductFilter{}))
	assert.Equal(t,
		bson.D{{Key: "activo", Value: bson.M{"$ne": false}}, {Key: "categoria", Value: "tools"}},
		listFilter(entity.ProductFilter{Active: &yes, Category: "tools"}))
	assert.Equal(t, bson.D{{Key: "activo", Value: false}}, listFilter(entity.ProductFilter{Active: &no}))
}

func TestUpdatePipelineWrapsLiterals(t *testing.T) {
	name := "$where"
	stock := 4
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	p := updatePipeline(entity.ProductPatch{Name: &name, Stock: &stock}, now)
	require.Len(t, p, 1)
	stage := p[0]
	require.Equal(t, "$set", stage[0].Key)
	set, ok := stage[0].Value.(bson.D)
	require.True(t, ok)
	require.Len(t, set, 3)

	assert.Equal(t, bson.E{Key: "nombre", Value: bson.M{"$literal": "$where"}}, set[0])
	assert.Equal(t, bson.E{Key: "stock", Value: bson.M{"$literal": int32(4)}}, set[1])
	assert.Equal(t, "updatedAt", set[2].Key)
}

func TestEmptyPatchStillTouchesUpdatedAt(t *testing.T) {
	p := updatePipeline(entity.ProductPatch{}, time.Now())
	set := p[0][0].Value.(bson.D)
	require.Len(t, set, 1)
	assert.Equal(t, "updatedAt", set[0].Key)
}
