package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection    = "usuarios"
	ProductsCollection = "producto"
)

// Collections provisioned by ensureSchema.
var Collections = []string{UsersCollection, ProductsCollection}

// server error codes
const (
	codeNamespaceExists       = 48
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

func existingCollections(ctx context.Context, db *mongo.Database) ([]string, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": bson.M{"$in": Collections}})
	if err != nil {
		return nil, err
	}
	found := make(map[string]bool, len(names))
	for _, n := range names {
		found[n] = true
	}
	out := make([]string, 0, len(found))
	for _, c := range Collections {
		if found[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

// ensureSchema creates missing collections and the indexes the stores rely
// on. Existing collections and conflicting pre-existing indexes are left as
// they are; conflicts are returned as warnings.
func ensureSchema(ctx context.Context, db *mongo.Database) (created, warnings []string, err error) {
	for _, name := range Collections {
		err := db.CreateCollection(ctx, name)
		switch {
		case err == nil:
			created = append(created, name)
		case hasCode(err, codeNamespaceExists):
		default:
			return created, warnings, fmt.Errorf("create collection %s: %w", name, err)
		}
	}

	indexes := []struct {
		coll  string
		model mongo.IndexModel
	}{
		{UsersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		}},
		{ProductsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("createdAt_-1__id_-1"),
		}},
	}
	for _, ix := range indexes {
		_, err := db.Collection(ix.coll).Indexes().CreateOne(ctx, ix.model)
		switch {
		case err == nil:
		case hasCode(err, codeIndexOptionsConflict, codeIndexKeySpecsConflict):
			warnings = append(warnings, fmt.Sprintf("index on %s kept as is: %v", ix.coll, err))
		default:
			return created, warnings, fmt.Errorf("create index on %s: %w", ix.coll, err)
		}
	}
	return created, warnings, nil
}

func hasCode(err error, codes ...int32) bool {
	var ce mongo.CommandError
	if !errors.As(err, &ce) {
		return false
	}
	for _, c := range codes {
		if ce.Code == c {
			return true
		}
	}
	return false
}
