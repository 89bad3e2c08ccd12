package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/normalize"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type ProductRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewProductRepository(coll *mongo.Collection) *ProductRepository {
	return &ProductRepository{coll: coll, now: time.Now}
}

func (r *ProductRepository) Create(ctx context.Context, in entity.ProductInput) (*entity.Product, error) {
	in, err := in.Prepare()
	if err != nil {
		return nil, err
	}
	active := in.IsActive()
	now := entity.CanonicalTime(r.now())
	doc := normalize.MongoProduct{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       int32(in.Stock),
		Category:    in.Category,
		Active:      &active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, apperr.Storage("create product", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return normalize.Product(&doc), nil
}

// listFilter treats a missing activo field as true, matching the normalizer.
func listFilter(f entity.ProductFilter) bson.D {
	filter := bson.D{}
	if f.Active != nil {
		if *f.Active {
			filter = append(filter, bson.E{Key: "activo", Value: bson.M{"$ne": false}})
		} else {
			filter = append(filter, bson.E{Key: "activo", Value: false})
		}
	}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "categoria", Value: f.Category})
	}
	return filter
}

func (r *ProductRepository) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	cur, err := r.coll.Find(ctx, listFilter(f), options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, apperr.Storage("list products", err)
	}
	var docs []normalize.MongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperr.Storage("list products", err)
	}
	out := make([]*entity.Product, 0, len(docs))
	for i := range docs {
		out = append(out, normalize.Product(&docs[i]))
	}
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return decodeOne(r.coll.FindOne(ctx, bson.M{"_id": oid}), "get product")
}

// updatePipeline builds a single $set stage. Values are wrapped in $literal
// so strings starting with "$" are not read as field paths. updatedAt becomes
// max(now, previous+1ms).
func updatePipeline(patch entity.ProductPatch, now time.Time) mongo.Pipeline {
	set := bson.D{}
	literal := func(key string, v any) {
		set = append(set, bson.E{Key: key, Value: bson.M{"$literal": v}})
	}
	if patch.Name != nil {
		literal("nombre", *patch.Name)
	}
	if patch.Description != nil {
		literal("descripcion", *patch.Description)
	}
	if patch.Price != nil {
		literal("precio", *patch.Price)
	}
	if patch.Stock != nil {
		literal("stock", int32(*patch.Stock))
	}
	if patch.Category != nil {
		literal("categoria", *patch.Category)
	}
	if patch.Active != nil {
		literal("activo", *patch.Active)
	}
	previous := bson.M{"$ifNull": bson.A{"$updatedAt", "$createdAt"}}
	set = append(set, bson.E{Key: "updatedAt", Value: bson.M{
		"$max": bson.A{now, bson.M{"$add": bson.A{previous, 1}}},
	}})
	return mongo.Pipeline{{{Key: "$set", Value: set}}}
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	patch, err = patch.Prepare()
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, updatePipeline(patch, entity.CanonicalTime(r.now())), opts)
	return decodeOne(res, "update product")
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return decodeOne(r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}), "delete product")
}

func decodeOne(res *mongo.SingleResult, op string) (*entity.Product, error) {
	var doc normalize.MongoProduct
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.Storage(op, err)
	}
	return normalize.Product(&doc), nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
