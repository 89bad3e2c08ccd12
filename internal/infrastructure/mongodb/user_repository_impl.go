package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/normalize"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

var withoutPassword = bson.M{"password": 0}

type UserRepository struct {
	coll   *mongo.Collection
	hasher helpers.PasswordHasher
	now    func() time.Time
}

func NewUserRepository(coll *mongo.Collection, hasher helpers.PasswordHasher) *UserRepository {
	return &UserRepository{coll: coll, hasher: hasher, now: time.Now}
}

func (r *UserRepository) Create(ctx context.Context, name, email, password string) (*entity.User, error) {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := entity.CanonicalTime(r.now())
	doc := normalize.MongoUser{
		Name:         name,
		Email:        entity.NormalizeEmail(email),
		Password:     hash,
		RegisteredAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.DuplicateEmail(err)
		}
		return nil, apperr.Storage("create user", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return normalize.User(&doc), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.Credentials, error) {
	var doc normalize.MongoUser
	err := r.coll.FindOne(ctx, bson.M{"email": entity.NormalizeEmail(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.Storage("find user by email", err)
	}
	return normalize.Credentials(&doc), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc normalize.MongoUser
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutPassword)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.Storage("find user by id", err)
	}
	return normalize.User(&doc), nil
}

func (r *UserRepository) VerifyPassword(plain, hash string) bool {
	return r.hasher.Compare(hash, plain)
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*entity.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "fecha_registro", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(withoutPassword)
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperr.Storage("list users", err)
	}
	var docs []normalize.MongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperr.Storage("list users", err)
	}
	users := make([]*entity.User, 0, len(docs))
	for i := range docs {
		users = append(users, normalize.User(&docs[i]))
	}
	return users, nil
}

// parseID accepts 24-character hex ObjectIDs only.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidID(id)
	}
	return oid, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
