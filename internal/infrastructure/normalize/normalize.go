// Package normalize maps native records of either storage engine onto the
// canonical entities. Every record leaving a store passes through here.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
)

// Product accepts *PGProduct, *MongoProduct or an already canonical product
// (values or pointers). nil in any form yields nil.
func Product(rec any) *entity.Product {
	var p entity.Product
	switch r := rec.(type) {
	case nil:
		return nil
	case *PGProduct:
		if r == nil {
			return nil
		}
		return Product(*r)
	case PGProduct:
		p = entity.Product{
			ID:          ID(r.ID),
			Name:        r.Name,
			Description: r.Description,
			Price:       Float(r.Price),
			Stock:       int(r.Stock),
			Category:    r.Category,
			Active:      r.Active,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
	case *MongoProduct:
		if r == nil {
			return nil
		}
		return Product(*r)
	case MongoProduct:
		p = entity.Product{
			ID:          ID(r.ID),
			Name:        r.Name,
			Description: r.Description,
			Price:       Float(r.Price),
			Stock:       Int(r.Stock),
			Category:    r.Category,
			Active:      r.Active == nil || *r.Active,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
	case *entity.Product:
		if r == nil {
			return nil
		}
		p = *r
	case entity.Product:
		p = r
	default:
		panic(fmt.Sprintf("normalize: unsupported product record %T", rec))
	}
	p.Canonicalize()
	return &p
}

// User mirrors Product for account records. Password hashes are dropped.
func User(rec any) *entity.User {
	var u entity.User
	switch r := rec.(type) {
	case nil:
		return nil
	case *PGUser:
		if r == nil {
			return nil
		}
		return User(*r)
	case PGUser:
		u = entity.User{ID: ID(r.ID), Name: r.Name, Email: r.Email, RegisteredAt: r.RegisteredAt}
	case *MongoUser:
		if r == nil {
			return nil
		}
		return User(*r)
	case MongoUser:
		registered := r.RegisteredAt
		if registered.IsZero() {
			registered = r.CreatedAt
		}
		u = entity.User{ID: ID(r.ID), Name: r.Name, Email: r.Email, RegisteredAt: registered}
	case *entity.User:
		if r == nil {
			return nil
		}
		u = *r
	case entity.User:
		u = r
	default:
		panic(fmt.Sprintf("normalize: unsupported user record %T", rec))
	}
	u.Canonicalize()
	return &u
}

// Credentials pairs the canonical user with the stored hash.
func Credentials(rec any) *entity.Credentials {
	u := User(rec)
	if u == nil {
		return nil
	}
	var hash string
	switch r := rec.(type) {
	case *PGUser:
		hash = r.Password
	case PGUser:
		hash = r.Password
	case *MongoUser:
		hash = r.Password
	case MongoUser:
		hash = r.Password
	}
	return &entity.Credentials{User: *u, PasswordHash: hash}
}

// ID renders any engine identifier as a string.
func ID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case int32:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case int:
		return strconv.Itoa(id)
	case primitive.ObjectID:
		if id.IsZero() {
			return ""
		}
		return id.Hex()
	default:
		return fmt.Sprint(v)
	}
}

// Float coerces engine numerics to float64. Unparseable input becomes 0.
func Float(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return parseFloat(n)
	case primitive.Decimal128:
		return parseFloat(n.String())
	case pgtype.Numeric:
		f, err := n.Float64Value()
		if err != nil || !f.Valid || math.IsNaN(f.Float64) || math.IsInf(f.Float64, 0) {
			return 0
		}
		return f.Float64
	case *pgtype.Numeric:
		if n == nil {
			return 0
		}
		return Float(*n)
	default:
		return 0
	}
}

// Int coerces engine integers (or integral floats and strings) to int.
func Int(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(math.Round(n))
	case float32:
		return int(math.Round(float64(n)))
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
		return int(math.Round(parseFloat(n)))
	case primitive.Decimal128:
		return int(math.Round(parseFloat(n.String())))
	default:
		return 0
	}
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
