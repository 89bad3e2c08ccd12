package normalize

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PGUser is a usuarios row as the relational store scans it.
type PGUser struct {
	ID           int32
	Name         string
	Email        string
	Password     string
	RegisteredAt time.Time
}

// PGProduct is a productos row. Price keeps the NUMERIC wire type.
type PGProduct struct {
	ID          int32
	Name        string
	Description string
	Price       pgtype.Numeric
	Stock       int32
	Category    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MongoUser is a usuarios document.
type MongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"nombre"`
	Email        string             `bson:"email"`
	Password     string             `bson:"password"`
	RegisteredAt time.Time          `bson:"fecha_registro"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// MongoProduct is a producto document. Price and stock are left untyped because
// documents written by other clients may hold any BSON numeric or a string.
type MongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"nombre"`
	Description string             `bson:"descripcion"`
	Price       any                `bson:"precio"`
	Stock       any                `bson:"stock"`
	Category    string             `bson:"categoria"`
	Active      *bool              `bson:"activo,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}
