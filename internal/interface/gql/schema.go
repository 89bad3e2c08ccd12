// Package gql serves the GraphQL API. It exposes the same operations as the
// REST surface through the same services and access mediator.
package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
)

const schemaSDL = `
schema {
  query: Query
  mutation: Mutation
}

type Usuario {
  id: ID!
  nombre: String!
  email: String!
  fecha_registro: String
  createdAt: String
}

type AuthPayload {
  success: Boolean!
  message: String!
  usuario: Usuario
  token: String
  expiresAt: String
}

type Producto {
  id: ID!
  nombre: String!
  descripcion: String!
  precio: Float!
  stock: Int!
  categoria: String!
  activo: Boolean!
  fecha_creacion: String
  fecha_actualizacion: String
  createdAt: String
  updatedAt: String
}

type ProductoResponse {
  success: Boolean!
  message: String!
  data: Producto
  cantidad: Int
}

type ProductosResponse {
  success: Boolean!
  cantidad: Int!
  data: [Producto!]!
}

input FiltrosProducto {
  activo: Boolean
  categoria: String
}

input ProductoInput {
  nombre: String!
  descripcion: String!
  precio: Float!
  stock: Int!
  categoria: String!
  activo: Boolean
}

input ActualizarProductoInput {
  nombre: String
  descripcion: String
  precio: Float
  stock: Int
  categoria: String
  activo: Boolean
}

type Query {
  perfil: Usuario
  usuarios: [Usuario!]!
  productos(filtros: FiltrosProducto): ProductosResponse!
  producto(id: ID!): ProductoResponse!
}

type Mutation {
  registro(nombre: String!, email: String!, password: String!): AuthPayload!
  login(email: String!, password: String!): AuthPayload!
  crearProducto(input: ProductoInput!): ProductoResponse!
  actualizarProducto(id: ID!, input: ActualizarProductoInput!): ProductoResponse!
  eliminarProducto(id: ID!): ProductoResponse!
}
`

const maxQueryDepth = 8

// NewSchema parses the SDL against a resolver backed by the given services.
func NewSchema(users *application.UserService, products *application.ProductService, logger *logrus.Logger) (*graphql.Schema, error) {
	root := &Resolver{Users: users, Products: products}
	return graphql.ParseSchema(schemaSDL, root,
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{logger: logger}),
	)
}

// panicLogger routes resolver panics to logrus instead of the standard logger.
type panicLogger struct {
	logger *logrus.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.WithField("panic", value).Error("graphql resolver panic")
}
