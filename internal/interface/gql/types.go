package gql

import (
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
)

func timeString(t time.Time) *string { return entity.FormatTime(t) }

type userResolver struct{ u *entity.User }

func newUser(u *entity.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{u: u}
}

func (r *userResolver) ID() graphql.ID         { return graphql.ID(r.u.ID) }
func (r *userResolver) Nombre() string         { return r.u.Name }
func (r *userResolver) Email() string          { return r.u.Email }
func (r *userResolver) FechaRegistro() *string { return timeString(r.u.RegisteredAt) }
func (r *userResolver) CreatedAt() *string     { return timeString(r.u.CreatedAt) }

type authPayloadResolver struct {
	message string
	res     *application.AuthResult
}

func (r *authPayloadResolver) Success() bool          { return true }
func (r *authPayloadResolver) Message() string        { return r.message }
func (r *authPayloadResolver) Usuario() *userResolver { return newUser(r.res.User) }
func (r *authPayloadResolver) Token() *string         { return &r.res.Token }
func (r *authPayloadResolver) ExpiresAt() *string     { return timeString(r.res.ExpiresAt) }

type productResolver struct{ p *entity.Product }

func newProduct(p *entity.Product) *productResolver {
	if p == nil {
		return nil
	}
	return &productResolver{p: p}
}

func (r *productResolver) ID() graphql.ID              { return graphql.ID(r.p.ID) }
func (r *productResolver) Nombre() string              { return r.p.Name }
func (r *productResolver) Descripcion() string         { return r.p.Description }
func (r *productResolver) Precio() float64             { return r.p.Price }
func (r *productResolver) Stock() int32                { return int32(r.p.Stock) }
func (r *productResolver) Categoria() string           { return r.p.Category }
func (r *productResolver) Activo() bool                { return r.p.Active }
func (r *productResolver) FechaCreacion() *string      { return timeString(r.p.CreationDate) }
func (r *productResolver) FechaActualizacion() *string { return timeString(r.p.UpdateDate) }
func (r *productResolver) CreatedAt() *string          { return timeString(r.p.CreatedAt) }
func (r *productResolver) UpdatedAt() *string          { return timeString(r.p.UpdatedAt) }

type productResponseResolver struct {
	message string
	p       *entity.Product
}

func (r *productResponseResolver) Success() bool          { return true }
func (r *productResponseResolver) Message() string        { return r.message }
func (r *productResponseResolver) Data() *productResolver { return newProduct(r.p) }
func (r *productResponseResolver) Cantidad() *int32       { return nil }

type productListResolver struct {
	list []*entity.Product
}

func (r *productListResolver) Success() bool   { return true }
func (r *productListResolver) Cantidad() int32 { return int32(len(r.list)) }

func (r *productListResolver) Data() []*productResolver {
	out := make([]*productResolver, 0, len(r.list))
	for _, p := range r.list {
		out = append(out, newProduct(p))
	}
	return out
}

type filtrosProducto struct {
	Activo    *bool
	Categoria *string
}

type productoInput struct {
	Nombre      string
	Descripcion string
	Precio      float64
	Stock       int32
	Categoria   string
	Activo      *bool
}

type actualizarProductoInput struct {
	Nombre      *string
	Descripcion *string
	Precio      *float64
	Stock       *int32
	Categoria   *string
	Activo      *bool
}

func (in actualizarProductoInput) patch() entity.ProductPatch {
	p := entity.ProductPatch{
		Name:        in.Nombre,
		Description: in.Descripcion,
		Price:       in.Precio,
		Category:    in.Categoria,
		Active:      in.Activo,
	}
	if in.Stock != nil {
		s := int(*in.Stock)
		p.Stock = &s
	}
	return p
}
