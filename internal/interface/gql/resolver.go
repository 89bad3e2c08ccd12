package gql

import (
	"context"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/application"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
)

// Resolver is the root for both Query and Mutation. Every field except
// registro and login requires the identity placed on ctx by Handler.
type Resolver struct {
	Users    *application.UserService
	Products *application.ProductService
}

func identity(ctx context.Context) (*entity.Identity, error) {
	id, err := application.IdentityFrom(ctx)
	return id, toGraphQLError(err)
}

func (r *Resolver) Perfil(ctx context.Context) (*userResolver, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	u, err := r.Users.Profile(ctx, id.UserID)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return newUser(u), nil
}

func (r *Resolver) Usuarios(ctx context.Context) ([]*userResolver, error) {
	if _, err := identity(ctx); err != nil {
		return nil, err
	}
	users, err := r.Users.List(ctx)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	out := make([]*userResolver, 0, len(users))
	for _, u := range users {
		out = append(out, newUser(u))
	}
	return out, nil
}

func (r *Resolver) Productos(ctx context.Context, args struct{ Filtros *filtrosProducto }) (*productListResolver, error) {
	if _, err := identity(ctx); err != nil {
		return nil, err
	}
	var f entity.ProductFilter
	if args.Filtros != nil {
		f.Active = args.Filtros.Activo
		if args.Filtros.Categoria != nil {
			f.Category = strings.TrimSpace(*args.Filtros.Categoria)
		}
	}
	list, err := r.Products.List(ctx, f)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return &productListResolver{list: list}, nil
}

func (r *Resolver) Producto(ctx context.Context, args struct{ ID graphql.ID }) (*productResponseResolver, error) {
	if _, err := identity(ctx); err != nil {
		return nil, err
	}
	p, err := r.Products.Get(ctx, string(args.ID))
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return &productResponseResolver{message: "product found", p: p}, nil
}

func (r *Resolver) Registro(ctx context.Context, args struct {
	Nombre   string
	Email    string
	Password string
}) (*authPayloadResolver, error) {
	res, err := r.Users.Register(ctx, application.RegisterInput{Name: args.Nombre, Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return &authPayloadResolver{message: "user registered", res: res}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct {
	Email    string
	Password string
}) (*authPayloadResolver, error) {
	res, err := r.Users.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return &authPayloadResolver{message: "login successful", res: res}, nil
}

func (r *Resolver) CrearProducto(ctx context.Context, args struct{ Input productoInput }) (*productResponseResolver, error) {
	if _, err := identity(ctx); err != nil {
		return nil, err
	}
	in := args.Input
	p, err := r.Products.Create(ctx, entity.ProductInput{
		Name:        in.Nombre,
		Description: in.Descripcion,
		Price:       in.Precio,
		Stock:       int(in.Stock),
		Category:    in.Categoria,
		Active:      in.Activo,
	})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return &productResponseResolver{message: "product created", p: p}, nil
}

func (r *Resolver) ActualizarProducto(ctx context.Context, args struct {
	ID    graphql.ID
	Input actualizarProductoInput
}) (*productResponseResolver, error) {
	if _, err := identity(ctx); err != nil {
		return nil, err
	}
	p, err := r.Products.Update(ctx, string(args.ID), args.Input.patch())
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return &productResponseResolver{message: "product updated", p: p}, nil
}

func (r *Resolver) EliminarProducto(ctx context.Context, args struct{ ID graphql.ID }) (*productResponseResolver, error) {
	if _, err := identity(ctx); err != nil {
		return nil, err
	}
	p, err := r.Products.Delete(ctx, string(args.ID))
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return &productResponseResolver{message: "product deleted", p: p}, nil
}
