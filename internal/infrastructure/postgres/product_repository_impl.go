package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/normalize"
)

// Nullable columns are coalesced to the defaults the table declares so the
// scan targets stay plain values.
const productColumns = `id, nombre, COALESCE(descripcion, ''), precio, COALESCE(stock, 0),
	COALESCE(categoria, ''), COALESCE(activo, true),
	COALESCE(fecha_creacion, 'epoch'::timestamp),
	COALESCE(fecha_actualizacion, fecha_creacion, 'epoch'::timestamp)`

type ProductRepository struct {
	db  DBTX
	now func() time.Time
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db, now: time.Now}
}

func scanProduct(row pgx.Row) (*normalize.PGProduct, error) {
	var p normalize.PGProduct
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (r *ProductRepository) Create(ctx context.Context, in entity.ProductInput) (*entity.Product, error) {
	in, err := in.Prepare()
	if err != nil {
		return nil, err
	}
	now := entity.CanonicalTime(r.now())
	rec, err := scanProduct(r.db.QueryRow(ctx, `
		INSERT INTO productos (nombre, descripcion, precio, stock, categoria, activo, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING `+productColumns,
		in.Name, in.Description, formatPrice(in.Price), int32(in.Stock), in.Category, in.IsActive(), now))
	if err != nil {
		return nil, apperr.Storage("create product", err)
	}
	return normalize.Product(rec), nil
}

func (r *ProductRepository) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + productColumns + ` FROM productos WHERE 1=1`)
	if filter.Active != nil {
		args = append(args, *filter.Active)
		fmt.Fprintf(&sb, " AND COALESCE(activo, true) = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&sb, " AND categoria = $%d", len(args))
	}
	sb.WriteString(" ORDER BY fecha_creacion DESC NULLS LAST, id DESC")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperr.Storage("list products", err)
	}
	defer rows.Close()

	out := []*entity.Product{}
	for rows.Next() {
		rec, err := scanProduct(rows)
		if err != nil {
			return nil, apperr.Storage("scan product", err)
		}
		out = append(out, normalize.Product(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list products", err)
	}
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.one(ctx, "get product", `SELECT `+productColumns+` FROM productos WHERE id = $1`, key)
}

// Update applies the non-nil fields of patch. fecha_actualizacion moves to
// max(now, previous+1ms) so it strictly increases even for empty patches.
func (r *ProductRepository) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	patch, err = patch.Prepare()
	if err != nil {
		return nil, err
	}
	var price *string
	if patch.Price != nil {
		s := formatPrice(*patch.Price)
		price = &s
	}
	var stock *int32
	if patch.Stock != nil {
		s := int32(*patch.Stock)
		stock = &s
	}
	now := entity.CanonicalTime(r.now())
	return r.one(ctx, "update product", `
		UPDATE productos SET
			nombre = COALESCE($2::varchar, nombre),
			descripcion = COALESCE($3::text, descripcion),
			precio = COALESCE($4::numeric, precio),
			stock = COALESCE($5::integer, stock),
			categoria = COALESCE($6::varchar, categoria),
			activo = COALESCE($7::boolean, activo),
			fecha_actualizacion = GREATEST($8::timestamp,
				COALESCE(fecha_actualizacion, fecha_creacion, 'epoch'::timestamp) + INTERVAL '1 millisecond')
		WHERE id = $1
		RETURNING `+productColumns,
		key, patch.Name, patch.Description, price, stock, patch.Category, patch.Active, now)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (*entity.Product, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.one(ctx, "delete product", `DELETE FROM productos WHERE id = $1 RETURNING `+productColumns, key)
}

// one runs a single-row statement and maps "no row" to (nil, nil).
func (r *ProductRepository) one(ctx context.Context, op, sql string, args ...any) (*entity.Product, error) {
	rec, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage(op, err)
	}
	return normalize.Product(rec), nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
