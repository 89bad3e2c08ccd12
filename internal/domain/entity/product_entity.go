package entity

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
)

const (
	// MaxPrice is the largest value a NUMERIC(10,2) column holds.
	MaxPrice = 99999999.99
	MaxStock = math.MaxInt32

	// Column widths of nombre and categoria, counted in characters.
	MaxNameLen     = 200
	MaxCategoryLen = 100
)

// Product is the canonical catalog record. Both timestamp conventions are
// exposed and always carry the same instants.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	Description  string    `json:"descripcion"`
	Price        float64   `json:"precio"`
	Stock        int       `json:"stock"`
	Category     string    `json:"categoria"`
	Active       bool      `json:"activo"`
	CreationDate time.Time `json:"fecha_creacion"`
	UpdateDate   time.Time `json:"fecha_actualizacion"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Canonicalize rounds the price to cents and treats CreatedAt/UpdatedAt as
// authoritative for the alias pair.
func (p *Product) Canonicalize() {
	p.Price = RoundPrice(p.Price)
	p.CreatedAt = CanonicalTime(p.CreatedAt)
	p.UpdatedAt = CanonicalTime(p.UpdatedAt)
	p.CreationDate = p.CreatedAt
	p.UpdateDate = p.UpdatedAt
}

func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Active      *bool
}

// Prepare trims text fields, rounds the price and validates the result.
func (in ProductInput) Prepare() (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	var problems []string
	if in.Name == "" {
		problems = append(problems, "nombre is required")
	}
	if in.Description == "" {
		problems = append(problems, "descripcion is required")
	}
	if in.Category == "" {
		problems = append(problems, "categoria is required")
	}
	problems = append(problems, checkLen("nombre", in.Name, MaxNameLen)...)
	problems = append(problems, checkLen("categoria", in.Category, MaxCategoryLen)...)
	problems = append(problems, checkPrice(in.Price)...)
	problems = append(problems, checkStock(in.Stock)...)
	if len(problems) > 0 {
		return in, apperr.Validation("%s", strings.Join(problems, "; "))
	}
	in.Price = RoundPrice(in.Price)
	return in, nil
}

// IsActive applies the default of true when Active was not given.
func (in ProductInput) IsActive() bool {
	return in.Active == nil || *in.Active
}

// ProductPatch is a partial update; nil fields keep their stored value.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Category    *string
	Active      *bool
}

func (p ProductPatch) Prepare() (ProductPatch, error) {
	var problems []string
	trim := func(field string, v *string) *string {
		if v == nil {
			return nil
		}
		s := strings.TrimSpace(*v)
		if s == "" {
			problems = append(problems, field+" cannot be empty")
		}
		return &s
	}
	p.Name = trim("nombre", p.Name)
	p.Description = trim("descripcion", p.Description)
	p.Category = trim("categoria", p.Category)
	if p.Name != nil {
		problems = append(problems, checkLen("nombre", *p.Name, MaxNameLen)...)
	}
	if p.Category != nil {
		problems = append(problems, checkLen("categoria", *p.Category, MaxCategoryLen)...)
	}
	if p.Price != nil {
		problems = append(problems, checkPrice(*p.Price)...)
		rounded := RoundPrice(*p.Price)
		p.Price = &rounded
	}
	if p.Stock != nil {
		problems = append(problems, checkStock(*p.Stock)...)
	}
	if len(problems) > 0 {
		return p, apperr.Validation("%s", strings.Join(problems, "; "))
	}
	return p, nil
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Stock == nil && p.Category == nil && p.Active == nil
}

// ProductFilter narrows List. Zero value matches everything.
type ProductFilter struct {
	Active   *bool
	Category string
}

func checkLen(field, v string, limit int) []string {
	if utf8.RuneCountInString(v) > limit {
		return []string{fmt.Sprintf("%s must be at most %d characters", field, limit)}
	}
	return nil
}

func checkPrice(v float64) []string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return []string{"precio must be a finite number"}
	case v < 0:
		return []string{"precio must be greater than or equal to 0"}
	case RoundPrice(v) > MaxPrice:
		return []string{"precio must be at most 99999999.99"}
	}
	return nil
}

func checkStock(v int) []string {
	switch {
	case v < 0:
		return []string{"stock must be greater than or equal to 0"}
	case v > MaxStock:
		return []string{"stock is too large"}
	}
	return nil
}
