// Package apptest provides in-memory repositories for service and transport
// tests. They follow the store contract: validation in the store, (nil, nil)
// for absent records, canonical output.
package apptest

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/normalize"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
)

// clock hands out strictly increasing millisecond instants.
type clock struct {
	mu   sync.Mutex
	last time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := entity.CanonicalTime(time.Now())
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	c.last = t
	return t
}

func parseID(id string) (int32, error) {
	n, err := strconv.ParseInt(id, 10, 32)
	if err != nil || n <= 0 {
		return 0, apperr.InvalidID(id)
	}
	return int32(n), nil
}

type UserRepo struct {
	mu     sync.Mutex
	clock  clock
	hasher helpers.PasswordHasher
	seq    int32
	rows   map[int32]normalize.PGUser
	// Err, when set, is returned by every call.
	Err error
}

func NewUserRepo() *UserRepo {
	return &UserRepo{hasher: helpers.NewPasswordHasher(helpers.MinBcryptCost), rows: map[int32]normalize.PGUser{}}
}

func (r *UserRepo) Create(_ context.Context, name, email, password string) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	email = entity.NormalizeEmail(email)
	for _, u := range r.rows {
		if u.Email == email {
			return nil, apperr.DuplicateEmail(nil)
		}
	}
	r.seq++
	row := normalize.PGUser{ID: r.seq, Name: name, Email: email, Password: hash, RegisteredAt: r.clock.now()}
	r.rows[row.ID] = row
	return normalize.User(row), nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.Credentials, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	email = entity.NormalizeEmail(email)
	for _, u := range r.rows {
		if u.Email == email {
			return normalize.Credentials(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[key]
	if !ok {
		return nil, nil
	}
	return normalize.User(u), nil
}

func (r *UserRepo) VerifyPassword(plain, hash string) bool {
	return r.hasher.Compare(hash, plain)
}

func (r *UserRepo) ListAll(context.Context) ([]*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.rows))
	for _, u := range r.rows {
		out = append(out, normalize.User(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

type ProductRepo struct {
	mu    sync.Mutex
	clock clock
	seq   int32
	rows  map[int32]*entity.Product
	Err   error
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{rows: map[int32]*entity.Product{}}
}

func (r *ProductRepo) Create(_ context.Context, in entity.ProductInput) (*entity.Product, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	in, err := in.Prepare()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	now := r.clock.now()
	p := &entity.Product{
		ID: strconv.Itoa(int(r.seq)), Name: in.Name, Description: in.Description, Price: in.Price,
		Stock: in.Stock, Category: in.Category, Active: in.IsActive(), CreatedAt: now, UpdatedAt: now,
	}
	r.rows[r.seq] = normalize.Product(p)
	return normalize.Product(p), nil
}

func (r *ProductRepo) List(_ context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Product{}
	for _, p := range r.rows {
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, normalize.Product(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return normalize.Product(r.rows[key]), nil
}

func (r *ProductRepo) Update(_ context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	patch, err = patch.Prepare()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[key]
	if !ok {
		return nil, nil
	}
	p := *cur
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	p.UpdatedAt = r.clock.now()
	r.rows[key] = normalize.Product(&p)
	return normalize.Product(&p), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) (*entity.Product, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[key]
	if !ok {
		return nil, nil
	}
	delete(r.rows, key)
	return normalize.Product(p), nil
}
