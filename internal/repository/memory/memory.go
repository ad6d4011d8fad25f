// Package memory holds in-process implementations of the repository
// interfaces. They are used as test doubles for the services and handlers.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"loja-backend/internal/models"
	"loja-backend/internal/repository"
)

type Users struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewUsers() *Users {
	return &Users{users: map[primitive.ObjectID]models.User{}}
}

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r *Users) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type Products struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
}

func NewProducts() *Products {
	return &Products{products: map[primitive.ObjectID]models.Product{}}
}

func (r *Products) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = *p
	return nil
}

func (r *Products) List(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r *Products) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *Products) Update(_ context.Context, id primitive.ObjectID, u models.ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Apply(&p)
	r.products[id] = p
	return &p, nil
}

func (r *Products) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// Carts stores deep copies so callers cannot mutate stored state without
// going through Save.
type Carts struct {
	mu    sync.RWMutex
	carts map[primitive.ObjectID]models.Cart
}

func NewCarts() *Carts {
	return &Carts{carts: map[primitive.ObjectID]models.Cart{}}
}

func cloneCart(c models.Cart) *models.Cart {
	items := make([]models.CartItem, len(c.Itens))
	copy(items, c.Itens)
	c.Itens = items
	return &c
}

func (r *Carts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCart(c), nil
}

func (r *Carts) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.carts {
		if c.UsuarioID == userID {
			return cloneCart(c), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Carts) FindByIDAndUser(_ context.Context, id, userID primitive.ObjectID) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[id]
	if !ok || c.UsuarioID != userID {
		return nil, repository.ErrNotFound
	}
	return cloneCart(c), nil
}

func (r *Carts) List(_ context.Context) ([]models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Cart, 0, len(r.carts))
	for _, c := range r.carts {
		out = append(out, *cloneCart(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r *Carts) Insert(_ context.Context, c *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	for _, existing := range r.carts {
		if existing.UsuarioID == c.UsuarioID {
			return repository.ErrDuplicate
		}
	}
	c.Versao = 1
	r.carts[c.ID] = *cloneCart(*c)
	return nil
}

func (r *Carts) Save(_ context.Context, c *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.carts[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Versao != c.Versao {
		return repository.ErrVersionConflict
	}
	c.Versao++
	r.carts[c.ID] = *cloneCart(*c)
	return nil
}

func (r *Carts) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.carts, id)
	return nil
}

type Orders struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewOrders() *Orders {
	return &Orders{}
}

func (r *Orders) Insert(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.orders = append(r.orders, *o)
	return nil
}

func (r *Orders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			found := o
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Orders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UsuarioID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

var (
	_ repository.UserRepository    = (*Users)(nil)
	_ repository.ProductRepository = (*Products)(nil)
	_ repository.CartRepository    = (*Carts)(nil)
	_ repository.OrderRepository   = (*Orders)(nil)
)
