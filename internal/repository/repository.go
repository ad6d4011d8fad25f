package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"loja-backend/internal/models"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrVersionConflict = errors.New("document was modified concurrently")
	ErrDuplicate       = errors.New("duplicate document")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, u models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CartRepository persists cart aggregates. Save is a compare-and-set on
// Versao: it fails with ErrVersionConflict when another writer got there
// first, and bumps c.Versao on success.
type CartRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Cart, error)
	List(ctx context.Context) ([]models.Cart, error)
	Insert(ctx context.Context, c *models.Cart) error
	Save(ctx context.Context, c *models.Cart) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderRepository interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

var (
	_ UserRepository    = (*MongoUsers)(nil)
	_ ProductRepository = (*MongoProducts)(nil)
	_ CartRepository    = (*MongoCarts)(nil)
	_ OrderRepository   = (*MongoOrders)(nil)
)
