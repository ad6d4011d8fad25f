package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"loja-backend/internal/database"
	"loja-backend/internal/models"
)

const cartsNS = "loja.carrinhos"

func TestMongoCarts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find by user normalises missing items", func(mt *mtest.T) {
		repo := NewCartRepository(database.NewStore(mt.DB))
		id, user := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, cartsNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "usuarioId", Value: user},
			{Key: "total", Value: 0.0},
			{Key: "versao", Value: int64(3)},
		}))

		c, err := repo.FindByUser(ctx, user)
		require.NoError(mt, err)
		assert.Equal(mt, id, c.ID)
		assert.Equal(mt, user, c.UsuarioID)
		assert.Equal(mt, int64(3), c.Versao)
		assert.NotNil(mt, c.Itens)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		repo := NewCartRepository(database.NewStore(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, cartsNS, mtest.FirstBatch))

		_, err := repo.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("save bumps version", func(mt *mtest.T) {
		repo := NewCartRepository(database.NewStore(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		c := &models.Cart{ID: primitive.NewObjectID(), Itens: []models.CartItem{}, Versao: 4, DataAtualizacao: time.Now()}
		require.NoError(mt, repo.Save(ctx, c))
		assert.Equal(mt, int64(5), c.Versao)
	})

	mt.Run("save reports conflict when document exists", func(mt *mtest.T) {
		repo := NewCartRepository(database.NewStore(mt.DB))
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, cartsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)

		c := &models.Cart{ID: primitive.NewObjectID(), Itens: []models.CartItem{}, Versao: 2}
		err := repo.Save(ctx, c)
		assert.ErrorIs(mt, err, ErrVersionConflict)
		assert.Equal(mt, int64(2), c.Versao)
	})

	mt.Run("save reports missing document", func(mt *mtest.T) {
		repo := NewCartRepository(database.NewStore(mt.DB))
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, cartsNS, mtest.FirstBatch),
		)

		err := repo.Save(ctx, &models.Cart{ID: primitive.NewObjectID(), Versao: 1})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("insert assigns id and first version", func(mt *mtest.T) {
		repo := NewCartRepository(database.NewStore(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		c := models.NewCart(primitive.NewObjectID(), time.Now())
		require.NoError(mt, repo.Insert(ctx, c))
		assert.False(mt, c.ID.IsZero())
		assert.Equal(mt, int64(1), c.Versao)
	})

	mt.Run("insert for a user who already has a cart", func(mt *mtest.T) {
		repo := NewCartRepository(database.NewStore(mt.DB))
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		err := repo.Insert(ctx, models.NewCart(primitive.NewObjectID(), time.Now()))
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("delete missing cart", func(mt *mtest.T) {
		repo := NewCartRepository(database.NewStore(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoProducts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("list", func(mt *mtest.T) {
		repo := NewProductRepository(database.NewStore(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "loja.produtos", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "nome", Value: "Caneca"}, {Key: "preco", Value: 29.9}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "nome", Value: "Camiseta"}, {Key: "preco", Value: 59.0}},
		))

		products, err := repo.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "Caneca", products[0].Nome)
		assert.Equal(mt, 59.0, products[1].Preco)
	})

	mt.Run("update missing product", func(mt *mtest.T) {
		repo := NewProductRepository(database.NewStore(mt.DB))
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		nome := "x"
		_, err := repo.Update(ctx, primitive.NewObjectID(), models.ProductUpdate{Nome: &nome})
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
