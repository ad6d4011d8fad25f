package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"loja-backend/internal/database"
	"loja-backend/internal/models"
)

type MongoCarts struct {
	coll *mongo.Collection
}

func NewCartRepository(store *database.Store) *MongoCarts {
	return &MongoCarts{coll: store.Collection(database.Carrinhos)}
}

func (r *MongoCarts) findOne(ctx context.Context, filter bson.M) (*models.Cart, error) {
	var c models.Cart
	err := r.coll.FindOne(ctx, filter).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.Itens == nil {
		c.Itens = []models.CartItem{}
	}
	return &c, nil
}

func (r *MongoCarts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoCarts) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	return r.findOne(ctx, bson.M{"usuarioId": userID})
}

func (r *MongoCarts) FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Cart, error) {
	return r.findOne(ctx, bson.M{"_id": id, "usuarioId": userID})
}

func (r *MongoCarts) List(ctx context.Context) ([]models.Cart, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	carts := []models.Cart{}
	if err := cur.All(ctx, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

func (r *MongoCarts) Insert(ctx context.Context, c *models.Cart) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.Versao = 1
	_, err := r.coll.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		// another request created this user's cart first
		return ErrDuplicate
	}
	return err
}

func (r *MongoCarts) Save(ctx context.Context, c *models.Cart) error {
	filter := bson.M{"_id": c.ID, "versao": c.Versao}
	if c.Versao == 0 {
		// documents written before versioning have no counter yet
		filter = bson.M{"_id": c.ID, "versao": bson.M{"$exists": false}}
	}
	update := bson.M{
		"$set": bson.M{
			"itens":           c.Itens,
			"total":           c.Total,
			"dataAtualizacao": c.DataAtualizacao,
		},
		"$inc": bson.M{"versao": 1},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": c.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	c.Versao++
	return nil
}

func (r *MongoCarts) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
