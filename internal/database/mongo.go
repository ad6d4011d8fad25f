package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	Usuarios  = "usuarios"
	Produtos  = "produtos"
	Carrinhos = "carrinhos"
	Pedidos   = "pedidos"
)

// Store is the process-wide persistence handle. It is created once in main,
// handed to the repositories and closed on shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	logrus.WithField("database", dbName).Info("MongoDB connected")
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// NewStore wraps an existing database handle, used by tests.
func NewStore(db *mongo.Database) *Store {
	return &Store{client: db.Client(), db: db}
}

func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on: unique email,
// at most one cart per user, and orders listed per user by date.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		Usuarios: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		Carrinhos: {{
			Keys:    bson.D{{Key: "usuarioId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		Pedidos: {{
			Keys: bson.D{{Key: "usuarioId", Value: 1}, {Key: "dataCriacao", Value: -1}},
		}},
	}
	for coll, idx := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
