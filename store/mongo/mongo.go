// Package mongo is the document store adapter, backed by the official driver.
package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shoporia/ecommerce-api/config"
	"github.com/shoporia/ecommerce-api/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects, pings and creates the unique indexes the domain relies on
// (user email, category name).
func Open(cfg *config.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.MongoDatabase)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = s.db.Collection("categories").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("categories index: %w", err)
	}
	return nil
}

func (s *Store) Users() store.UserStore          { return &userStore{c: s.db.Collection("users")} }
func (s *Store) Categories() store.CategoryStore { return &categoryStore{c: s.db.Collection("categories")} }
func (s *Store) Products() store.ProductStore {
	return &productStore{c: s.db.Collection("products"), categories: s.db.Collection("categories")}
}
func (s *Store) Orders() store.OrderStore {
	return &orderStore{c: s.db.Collection("orders"), users: s.db.Collection("users")}
}

// Transaction runs fn inside a session transaction. fn must thread the given
// context into every store call so the operations join the transaction.
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s)
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if err == mongo.ErrNoDocuments {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrConflict
	}
	return err
}

// sortSpec whitelists client-supplied sort fields against the bson field
// names; unknown fields fall back to _id.
func sortSpec(sortBy, order string) bson.D {
	field := "_id"
	switch sortBy {
	case "name", "price", "sold", "quantity", "createdAt", "updatedAt":
		field = sortBy
	}
	dir := 1
	if strings.EqualFold(order, "desc") {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}}
}
