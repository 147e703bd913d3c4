package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shoporia/ecommerce-api/models"
)

type categoryStore struct {
	c *mongo.Collection
}

func (s *categoryStore) Create(ctx context.Context, cat *models.Category) error {
	now := time.Now()
	cat.CreatedAt = now
	cat.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, cat)
	return translateErr(err)
}

func (s *categoryStore) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return nil, translateErr(err)
	}
	return &category, nil
}

func (s *categoryStore) Update(ctx context.Context, cat *models.Category) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": cat.ID}, bson.M{"$set": bson.M{
		"name":      cat.Name,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return translateErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (s *categoryStore) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateErr(err)
	}
	if res.DeletedCount == 0 {
		return translateErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (s *categoryStore) List(ctx context.Context) ([]models.Category, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, translateErr(err)
	}
	var categories []models.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, translateErr(err)
	}
	return categories, nil
}
