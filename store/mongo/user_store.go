package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shoporia/ecommerce-api/models"
)

type userStore struct {
	c *mongo.Collection
}

func (s *userStore) Create(ctx context.Context, u *models.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.History == nil {
		u.History = []models.PurchaseRecord{}
	}
	_, err := s.c.InsertOne(ctx, u)
	return translateErr(err)
}

func (s *userStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *userStore) Update(ctx context.Context, u *models.User) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": bson.M{
		"name":            u.Name,
		"email":           u.Email,
		"hashed_password": u.HashedPassword,
		"salt":            u.Salt,
		"about":           u.About,
		"role":            u.Role,
		"updatedAt":       time.Now(),
	}})
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return translateErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (s *userStore) AppendHistory(ctx context.Context, userID string, entries []models.PurchaseRecord) error {
	if len(entries) == 0 {
		return nil
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"history": bson.M{"$each": entries}},
	})
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return translateErr(mongo.ErrNoDocuments)
	}
	return nil
}
