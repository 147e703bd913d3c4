package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shoporia/ecommerce-api/models"
)

type orderStore struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func (s *orderStore) Create(ctx context.Context, o *models.Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, o)
	return translateErr(err)
}

func (s *orderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, translateErr(err)
	}
	if err := s.attachUsers(ctx, []*models.Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderStore) List(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

func (s *orderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *orderStore) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return nil, translateErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, translateErr(mongo.ErrNoDocuments)
	}
	return s.GetByID(ctx, orderID)
}

func (s *orderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, translateErr(err)
	}
	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, translateErr(err)
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := s.attachUsers(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachUsers populates the buyer on each order, sanitized.
func (s *orderStore) attachUsers(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	idSet := make(map[string]struct{})
	for _, o := range orders {
		idSet[o.UserID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return translateErr(err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return translateErr(err)
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		u.Sanitize()
		u.History = nil
		byID[u.ID] = u
	}
	for _, o := range orders {
		if u, ok := byID[o.UserID]; ok {
			o.User = u
		}
	}
	return nil
}
