package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

type orderStore struct {
	db *gorm.DB
}

func (s *orderStore) Create(ctx context.Context, o *models.Order) error {
	return translateErr(s.db.WithContext(ctx).Omit("User").Create(o).Error)
}

func (s *orderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Products").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	order.User.Sanitize()
	return &order, nil
}

func (s *orderStore) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Products").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translateErr(err)
	}
	for i := range orders {
		orders[i].User.Sanitize()
	}
	return orders, nil
}

func (s *orderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Products").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translateErr(err)
	}
	for i := range orders {
		orders[i].User.Sanitize()
	}
	return orders, nil
}

func (s *orderStore) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return nil, translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetByID(ctx, orderID)
}
