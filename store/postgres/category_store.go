package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

type categoryStore struct {
	db *gorm.DB
}

func (s *categoryStore) Create(ctx context.Context, c *models.Category) error {
	return translateErr(s.db.WithContext(ctx).Create(c).Error)
}

func (s *categoryStore) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &category, nil
}

func (s *categoryStore) Update(ctx context.Context, c *models.Category) error {
	res := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", c.ID).
		Update("name", c.Name)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *categoryStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *categoryStore) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, translateErr(err)
	}
	return categories, nil
}
