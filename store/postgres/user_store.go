package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoporia/ecommerce-api/models"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Create(ctx context.Context, u *models.User) error {
	return translateErr(s.db.WithContext(ctx).Create(u).Error)
}

func (s *userStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("History").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *userStore) Update(ctx context.Context, u *models.User) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", u.ID).
		Select("name", "email", "hashed_password", "salt", "about", "role").
		Updates(u)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateErr(gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *userStore) AppendHistory(ctx context.Context, userID string, entries []models.PurchaseRecord) error {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].UserID = userID
	}
	return translateErr(s.db.WithContext(ctx).Create(&entries).Error)
}
