package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

type productStore struct {
	db *gorm.DB
}

// listColumns excludes the photo binary from listing queries.
var listColumns = []string{
	"id", "name", "description", "price", "quantity", "sold",
	"photo_content_type", "shipping", "category_id", "created_at", "updated_at",
}

func (s *productStore) Create(ctx context.Context, p *models.Product) error {
	return translateErr(s.db.WithContext(ctx).Omit("Category").Create(p).Error)
}

func (s *productStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &product, nil
}

func (s *productStore) Update(ctx context.Context, p *models.Product) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).
		Select("name", "description", "price", "quantity", "shipping",
			"category_id", "photo", "photo_content_type").
		Updates(p)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *productStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *productStore) List(ctx context.Context, opts store.ListOptions) ([]models.Product, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{}).
		Select(listColumns).
		Preload("Category").
		Order(orderClause(opts.SortBy, opts.Order))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, translateErr(err)
	}
	return products, nil
}

func (s *productStore) Search(ctx context.Context, params store.SearchParams) (int64, []models.Product, error) {
	base := s.db.WithContext(ctx).Model(&models.Product{})
	if len(params.CategoryIDs) > 0 {
		base = base.Where("category_id IN ?", params.CategoryIDs)
	}
	if params.PriceMin != nil {
		base = base.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		base = base.Where("price <= ?", *params.PriceMax)
	}

	// size is the full match count, not the page length.
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, translateErr(err)
	}

	q := base.Select(listColumns).
		Preload("Category").
		Order(orderClause(params.SortBy, params.Order)).
		Offset(params.Skip)
	if params.Limit > 0 {
		q = q.Limit(params.Limit)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return 0, nil, translateErr(err)
	}
	return total, products, nil
}

func (s *productStore) SearchByName(ctx context.Context, term, categoryID string) ([]models.Product, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{}).
		Select(listColumns).
		Preload("Category").
		Where("name ILIKE ?", "%"+term+"%")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, translateErr(err)
	}
	return products, nil
}

func (s *productStore) ListRelated(ctx context.Context, productID string, limit int) ([]models.Product, error) {
	product, err := s.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&models.Product{}).
		Select(listColumns).
		Preload("Category").
		Where("category_id = ? AND id <> ?", product.CategoryID, productID)
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, translateErr(err)
	}
	return products, nil
}

func (s *productStore) DistinctCategoryIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Distinct("category_id").
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return ids, nil
}

func (s *productStore) DecrementStock(ctx context.Context, productID string, count int) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", productID, count).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", count),
			"sold":     gorm.Expr("sold + ?", count),
		})
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing product from an oversell.
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", productID).Count(&n).Error; err != nil {
			return translateErr(err)
		}
		if n == 0 {
			return store.ErrNotFound
		}
		return store.ErrInsufficientStock
	}
	return nil
}
