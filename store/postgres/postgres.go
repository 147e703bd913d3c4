// Package postgres is the relational store adapter, backed by GORM.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shoporia/ecommerce-api/config"
	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

type Store struct {
	db *gorm.DB
}

// Open connects using DATABASE_URL when set, discrete DB_* variables
// otherwise, and migrates the schema.
func Open(cfg *config.Config) (*Store, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.PurchaseRecord{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.CartItem{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return New(db), nil
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() store.UserStore          { return &userStore{db: s.db} }
func (s *Store) Categories() store.CategoryStore { return &categoryStore{db: s.db} }
func (s *Store) Products() store.ProductStore    { return &productStore{db: s.db} }
func (s *Store) Orders() store.OrderStore        { return &orderStore{db: s.db} }

func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, New(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translateErr maps driver errors onto the store sentinels.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "SQLSTATE 23505") {
		return store.ErrConflict
	}
	return err
}

// sortColumn whitelists client-supplied sort fields; anything unknown falls
// back to the primary key.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "name", "price", "sold", "quantity":
		return sortBy
	case "createdAt":
		return "created_at"
	case "updatedAt":
		return "updated_at"
	default:
		return "id"
	}
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "desc") {
		return "desc"
	}
	return "asc"
}

func orderClause(sortBy, order string) string {
	return sortColumn(sortBy) + " " + sortDirection(order)
}
