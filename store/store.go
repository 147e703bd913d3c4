// Package store defines the storage-agnostic repository interfaces the
// controllers are written against. Adapters live in the subpackages:
// postgres (GORM), mongo (official driver) and memory (test double).
package store

import (
	"context"
	"errors"

	"github.com/shoporia/ecommerce-api/models"
)

var (
	// ErrNotFound means the entity id did not resolve.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a unique field (email, category name) already exists.
	ErrConflict = errors.New("duplicate unique field")
	// ErrInsufficientStock means a stock decrement would drive quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ListOptions controls the public product listing. Limit 0 means no cap.
type ListOptions struct {
	SortBy string
	Order  string
	Limit  int
}

// SearchParams is the shop-page filter query: category set membership plus an
// inclusive price range, sorted and paginated.
type SearchParams struct {
	CategoryIDs []string
	PriceMin    *float64
	PriceMax    *float64
	SortBy      string
	Order       string
	Skip        int
	Limit       int
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	AppendHistory(ctx context.Context, userID string, entries []models.PurchaseRecord) error
}

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Category, error)
}

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	// GetByID loads the full product including photo binary and category.
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	// List returns products without photo binary, category populated.
	List(ctx context.Context, opts ListOptions) ([]models.Product, error)
	// Search returns the total match count (independent of skip/limit) and
	// one page of matches.
	Search(ctx context.Context, params SearchParams) (int64, []models.Product, error)
	// SearchByName is a case-insensitive substring match, optionally narrowed
	// to one category.
	SearchByName(ctx context.Context, term, categoryID string) ([]models.Product, error)
	// ListRelated returns products sharing the given product's category,
	// excluding the product itself.
	ListRelated(ctx context.Context, productID string, limit int) ([]models.Product, error)
	// DistinctCategoryIDs returns the ids of categories actually in use.
	DistinctCategoryIDs(ctx context.Context) ([]string, error)
	// DecrementStock applies quantity -= count, sold += count atomically,
	// failing with ErrInsufficientStock when quantity < count.
	DecrementStock(ctx context.Context, productID string, count int) error
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// List returns all orders newest first with buyer populated.
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}

// Store aggregates the per-entity repositories. Transaction runs fn against a
// transactional view; any error rolls the whole unit back.
type Store interface {
	Users() UserStore
	Categories() CategoryStore
	Products() ProductStore
	Orders() OrderStore
	Transaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Ping(ctx context.Context) error
}
