// Package memory is a mutex-guarded map store. It backs the tests and mirrors
// the semantics of the real adapters: sentinel errors, photo-free listings,
// conditional stock decrements and transactional rollback.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

type Store struct {
	mu sync.Mutex

	users      map[string]*models.User
	categories map[string]*models.Category
	products   map[string]*models.Product
	orders     map[string]*models.Order

	// insertion sequence, used to break created-at ties newest-first
	orderSeq map[string]int64
	seq      int64
}

func New() *Store {
	return &Store{
		users:      make(map[string]*models.User),
		categories: make(map[string]*models.Category),
		products:   make(map[string]*models.Product),
		orders:     make(map[string]*models.Order),
		orderSeq:   make(map[string]int64),
	}
}

func (s *Store) Users() store.UserStore          { return (*userStore)(s) }
func (s *Store) Categories() store.CategoryStore { return (*categoryStore)(s) }
func (s *Store) Products() store.ProductStore    { return (*productStore)(s) }
func (s *Store) Orders() store.OrderStore        { return (*orderStore)(s) }

// Transaction snapshots the maps, runs fn, and restores the snapshot when fn
// fails. Calls inside fn lock per operation; this is a rollback mechanism for
// tests, not a concurrency model.
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	snap := s.snapshot()
	if err := fn(ctx, s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

type snapshot struct {
	users      map[string]*models.User
	categories map[string]*models.Category
	products   map[string]*models.Product
	orders     map[string]*models.Order
	orderSeq   map[string]int64
	seq        int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		users:      make(map[string]*models.User, len(s.users)),
		categories: make(map[string]*models.Category, len(s.categories)),
		products:   make(map[string]*models.Product, len(s.products)),
		orders:     make(map[string]*models.Order, len(s.orders)),
		orderSeq:   make(map[string]int64, len(s.orderSeq)),
		seq:        s.seq,
	}
	for id, u := range s.users {
		snap.users[id] = cloneUser(u)
	}
	for id, c := range s.categories {
		snap.categories[id] = cloneCategory(c)
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	for id, n := range s.orderSeq {
		snap.orderSeq[id] = n
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.categories = snap.categories
	s.products = snap.products
	s.orders = snap.orders
	s.orderSeq = snap.orderSeq
	s.seq = snap.seq
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.History = append([]models.PurchaseRecord(nil), u.History...)
	return &cp
}

func cloneCategory(c *models.Category) *models.Category {
	cp := *c
	return &cp
}

func cloneProduct(p *models.Product) *models.Product {
	cp := *p
	cp.Photo = append([]byte(nil), p.Photo...)
	return &cp
}

func cloneOrder(o *models.Order) *models.Order {
	cp := *o
	cp.Products = append([]models.CartItem(nil), o.Products...)
	return &cp
}

// --- users ---

type userStore Store

func (s *userStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrConflict
		}
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) Update(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	for id, other := range s.users {
		if id != u.ID && other.Email == u.Email {
			return store.ErrConflict
		}
	}
	cp := cloneUser(u)
	cp.History = existing.History
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	s.users[u.ID] = cp
	return nil
}

func (s *userStore) AppendHistory(ctx context.Context, userID string, entries []models.PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.History = append(u.History, entries...)
	return nil
}

// --- categories ---

type categoryStore Store

func (s *categoryStore) Create(ctx context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return store.ErrConflict
		}
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.categories[c.ID] = cloneCategory(c)
	return nil
}

func (s *categoryStore) GetByID(ctx context.Context, id string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneCategory(c), nil
}

func (s *categoryStore) Update(ctx context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[c.ID]
	if !ok {
		return store.ErrNotFound
	}
	for id, other := range s.categories {
		if id != c.ID && other.Name == c.Name {
			return store.ErrConflict
		}
	}
	existing.Name = c.Name
	existing.UpdatedAt = time.Now()
	return nil
}

func (s *categoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *categoryStore) List(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, *cloneCategory(c))
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// --- products ---

type productStore Store

func (s *productStore) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.products[p.ID] = cloneProduct(p)
	return nil
}

func (s *productStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := cloneProduct(p)
	s.attachCategory(cp)
	return cp, nil
}

func (s *productStore) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[p.ID]
	if !ok {
		return store.ErrNotFound
	}
	cp := cloneProduct(p)
	cp.Sold = existing.Sold
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	s.products[p.ID] = cp
	return nil
}

func (s *productStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *productStore) List(ctx context.Context, opts store.ListOptions) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.collect(func(p *models.Product) bool { return true })
	sortProducts(products, opts.SortBy, opts.Order)
	if opts.Limit > 0 && len(products) > opts.Limit {
		products = products[:opts.Limit]
	}
	return products, nil
}

func (s *productStore) Search(ctx context.Context, params store.SearchParams) (int64, []models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := s.collect(func(p *models.Product) bool {
		if len(params.CategoryIDs) > 0 {
			found := false
			for _, id := range params.CategoryIDs {
				if p.CategoryID == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		if params.PriceMin != nil && p.Price < *params.PriceMin {
			return false
		}
		if params.PriceMax != nil && p.Price > *params.PriceMax {
			return false
		}
		return true
	})

	total := int64(len(matches))
	sortProducts(matches, params.SortBy, params.Order)

	if params.Skip >= len(matches) {
		return total, []models.Product{}, nil
	}
	matches = matches[params.Skip:]
	if params.Limit > 0 && len(matches) > params.Limit {
		matches = matches[:params.Limit]
	}
	return total, matches, nil
}

func (s *productStore) SearchByName(ctx context.Context, term, categoryID string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(term)
	products := s.collect(func(p *models.Product) bool {
		if !strings.Contains(strings.ToLower(p.Name), lower) {
			return false
		}
		return categoryID == "" || p.CategoryID == categoryID
	})
	return products, nil
}

func (s *productStore) ListRelated(ctx context.Context, productID string, limit int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, store.ErrNotFound
	}
	related := s.collect(func(other *models.Product) bool {
		return other.ID != productID && other.CategoryID == p.CategoryID
	})
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

func (s *productStore) DistinctCategoryIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	var ids []string
	for _, p := range s.products {
		if _, ok := seen[p.CategoryID]; !ok {
			seen[p.CategoryID] = struct{}{}
			ids = append(ids, p.CategoryID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *productStore) DecrementStock(ctx context.Context, productID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return store.ErrNotFound
	}
	if p.Quantity < count {
		return store.ErrInsufficientStock
	}
	p.Quantity -= count
	p.Sold += count
	return nil
}

// collect copies matching products without photo binary, category attached.
// Caller holds the lock.
func (s *productStore) collect(match func(*models.Product) bool) []models.Product {
	products := make([]models.Product, 0)
	for _, p := range s.products {
		if !match(p) {
			continue
		}
		cp := cloneProduct(p)
		cp.Photo = nil
		s.attachCategory(cp)
		products = append(products, *cp)
	}
	return products
}

func (s *productStore) attachCategory(p *models.Product) {
	if c, ok := s.categories[p.CategoryID]; ok {
		p.Category = *c
	}
}

func sortProducts(products []models.Product, sortBy, order string) {
	desc := strings.EqualFold(order, "desc")
	less := func(i, j int) bool { return products[i].ID < products[j].ID }
	switch sortBy {
	case "name":
		less = func(i, j int) bool { return products[i].Name < products[j].Name }
	case "price":
		less = func(i, j int) bool { return products[i].Price < products[j].Price }
	case "sold":
		less = func(i, j int) bool { return products[i].Sold < products[j].Sold }
	case "quantity":
		less = func(i, j int) bool { return products[i].Quantity < products[j].Quantity }
	case "createdAt":
		less = func(i, j int) bool { return products[i].CreatedAt.Before(products[j].CreatedAt) }
	}
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}

// --- orders ---

type orderStore Store

func (s *orderStore) Create(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	s.seq++
	s.orderSeq[o.ID] = s.seq
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (s *orderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := cloneOrder(o)
	s.attachUser(cp)
	return cp, nil
}

func (s *orderStore) List(ctx context.Context) ([]models.Order, error) {
	return s.filter(func(*models.Order) bool { return true }), nil
}

func (s *orderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.filter(func(o *models.Order) bool { return o.UserID == userID }), nil
}

func (s *orderStore) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()

	o, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		return nil, store.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	s.mu.Unlock()

	return s.GetByID(ctx, orderID)
}

// filter returns matching orders newest first, buyer attached.
func (s *orderStore) filter(match func(*models.Order) bool) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]models.Order, 0)
	for _, o := range s.orders {
		if !match(o) {
			continue
		}
		cp := cloneOrder(o)
		s.attachUser(cp)
		orders = append(orders, *cp)
	}
	sort.Slice(orders, func(i, j int) bool {
		return s.orderSeq[orders[i].ID] > s.orderSeq[orders[j].ID]
	})
	return orders
}

func (s *orderStore) attachUser(o *models.Order) {
	if u, ok := s.users[o.UserID]; ok {
		cp := cloneUser(u)
		cp.Sanitize()
		cp.History = nil
		o.User = *cp
	}
}
