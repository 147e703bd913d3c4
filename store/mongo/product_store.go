package mongo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

type productStore struct {
	c          *mongo.Collection
	categories *mongo.Collection
}

// withoutPhoto keeps the photo binary out of listing payloads.
var withoutPhoto = bson.M{"photo": 0}

func (s *productStore) Create(ctx context.Context, p *models.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, p)
	return translateErr(err)
}

func (s *productStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, translateErr(err)
	}
	if err := s.attachCategories(ctx, []*models.Product{&product}); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productStore) Update(ctx context.Context, p *models.Product) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":               p.Name,
		"description":        p.Description,
		"price":              p.Price,
		"quantity":           p.Quantity,
		"shipping":           p.Shipping,
		"category_id":        p.CategoryID,
		"photo":              p.Photo,
		"photo_content_type": p.PhotoContentType,
		"updatedAt":          time.Now(),
	}})
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return translateErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (s *productStore) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateErr(err)
	}
	if res.DeletedCount == 0 {
		return translateErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (s *productStore) List(ctx context.Context, opts store.ListOptions) ([]models.Product, error) {
	findOpts := options.Find().
		SetProjection(withoutPhoto).
		SetSort(sortSpec(opts.SortBy, opts.Order))
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	return s.find(ctx, bson.M{}, findOpts)
}

func (s *productStore) Search(ctx context.Context, params store.SearchParams) (int64, []models.Product, error) {
	filter := bson.M{}
	if len(params.CategoryIDs) > 0 {
		filter["category_id"] = bson.M{"$in": params.CategoryIDs}
	}
	if params.PriceMin != nil || params.PriceMax != nil {
		price := bson.M{}
		if params.PriceMin != nil {
			price["$gte"] = *params.PriceMin
		}
		if params.PriceMax != nil {
			price["$lte"] = *params.PriceMax
		}
		filter["price"] = price
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return 0, nil, translateErr(err)
	}

	findOpts := options.Find().
		SetProjection(withoutPhoto).
		SetSort(sortSpec(params.SortBy, params.Order)).
		SetSkip(int64(params.Skip))
	if params.Limit > 0 {
		findOpts.SetLimit(int64(params.Limit))
	}

	products, err := s.find(ctx, filter, findOpts)
	if err != nil {
		return 0, nil, err
	}
	return total, products, nil
}

func (s *productStore) SearchByName(ctx context.Context, term, categoryID string) ([]models.Product, error) {
	filter := bson.M{
		"name": primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"},
	}
	if categoryID != "" {
		filter["category_id"] = categoryID
	}
	return s.find(ctx, filter, options.Find().SetProjection(withoutPhoto))
}

func (s *productStore) ListRelated(ctx context.Context, productID string, limit int) ([]models.Product, error) {
	var product models.Product
	if err := s.c.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		return nil, translateErr(err)
	}

	filter := bson.M{
		"category_id": product.CategoryID,
		"_id":         bson.M{"$ne": productID},
	}
	findOpts := options.Find().SetProjection(withoutPhoto)
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}
	return s.find(ctx, filter, findOpts)
}

func (s *productStore) DistinctCategoryIDs(ctx context.Context) ([]string, error) {
	raw, err := s.c.Distinct(ctx, "category_id", bson.M{})
	if err != nil {
		return nil, translateErr(err)
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *productStore) DecrementStock(ctx context.Context, productID string, count int) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": productID, "quantity": bson.M{"$gte": count}},
		bson.M{"$inc": bson.M{"quantity": -count, "sold": count}},
	)
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": productID})
		if err != nil {
			return translateErr(err)
		}
		if n == 0 {
			return store.ErrNotFound
		}
		return store.ErrInsufficientStock
	}
	return nil
}

func (s *productStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateErr(err)
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, translateErr(err)
	}

	refs := make([]*models.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := s.attachCategories(ctx, refs); err != nil {
		return nil, err
	}
	return products, nil
}

// attachCategories populates the denormalized Category field the way the
// relational adapter's join does.
func (s *productStore) attachCategories(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	idSet := make(map[string]struct{})
	for _, p := range products {
		if p.CategoryID != "" {
			idSet[p.CategoryID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	cur, err := s.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return translateErr(err)
	}
	var categories []models.Category
	if err := cur.All(ctx, &categories); err != nil {
		return translateErr(err)
	}

	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for _, p := range products {
		if c, ok := byID[p.CategoryID]; ok {
			p.Category = c
		}
	}
	return nil
}
