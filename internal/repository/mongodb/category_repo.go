package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var categoryKeys = fields{
	domain.CategoryFieldID:          "_id",
	domain.CategoryFieldName:        "name",
	domain.CategoryFieldDescription: "description",
	domain.CategoryFieldIcon:        "icon",
	domain.CategoryFieldColor:       "color",
	"createdAt":                     "createdAt",
	"updatedAt":                     "updatedAt",
}

type categoryDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	Icon        string    `bson:"icon,omitempty"`
	Color       string    `bson:"color,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d categoryDocument) toDomain() *domain.Category {
	id, _ := uuid.Parse(d.ID)
	return &domain.Category{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Color:       d.Color,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// CategoryRepository implements domain.CategoryRepository using MongoDB
type CategoryRepository struct {
	coll *mongo.Collection
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

// Find retrieves categories matching pred
func (r *CategoryRepository) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Category, error) {
	cur, err := r.coll.Find(ctx, buildFilter(pred, categoryKeys), findOptions(opts, categoryKeys))
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	return decodeCategories(ctx, cur)
}

// Count counts categories matching pred
func (r *CategoryRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, buildFilter(pred, categoryKeys))
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	id := category.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc := categoryDocument{
		ID:          id.String(),
		Name:        category.Name,
		Description: category.Description,
		Icon:        category.Icon,
		Color:       category.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateMany applies patch to every matching category. A patch that fails
// validation would invalidate every record, so nothing is written.
func (r *CategoryRepository) UpdateMany(ctx context.Context, pred query.Predicate, patch domain.CategoryPatch) (int64, error) {
	if patch.IsEmpty() || patch.Validate() != nil {
		return 0, nil
	}

	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Icon != nil {
		set = append(set, bson.E{Key: "icon", Value: *patch.Icon})
	}
	if patch.Color != nil {
		set = append(set, bson.E{Key: "color", Value: *patch.Color})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: time.Now().UTC()})

	res, err := r.coll.UpdateMany(ctx, buildFilter(pred, categoryKeys), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return 0, fmt.Errorf("update categories: %w", err)
	}
	return res.MatchedCount, nil
}

// DeleteMany deletes every matching category
func (r *CategoryRepository) DeleteMany(ctx context.Context, pred query.Predicate) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, buildFilter(pred, categoryKeys))
	if err != nil {
		return 0, fmt.Errorf("delete categories: %w", err)
	}
	return res.DeletedCount, nil
}

// GetByIDs retrieves the categories with the given ids
func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make(bson.A, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	cur, err := r.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: keys}}}})
	if err != nil {
		return nil, fmt.Errorf("find categories by id: %w", err)
	}
	return decodeCategories(ctx, cur)
}

func decodeCategories(ctx context.Context, cur *mongo.Cursor) ([]*domain.Category, error) {
	defer cur.Close(ctx)

	categories := []*domain.Category{}
	for cur.Next(ctx) {
		var doc categoryDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		categories = append(categories, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
