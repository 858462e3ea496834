package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
)

// CategoryRepository implements domain.CategoryRepository in memory
type CategoryRepository struct {
	mu         sync.RWMutex
	categories []*domain.Category
	now        func() time.Time
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{now: func() time.Time { return time.Now().UTC() }}
}

func categoryField(c *domain.Category, field string) (any, bool) {
	switch field {
	case domain.CategoryFieldID:
		return c.ID, true
	case domain.CategoryFieldName:
		return c.Name, true
	case domain.CategoryFieldDescription:
		return c.Description, c.Description != ""
	case domain.CategoryFieldIcon:
		return c.Icon, c.Icon != ""
	case domain.CategoryFieldColor:
		return c.Color, c.Color != ""
	case "createdAt":
		return c.CreatedAt, true
	case "updatedAt":
		return c.UpdatedAt, true
	}
	return nil, false
}

func cloneCategory(c *domain.Category) *domain.Category {
	cp := *c
	return &cp
}

// Find returns copies of the categories matching pred
func (r *CategoryRepository) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := sortAndPage(filter(r.categories, pred, categoryField), opts, categoryField)
	out := make([]*domain.Category, len(matched))
	for i, c := range matched {
		out[i] = cloneCategory(c)
	}
	return out, nil
}

// Count returns the number of categories matching pred
func (r *CategoryRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(filter(r.categories, pred, categoryField))), nil
}

// Create validates and stores a category, assigning its ID and timestamps
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	stored := cloneCategory(category)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt

	r.mu.Lock()
	r.categories = append(r.categories, stored)
	r.mu.Unlock()

	return cloneCategory(stored), nil
}

// UpdateMany applies patch to every matching category. Records that would
// become invalid are left unchanged and not counted. An empty patch changes nothing.
func (r *CategoryRepository) UpdateMany(ctx context.Context, pred query.Predicate, patch domain.CategoryPatch) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if patch.IsEmpty() {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var modified int64
	for i, c := range r.categories {
		if !matchAll(c, pred, categoryField) {
			continue
		}
		updated := cloneCategory(c)
		patch.Apply(updated)
		if err := updated.Validate(); err != nil {
			continue
		}
		updated.UpdatedAt = r.now()
		r.categories[i] = updated
		modified++
	}
	return modified, nil
}

// DeleteMany removes every matching category
func (r *CategoryRepository) DeleteMany(ctx context.Context, pred query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.categories[:0]
	var deleted int64
	for _, c := range r.categories {
		if matchAll(c, pred, categoryField) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.categories = kept
	return deleted, nil
}

// GetByIDs returns the categories whose ID is in ids
func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Category
	for _, c := range r.categories {
		if want[c.ID] {
			out = append(out, cloneCategory(c))
		}
	}
	return out, nil
}
