package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
)

const categoryEntity = "Category"

// Category field names usable in filters
const (
	CategoryFieldID          = "id"
	CategoryFieldName        = "name"
	CategoryFieldDescription = "description"
	CategoryFieldIcon        = "icon"
	CategoryFieldColor       = "color"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks the category against its field constraints.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError(categoryEntity, CategoryFieldName, "name is required")
	}
	if utf8.RuneCountInString(c.Name) > MaxCategoryNameLength {
		return NewValidationError(categoryEntity, CategoryFieldName, "name must be 15 characters or less")
	}
	if utf8.RuneCountInString(c.Description) > MaxCategoryDescriptionLength {
		return NewValidationError(categoryEntity, CategoryFieldDescription, "description must be 100 characters or less")
	}
	return nil
}

// CategoryPatch carries the fields of a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
}

func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Icon == nil && p.Color == nil
}

// Apply merges the patch into c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
}

// Validate checks only the supplied fields.
func (p CategoryPatch) Validate() error {
	probe := Category{Name: "x"}
	p.Apply(&probe)
	return probe.Validate()
}

// CategoryRepository is the record store capability for categories.
type CategoryRepository interface {
	Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*Category, error)
	Count(ctx context.Context, pred query.Predicate) (int64, error)
	Create(ctx context.Context, category *Category) (*Category, error)
	UpdateMany(ctx context.Context, pred query.Predicate, patch CategoryPatch) (int64, error)
	DeleteMany(ctx context.Context, pred query.Predicate) (int64, error)
	// GetByIDs resolves references; ids without a record are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Category, error)
}
