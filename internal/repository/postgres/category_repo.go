package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categorySelect = `id, name, description, icon, color, created_at, updated_at`

var categoryColumns = columns{
	domain.CategoryFieldID:          "id",
	domain.CategoryFieldName:        "name",
	domain.CategoryFieldDescription: "description",
	domain.CategoryFieldIcon:        "icon",
	domain.CategoryFieldColor:       "color",
	"createdAt":                     "created_at",
	"updatedAt":                     "updated_at",
}

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Find retrieves categories matching pred
func (r *CategoryRepository) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Category, error) {
	b := &sqlBuilder{}
	sql := "SELECT " + categorySelect + " FROM categories WHERE " + b.where(pred, categoryColumns) +
		b.orderBy(opts, categoryColumns, "created_at, id")

	rows, err := r.pool.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return collectCategories(rows)
}

// Count counts categories matching pred
func (r *CategoryRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	b := &sqlBuilder{}
	var n int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM categories WHERE "+b.where(pred, categoryColumns), b.args...).Scan(&n)
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

	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, description, icon, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categorySelect,
		pgtype.UUID{Bytes: id, Valid: true}, category.Name, category.Description, category.Icon, category.Color)

	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return created, nil
}

// UpdateMany applies patch to every matching category. Column constraints are
// independent per field, so a patch that fails validation would invalidate every
// record and nothing is written.
func (r *CategoryRepository) UpdateMany(ctx context.Context, pred query.Predicate, patch domain.CategoryPatch) (int64, error) {
	if patch.IsEmpty() || patch.Validate() != nil {
		return 0, nil
	}

	b := &sqlBuilder{}
	var sets []string
	if patch.Name != nil {
		sets = append(sets, "name = "+b.arg(*patch.Name))
	}
	if patch.Description != nil {
		sets = append(sets, "description = "+b.arg(*patch.Description))
	}
	if patch.Icon != nil {
		sets = append(sets, "icon = "+b.arg(*patch.Icon))
	}
	if patch.Color != nil {
		sets = append(sets, "color = "+b.arg(*patch.Color))
	}
	sets = append(sets, "updated_at = NOW()")

	sql := "UPDATE categories SET " + strings.Join(sets, ", ") + " WHERE " + b.where(pred, categoryColumns)
	tag, err := r.pool.Exec(ctx, sql, b.args...)
	if err != nil {
		return 0, fmt.Errorf("update categories: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteMany deletes every matching category
func (r *CategoryRepository) DeleteMany(ctx context.Context, pred query.Predicate) (int64, error) {
	b := &sqlBuilder{}
	tag, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE "+b.where(pred, categoryColumns), b.args...)
	if err != nil {
		return 0, fmt.Errorf("delete categories: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetByIDs retrieves the categories with the given ids
func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pgIDs := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		pgIDs[i] = pgtype.UUID{Bytes: id, Valid: true}
	}

	rows, err := r.pool.Query(ctx, "SELECT "+categorySelect+" FROM categories WHERE id = ANY($1)", pgIDs)
	if err != nil {
		return nil, fmt.Errorf("query categories by id: %w", err)
	}
	return collectCategories(rows)
}

func collectCategories(rows pgx.Rows) ([]*domain.Category, error) {
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		id                 pgtype.UUID
		c                  domain.Category
		createdAt, updated pgtype.Timestamptz
	)
	if err := row.Scan(&id, &c.Name, &c.Description, &c.Icon, &c.Color, &createdAt, &updated); err != nil {
		return nil, err
	}
	c.ID = id.Bytes
	c.CreatedAt = pgTimestamptzToTime(createdAt)
	c.UpdatedAt = pgTimestamptzToTime(updated)
	return &c, nil
}
