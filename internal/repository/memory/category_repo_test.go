package memory

import (
	"context"
	"testing"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()

	food, err := repo.Create(ctx, &domain.Category{Name: "Food", Color: "#ff0000"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Category{Name: "Travel"})
	require.NoError(t, err)

	byName, err := repo.Find(ctx, query.Predicate{"name": query.Equal{Value: "Food"}}, query.FindOptions{})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, food.ID, byName[0].ID)

	desc := "Groceries and restaurants"
	n, err := repo.UpdateMany(ctx, query.Predicate{"id": query.Equal{Value: food.ID}}, domain.CategoryPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteMany(ctx, query.Predicate{"name": query.Equal{Value: "Travel"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := repo.Count(ctx, query.Predicate{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCategoryRepository_UpdateManyRejectsTooLongName(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()
	_, err := repo.Create(ctx, &domain.Category{Name: "Food"})
	require.NoError(t, err)
	long := "a name that is far too long"

	n, err := repo.UpdateMany(ctx, query.Predicate{}, domain.CategoryPatch{Name: &long})

	require.NoError(t, err)
	assert.Zero(t, n)
	got, _ := repo.Find(ctx, query.Predicate{}, query.FindOptions{})
	assert.Equal(t, "Food", got[0].Name)
}

func TestCategoryRepository_UpdateManyEmptyPatch(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()
	_, err := repo.Create(ctx, &domain.Category{Name: "Food"})
	require.NoError(t, err)

	n, err := repo.UpdateMany(ctx, query.Predicate{}, domain.CategoryPatch{})

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCategoryRepository_GetByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()
	food, _ := repo.Create(ctx, &domain.Category{Name: "Food"})

	got, err := repo.GetByIDs(ctx, []uuid.UUID{food.ID, uuid.New()})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Food", got[0].Name)
}

func TestCategoryRepository_CreateRejectsMissingName(t *testing.T) {
	_, err := NewCategoryRepository().Create(context.Background(), &domain.Category{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}
