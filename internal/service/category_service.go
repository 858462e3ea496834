package service

import (
	"context"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/dafibh/cashflow/cashflow-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const categoryEntity = "category"

// CategoryService handles category queries, mutations and icons
type CategoryService struct {
	categoryRepo   domain.CategoryRepository
	iconService    *IconService
	eventPublisher websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CategoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIconService enables icon uploads
func (s *CategoryService) SetIconService(iconService *IconService) {
	s.iconService = iconService
}

func (s *CategoryService) publish(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateCategoryInput holds the input for creating a category
type CreateCategoryInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
}

// List returns the categories matching filters ordered by name
func (s *CategoryService) List(ctx context.Context, filters query.Filters) ([]*domain.Category, error) {
	pred := query.Normalize(filters)
	categories, err := s.categoryRepo.Find(ctx, pred, query.FindOptions{SortField: domain.CategoryFieldName})
	if err != nil {
		log.Error().Err(err).Msg("Failed to find categories")
		return nil, domain.WrapStoreError("find", categoryEntity, err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

// Get retrieves a single category by ID
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	categories, err := s.categoryRepo.GetByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		log.Error().Err(err).Str("category_id", id.String()).Msg("Failed to get category")
		return nil, domain.WrapStoreError("find", categoryEntity, err)
	}
	if len(categories) == 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return categories[0], nil
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		log.Error().Err(err).Str("name", input.Name).Msg("Failed to create category")
		return nil, domain.WrapStoreError("create", categoryEntity, err)
	}

	s.publish(websocket.CategoryCreated(created))
	return created, nil
}

// Update applies patch to every category matching filters.
// A nil filters value is rejected before the store is touched.
func (s *CategoryService) Update(ctx context.Context, filters query.Filters, patch domain.CategoryPatch) (int64, error) {
	if filters == nil {
		return 0, domain.ErrFiltersRequired
	}
	if err := patch.Validate(); err != nil {
		return 0, err
	}

	n, err := s.categoryRepo.UpdateMany(ctx, query.Normalize(filters), patch)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update categories")
		return 0, domain.WrapStoreError("update", categoryEntity, err)
	}

	if n > 0 {
		s.publish(websocket.CategoryUpdated(websocket.BulkChange{Filters: filters, Count: n}))
	}
	return n, nil
}

// Delete removes every category matching filters. Transactions keep their
// references; they resolve to no category afterwards.
func (s *CategoryService) Delete(ctx context.Context, filters query.Filters) (int64, error) {
	if filters == nil {
		return 0, domain.ErrFiltersRequired
	}

	n, err := s.categoryRepo.DeleteMany(ctx, query.Normalize(filters))
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete categories")
		return 0, domain.WrapStoreError("delete", categoryEntity, err)
	}

	if n > 0 {
		s.publish(websocket.CategoryDeleted(websocket.BulkChange{Filters: filters, Count: n}))
	}
	return n, nil
}

// UpdateByID patches a single category and returns its new state
func (s *CategoryService) UpdateByID(ctx context.Context, id uuid.UUID, patch domain.CategoryPatch) (*domain.Category, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		pred := query.Predicate{domain.CategoryFieldID: query.Equal{Value: id}}
		if _, err := s.categoryRepo.UpdateMany(ctx, pred, patch); err != nil {
			log.Error().Err(err).Str("category_id", id.String()).Msg("Failed to update category")
			return nil, domain.WrapStoreError("update", categoryEntity, err)
		}
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(websocket.CategoryUpdated(updated))
	return updated, nil
}

// DeleteByID removes a single category and its uploaded icon
func (s *CategoryService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	pred := query.Predicate{domain.CategoryFieldID: query.Equal{Value: id}}
	n, err := s.categoryRepo.DeleteMany(ctx, pred)
	if err != nil {
		log.Error().Err(err).Str("category_id", id.String()).Msg("Failed to delete category")
		return domain.WrapStoreError("delete", categoryEntity, err)
	}
	if n == 0 {
		return domain.ErrCategoryNotFound
	}

	s.removeStoredIcon(ctx, existing.Icon)
	s.publish(websocket.CategoryDeleted(map[string]any{"id": id}))
	return nil
}

// SetIcon processes an uploaded image, stores it and points the category at it.
// A previously uploaded icon is removed afterwards.
func (s *CategoryService) SetIcon(ctx context.Context, id uuid.UUID, data []byte, filename string) (*domain.Category, error) {
	if !s.iconService.IsEnabled() {
		return nil, ErrIconStorageNotConfigured
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	objectPath, err := s.iconService.ProcessAndUpload(ctx, id, data, filename)
	if err != nil {
		return nil, err
	}

	pred := query.Predicate{domain.CategoryFieldID: query.Equal{Value: id}}
	if _, err := s.categoryRepo.UpdateMany(ctx, pred, domain.CategoryPatch{Icon: &objectPath}); err != nil {
		log.Error().Err(err).Str("category_id", id.String()).Msg("Failed to set category icon")
		s.removeStoredIcon(ctx, objectPath)
		return nil, domain.WrapStoreError("update", categoryEntity, err)
	}

	if existing.Icon != objectPath {
		s.removeStoredIcon(ctx, existing.Icon)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(websocket.CategoryUpdated(updated))
	return updated, nil
}

// IconURL returns a URL clients can load the category icon from. Uploaded
// icons get a short-lived presigned URL; any other icon value is returned as is.
func (s *CategoryService) IconURL(ctx context.Context, category *domain.Category) (string, error) {
	if !IsStoredIcon(category.Icon) || !s.iconService.IsEnabled() {
		return category.Icon, nil
	}
	return s.iconService.URL(ctx, category.Icon)
}

func (s *CategoryService) removeStoredIcon(ctx context.Context, icon string) {
	if !IsStoredIcon(icon) || !s.iconService.IsEnabled() {
		return
	}
	if err := s.iconService.Delete(ctx, icon); err != nil {
		log.Warn().Err(err).Str("object_path", icon).Msg("Failed to delete category icon")
	}
}
