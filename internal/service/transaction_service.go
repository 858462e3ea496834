package service

import (
	"context"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/dafibh/cashflow/cashflow-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const transactionEntity = "transaction"

// TransactionService handles transaction queries and mutations
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publish(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Description string
	Amount      *decimal.Decimal
	Location    *domain.Location
	Method      domain.TransactionMethod
	Type        domain.TransactionType
	Frequency   domain.TransactionFrequency
	Date        *time.Time
	CategoryID  *uuid.UUID
}

// List returns the transactions matching filters, newest first.
// Page is a record offset and PerPage a limit; zero PerPage means no limit.
func (s *TransactionService) List(ctx context.Context, filters query.Filters, page domain.Pagination) ([]*domain.Transaction, error) {
	return s.find(ctx, normalizeTransactionFilters(filters), page)
}

// ListPage returns one page of transactions together with the total match count
func (s *TransactionService) ListPage(ctx context.Context, filters query.Filters, page domain.Pagination) (*domain.TransactionPage, error) {
	pred := normalizeTransactionFilters(filters)

	var (
		items []*domain.Transaction
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.find(gctx, pred, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.transactionRepo.Count(gctx, pred)
		if err != nil {
			log.Error().Err(err).Msg("Failed to count transactions")
			return domain.WrapStoreError("count", transactionEntity, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.TransactionPage{Data: items, TotalItems: total}, nil
}

func (s *TransactionService) find(ctx context.Context, pred query.Predicate, page domain.Pagination) ([]*domain.Transaction, error) {
	opts := query.FindOptions{
		SortField: domain.TransactionFieldDate,
		SortDesc:  true,
		Limit:     max(page.PerPage, 0),
		Offset:    max(page.Page, 0),
	}

	transactions, err := s.transactionRepo.Find(ctx, pred, opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to find transactions")
		return nil, domain.WrapStoreError("find", transactionEntity, err)
	}
	if transactions == nil {
		transactions = []*domain.Transaction{}
	}

	if err := s.resolveCategories(ctx, transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func normalizeTransactionFilters(filters query.Filters) query.Predicate {
	return query.Normalize(filters, query.DateRange, query.AmountRange)
}

// Get retrieves a single transaction by ID
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	pred := query.Predicate{domain.TransactionFieldID: query.Equal{Value: id}}
	transactions, err := s.transactionRepo.Find(ctx, pred, query.FindOptions{Limit: 1})
	if err != nil {
		log.Error().Err(err).Str("transaction_id", id.String()).Msg("Failed to get transaction")
		return nil, domain.WrapStoreError("find", transactionEntity, err)
	}
	if len(transactions) == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	if err := s.resolveCategories(ctx, transactions); err != nil {
		return nil, err
	}
	return transactions[0], nil
}

// Create creates a new transaction. The date defaults to now; a category
// reference is stored as given even when no such category exists.
func (s *TransactionService) Create(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Amount == nil {
		return nil, domain.NewValidationError("Transaction", domain.TransactionFieldAmount, "amount is required")
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	transaction := &domain.Transaction{
		Description: input.Description,
		Amount:      *input.Amount,
		Location:    input.Location,
		Method:      input.Method,
		Type:        input.Type,
		Frequency:   input.Frequency,
		Date:        date,
		CategoryID:  input.CategoryID,
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(ctx, transaction)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create transaction")
		return nil, domain.WrapStoreError("create", transactionEntity, err)
	}

	if err := s.resolveCategories(ctx, []*domain.Transaction{created}); err != nil {
		return nil, err
	}

	s.publish(websocket.TransactionCreated(created))
	return created, nil
}

// Update applies patch to every transaction matching filters and returns the
// number of records changed. A nil filters value is rejected before the store is touched.
func (s *TransactionService) Update(ctx context.Context, filters query.Filters, patch domain.TransactionPatch) (int64, error) {
	if filters == nil {
		return 0, domain.ErrFiltersRequired
	}
	if err := patch.Validate(); err != nil {
		return 0, err
	}

	n, err := s.transactionRepo.UpdateMany(ctx, normalizeTransactionFilters(filters), patch)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update transactions")
		return 0, domain.WrapStoreError("update", transactionEntity, err)
	}

	if n > 0 {
		s.publish(websocket.TransactionUpdated(websocket.BulkChange{Filters: filters, Count: n}))
	}
	return n, nil
}

// Delete removes every transaction matching filters and returns how many were
// removed. A nil filters value is rejected before the store is touched.
func (s *TransactionService) Delete(ctx context.Context, filters query.Filters) (int64, error) {
	if filters == nil {
		return 0, domain.ErrFiltersRequired
	}

	n, err := s.transactionRepo.DeleteMany(ctx, normalizeTransactionFilters(filters))
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete transactions")
		return 0, domain.WrapStoreError("delete", transactionEntity, err)
	}

	if n > 0 {
		s.publish(websocket.TransactionDeleted(websocket.BulkChange{Filters: filters, Count: n}))
	}
	return n, nil
}

// UpdateByID patches a single transaction and returns its new state.
// The lookup and the write are separate store calls; a concurrent delete
// between them surfaces as ErrTransactionNotFound.
func (s *TransactionService) UpdateByID(ctx context.Context, id uuid.UUID, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		pred := query.Predicate{domain.TransactionFieldID: query.Equal{Value: id}}
		if _, err := s.transactionRepo.UpdateMany(ctx, pred, patch); err != nil {
			log.Error().Err(err).Str("transaction_id", id.String()).Msg("Failed to update transaction")
			return nil, domain.WrapStoreError("update", transactionEntity, err)
		}
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(websocket.TransactionUpdated(updated))
	return updated, nil
}

// DeleteByID removes a single transaction
func (s *TransactionService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	pred := query.Predicate{domain.TransactionFieldID: query.Equal{Value: id}}
	n, err := s.transactionRepo.DeleteMany(ctx, pred)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", id.String()).Msg("Failed to delete transaction")
		return domain.WrapStoreError("delete", transactionEntity, err)
	}
	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	s.publish(websocket.TransactionDeleted(map[string]any{"id": id}))
	return nil
}

// resolveCategories replaces every category reference with the full record in
// one batch lookup. Dangling references leave Category nil.
func (s *TransactionService) resolveCategories(ctx context.Context, transactions []*domain.Transaction) error {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, t := range transactions {
		if t.CategoryID != nil && !seen[*t.CategoryID] {
			seen[*t.CategoryID] = true
			ids = append(ids, *t.CategoryID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Int("category_count", len(ids)).Msg("Failed to resolve categories")
		return domain.WrapStoreError("find", categoryEntity, err)
	}

	byID := make(map[uuid.UUID]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for _, t := range transactions {
		if t.CategoryID != nil {
			t.Category = byID[*t.CategoryID]
		}
	}
	return nil
}
