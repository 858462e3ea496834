package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultGroupBy is used when a report request names no grouping field
const DefaultGroupBy = domain.TransactionFieldType

// ReportService computes grouped transaction totals
type ReportService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
}

// NewReportService creates a new ReportService
func NewReportService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// SumByType groups the transactions matching filters by groupBy and returns
// the amount total and record count of each group, largest total first.
// Amount bounds are ignored; only the date range and equality filters apply.
func (s *ReportService) SumByType(ctx context.Context, filters query.Filters, groupBy string) ([]*domain.GroupTotal, error) {
	if groupBy == "" {
		groupBy = DefaultGroupBy
	}
	if !domain.GroupableTransactionFields[groupBy] {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidGroupBy, groupBy)
	}

	raw := filters.Without(query.AmountRange.LowerKey, query.AmountRange.UpperKey)
	pred := query.Normalize(raw, query.DateRange)
	if err := castCategoryReference(pred); err != nil {
		return nil, err
	}

	groups, err := s.transactionRepo.GroupSum(ctx, pred, groupBy, domain.TransactionFieldAmount)
	if err != nil {
		log.Error().Err(err).Str("group_by", groupBy).Msg("Failed to aggregate transactions")
		return nil, domain.WrapStoreError("aggregate", transactionEntity, err)
	}

	totals := make([]*domain.GroupTotal, len(groups))
	for i, g := range groups {
		totals[i] = &domain.GroupTotal{Key: g.Key, TotalAmount: g.Total, Count: g.Count}
	}

	if groupBy == domain.TransactionFieldCategory {
		if err := s.attachCategories(ctx, totals); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalAmount.GreaterThan(totals[j].TotalAmount)
	})
	return totals, nil
}

// castCategoryReference converts a textual category filter into the id type
// the store keeps references as.
func castCategoryReference(pred query.Predicate) error {
	eq, ok := pred[domain.TransactionFieldCategory].(query.Equal)
	if !ok {
		return nil
	}
	switch v := eq.Value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("%w: %q", domain.ErrInvalidReference, v)
		}
		pred[domain.TransactionFieldCategory] = query.Equal{Value: id}
	case *uuid.UUID:
		if v != nil {
			pred[domain.TransactionFieldCategory] = query.Equal{Value: *v}
		}
	}
	return nil
}

func (s *ReportService) attachCategories(ctx context.Context, totals []*domain.GroupTotal) error {
	var ids []uuid.UUID
	for _, t := range totals {
		if id, ok := t.Key.(uuid.UUID); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve report categories")
		return domain.WrapStoreError("find", categoryEntity, err)
	}

	byID := make(map[uuid.UUID]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for _, t := range totals {
		if id, ok := t.Key.(uuid.UUID); ok {
			t.Category = byID[id]
		}
	}
	return nil
}
