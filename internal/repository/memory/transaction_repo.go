package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository in memory
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction
	now          func() time.Time
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{now: func() time.Time { return time.Now().UTC() }}
}

func transactionField(t *domain.Transaction, field string) (any, bool) {
	switch field {
	case domain.TransactionFieldID:
		return t.ID, true
	case domain.TransactionFieldDescription:
		return t.Description, true
	case domain.TransactionFieldAmount:
		return t.Amount, true
	case domain.TransactionFieldMethod:
		return t.Method, t.Method != ""
	case domain.TransactionFieldType:
		return t.Type, true
	case domain.TransactionFieldFrequency:
		return t.Frequency, t.Frequency != ""
	case domain.TransactionFieldDate:
		return t.Date, true
	case domain.TransactionFieldCategory:
		if t.CategoryID == nil {
			return nil, false
		}
		return *t.CategoryID, true
	case "createdAt":
		return t.CreatedAt, true
	case "updatedAt":
		return t.UpdatedAt, true
	}
	return nil, false
}

func cloneTransaction(t *domain.Transaction) *domain.Transaction {
	cp := *t
	if t.Location != nil {
		loc := *t.Location
		cp.Location = &loc
	}
	if t.CategoryID != nil {
		id := *t.CategoryID
		cp.CategoryID = &id
	}
	cp.Category = nil
	return &cp
}

// Find returns copies of the transactions matching pred
func (r *TransactionRepository) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := sortAndPage(filter(r.transactions, pred, transactionField), opts, transactionField)
	out := make([]*domain.Transaction, len(matched))
	for i, t := range matched {
		out[i] = cloneTransaction(t)
	}
	return out, nil
}

// Count returns the number of transactions matching pred
func (r *TransactionRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(filter(r.transactions, pred, transactionField))), nil
}

// Create validates and stores a transaction, assigning its ID and timestamps
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	stored := cloneTransaction(transaction)
	stored.Date = stored.Date.UTC()
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt

	r.mu.Lock()
	r.transactions = append(r.transactions, stored)
	r.mu.Unlock()

	return cloneTransaction(stored), nil
}

// UpdateMany applies patch to every matching transaction. Records that would
// become invalid are left unchanged and not counted. An empty patch changes nothing.
func (r *TransactionRepository) UpdateMany(ctx context.Context, pred query.Predicate, patch domain.TransactionPatch) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if patch.IsEmpty() {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var modified int64
	for i, t := range r.transactions {
		if !matchAll(t, pred, transactionField) {
			continue
		}
		updated := cloneTransaction(t)
		patch.Apply(updated)
		if err := updated.Validate(); err != nil {
			continue
		}
		updated.Date = updated.Date.UTC()
		updated.UpdatedAt = r.now()
		r.transactions[i] = updated
		modified++
	}
	return modified, nil
}

// DeleteMany removes every matching transaction
func (r *TransactionRepository) DeleteMany(ctx context.Context, pred query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.transactions[:0]
	var deleted int64
	for _, t := range r.transactions {
		if matchAll(t, pred, transactionField) {
			deleted++
			continue
		}
		kept = append(kept, t)
	}
	r.transactions = kept
	return deleted, nil
}

// GroupSum buckets matching transactions by groupBy and sums sumField.
// Buckets come back in the order their first record was inserted.
func (r *TransactionRepository) GroupSum(ctx context.Context, pred query.Predicate, groupBy, sumField string) ([]*domain.GroupSum, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := make(map[string]*domain.GroupSum)
	var groups []*domain.GroupSum
	for _, t := range filter(r.transactions, pred, transactionField) {
		keyValue, ok := transactionField(t, groupBy)
		key := groupKey(keyValue, ok)

		g, seen := index[key]
		if !seen {
			if !ok {
				keyValue = nil
			}
			g = &domain.GroupSum{Key: keyValue, Total: decimal.Zero}
			index[key] = g
			groups = append(groups, g)
		}

		if v, ok := transactionField(t, sumField); ok {
			if n, ok := query.Number(v); ok {
				g.Total = g.Total.Add(n)
			}
		}
		g.Count++
	}
	return groups, nil
}
