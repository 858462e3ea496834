package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/dafibh/cashflow/cashflow-backend/internal/repository/memory"
	"github.com/dafibh/cashflow/cashflow-backend/internal/websocket"
	"github.com/google/uuid"
)

// callCounter records how often each repository method was invoked
type callCounter struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *callCounter) record(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[method]++
}

// CallCount returns how many times method was called
func (c *callCounter) CallCount(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// TotalCalls returns the number of calls across every method
func (c *callCounter) TotalCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.calls {
		total += n
	}
	return total
}

// MockTransactionRepository is a spy over the in-memory transaction store.
// Set an XxxFn to override a method.
type MockTransactionRepository struct {
	callCounter
	store *memory.TransactionRepository

	FindFn       func(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Transaction, error)
	CountFn      func(ctx context.Context, pred query.Predicate) (int64, error)
	CreateFn     func(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	UpdateManyFn func(ctx context.Context, pred query.Predicate, patch domain.TransactionPatch) (int64, error)
	DeleteManyFn func(ctx context.Context, pred query.Predicate) (int64, error)
	GroupSumFn   func(ctx context.Context, pred query.Predicate, groupBy, sumField string) ([]*domain.GroupSum, error)

	// LastFindOptions holds the options of the most recent Find call
	LastFindOptions query.FindOptions
	// LastPredicate holds the predicate of the most recent call
	LastPredicate query.Predicate
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{store: memory.NewTransactionRepository()}
}

// Find retrieves matching transactions
func (m *MockTransactionRepository) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Transaction, error) {
	m.record("Find")
	m.LastFindOptions = opts
	m.LastPredicate = pred
	if m.FindFn != nil {
		return m.FindFn(ctx, pred, opts)
	}
	return m.store.Find(ctx, pred, opts)
}

// Count counts matching transactions
func (m *MockTransactionRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	m.record("Count")
	if m.CountFn != nil {
		return m.CountFn(ctx, pred)
	}
	return m.store.Count(ctx, pred)
}

// Create stores a transaction
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, transaction)
	}
	return m.store.Create(ctx, transaction)
}

// UpdateMany patches matching transactions
func (m *MockTransactionRepository) UpdateMany(ctx context.Context, pred query.Predicate, patch domain.TransactionPatch) (int64, error) {
	m.record("UpdateMany")
	m.LastPredicate = pred
	if m.UpdateManyFn != nil {
		return m.UpdateManyFn(ctx, pred, patch)
	}
	return m.store.UpdateMany(ctx, pred, patch)
}

// DeleteMany removes matching transactions
func (m *MockTransactionRepository) DeleteMany(ctx context.Context, pred query.Predicate) (int64, error) {
	m.record("DeleteMany")
	m.LastPredicate = pred
	if m.DeleteManyFn != nil {
		return m.DeleteManyFn(ctx, pred)
	}
	return m.store.DeleteMany(ctx, pred)
}

// GroupSum groups matching transactions
func (m *MockTransactionRepository) GroupSum(ctx context.Context, pred query.Predicate, groupBy, sumField string) ([]*domain.GroupSum, error) {
	m.record("GroupSum")
	m.LastPredicate = pred
	if m.GroupSumFn != nil {
		return m.GroupSumFn(ctx, pred, groupBy, sumField)
	}
	return m.store.GroupSum(ctx, pred, groupBy, sumField)
}

// AddTransaction seeds a transaction without counting the call (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) *domain.Transaction {
	created, err := m.store.Create(context.Background(), transaction)
	if err != nil {
		panic(fmt.Sprintf("seed transaction: %v", err))
	}
	return created
}

// MockCategoryRepository is a spy over the in-memory category store.
// Set an XxxFn to override a method.
type MockCategoryRepository struct {
	callCounter
	store *memory.CategoryRepository

	FindFn       func(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Category, error)
	CreateFn     func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateManyFn func(ctx context.Context, pred query.Predicate, patch domain.CategoryPatch) (int64, error)
	DeleteManyFn func(ctx context.Context, pred query.Predicate) (int64, error)
	GetByIDsFn   func(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{store: memory.NewCategoryRepository()}
}

// Find retrieves matching categories
func (m *MockCategoryRepository) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Category, error) {
	m.record("Find")
	if m.FindFn != nil {
		return m.FindFn(ctx, pred, opts)
	}
	return m.store.Find(ctx, pred, opts)
}

// Count counts matching categories
func (m *MockCategoryRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	m.record("Count")
	return m.store.Count(ctx, pred)
}

// Create stores a category
func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}
	return m.store.Create(ctx, category)
}

// UpdateMany patches matching categories
func (m *MockCategoryRepository) UpdateMany(ctx context.Context, pred query.Predicate, patch domain.CategoryPatch) (int64, error) {
	m.record("UpdateMany")
	if m.UpdateManyFn != nil {
		return m.UpdateManyFn(ctx, pred, patch)
	}
	return m.store.UpdateMany(ctx, pred, patch)
}

// DeleteMany removes matching categories
func (m *MockCategoryRepository) DeleteMany(ctx context.Context, pred query.Predicate) (int64, error) {
	m.record("DeleteMany")
	if m.DeleteManyFn != nil {
		return m.DeleteManyFn(ctx, pred)
	}
	return m.store.DeleteMany(ctx, pred)
}

// GetByIDs resolves category ids
func (m *MockCategoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	m.record("GetByIDs")
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, ids)
	}
	return m.store.GetByIDs(ctx, ids)
}

// AddCategory seeds a category without counting the call (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) *domain.Category {
	created, err := m.store.Create(context.Background(), category)
	if err != nil {
		panic(fmt.Sprintf("seed category: %v", err))
	}
	return created
}

// MockIconStore is an in-memory storage.IconStore
type MockIconStore struct {
	mu       sync.Mutex
	Objects  map[string][]byte
	Deleted  []string
	UploadFn func(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
}

// NewMockIconStore creates a new MockIconStore
func NewMockIconStore() *MockIconStore {
	return &MockIconStore{Objects: make(map[string][]byte)}
}

// Upload stores the object in memory
func (m *MockIconStore) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, objectPath, data, contentType, size)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectPath] = buf.Bytes()
	return objectPath, nil
}

// Delete removes the object
func (m *MockIconStore) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectPath)
	m.Deleted = append(m.Deleted, objectPath)
	return nil
}

// GeneratePresignedURL returns a fake URL embedding the path and expiry
func (m *MockIconStore) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://icons.test/%s?expires=%d", objectPath, int(expiry.Seconds())), nil
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the type of every recorded event in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}
