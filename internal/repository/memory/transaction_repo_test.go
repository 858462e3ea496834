package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseDate = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTx(desc string, amount int64, txType domain.TransactionType, day int) *domain.Transaction {
	return &domain.Transaction{
		Description: desc,
		Amount:      decimal.NewFromInt(amount),
		Type:        txType,
		Frequency:   domain.TransactionFrequencyVariable,
		Date:        baseDate.AddDate(0, 0, day),
	}
}

func seed(t *testing.T, repo *TransactionRepository, txs ...*domain.Transaction) []*domain.Transaction {
	t.Helper()
	out := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		created, err := repo.Create(context.Background(), tx)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func amounts(txs []*domain.Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = tx.Amount.IntPart()
	}
	return out
}

func TestTransactionRepository_CreateAssignsIDAndTimestamps(t *testing.T) {
	repo := NewTransactionRepository()

	created, err := repo.Create(context.Background(), newTx("Salary", 1000, domain.TransactionTypeCashIn, 0))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestTransactionRepository_CreateRejectsInvalid(t *testing.T) {
	repo := NewTransactionRepository()

	_, err := repo.Create(context.Background(), newTx("", 10, domain.TransactionTypeCashIn, 0))

	assert.True(t, errors.Is(err, domain.ErrValidation))
	n, _ := repo.Count(context.Background(), query.Predicate{})
	assert.Zero(t, n)
}

func TestTransactionRepository_FindAmountRange(t *testing.T) {
	repo := NewTransactionRepository()
	seed(t, repo,
		newTx("a", 10, domain.TransactionTypeCashOut, 1),
		newTx("b", 20, domain.TransactionTypeCashOut, 2),
		newTx("c", 30, domain.TransactionTypeCashOut, 3),
	)
	pred := query.Normalize(query.Filters{"minAmount": 10, "maxAmount": 25})

	got, err := repo.Find(context.Background(), pred, query.FindOptions{SortField: domain.TransactionFieldDate, SortDesc: true})

	require.NoError(t, err)
	assert.Equal(t, []int64{20, 10}, amounts(got))
}

func TestTransactionRepository_FindDateRangeInclusive(t *testing.T) {
	repo := NewTransactionRepository()
	seed(t, repo,
		newTx("a", 1, domain.TransactionTypeCashOut, 0),
		newTx("b", 2, domain.TransactionTypeCashOut, 1),
		newTx("c", 3, domain.TransactionTypeCashOut, 2),
		newTx("d", 4, domain.TransactionTypeCashOut, 3),
	)
	pred := query.Normalize(query.Filters{"start": baseDate.AddDate(0, 0, 1), "end": baseDate.AddDate(0, 0, 2)})

	got, err := repo.Find(context.Background(), pred, query.FindOptions{SortField: domain.TransactionFieldDate})

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, amounts(got))
}

func TestTransactionRepository_FindEquality(t *testing.T) {
	repo := NewTransactionRepository()
	seed(t, repo,
		newTx("Rent", 900, domain.TransactionTypeCashOut, 0),
		newTx("Coffee", 5, domain.TransactionTypeCashOut, 1),
		newTx("Rent", 950, domain.TransactionTypeCashOut, 2),
	)

	got, err := repo.Find(context.Background(), query.Normalize(query.Filters{"description": "Rent"}), query.FindOptions{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, tx := range got {
		assert.Equal(t, "Rent", tx.Description)
	}
}

func TestTransactionRepository_FindEnumAgainstPlainString(t *testing.T) {
	repo := NewTransactionRepository()
	seed(t, repo,
		newTx("in", 5, domain.TransactionTypeCashIn, 0),
		newTx("out", 5, domain.TransactionTypeCashOut, 0),
	)

	got, err := repo.Find(context.Background(), query.Predicate{"type": query.Equal{Value: "CASHIN"}}, query.FindOptions{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "in", got[0].Description)
}

func TestTransactionRepository_UnknownFieldMatchesNothing(t *testing.T) {
	repo := NewTransactionRepository()
	seed(t, repo, newTx("a", 1, domain.TransactionTypeCashOut, 0))

	got, err := repo.Find(context.Background(), query.Predicate{"colour": query.Equal{Value: "red"}}, query.FindOptions{})

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestTransactionRepository_FindPagination(t *testing.T) {
	repo := NewTransactionRepository()
	for i := 1; i <= 5; i++ {
		seed(t, repo, newTx("t", int64(i), domain.TransactionTypeCashOut, i))
	}
	opts := query.FindOptions{SortField: domain.TransactionFieldDate, SortDesc: true, Limit: 2, Offset: 1}

	got, err := repo.Find(context.Background(), query.Predicate{}, opts)

	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3}, amounts(got))

	got, err = repo.Find(context.Background(), query.Predicate{}, query.FindOptions{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTransactionRepository_FindReturnsCopies(t *testing.T) {
	repo := NewTransactionRepository()
	seed(t, repo, newTx("orig", 1, domain.TransactionTypeCashOut, 0))

	got, _ := repo.Find(context.Background(), query.Predicate{}, query.FindOptions{})
	got[0].Description = "mutated"

	again, _ := repo.Find(context.Background(), query.Predicate{}, query.FindOptions{})
	assert.Equal(t, "orig", again[0].Description)
}

func TestTransactionRepository_UpdateManyMergesSuppliedFields(t *testing.T) {
	repo := NewTransactionRepository()
	created := seed(t, repo,
		newTx("Rent", 900, domain.TransactionTypeCashOut, 0),
		newTx("Coffee", 5, domain.TransactionTypeCashOut, 1),
	)
	method := domain.TransactionMethodTED

	n, err := repo.UpdateMany(context.Background(), query.Predicate{"description": query.Equal{Value: "Rent"}}, domain.TransactionPatch{Method: &method})

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	got, _ := repo.Find(context.Background(), query.Predicate{"id": query.Equal{Value: created[0].ID}}, query.FindOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, domain.TransactionMethodTED, got[0].Method)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(900)))
}

func TestTransactionRepository_UpdateManySkipsRecordsThatWouldBecomeInvalid(t *testing.T) {
	repo := NewTransactionRepository()
	seed(t, repo, newTx("Rent", 900, domain.TransactionTypeCashOut, 0))
	bad := domain.TransactionType("GIFT")

	n, err := repo.UpdateMany(context.Background(), query.Predicate{}, domain.TransactionPatch{Type: &bad})

	require.NoError(t, err)
	assert.Zero(t, n)
	got, _ := repo.Find(context.Background(), query.Predicate{}, query.FindOptions{})
	assert.Equal(t, domain.TransactionTypeCashOut, got[0].Type)
}

func TestTransactionRepository_UpdateManyEmptyPatch(t *testing.T) {
	repo := NewTransactionRepository()
	created := seed(t, repo, newTx("Rent", 900, domain.TransactionTypeCashOut, 0))

	n, err := repo.UpdateMany(context.Background(), query.Predicate{}, domain.TransactionPatch{})

	require.NoError(t, err)
	assert.Zero(t, n)
	got, _ := repo.Find(context.Background(), query.Predicate{}, query.FindOptions{})
	assert.Equal(t, created[0].UpdatedAt, got[0].UpdatedAt)
}

func TestTransactionRepository_StoresDatesInUTC(t *testing.T) {
	repo := NewTransactionRepository()
	tx := newTx("Rent", 900, domain.TransactionTypeCashOut, 0)
	tx.Date = time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("BRT", -3*60*60))

	created := seed(t, repo, tx)

	assert.Equal(t, time.UTC, created[0].Date.Location())
	assert.True(t, created[0].Date.Equal(baseDate))
}

func TestTransactionRepository_GroupSumByDateIgnoresZone(t *testing.T) {
	repo := NewTransactionRepository()
	repo.transactions = append(repo.transactions,
		newTx("a", 10, domain.TransactionTypeCashOut, 0),
		&domain.Transaction{
			Description: "b",
			Amount:      decimal.NewFromInt(5),
			Type:        domain.TransactionTypeCashOut,
			Date:        baseDate.In(time.FixedZone("BRT", -3*60*60)),
		},
	)

	groups, err := repo.GroupSum(context.Background(), query.Predicate{}, domain.TransactionFieldDate, domain.TransactionFieldAmount)

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(2), groups[0].Count)
	assert.True(t, groups[0].Total.Equal(decimal.NewFromInt(15)))
}

func TestTransactionRepository_DeleteMany(t *testing.T) {
	repo := NewTransactionRepository()
	seed(t, repo,
		newTx("Rent", 900, domain.TransactionTypeCashOut, 0),
		newTx("Rent", 950, domain.TransactionTypeCashOut, 1),
		newTx("Coffee", 5, domain.TransactionTypeCashOut, 2),
	)
	pred := query.Normalize(query.Filters{"description": "Rent"})

	n, err := repo.DeleteMany(context.Background(), pred)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	left, _ := repo.Find(context.Background(), pred, query.FindOptions{})
	assert.Empty(t, left)
	total, _ := repo.Count(context.Background(), query.Predicate{})
	assert.Equal(t, int64(1), total)
}

func TestTransactionRepository_GroupSum(t *testing.T) {
	repo := NewTransactionRepository()
	seed(t, repo,
		newTx("salary", 10, domain.TransactionTypeCashIn, 0),
		newTx("rent", 20, domain.TransactionTypeCashOut, 1),
		newTx("coffee", 5, domain.TransactionTypeCashOut, 2),
	)

	groups, err := repo.GroupSum(context.Background(), query.Predicate{}, domain.TransactionFieldType, domain.TransactionFieldAmount)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, domain.TransactionTypeCashIn, groups[0].Key)
	assert.True(t, groups[0].Total.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(1), groups[0].Count)
	assert.Equal(t, domain.TransactionTypeCashOut, groups[1].Key)
	assert.True(t, groups[1].Total.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, int64(2), groups[1].Count)
}

func TestTransactionRepository_GroupSumByCategoryKeepsUncategorisedBucket(t *testing.T) {
	repo := NewTransactionRepository()
	catID := uuid.New()
	withCat := newTx("food", 7, domain.TransactionTypeCashOut, 0)
	withCat.CategoryID = &catID
	seed(t, repo, withCat, newTx("misc", 3, domain.TransactionTypeCashOut, 1))

	groups, err := repo.GroupSum(context.Background(), query.Predicate{}, domain.TransactionFieldCategory, domain.TransactionFieldAmount)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, catID, groups[0].Key)
	assert.Nil(t, groups[1].Key)
}

func TestTransactionRepository_CancelledContext(t *testing.T) {
	repo := NewTransactionRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Find(ctx, query.Predicate{}, query.FindOptions{})

	assert.ErrorIs(t, err, context.Canceled)
}
