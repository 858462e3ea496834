package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/dafibh/cashflow/cashflow-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
}

func seedTransaction(repo *testutil.MockTransactionRepository, description string, amount int64, txType domain.TransactionType, date time.Time) *domain.Transaction {
	return repo.AddTransaction(&domain.Transaction{
		Description: description,
		Amount:      decimal.NewFromInt(amount),
		Type:        txType,
		Frequency:   domain.TransactionFrequencyVariable,
		Date:        date,
	})
}

func newTransactionServiceForTest() (*TransactionService, *testutil.MockTransactionRepository, *testutil.MockCategoryRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	return NewTransactionService(transactionRepo, categoryRepo), transactionRepo, categoryRepo
}

func TestListTransactions_EmptyStore(t *testing.T) {
	transactionService, _, _ := newTransactionServiceForTest()

	transactions, err := transactionService.List(context.Background(), query.Filters{}, domain.Pagination{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if transactions == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(transactions) != 0 {
		t.Errorf("Expected 0 transactions, got %d", len(transactions))
	}
}

func TestListTransactions_FilterByDescription(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	seedTransaction(transactionRepo, "Groceries", 50, domain.TransactionTypeCashOut, day(1))
	seedTransaction(transactionRepo, "Salary", 3000, domain.TransactionTypeCashIn, day(2))

	transactions, err := transactionService.List(context.Background(), query.Filters{"description": "Salary"}, domain.Pagination{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Description != "Salary" {
		t.Errorf("Expected description 'Salary', got %s", transactions[0].Description)
	}
}

func TestListTransactions_AmountRange(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	seedTransaction(transactionRepo, "ten", 10, domain.TransactionTypeCashOut, day(1))
	seedTransaction(transactionRepo, "twenty", 20, domain.TransactionTypeCashOut, day(2))
	seedTransaction(transactionRepo, "thirty", 30, domain.TransactionTypeCashOut, day(3))

	filters := query.Filters{"minAmount": decimal.NewFromInt(10), "maxAmount": decimal.NewFromInt(20)}
	transactions, err := transactionService.List(context.Background(), filters, domain.Pagination{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	// newest first
	if !transactions[0].Amount.Equal(decimal.NewFromInt(20)) || !transactions[1].Amount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected amounts [20 10], got [%s %s]", transactions[0].Amount, transactions[1].Amount)
	}

	pred := transactionRepo.LastPredicate
	if _, ok := pred["amount"].(query.Range); !ok {
		t.Errorf("Expected amount range condition, got %#v", pred["amount"])
	}
	if _, ok := pred["minAmount"]; ok {
		t.Error("Expected minAmount to be folded into the amount range")
	}
}

func TestListTransactions_DateRangeInclusive(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	seedTransaction(transactionRepo, "a", 1, domain.TransactionTypeCashOut, day(1))
	seedTransaction(transactionRepo, "b", 2, domain.TransactionTypeCashOut, day(2))
	seedTransaction(transactionRepo, "c", 3, domain.TransactionTypeCashOut, day(3))

	transactions, err := transactionService.List(context.Background(), query.Filters{"start": day(2), "end": day(3)}, domain.Pagination{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(transactions) != 2 {
		t.Errorf("Expected 2 transactions, got %d", len(transactions))
	}
}

func TestListTransactions_Pagination(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	for i := 1; i <= 5; i++ {
		seedTransaction(transactionRepo, "t", int64(i), domain.TransactionTypeCashOut, day(i))
	}

	transactions, err := transactionService.List(context.Background(), query.Filters{}, domain.Pagination{PerPage: 2, Page: 1})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if !transactions[0].Date.Equal(day(4)) {
		t.Errorf("Expected second newest first, got %s", transactions[0].Date)
	}

	opts := transactionRepo.LastFindOptions
	if opts.Limit != 2 || opts.Offset != 1 || opts.SortField != domain.TransactionFieldDate || !opts.SortDesc {
		t.Errorf("Unexpected find options %+v", opts)
	}
}

func TestListTransactions_NegativePaginationClamped(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	seedTransaction(transactionRepo, "t", 1, domain.TransactionTypeCashOut, day(1))

	transactions, err := transactionService.List(context.Background(), query.Filters{}, domain.Pagination{PerPage: -3, Page: -1})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(transactions) != 1 {
		t.Errorf("Expected 1 transaction, got %d", len(transactions))
	}
	if transactionRepo.LastFindOptions.Limit != 0 || transactionRepo.LastFindOptions.Offset != 0 {
		t.Errorf("Expected clamped options, got %+v", transactionRepo.LastFindOptions)
	}
}

func TestListTransactions_ResolvesCategory(t *testing.T) {
	transactionService, transactionRepo, categoryRepo := newTransactionServiceForTest()
	food := categoryRepo.AddCategory(&domain.Category{Name: "Food"})
	dangling := uuid.New()

	transactionRepo.AddTransaction(&domain.Transaction{
		Description: "Lunch", Amount: decimal.NewFromInt(12), Type: domain.TransactionTypeCashOut,
		Frequency: domain.TransactionFrequencyVariable, Date: day(2), CategoryID: &food.ID,
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		Description: "Orphan", Amount: decimal.NewFromInt(5), Type: domain.TransactionTypeCashOut,
		Frequency: domain.TransactionFrequencyVariable, Date: day(1), CategoryID: &dangling,
	})

	transactions, err := transactionService.List(context.Background(), query.Filters{}, domain.Pagination{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].Category == nil || transactions[0].Category.Name != "Food" {
		t.Errorf("Expected category 'Food', got %+v", transactions[0].Category)
	}
	if transactions[1].Category != nil {
		t.Errorf("Expected nil category for dangling reference, got %+v", transactions[1].Category)
	}
	if categoryRepo.CallCount("GetByIDs") != 1 {
		t.Errorf("Expected one batched category lookup, got %d", categoryRepo.CallCount("GetByIDs"))
	}
}

func TestListTransactions_StoreErrorHidden(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	cause := errors.New("connection refused at 10.0.0.5:5432")
	transactionRepo.FindFn = func(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Transaction, error) {
		return nil, cause
	}

	_, err := transactionService.List(context.Background(), query.Filters{}, domain.Pagination{})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, domain.ErrStoreFailure) {
		t.Errorf("Expected ErrStoreFailure, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected cause to stay reachable")
	}
	if strings.Contains(err.Error(), "10.0.0.5") {
		t.Errorf("Expected store details to be hidden, got %q", err.Error())
	}
}

func TestListPage_ReturnsTotal(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	for i := 1; i <= 4; i++ {
		seedTransaction(transactionRepo, "t", int64(i), domain.TransactionTypeCashOut, day(i))
	}

	page, err := transactionService.ListPage(context.Background(), query.Filters{}, domain.Pagination{PerPage: 3})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(page.Data) != 3 {
		t.Errorf("Expected 3 items, got %d", len(page.Data))
	}
	if page.TotalItems != 4 {
		t.Errorf("Expected total 4, got %d", page.TotalItems)
	}
}

func TestListPage_FindAndCountShareOnePredicate(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	seedTransaction(transactionRepo, "t", 5, domain.TransactionTypeCashOut, day(2))

	var findPred, countPred query.Predicate
	transactionRepo.FindFn = func(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Transaction, error) {
		findPred = pred
		return nil, nil
	}
	transactionRepo.CountFn = func(ctx context.Context, pred query.Predicate) (int64, error) {
		countPred = pred
		return 0, nil
	}

	filters := query.Filters{"start": day(1), "end": day(3), "minAmount": decimal.NewFromInt(1)}
	if _, err := transactionService.ListPage(context.Background(), filters, domain.Pagination{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if findPred == nil || countPred == nil {
		t.Fatal("Expected both Find and Count to receive a predicate")
	}
	if reflect.ValueOf(findPred).Pointer() != reflect.ValueOf(countPred).Pointer() {
		t.Error("Expected Find and Count to share the same normalized predicate")
	}
	if _, ok := findPred["date"].(query.Range); !ok {
		t.Errorf("Expected a date range, got %#v", findPred["date"])
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	transactionService, _, _ := newTransactionServiceForTest()

	_, err := transactionService.Get(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	publisher := &testutil.MockEventPublisher{}
	transactionService.SetEventPublisher(publisher)

	amount := decimal.NewFromFloat(150.25)
	date := day(10)
	transaction, err := transactionService.Create(context.Background(), CreateTransactionInput{
		Description: "Groceries",
		Amount:      &amount,
		Method:      domain.TransactionMethodDebit,
		Type:        domain.TransactionTypeCashOut,
		Frequency:   domain.TransactionFrequencyVariable,
		Date:        &date,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if transaction.ID == uuid.Nil {
		t.Error("Expected an assigned id")
	}
	if !transaction.Amount.Equal(amount) {
		t.Errorf("Expected amount 150.25, got %s", transaction.Amount)
	}
	if !transaction.Date.Equal(date) {
		t.Errorf("Expected date %s, got %s", date, transaction.Date)
	}
	if transactionRepo.CallCount("Create") != 1 {
		t.Errorf("Expected 1 create call, got %d", transactionRepo.CallCount("Create"))
	}
	if types := publisher.Types(); len(types) != 1 || types[0] != "transaction.created" {
		t.Errorf("Expected transaction.created event, got %v", types)
	}
}

func TestCreateTransaction_DefaultsDate(t *testing.T) {
	transactionService, _, _ := newTransactionServiceForTest()
	now := day(20)
	transactionService.now = func() time.Time { return now }

	amount := decimal.NewFromInt(1)
	transaction, err := transactionService.Create(context.Background(), CreateTransactionInput{
		Description: "Coffee",
		Amount:      &amount,
		Type:        domain.TransactionTypeCashOut,
		Frequency:   domain.TransactionFrequencyUnplanned,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !transaction.Date.Equal(now) {
		t.Errorf("Expected date to default to now, got %s", transaction.Date)
	}
}

func TestCreateTransaction_ValidationErrors(t *testing.T) {
	amount := decimal.NewFromInt(10)
	valid := CreateTransactionInput{
		Description: "Rent",
		Amount:      &amount,
		Type:        domain.TransactionTypeCashOut,
		Frequency:   domain.TransactionFrequencyFixed,
	}

	tests := []struct {
		name   string
		mutate func(in *CreateTransactionInput)
	}{
		{"missing amount", func(in *CreateTransactionInput) { in.Amount = nil }},
		{"missing description", func(in *CreateTransactionInput) { in.Description = "  " }},
		{"long description", func(in *CreateTransactionInput) { in.Description = strings.Repeat("x", 101) }},
		{"bad type", func(in *CreateTransactionInput) { in.Type = "SPEND" }},
		{"bad method", func(in *CreateTransactionInput) { in.Method = "CHEQUE" }},
		{"missing frequency", func(in *CreateTransactionInput) { in.Frequency = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactionService, transactionRepo, _ := newTransactionServiceForTest()
			input := valid
			tt.mutate(&input)

			_, err := transactionService.Create(context.Background(), input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
			if transactionRepo.CallCount("Create") != 0 {
				t.Error("Expected store not to be called")
			}
		})
	}
}

func TestUpdateTransactions_NilFilters(t *testing.T) {
	transactionService, transactionRepo, categoryRepo := newTransactionServiceForTest()
	description := "x"

	_, err := transactionService.Update(context.Background(), nil, domain.TransactionPatch{Description: &description})
	if !errors.Is(err, domain.ErrFiltersRequired) {
		t.Errorf("Expected ErrFiltersRequired, got %v", err)
	}
	if transactionRepo.TotalCalls() != 0 || categoryRepo.TotalCalls() != 0 {
		t.Error("Expected no store calls")
	}
}

func TestUpdateTransactions_ByFilter(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	publisher := &testutil.MockEventPublisher{}
	transactionService.SetEventPublisher(publisher)
	seedTransaction(transactionRepo, "a", 10, domain.TransactionTypeCashOut, day(1))
	seedTransaction(transactionRepo, "b", 20, domain.TransactionTypeCashOut, day(2))
	seedTransaction(transactionRepo, "c", 30, domain.TransactionTypeCashIn, day(3))

	method := domain.TransactionMethodCash
	n, err := transactionService.Update(context.Background(), query.Filters{"type": "CASHOUT"}, domain.TransactionPatch{Method: &method})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 updated, got %d", n)
	}

	cash, _ := transactionService.List(context.Background(), query.Filters{"method": "CASH"}, domain.Pagination{})
	if len(cash) != 2 {
		t.Errorf("Expected 2 cash transactions, got %d", len(cash))
	}
	if types := publisher.Types(); len(types) != 1 || types[0] != "transaction.updated" {
		t.Errorf("Expected transaction.updated event, got %v", types)
	}
}

func TestUpdateTransactions_EmptyPatchChangesNothing(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	publisher := &testutil.MockEventPublisher{}
	transactionService.SetEventPublisher(publisher)
	seeded := seedTransaction(transactionRepo, "a", 10, domain.TransactionTypeCashOut, day(1))
	seedTransaction(transactionRepo, "b", 20, domain.TransactionTypeCashOut, day(2))
	seedTransaction(transactionRepo, "c", 30, domain.TransactionTypeCashIn, day(3))

	n, err := transactionService.Update(context.Background(), query.Filters{}, domain.TransactionPatch{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 updated, got %d", n)
	}
	if len(publisher.Events) != 0 {
		t.Errorf("Expected no events, got %v", publisher.Types())
	}

	got, err := transactionService.Get(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.UpdatedAt.Equal(seeded.UpdatedAt) {
		t.Errorf("Expected UpdatedAt %v to be unchanged, got %v", seeded.UpdatedAt, got.UpdatedAt)
	}
}

func TestUpdateTransactions_InvalidPatch(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	bad := domain.TransactionType("SPEND")

	_, err := transactionService.Update(context.Background(), query.Filters{}, domain.TransactionPatch{Type: &bad})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if transactionRepo.CallCount("UpdateMany") != 0 {
		t.Error("Expected store not to be called")
	}
}

func TestDeleteTransactions_NilFilters(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()

	_, err := transactionService.Delete(context.Background(), nil)
	if !errors.Is(err, domain.ErrFiltersRequired) {
		t.Errorf("Expected ErrFiltersRequired, got %v", err)
	}
	if transactionRepo.TotalCalls() != 0 {
		t.Error("Expected no store calls")
	}
}

func TestDeleteTransactions_ThenListEmpty(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	seedTransaction(transactionRepo, "a", 10, domain.TransactionTypeCashOut, day(1))
	seedTransaction(transactionRepo, "b", 20, domain.TransactionTypeCashOut, day(2))
	seedTransaction(transactionRepo, "c", 30, domain.TransactionTypeCashIn, day(3))

	filters := query.Filters{"type": domain.TransactionTypeCashOut}
	n, err := transactionService.Delete(context.Background(), filters)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 deleted, got %d", n)
	}

	remaining, _ := transactionService.List(context.Background(), filters, domain.Pagination{})
	if len(remaining) != 0 {
		t.Errorf("Expected no matching transactions, got %d", len(remaining))
	}
	all, _ := transactionService.List(context.Background(), query.Filters{}, domain.Pagination{})
	if len(all) != 1 {
		t.Errorf("Expected 1 transaction left, got %d", len(all))
	}
}

func TestDeleteTransactions_EmptyFiltersDeletesAll(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	seedTransaction(transactionRepo, "a", 10, domain.TransactionTypeCashOut, day(1))
	seedTransaction(transactionRepo, "b", 20, domain.TransactionTypeCashIn, day(2))

	n, err := transactionService.Delete(context.Background(), query.Filters{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 deleted, got %d", n)
	}
}

func TestUpdateTransactionByID(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	existing := seedTransaction(transactionRepo, "Rent", 900, domain.TransactionTypeCashOut, day(1))

	amount := decimal.NewFromInt(950)
	updated, err := transactionService.UpdateByID(context.Background(), existing.ID, domain.TransactionPatch{Amount: &amount})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !updated.Amount.Equal(amount) {
		t.Errorf("Expected amount 950, got %s", updated.Amount)
	}
	if updated.Description != "Rent" {
		t.Errorf("Expected description to be kept, got %s", updated.Description)
	}
}

func TestUpdateTransactionByID_NotFound(t *testing.T) {
	transactionService, _, _ := newTransactionServiceForTest()
	description := "x"

	_, err := transactionService.UpdateByID(context.Background(), uuid.New(), domain.TransactionPatch{Description: &description})
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestDeleteTransactionByID(t *testing.T) {
	transactionService, transactionRepo, _ := newTransactionServiceForTest()
	existing := seedTransaction(transactionRepo, "Rent", 900, domain.TransactionTypeCashOut, day(1))

	if err := transactionService.DeleteByID(context.Background(), existing.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := transactionService.Get(context.Background(), existing.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound after delete, got %v", err)
	}
}
