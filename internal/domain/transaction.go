package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const transactionEntity = "Transaction"

// Transaction field names usable in filters, sorting and grouping
const (
	TransactionFieldID          = "id"
	TransactionFieldDescription = "description"
	TransactionFieldAmount      = "amount"
	TransactionFieldMethod      = "method"
	TransactionFieldType        = "type"
	TransactionFieldFrequency   = "frequency"
	TransactionFieldDate        = "date"
	TransactionFieldCategory    = "category"
)

// Location is an optional coordinate pair kept as the client sent it.
type Location struct {
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

type Transaction struct {
	ID          uuid.UUID            `json:"id"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Location    *Location            `json:"location,omitempty"`
	Method      TransactionMethod    `json:"method,omitempty"`
	Type        TransactionType      `json:"type"`
	Frequency   TransactionFrequency `json:"frequency,omitempty"`
	Date        time.Time            `json:"date"`
	CategoryID  *uuid.UUID           `json:"categoryId,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`

	// Category is the resolved CategoryID; it is never persisted.
	Category *Category `json:"category"`
}

// Validate checks the transaction against its field constraints.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return NewValidationError(transactionEntity, TransactionFieldDescription, "description is required")
	}
	if utf8.RuneCountInString(t.Description) > MaxTransactionDescriptionLength {
		return NewValidationError(transactionEntity, TransactionFieldDescription, "description must be 100 characters or less")
	}
	if !t.Type.IsValid() {
		return NewValidationError(transactionEntity, TransactionFieldType, "type must be one of: CASHIN, CASHOUT, CREDIT, INVESTMENT")
	}
	if t.Method != "" && !t.Method.IsValid() {
		return NewValidationError(transactionEntity, TransactionFieldMethod, "method must be one of: CASH, CREDIT, DEBIT, SLIP, TED")
	}
	if !t.Frequency.IsValid() {
		return NewValidationError(transactionEntity, TransactionFieldFrequency, "frequency must be one of: FIXED, VARIABLE, UNPLANNED")
	}
	if t.Date.IsZero() {
		return NewValidationError(transactionEntity, TransactionFieldDate, "date is required")
	}
	return nil
}

// TransactionPatch carries the fields of a partial update; nil fields are left untouched.
type TransactionPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Location    *Location
	Method      *TransactionMethod
	Type        *TransactionType
	Frequency   *TransactionFrequency
	Date        *time.Time
	CategoryID  *uuid.UUID
}

func (p TransactionPatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Location == nil && p.Method == nil &&
		p.Type == nil && p.Frequency == nil && p.Date == nil && p.CategoryID == nil
}

// Apply merges the patch into t.
func (p TransactionPatch) Apply(t *Transaction) {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Location != nil {
		loc := *p.Location
		t.Location = &loc
	}
	if p.Method != nil {
		t.Method = *p.Method
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Frequency != nil {
		t.Frequency = *p.Frequency
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.CategoryID != nil {
		id := *p.CategoryID
		t.CategoryID = &id
	}
}

// Validate checks only the supplied fields.
func (p TransactionPatch) Validate() error {
	probe := Transaction{
		Description: "x",
		Type:        TransactionTypeCashOut,
		Frequency:   TransactionFrequencyVariable,
		Date:        time.Unix(0, 0),
	}
	p.Apply(&probe)
	return probe.Validate()
}

// GroupSum is one bucket produced by TransactionRepository.GroupSum.
type GroupSum struct {
	Key   any
	Total decimal.Decimal
	Count int64
}

// TransactionRepository is the record store capability for transactions.
type TransactionRepository interface {
	Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*Transaction, error)
	Count(ctx context.Context, pred query.Predicate) (int64, error)
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	UpdateMany(ctx context.Context, pred query.Predicate, patch TransactionPatch) (int64, error)
	DeleteMany(ctx context.Context, pred query.Predicate) (int64, error)
	// GroupSum buckets matching records by groupBy and sums sumField per bucket,
	// returning buckets in the order the store first produced them.
	GroupSum(ctx context.Context, pred query.Predicate, groupBy, sumField string) ([]*GroupSum, error)
}

// GroupableTransactionFields lists the fields a report may group by.
var GroupableTransactionFields = map[string]bool{
	TransactionFieldType:        true,
	TransactionFieldMethod:      true,
	TransactionFieldFrequency:   true,
	TransactionFieldCategory:    true,
	TransactionFieldDescription: true,
	TransactionFieldDate:        true,
}
