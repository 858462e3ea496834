package postgres

import (
	"testing"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhere_EmptyPredicateSelectsAll(t *testing.T) {
	b := &sqlBuilder{}

	assert.Equal(t, "TRUE", b.where(query.Predicate{}, transactionColumns))
	assert.Equal(t, "TRUE", b.where(nil, transactionColumns))
	assert.Empty(t, b.args)
}

func TestWhere_RangesAndEquality(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pred := query.Normalize(query.Filters{
		"start":       start,
		"minAmount":   decimal.NewFromInt(10),
		"maxAmount":   decimal.NewFromInt(25),
		"type":        domain.TransactionTypeCashOut,
		"description": "Rent",
	})
	b := &sqlBuilder{}

	sql := b.where(pred, transactionColumns)

	assert.Equal(t, "amount >= $1 AND amount <= $2 AND date >= $3 AND description = $4 AND type = $5", sql)
	require.Len(t, b.args, 5)
	assert.IsType(t, pgtype.Numeric{}, b.args[0])
	assert.Equal(t, start, b.args[2])
	assert.Equal(t, "Rent", b.args[3])
	assert.Equal(t, "CASHOUT", b.args[4])
}

func TestWhere_UnknownFieldNeverMatches(t *testing.T) {
	b := &sqlBuilder{}

	sql := b.where(query.Predicate{"colour": query.Equal{Value: "red"}}, transactionColumns)

	assert.Equal(t, "FALSE", sql)
	assert.Empty(t, b.args)
}

func TestWhere_NilEqualityIsNullCheck(t *testing.T) {
	b := &sqlBuilder{}

	sql := b.where(query.Predicate{"category": query.Equal{Value: nil}}, transactionColumns)

	assert.Equal(t, "category_id IS NULL", sql)
}

func TestWhere_OpenRangeIsIgnored(t *testing.T) {
	b := &sqlBuilder{}

	assert.Equal(t, "TRUE", b.where(query.Predicate{"date": query.Range{}}, transactionColumns))
}

func TestOrderBy(t *testing.T) {
	b := &sqlBuilder{}
	b.where(query.Predicate{"type": query.Equal{Value: "CASHIN"}}, transactionColumns)

	sql := b.orderBy(query.FindOptions{SortField: "date", SortDesc: true, Limit: 10, Offset: 20}, transactionColumns, "created_at, id")

	assert.Equal(t, " ORDER BY date DESC, created_at, id LIMIT $2 OFFSET $3", sql)
	assert.Equal(t, []any{"CASHIN", 10, 20}, b.args)
}

func TestOrderBy_UnknownSortFieldFallsBackToTiebreak(t *testing.T) {
	b := &sqlBuilder{}

	sql := b.orderBy(query.FindOptions{SortField: "name; DROP TABLE transactions"}, transactionColumns, "created_at, id")

	assert.Equal(t, " ORDER BY created_at, id", sql)
}

func TestWhere_UUIDValuesBecomePgUUID(t *testing.T) {
	id := uuid.New()
	b := &sqlBuilder{}

	sql := b.where(query.Predicate{"category": query.Equal{Value: id}}, transactionColumns)

	assert.Equal(t, "category_id = $1", sql)
	assert.Equal(t, []any{pgtype.UUID{Bytes: id, Valid: true}}, b.args)
}
