package mongodb

import (
	"testing"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.D{}, buildFilter(query.Predicate{}, transactionKeys))
}

func TestBuildFilter_RangesBecomeGteLte(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	pred := query.Normalize(query.Filters{"start": start, "end": end})

	got := buildFilter(pred, transactionKeys)

	want := bson.D{{Key: "$and", Value: bson.A{
		bson.D{{Key: "date", Value: bson.D{{Key: "$gte", Value: start}, {Key: "$lte", Value: end}}}},
	}}}
	assert.Equal(t, want, got)
}

func TestBuildFilter_ConvertsValues(t *testing.T) {
	catID := uuid.New()
	pred := query.Predicate{
		"category": query.Equal{Value: catID},
		"amount":   query.Range{Lower: decimal.NewFromInt(10)},
		"type":     query.Equal{Value: domain.TransactionTypeCashIn},
	}

	got := buildFilter(pred, transactionKeys)

	require.Len(t, got, 1)
	clauses := got[0].Value.(bson.A)
	require.Len(t, clauses, 3)

	amount := clauses[0].(bson.D)[0]
	assert.Equal(t, "amount", amount.Key)
	lower := amount.Value.(bson.D)[0]
	assert.Equal(t, "$gte", lower.Key)
	assert.IsType(t, primitive.Decimal128{}, lower.Value)

	assert.Equal(t, bson.D{{Key: "category", Value: catID.String()}}, clauses[1])
	assert.Equal(t, bson.D{{Key: "type", Value: "CASHIN"}}, clauses[2])
}

func TestBuildFilter_UnknownFieldNeverMatches(t *testing.T) {
	got := buildFilter(query.Predicate{"colour": query.Equal{Value: "red"}}, transactionKeys)

	assert.Equal(t, bson.D{{Key: "$and", Value: bson.A{never}}}, got)
}

func TestBuildFilter_IDMapsToUnderscoreID(t *testing.T) {
	id := uuid.New()

	got := buildFilter(query.Predicate{"id": query.Equal{Value: id}}, categoryKeys)

	assert.Equal(t, bson.D{{Key: "$and", Value: bson.A{bson.D{{Key: "_id", Value: id.String()}}}}}, got)
}

func TestDecimal128RoundTrip(t *testing.T) {
	d := decimal.RequireFromString("-1234.56")

	assert.True(t, d.Equal(fromDecimal128(toDecimal128(d))))
}

func TestGroupValue(t *testing.T) {
	id := uuid.New()
	typ, raw, err := bson.MarshalValue(id.String())
	require.NoError(t, err)

	got := groupValue(domain.TransactionFieldCategory, bson.RawValue{Type: typ, Value: raw})
	assert.Equal(t, id, got)

	typ, raw, err = bson.MarshalValue("CASHOUT")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeCashOut, groupValue(domain.TransactionFieldType, bson.RawValue{Type: typ, Value: raw}))

	assert.Nil(t, groupValue(domain.TransactionFieldCategory, bson.RawValue{Type: bson.TypeNull}))
}
