package query

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	d1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	d3 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
)

func TestNormalize_StartEndBecomeClosedDateRange(t *testing.T) {
	pred := Normalize(Filters{"start": d1, "end": d2})

	require.Len(t, pred, 1)
	assert.Equal(t, Range{Lower: d1, Upper: d2}, pred["date"])
	assert.NotContains(t, pred, "start")
	assert.NotContains(t, pred, "end")
}

func TestNormalize_MinMaxAmountBecomeAmountRange(t *testing.T) {
	pred := Normalize(Filters{"minAmount": decimal.NewFromInt(10), "maxAmount": decimal.NewFromInt(25)})

	rng, ok := pred["amount"].(Range)
	require.True(t, ok)
	assert.True(t, rng.Lower.(decimal.Decimal).Equal(decimal.NewFromInt(10)))
	assert.True(t, rng.Upper.(decimal.Decimal).Equal(decimal.NewFromInt(25)))
}

func TestNormalize_StartAloneLeavesUpperOpen(t *testing.T) {
	pred := Normalize(Filters{"start": d1})

	assert.Equal(t, Range{Lower: d1}, pred["date"])
}

func TestNormalize_EndAloneLeavesLowerOpen(t *testing.T) {
	pred := Normalize(Filters{"end": d2})

	assert.Equal(t, Range{Upper: d2}, pred["date"])
}

func TestNormalize_EmptyFiltersYieldNoPredicate(t *testing.T) {
	pred := Normalize(Filters{})

	assert.Empty(t, pred)
	assert.NotContains(t, pred, "date")
}

func TestNormalize_NilFilters(t *testing.T) {
	pred := Normalize(nil)

	assert.NotNil(t, pred)
	assert.Empty(t, pred)
}

func TestNormalize_PlainKeysBecomeEquality(t *testing.T) {
	pred := Normalize(Filters{"description": "rent", "type": "CASHOUT", "somethingUnknown": 3})

	assert.Equal(t, Equal{Value: "rent"}, pred["description"])
	assert.Equal(t, Equal{Value: "CASHOUT"}, pred["type"])
	assert.Equal(t, Equal{Value: 3}, pred["somethingUnknown"])
}

func TestNormalize_MergesDirectRangeWithPairedKey(t *testing.T) {
	pred := Normalize(Filters{"date": Range{Lower: d1}, "end": d2})

	assert.Equal(t, Range{Lower: d1, Upper: d2}, pred["date"])
}

func TestNormalize_DirectBoundIsNotOverwritten(t *testing.T) {
	pred := Normalize(Filters{"date": Range{Lower: d1}, "start": d3, "end": d2})

	assert.Equal(t, Range{Lower: d1, Upper: d2}, pred["date"])
}

func TestNormalize_DirectLiteralWithPairedKeysBecomesPointRange(t *testing.T) {
	pred := Normalize(Filters{"date": d3, "start": d1})

	assert.Equal(t, Range{Lower: d3, Upper: d3}, pred["date"])
}

func TestNormalize_DirectLiteralWithoutPairedKeysStaysEquality(t *testing.T) {
	pred := Normalize(Filters{"date": d3})

	assert.Equal(t, Equal{Value: d3}, pred["date"])
}

func TestNormalize_NilBoundIsIgnored(t *testing.T) {
	pred := Normalize(Filters{"start": nil, "end": d2})

	assert.Equal(t, Range{Upper: d2}, pred["date"])
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := Filters{"start": d1, "description": "x"}

	_ = Normalize(raw)

	assert.Equal(t, Filters{"start": d1, "description": "x"}, raw)
}

func TestNormalize_OnlyRequestedRanges(t *testing.T) {
	pred := Normalize(Filters{"start": d1, "minAmount": 5}, DateRange)

	assert.Equal(t, Range{Lower: d1}, pred["date"])
	assert.Equal(t, Equal{Value: 5}, pred["minAmount"])
	assert.NotContains(t, pred, "amount")
}

func TestNormalize_Idempotent(t *testing.T) {
	cases := []Filters{
		{},
		{"start": d1, "end": d2},
		{"start": d1},
		{"minAmount": 10, "maxAmount": 25, "description": "rent"},
		{"date": Range{Upper: d2}, "start": d1},
		{"date": d3, "end": d2, "category": "abc"},
		{"date": d3},
	}

	for _, f := range cases {
		once := Normalize(f)
		twice := Normalize(once.Filters())
		assert.Equal(t, once, twice, "filters %v", f)
	}
}

func TestFilters_WithoutAndClone(t *testing.T) {
	f := Filters{"a": 1, "b": 2}

	out := f.Without("a")

	assert.Equal(t, Filters{"b": 2}, out)
	assert.Equal(t, Filters{"a": 1, "b": 2}, f)
	assert.Nil(t, Filters(nil).Clone())
}

func TestPredicate_FieldsSorted(t *testing.T) {
	pred := Predicate{"type": Equal{}, "amount": Range{}, "date": Range{}}

	assert.Equal(t, []string{"amount", "date", "type"}, pred.Fields())
}
