package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type colour string

func TestCompare(t *testing.T) {
	id := uuid.New()
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	tests := []struct {
		name   string
		a, b   any
		want   int
		wantOK bool
	}{
		{"strings", "a", "b", -1, true},
		{"named string vs string", colour("red"), "red", 0, true},
		{"decimal vs int", decimal.NewFromInt(10), 10, 0, true},
		{"float vs decimal", 20.5, decimal.RequireFromString("20"), 1, true},
		{"times", late, early, 1, true},
		{"time pointer", &early, early, 0, true},
		{"uuid vs its string", id, id.String(), 0, true},
		{"bools", false, true, -1, true},
		{"mismatched kinds", "10", 10, 0, false},
		{"nil", nil, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestInRange_InclusiveBounds(t *testing.T) {
	r := Range{Lower: decimal.NewFromInt(10), Upper: decimal.NewFromInt(25)}

	assert.True(t, InRange(decimal.NewFromInt(10), r))
	assert.True(t, InRange(decimal.NewFromInt(25), r))
	assert.True(t, InRange(decimal.NewFromInt(20), r))
	assert.False(t, InRange(decimal.NewFromInt(30), r))
	assert.False(t, InRange(decimal.NewFromInt(9), r))
}

func TestMatches_AbsentField(t *testing.T) {
	assert.False(t, Matches(Equal{Value: "x"}, nil, false))
	assert.False(t, Matches(Range{Lower: 1}, nil, false))
	assert.True(t, Matches(Range{}, nil, false))
}

func TestNumber(t *testing.T) {
	n, ok := Number(int32(7))
	assert.True(t, ok)
	assert.True(t, n.Equal(decimal.NewFromInt(7)))

	_, ok = Number("7")
	assert.False(t, ok)
}
