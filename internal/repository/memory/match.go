// Package memory is an in-process record store used for tests, local
// development and as the reference behaviour the database adapters follow.
package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
)

// fieldFunc reads a named field from a record. ok is false when the record
// does not carry the field or the field is unknown.
type fieldFunc[T any] func(rec *T, field string) (any, bool)

func matchAll[T any](rec *T, pred query.Predicate, get fieldFunc[T]) bool {
	for field, cond := range pred {
		v, ok := get(rec, field)
		if !query.Matches(cond, v, ok) {
			return false
		}
	}
	return true
}

func filter[T any](recs []*T, pred query.Predicate, get fieldFunc[T]) []*T {
	out := make([]*T, 0, len(recs))
	for _, rec := range recs {
		if matchAll(rec, pred, get) {
			out = append(out, rec)
		}
	}
	return out
}

// sortAndPage orders recs by opts.SortField (records missing the field sort
// last) and applies Offset then Limit. Ties keep insertion order.
func sortAndPage[T any](recs []*T, opts query.FindOptions, get fieldFunc[T]) []*T {
	if opts.SortField != "" {
		sort.SliceStable(recs, func(i, j int) bool {
			a, aok := get(recs[i], opts.SortField)
			b, bok := get(recs[j], opts.SortField)
			if !aok || !bok {
				return aok && !bok
			}
			c, ok := query.Compare(a, b)
			if !ok {
				return false
			}
			if opts.SortDesc {
				return c > 0
			}
			return c < 0
		})
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(recs) {
			return []*T{}
		}
		recs = recs[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(recs) {
		recs = recs[:opts.Limit]
	}
	return recs
}

// groupKey renders a field value as a bucket key. Absent values share one bucket;
// times that denote the same instant share one bucket whatever their zone.
func groupKey(v any, ok bool) string {
	if !ok || v == nil {
		return "\x00"
	}
	switch t := v.(type) {
	case time.Time:
		v = t.UTC()
	case *time.Time:
		if t == nil {
			return "\x00"
		}
		v = t.UTC()
	}
	return fmt.Sprintf("%T:%v", v, v)
}
