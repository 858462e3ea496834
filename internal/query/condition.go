// Package query turns loosely keyed filter dictionaries into per-field
// predicates that record stores can evaluate.
package query

import "sort"

// Condition is the constraint placed on one field: either Equal or Range.
type Condition interface {
	condition()
}

// Equal matches records whose field equals Value exactly.
type Equal struct {
	Value any
}

// Range matches records whose field lies between Lower and Upper, both inclusive.
// A nil bound leaves that side open.
type Range struct {
	Lower any
	Upper any
}

func (Equal) condition() {}
func (Range) condition() {}

// IsOpen reports whether neither bound is set.
func (r Range) IsOpen() bool {
	return r.Lower == nil && r.Upper == nil
}

// Predicate maps field names to the condition each record must satisfy.
type Predicate map[string]Condition

// Fields returns the predicate's field names in sorted order so adapters
// render deterministic queries.
func (p Predicate) Fields() []string {
	fields := make([]string, 0, len(p))
	for field := range p {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Filters converts the predicate back into a filter dictionary. Normalizing
// the result yields the same predicate.
func (p Predicate) Filters() Filters {
	if p == nil {
		return nil
	}
	f := make(Filters, len(p))
	for field, cond := range p {
		f[field] = cond
	}
	return f
}

// FindOptions controls ordering and pagination of a find call.
// A zero Limit means unlimited.
type FindOptions struct {
	SortField string
	SortDesc  bool
	Limit     int
	Offset    int
}
