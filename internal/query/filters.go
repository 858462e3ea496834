package query

// Filters is the caller-supplied filter dictionary. A nil Filters means no
// filter was given at all; an empty one selects every record.
type Filters map[string]any

// RangeField declares a pair of filter keys that collapse into a range on Field.
type RangeField struct {
	Field    string
	LowerKey string
	UpperKey string
}

var (
	// DateRange maps start/end onto the date field.
	DateRange = RangeField{Field: "date", LowerKey: "start", UpperKey: "end"}
	// AmountRange maps minAmount/maxAmount onto the amount field.
	AmountRange = RangeField{Field: "amount", LowerKey: "minAmount", UpperKey: "maxAmount"}
)

// DefaultRanges are the range pairs recognised when Normalize is called without any.
var DefaultRanges = []RangeField{DateRange, AmountRange}

// Clone returns a shallow copy. Cloning nil yields nil.
func (f Filters) Clone() Filters {
	if f == nil {
		return nil
	}
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Without returns a copy of f minus the given keys.
func (f Filters) Without(keys ...string) Filters {
	out := f.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Normalize converts raw filters into a Predicate.
//
// Keys named by a RangeField collapse into a Range on that field. Every other
// key becomes an Equal condition taken verbatim, unless the value already is a
// Condition. When the range field is also supplied directly its bounds win and
// the paired keys only fill the bounds it leaves open; a direct literal becomes
// the closed range [v, v] in that case.
//
// Normalize never mutates raw and is idempotent: Normalize(p.Filters()) == p.
func Normalize(raw Filters, ranges ...RangeField) Predicate {
	if len(ranges) == 0 {
		ranges = DefaultRanges
	}

	paired := make(map[string]bool, len(ranges)*2)
	for _, r := range ranges {
		paired[r.LowerKey] = true
		paired[r.UpperKey] = true
	}

	pred := make(Predicate, len(raw))
	for key, value := range raw {
		if paired[key] {
			continue
		}
		pred[key] = toCondition(value)
	}

	for _, r := range ranges {
		lower, hasLower := bound(raw, r.LowerKey)
		upper, hasUpper := bound(raw, r.UpperKey)
		if !hasLower && !hasUpper {
			continue
		}

		var rng Range
		switch existing := pred[r.Field].(type) {
		case Range:
			rng = existing
		case Equal:
			rng = Range{Lower: existing.Value, Upper: existing.Value}
		}

		if hasLower && rng.Lower == nil {
			rng.Lower = lower
		}
		if hasUpper && rng.Upper == nil {
			rng.Upper = upper
		}
		pred[r.Field] = rng
	}

	return pred
}

func bound(raw Filters, key string) (any, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func toCondition(v any) Condition {
	switch c := v.(type) {
	case Equal:
		return c
	case Range:
		return c
	case *Range:
		if c != nil {
			return *c
		}
	case *Equal:
		if c != nil {
			return *c
		}
	}
	return Equal{Value: v}
}
