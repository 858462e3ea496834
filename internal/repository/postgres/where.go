package postgres

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// columns maps filterable field names to SQL columns. Only whitelisted
// columns are ever interpolated into a statement.
type columns map[string]string

// sqlBuilder accumulates positional arguments while rendering clauses.
type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, sqlValue(v))
	return fmt.Sprintf("$%d", len(b.args))
}

// where renders pred as a WHERE clause body. Fields without a column can
// never match, so they render as FALSE.
func (b *sqlBuilder) where(pred query.Predicate, cols columns) string {
	if len(pred) == 0 {
		return "TRUE"
	}

	clauses := make([]string, 0, len(pred))
	for _, field := range pred.Fields() {
		col, ok := cols[field]
		if !ok {
			clauses = append(clauses, "FALSE")
			continue
		}

		switch c := pred[field].(type) {
		case query.Equal:
			if c.Value == nil {
				clauses = append(clauses, col+" IS NULL")
				continue
			}
			clauses = append(clauses, col+" = "+b.arg(c.Value))
		case query.Range:
			if c.Lower != nil {
				clauses = append(clauses, col+" >= "+b.arg(c.Lower))
			}
			if c.Upper != nil {
				clauses = append(clauses, col+" <= "+b.arg(c.Upper))
			}
		}
	}

	if len(clauses) == 0 {
		return "TRUE"
	}
	return strings.Join(clauses, " AND ")
}

// orderBy renders ORDER BY and LIMIT/OFFSET for opts. Unknown sort fields are ignored.
func (b *sqlBuilder) orderBy(opts query.FindOptions, cols columns, tiebreak string) string {
	var sb strings.Builder
	if col, ok := cols[opts.SortField]; ok {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(col)
		if opts.SortDesc {
			sb.WriteString(" DESC")
		}
		sb.WriteString(", ")
		sb.WriteString(tiebreak)
	} else {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(tiebreak)
	}
	if opts.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.arg(opts.Limit))
	}
	if opts.Offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.arg(opts.Offset))
	}
	return sb.String()
}

// sqlValue converts filter values into types pgx encodes directly.
func sqlValue(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		if num, err := decimalToPgNumeric(x); err == nil {
			return num
		}
		return x.String()
	case *decimal.Decimal:
		if x != nil {
			return sqlValue(*x)
		}
		return nil
	case uuid.UUID:
		return pgtype.UUID{Bytes: x, Valid: true}
	case *uuid.UUID:
		return uuidToPg(x)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String && rv.Type() != reflect.TypeOf("") {
		return rv.String()
	}
	return v
}
