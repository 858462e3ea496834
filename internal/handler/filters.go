package handler

import (
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateOnlyLayout = "2006-01-02"

type paramParser func(raw string) (any, string)

// transactionParams maps query parameters onto typed filter values
var transactionParams = map[string]paramParser{
	domain.TransactionFieldID:          parseUUID,
	domain.TransactionFieldDescription: parseString,
	domain.TransactionFieldAmount:      parseDecimal,
	query.AmountRange.LowerKey:         parseDecimal,
	query.AmountRange.UpperKey:         parseDecimal,
	domain.TransactionFieldType:        parseTransactionType,
	domain.TransactionFieldMethod:      parseTransactionMethod,
	domain.TransactionFieldFrequency:   parseTransactionFrequency,
	domain.TransactionFieldDate:        parseDate,
	query.DateRange.LowerKey:           parseDate,
	query.DateRange.UpperKey:           parseEndDate,
	domain.TransactionFieldCategory:    parseUUID,
}

var categoryParams = map[string]paramParser{
	domain.CategoryFieldID:          parseUUID,
	domain.CategoryFieldName:        parseString,
	domain.CategoryFieldDescription: parseString,
	domain.CategoryFieldColor:       parseString,
}

// parseFilters converts known query parameters into filters. It returns nil
// when none of them is present so bulk mutations can tell "no filter" apart.
func parseFilters(values url.Values, params map[string]paramParser) (query.Filters, []ValidationError) {
	var (
		filters query.Filters
		errs    []ValidationError
	)
	for key, parse := range params {
		if !values.Has(key) {
			continue
		}
		v, msg := parse(values.Get(key))
		if msg != "" {
			errs = append(errs, ValidationError{Field: key, Message: msg})
			continue
		}
		if filters == nil {
			filters = query.Filters{}
		}
		filters[key] = v
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return filters, errs
}

// parsePagination reads the page and per_page headers. Missing or malformed
// values fall back to zero.
func parsePagination(header func(string) string) domain.Pagination {
	page, _ := strconv.Atoi(header("page"))
	perPage, _ := strconv.Atoi(header("per_page"))
	return domain.Pagination{Page: page, PerPage: perPage}
}

func parseString(raw string) (any, string) {
	return raw, ""
}

func parseUUID(raw string) (any, string) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, "Must be a valid UUID"
	}
	return id, ""
}

func parseDecimal(raw string) (any, string) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, "Must be a valid decimal number"
	}
	return d, ""
}

func parseDate(raw string) (any, string) {
	t, _, err := parseTime(raw)
	if err != nil {
		return nil, "Must be RFC3339 or YYYY-MM-DD"
	}
	return t, ""
}

// parseEndDate treats a bare date as the whole day.
func parseEndDate(raw string) (any, string) {
	t, dateOnly, err := parseTime(raw)
	if err != nil {
		return nil, "Must be RFC3339 or YYYY-MM-DD"
	}
	if dateOnly {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, ""
}

func parseTime(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateOnlyLayout, raw)
	return t, true, err
}

func parseTransactionType(raw string) (any, string) {
	v := domain.TransactionType(raw)
	if !v.IsValid() {
		return nil, "Must be one of: CASHIN, CASHOUT, CREDIT, INVESTMENT"
	}
	return v, ""
}

func parseTransactionMethod(raw string) (any, string) {
	v := domain.TransactionMethod(raw)
	if !v.IsValid() {
		return nil, "Must be one of: CASH, CREDIT, DEBIT, SLIP, TED"
	}
	return v, ""
}

func parseTransactionFrequency(raw string) (any, string) {
	v := domain.TransactionFrequency(raw)
	if !v.IsValid() {
		return nil, "Must be one of: FIXED, VARIABLE, UNPLANNED"
	}
	return v, ""
}
