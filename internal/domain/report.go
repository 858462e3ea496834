package domain

import "github.com/shopspring/decimal"

// Pagination mirrors the page/per_page request headers. Page is a record
// offset, not a page index: Page=20 skips the first 20 records.
type Pagination struct {
	PerPage int
	Page    int
}

// TransactionPage is a list result together with the total number of matches.
type TransactionPage struct {
	Data       []*Transaction `json:"data"`
	TotalItems int64          `json:"totalItems"`
}

// GroupTotal is one row of a grouped amount report.
type GroupTotal struct {
	Key         any             `json:"key"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int64           `json:"count"`
	Category    *Category       `json:"category,omitempty"`
}
