package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	reportService      *service.ReportService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, reportService *service.ReportService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		reportService:      reportService,
	}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Description string           `json:"description"`
	Amount      json.RawMessage  `json:"amount" swaggertype:"number"`
	Location    *domain.Location `json:"location,omitempty"`
	Method      string           `json:"method,omitempty"`
	Type        string           `json:"type"`
	Frequency   string           `json:"frequency"`
	Date        *string          `json:"date,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

// UpdateTransactionRequest represents a partial transaction update.
// Absent fields are left untouched.
type UpdateTransactionRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      json.RawMessage  `json:"amount,omitempty" swaggertype:"number"`
	Location    *domain.Location `json:"location,omitempty"`
	Method      *string          `json:"method,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Frequency   *string          `json:"frequency,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

// BulkResponse reports how many records a filter-based mutation touched
type BulkResponse struct {
	Count int64 `json:"count"`
}

// GetTransactions godoc
// @Summary List transactions
// @Description List transactions matching the query filters, newest first
// @Tags transactions
// @Produce json
// @Param id query string false "Transaction ID (UUID)"
// @Param description query string false "Exact description"
// @Param amount query number false "Exact amount"
// @Param minAmount query number false "Minimum amount (inclusive)"
// @Param maxAmount query number false "Maximum amount (inclusive)"
// @Param type query string false "Transaction type" Enums(CASHIN, CASHOUT, CREDIT, INVESTMENT)
// @Param method query string false "Payment method" Enums(CASH, CREDIT, DEBIT, SLIP, TED)
// @Param frequency query string false "Frequency" Enums(FIXED, VARIABLE, UNPLANNED)
// @Param start query string false "Earliest date (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "Latest date; a bare date covers the whole day"
// @Param category query string false "Category ID (UUID)"
// @Param page header int false "Record offset" default(0)
// @Param per_page header int false "Maximum records, 0 for all" default(0)
// @Success 200 {array} domain.Transaction
// @Header 200 {integer} X-Total-Count "Total matching records"
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filters, errs := parseFilters(c.QueryParams(), transactionParams)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid filters", errs)
	}
	if filters == nil {
		filters = map[string]any{}
	}

	page := parsePagination(c.Request().Header.Get)
	result, err := h.transactionService.ListPage(c.Request().Context(), filters, page)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set("X-Total-Count", strconv.FormatInt(result.TotalItems, 10))
	return c.JSON(http.StatusOK, result.Data)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return invalidID(c)
	}

	transaction, err := h.transactionService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, transaction)
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Create a transaction; the date defaults to now
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction creation request"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateTransactionInput{
		Description: req.Description,
		Location:    req.Location,
		Method:      domain.TransactionMethod(req.Method),
		Type:        domain.TransactionType(req.Type),
		Frequency:   domain.TransactionFrequency(req.Frequency),
	}

	var errs []ValidationError
	amount, err := parseAmount(req.Amount)
	if err != nil {
		errs = append(errs, ValidationError{Field: "amount", Message: "Must be a valid decimal number"})
	}
	input.Amount = amount
	if req.Date != nil && *req.Date != "" {
		date, _, err := parseTime(*req.Date)
		if err != nil {
			errs = append(errs, ValidationError{Field: "date", Message: "Must be RFC3339 or YYYY-MM-DD"})
		} else {
			input.Date = &date
		}
	}
	if req.Category != nil && *req.Category != "" {
		categoryID, err := uuid.Parse(*req.Category)
		if err != nil {
			errs = append(errs, ValidationError{Field: "category", Message: "Must be a valid UUID"})
		} else {
			input.CategoryID = &categoryID
		}
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	transaction, err := h.transactionService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	log.Info().
		Str("transaction_id", transaction.ID.String()).
		Str("type", string(transaction.Type)).
		Msg("Transaction created")

	return c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Apply the supplied fields to one transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} domain.Transaction
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return invalidID(c)
	}

	patch, errs, err := bindTransactionPatch(c)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	transaction, err := h.transactionService.UpdateByID(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, transaction)
}

// UpdateTransactions godoc
// @Summary Update transactions by filter
// @Description Apply the supplied fields to every transaction matching the query filters. At least one filter is required.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id query string false "Transaction ID (UUID)"
// @Param description query string false "Exact description"
// @Param amount query number false "Exact amount"
// @Param minAmount query number false "Minimum amount (inclusive)"
// @Param maxAmount query number false "Maximum amount (inclusive)"
// @Param type query string false "Transaction type" Enums(CASHIN, CASHOUT, CREDIT, INVESTMENT)
// @Param method query string false "Payment method" Enums(CASH, CREDIT, DEBIT, SLIP, TED)
// @Param frequency query string false "Frequency" Enums(FIXED, VARIABLE, UNPLANNED)
// @Param start query string false "Earliest date (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "Latest date; a bare date covers the whole day"
// @Param category query string false "Category ID (UUID)"
// @Param request body UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} BulkResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /transactions [patch]
func (h *TransactionHandler) UpdateTransactions(c echo.Context) error {
	filters, errs := parseFilters(c.QueryParams(), transactionParams)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid filters", errs)
	}

	patch, errs, err := bindTransactionPatch(c)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	n, err := h.transactionService.Update(c.Request().Context(), filters, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, BulkResponse{Count: n})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return invalidID(c)
	}

	if err := h.transactionService.DeleteByID(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	log.Info().Str("transaction_id", id.String()).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

// DeleteTransactions godoc
// @Summary Delete transactions by filter
// @Description Delete every transaction matching the query filters. At least one filter is required.
// @Tags transactions
// @Produce json
// @Param id query string false "Transaction ID (UUID)"
// @Param description query string false "Exact description"
// @Param amount query number false "Exact amount"
// @Param minAmount query number false "Minimum amount (inclusive)"
// @Param maxAmount query number false "Maximum amount (inclusive)"
// @Param type query string false "Transaction type" Enums(CASHIN, CASHOUT, CREDIT, INVESTMENT)
// @Param method query string false "Payment method" Enums(CASH, CREDIT, DEBIT, SLIP, TED)
// @Param frequency query string false "Frequency" Enums(FIXED, VARIABLE, UNPLANNED)
// @Param start query string false "Earliest date (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "Latest date; a bare date covers the whole day"
// @Param category query string false "Category ID (UUID)"
// @Success 200 {object} BulkResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /transactions [delete]
func (h *TransactionHandler) DeleteTransactions(c echo.Context) error {
	filters, errs := parseFilters(c.QueryParams(), transactionParams)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid filters", errs)
	}

	n, err := h.transactionService.Delete(c.Request().Context(), filters)
	if err != nil {
		return respondError(c, err)
	}

	log.Info().Int64("count", n).Msg("Transactions deleted")
	return c.JSON(http.StatusOK, BulkResponse{Count: n})
}

// GetReport godoc
// @Summary Sum transactions by group
// @Description Group matching transactions and total their amounts, largest total first. Amount bounds are ignored.
// @Tags transactions
// @Produce json
// @Param groupBy query string false "Grouping field" Enums(type, method, frequency, category, description, date) default(type)
// @Param type query string false "Transaction type"
// @Param start query string false "Earliest date (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "Latest date"
// @Param category query string false "Category ID (UUID)"
// @Success 200 {array} domain.GroupTotal
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /transactions/report [get]
func (h *TransactionHandler) GetReport(c echo.Context) error {
	filters, errs := parseFilters(c.QueryParams(), transactionParams)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid filters", errs)
	}
	if filters == nil {
		filters = map[string]any{}
	}

	totals, err := h.reportService.SumByType(c.Request().Context(), filters, c.QueryParam("groupBy"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, totals)
}

func bindTransactionPatch(c echo.Context) (domain.TransactionPatch, []ValidationError, error) {
	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return domain.TransactionPatch{}, nil, err
	}

	patch := domain.TransactionPatch{
		Description: req.Description,
		Location:    req.Location,
	}
	var errs []ValidationError

	amount, err := parseAmount(req.Amount)
	if err != nil {
		errs = append(errs, ValidationError{Field: "amount", Message: "Must be a valid decimal number"})
	}
	patch.Amount = amount
	if req.Method != nil {
		method := domain.TransactionMethod(*req.Method)
		patch.Method = &method
	}
	if req.Type != nil {
		txType := domain.TransactionType(*req.Type)
		patch.Type = &txType
	}
	if req.Frequency != nil {
		frequency := domain.TransactionFrequency(*req.Frequency)
		patch.Frequency = &frequency
	}
	if req.Date != nil {
		date, _, err := parseTime(*req.Date)
		if err != nil {
			errs = append(errs, ValidationError{Field: "date", Message: "Must be RFC3339 or YYYY-MM-DD"})
		} else {
			patch.Date = &date
		}
	}
	if req.Category != nil {
		categoryID, err := uuid.Parse(*req.Category)
		if err != nil {
			errs = append(errs, ValidationError{Field: "category", Message: "Must be a valid UUID"})
		} else {
			patch.CategoryID = &categoryID
		}
	}

	return patch, errs, nil
}

// parseAmount accepts a JSON number or a numeric string. A missing or null
// amount yields nil.
func parseAmount(raw json.RawMessage) (*decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`)) {
		return nil, nil
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return &amount, nil
}

func invalidID(c echo.Context) error {
	return NewValidationError(c, "Invalid ID", []ValidationError{
		{Field: "id", Message: "Must be a valid UUID"},
	})
}
