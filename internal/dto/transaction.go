package dto

import (
	"strconv"

	"fintrack/internal/models"
)

type CreateTransactionRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func (r *CreateTransactionRequest) Validate() error {
	if !models.TransactionType(r.Type).Valid() {
		return &ValidationError{"type must be one of income, expense"}
	}
	if r.Category == "" {
		return &ValidationError{"category is required"}
	}
	if r.Amount <= 0 {
		return &ValidationError{"amount must be a positive number"}
	}
	if r.Date == "" {
		return &ValidationError{"date is required"}
	}
	if _, err := ParseDate(r.Date); err != nil {
		return &ValidationError{"date must be a valid date"}
	}
	return nil
}

// ListTransactionsParams carries the raw query string values; defaulting
// and coercion happen in Normalize so bad input degrades instead of erroring.
type ListTransactionsParams struct {
	Filter    string
	Sort      string
	Order     string
	Page      string
	Limit     string
	StartDate string
	EndDate   string
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Normalize resolves defaults: filter=all, sort=date, order=desc, page=1,
// limit=10. Page and limit fall back to defaults when they do not parse to
// positive integers.
func (p *ListTransactionsParams) Normalize() {
	if p.Filter == "" {
		p.Filter = "all"
	}
	if p.Sort != "amount" {
		p.Sort = "date"
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
}

func (p *ListTransactionsParams) PageNumber() int {
	if n, err := strconv.Atoi(p.Page); err == nil && n > 0 {
		return n
	}
	return DefaultPage
}

func (p *ListTransactionsParams) LimitNumber() int {
	if n, err := strconv.Atoi(p.Limit); err == nil && n > 0 {
		return n
	}
	return DefaultLimit
}

type StatsParams struct {
	StartDate string
	EndDate   string
}

type TransactionResponse struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Category    *CategoryResponse `json:"category"`
	Amount      float64           `json:"amount"`
	Date        string            `json:"date"`
	Description string            `json:"description"`
	CreatedAt   string            `json:"created_at"`
}

func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Date:        tx.Date.Format(timeLayout),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt.Format(timeLayout),
	}
	if tx.Category != nil {
		category := NewCategoryResponse(tx.Category)
		resp.Category = &category
	}
	return resp
}

type PaginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

type StatBucket struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

type TransactionStatsResponse struct {
	Income  StatBucket `json:"income"`
	Expense StatBucket `json:"expense"`
	Balance float64    `json:"balance"`
}
