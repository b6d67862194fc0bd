package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCategory is a validation failure, not a NotFound: the
	// referenced category either does not exist or belongs to someone else.
	ErrInvalidCategory     = errors.New("invalid category or category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionService struct {
	txRepo       TransactionStore
	categoryRepo CategoryStore
	logger       *zap.Logger
}

func NewTransactionService(txRepo TransactionStore, categoryRepo CategoryStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		txRepo:       txRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns one page of the caller's transactions plus pagination
// metadata. The total is counted over the filtered set, not the page.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, params dto.ListTransactionsParams) (*dto.TransactionListResponse, error) {
	params.Normalize()

	page := params.PageNumber()
	limit := params.LimitNumber()

	q := repository.TransactionQuery{
		UserID:    userID,
		SortField: params.Sort,
		SortOrder: strings.ToUpper(params.Order),
		Offset:    uint64((page - 1) * limit),
		Limit:     uint64(limit),
	}
	if params.Filter != "all" {
		q.Type = models.TransactionType(params.Filter)
	}

	var err error
	if q.StartDate, err = parseOptionalDate(params.StartDate, "startDate"); err != nil {
		return nil, err
	}
	if q.EndDate, err = parseOptionalDate(params.EndDate, "endDate"); err != nil {
		return nil, err
	}

	transactions, err := s.txRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	total, err := s.txRepo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, dto.NewTransactionResponse(tx))
	}

	return &dto.TransactionListResponse{
		Transactions: responses,
		Pagination: dto.PaginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	}, nil
}

// Create validates the payload, resolves the category against the caller's
// own categories, and persists the transaction. The ownership check and the
// insert are separate store operations; a category deleted in between slips
// through (accepted, matching the store's per-document guarantees).
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	categoryID, err := uuid.Parse(req.Category)
	if err != nil {
		return nil, ErrInvalidCategory
	}

	category, err := s.categoryRepo.GetByIDAndUser(ctx, categoryID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCategory
	}
	if err != nil {
		return nil, err
	}

	if category.Type != models.CategoryTypeAny && string(category.Type) != req.Type {
		return nil, &dto.ValidationError{Message: "category type does not match transaction type"}
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, &dto.ValidationError{Message: "date must be a valid date"}
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        models.TransactionType(req.Type),
		CategoryID:  category.ID,
		Amount:      req.Amount,
		Date:        date,
		Description: sanitizeUTF8(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	tx.Category = category
	resp := dto.NewTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.txRepo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTransactionNotFound
	}
	return err
}

// Stats aggregates the caller's transactions by type within the optional
// inclusive date range. Both buckets are always present; absent types
// report zero totals.
func (s *TransactionService) Stats(ctx context.Context, userID uuid.UUID, params dto.StatsParams) (*dto.TransactionStatsResponse, error) {
	startDate, err := parseOptionalDate(params.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(params.EndDate, "endDate")
	if err != nil {
		return nil, err
	}

	stats, err := s.txRepo.StatsByType(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	resp := &dto.TransactionStatsResponse{}
	for _, stat := range stats {
		switch stat.Type {
		case models.TransactionTypeIncome:
			resp.Income = dto.StatBucket{Total: stat.Total, Count: stat.Count}
		case models.TransactionTypeExpense:
			resp.Expense = dto.StatBucket{Total: stat.Total, Count: stat.Count}
		}
	}
	resp.Balance = resp.Income.Total - resp.Expense.Total

	return resp, nil
}

func parseOptionalDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(s)
	if err != nil {
		return nil, &dto.ValidationError{Message: field + " must be a valid date"}
	}
	return &t, nil
}
