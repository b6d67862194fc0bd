package service_test

import (
	"context"
	"fmt"
	"testing"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"
	"fintrack/internal/repository/inmemory"
	"fintrack/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type txFixture struct {
	categories *inmemory.CategoryStore
	txStore    *inmemory.TransactionStore
	catSvc     *service.CategoryService
	txSvc      *service.TransactionService
	userID     uuid.UUID
}

func newTxFixture(t *testing.T) *txFixture {
	t.Helper()
	categories := inmemory.NewCategoryStore()
	txStore := inmemory.NewTransactionStore(categories)
	return &txFixture{
		categories: categories,
		txStore:    txStore,
		catSvc:     service.NewCategoryService(categories, zap.NewNop()),
		txSvc:      service.NewTransactionService(txStore, categories, zap.NewNop()),
		userID:     uuid.New(),
	}
}

func (f *txFixture) category(t *testing.T, name, categoryType string) *models.Category {
	t.Helper()
	category, err := f.catSvc.Create(context.Background(), f.userID, &dto.CategoryRequest{Name: name, Type: categoryType})
	require.NoError(t, err)
	return category
}

func (f *txFixture) transaction(t *testing.T, txType string, categoryID uuid.UUID, amount float64, date string) *dto.TransactionResponse {
	t.Helper()
	resp, err := f.txSvc.Create(context.Background(), f.userID, &dto.CreateTransactionRequest{
		Type:     txType,
		Category: categoryID.String(),
		Amount:   amount,
		Date:     date,
	})
	require.NoError(t, err)
	return resp
}

func TestTransactionService_CreateEmbedsCategory(t *testing.T) {
	f := newTxFixture(t)
	salary := f.category(t, "Salary", "income")

	resp := f.transaction(t, "income", salary.ID, 1000, "2024-01-15")
	require.NotNil(t, resp.Category)
	assert.Equal(t, salary.ID.String(), resp.Category.ID)
	assert.Equal(t, "Salary", resp.Category.Name)
	assert.Equal(t, "income", resp.Type)
	assert.Equal(t, 1000.0, resp.Amount)
}

func TestTransactionService_CreateForeignCategoryRejected(t *testing.T) {
	f := newTxFixture(t)
	salary := f.category(t, "Salary", "income")
	ctx := context.Background()

	strangerID := uuid.New()
	_, err := f.txSvc.Create(ctx, strangerID, &dto.CreateTransactionRequest{
		Type:     "income",
		Category: salary.ID.String(),
		Amount:   1000,
		Date:     "2024-01-15",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCategory)

	// Nothing was persisted for either user.
	for _, userID := range []uuid.UUID{f.userID, strangerID} {
		total, err := f.txStore.Count(ctx, repository.TransactionQuery{UserID: userID})
		require.NoError(t, err)
		assert.Zero(t, total)
	}
}

func TestTransactionService_CreateMalformedCategoryID(t *testing.T) {
	f := newTxFixture(t)

	_, err := f.txSvc.Create(context.Background(), f.userID, &dto.CreateTransactionRequest{
		Type:     "expense",
		Category: "not-a-uuid",
		Amount:   10,
		Date:     "2024-01-15",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCategory)
}

func TestTransactionService_CreateTypeMustMatchCategory(t *testing.T) {
	f := newTxFixture(t)
	salary := f.category(t, "Salary", "income")
	misc := f.category(t, "Misc", "any")
	ctx := context.Background()

	_, err := f.txSvc.Create(ctx, f.userID, &dto.CreateTransactionRequest{
		Type:     "expense",
		Category: salary.ID.String(),
		Amount:   10,
		Date:     "2024-01-15",
	})
	var vErr *dto.ValidationError
	assert.ErrorAs(t, err, &vErr)

	// An "any" category accepts both transaction types.
	f.transaction(t, "income", misc.ID, 5, "2024-01-15")
	f.transaction(t, "expense", misc.ID, 5, "2024-01-16")
}

func TestTransactionService_ListPagination(t *testing.T) {
	f := newTxFixture(t)
	salary := f.category(t, "Salary", "income")
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		f.transaction(t, "income", salary.ID, float64(100+i), fmt.Sprintf("2024-01-%02d", i%28+1))
	}

	var pagesSum int
	for page := 1; page <= 3; page++ {
		resp, err := f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{Page: fmt.Sprint(page)})
		require.NoError(t, err)
		assert.Equal(t, int64(25), resp.Pagination.Total)
		assert.Equal(t, page, resp.Pagination.Page)
		assert.Equal(t, 10, resp.Pagination.Limit)
		assert.Equal(t, int64(3), resp.Pagination.TotalPages)
		pagesSum += len(resp.Transactions)
	}
	assert.Equal(t, 25, pagesSum)

	// A page past the end is empty but reports the same total.
	resp, err := f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{Page: "4"})
	require.NoError(t, err)
	assert.Empty(t, resp.Transactions)
	assert.Equal(t, int64(25), resp.Pagination.Total)
}

func TestTransactionService_ListFilterAndTotal(t *testing.T) {
	f := newTxFixture(t)
	salary := f.category(t, "Salary", "income")
	food := f.category(t, "Food", "expense")
	ctx := context.Background()

	f.transaction(t, "income", salary.ID, 1000, "2024-01-15")
	f.transaction(t, "expense", food.ID, 50, "2024-01-16")
	f.transaction(t, "expense", food.ID, 30, "2024-01-17")

	resp, err := f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{Filter: "expense"})
	require.NoError(t, err)
	assert.Len(t, resp.Transactions, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)

	resp, err = f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{Filter: "income"})
	require.NoError(t, err)
	assert.Len(t, resp.Transactions, 1)

	resp, err = f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Pagination.Total)

	// An unrecognized filter constrains the type verbatim and matches nothing.
	resp, err = f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{Filter: "transfer"})
	require.NoError(t, err)
	assert.Empty(t, resp.Transactions)
	assert.Zero(t, resp.Pagination.Total)
}

func TestTransactionService_ListDateRangeInclusive(t *testing.T) {
	f := newTxFixture(t)
	food := f.category(t, "Food", "expense")
	ctx := context.Background()

	f.transaction(t, "expense", food.ID, 10, "2024-01-10")
	f.transaction(t, "expense", food.ID, 20, "2024-01-15")
	f.transaction(t, "expense", food.ID, 30, "2024-01-20")

	resp, err := f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{
		StartDate: "2024-01-10",
		EndDate:   "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Pagination.Total)

	resp, err = f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{StartDate: "2024-01-16"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Pagination.Total)

	_, err = f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{StartDate: "garbage"})
	var vErr *dto.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestTransactionService_ListSortByAmount(t *testing.T) {
	f := newTxFixture(t)
	food := f.category(t, "Food", "expense")
	ctx := context.Background()

	f.transaction(t, "expense", food.ID, 30, "2024-01-10")
	f.transaction(t, "expense", food.ID, 10, "2024-01-11")
	f.transaction(t, "expense", food.ID, 20, "2024-01-12")

	resp, err := f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{Sort: "amount", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 3)
	assert.Equal(t, 10.0, resp.Transactions[0].Amount)
	assert.Equal(t, 20.0, resp.Transactions[1].Amount)
	assert.Equal(t, 30.0, resp.Transactions[2].Amount)

	resp, err = f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{Sort: "amount"})
	require.NoError(t, err)
	assert.Equal(t, 30.0, resp.Transactions[0].Amount)
}

func TestTransactionService_DeleteIdempotentNotFound(t *testing.T) {
	f := newTxFixture(t)
	food := f.category(t, "Food", "expense")
	ctx := context.Background()

	resp := f.transaction(t, "expense", food.ID, 10, "2024-01-10")
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.txSvc.Delete(ctx, f.userID, id))
	assert.ErrorIs(t, f.txSvc.Delete(ctx, f.userID, id), service.ErrTransactionNotFound)
	assert.ErrorIs(t, f.txSvc.Delete(ctx, f.userID, id), service.ErrTransactionNotFound)

	// A foreign id answers the same way.
	other := f.transaction(t, "expense", food.ID, 10, "2024-01-11")
	assert.ErrorIs(t, f.txSvc.Delete(ctx, uuid.New(), uuid.MustParse(other.ID)), service.ErrTransactionNotFound)
}

func TestTransactionService_Stats(t *testing.T) {
	f := newTxFixture(t)
	salary := f.category(t, "Salary", "income")
	food := f.category(t, "Food", "expense")
	ctx := context.Background()

	f.transaction(t, "income", salary.ID, 1000, "2024-01-15")
	f.transaction(t, "income", salary.ID, 500, "2024-02-15")
	f.transaction(t, "expense", food.ID, 300, "2024-01-20")

	stats, err := f.txSvc.Stats(ctx, f.userID, dto.StatsParams{})
	require.NoError(t, err)
	assert.Equal(t, dto.StatBucket{Total: 1500, Count: 2}, stats.Income)
	assert.Equal(t, dto.StatBucket{Total: 300, Count: 1}, stats.Expense)
	assert.Equal(t, stats.Income.Total-stats.Expense.Total, stats.Balance)

	ranged, err := f.txSvc.Stats(ctx, f.userID, dto.StatsParams{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, dto.StatBucket{Total: 1000, Count: 1}, ranged.Income)
	assert.Equal(t, dto.StatBucket{Total: 300, Count: 1}, ranged.Expense)
	assert.Equal(t, 700.0, ranged.Balance)
}

func TestTransactionService_StatsZeroFilled(t *testing.T) {
	f := newTxFixture(t)
	salary := f.category(t, "Salary", "income")
	ctx := context.Background()

	// No transactions at all.
	stats, err := f.txSvc.Stats(ctx, f.userID, dto.StatsParams{})
	require.NoError(t, err)
	assert.Equal(t, dto.StatBucket{}, stats.Income)
	assert.Equal(t, dto.StatBucket{}, stats.Expense)
	assert.Zero(t, stats.Balance)

	// Income only: the expense bucket is still present and zeroed.
	f.transaction(t, "income", salary.ID, 1000, "2024-01-15")
	stats, err = f.txSvc.Stats(ctx, f.userID, dto.StatsParams{})
	require.NoError(t, err)
	assert.Equal(t, dto.StatBucket{Total: 1000, Count: 1}, stats.Income)
	assert.Equal(t, dto.StatBucket{Total: 0, Count: 0}, stats.Expense)
	assert.Equal(t, 1000.0, stats.Balance)
}

func TestTransactionService_DeletedCategoryLeavesTransaction(t *testing.T) {
	f := newTxFixture(t)
	food := f.category(t, "Food", "expense")
	ctx := context.Background()

	f.transaction(t, "expense", food.ID, 10, "2024-01-10")
	require.NoError(t, f.catSvc.Delete(ctx, f.userID, food.ID))

	resp, err := f.txSvc.List(ctx, f.userID, dto.ListTransactionsParams{})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	assert.Nil(t, resp.Transactions[0].Category)
}
