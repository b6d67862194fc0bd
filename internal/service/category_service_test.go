package service_test

import (
	"context"
	"testing"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository/inmemory"
	"fintrack/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCategoryService_CreateStampsOwner(t *testing.T) {
	svc := service.NewCategoryService(inmemory.NewCategoryStore(), zap.NewNop())
	userID := uuid.New()

	category, err := svc.Create(context.Background(), userID, &dto.CategoryRequest{Name: "Salary", Type: "income"})
	require.NoError(t, err)
	assert.Equal(t, userID, category.UserID)
	assert.Equal(t, "Salary", category.Name)
	assert.Equal(t, models.CategoryTypeIncome, category.Type)
}

func TestCategoryService_CreateDefaultsTypeToAny(t *testing.T) {
	store := inmemory.NewCategoryStore()
	svc := service.NewCategoryService(store, zap.NewNop())
	userID := uuid.New()
	ctx := context.Background()

	category, err := svc.Create(ctx, userID, &dto.CategoryRequest{Name: "Misc"})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTypeAny, category.Type)

	// Confirmed by re-fetch, not just the returned struct.
	fetched, err := store.GetByIDAndUser(ctx, category.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTypeAny, fetched.Type)
}

func TestCategoryService_CreateInvalidType(t *testing.T) {
	svc := service.NewCategoryService(inmemory.NewCategoryStore(), zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CategoryRequest{Name: "X", Type: "savings"})
	var vErr *dto.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestCategoryService_UpdateConflatesForeignAndMissing(t *testing.T) {
	svc := service.NewCategoryService(inmemory.NewCategoryStore(), zap.NewNop())
	owner := uuid.New()
	stranger := uuid.New()
	ctx := context.Background()

	category, err := svc.Create(ctx, owner, &dto.CategoryRequest{Name: "Salary", Type: "income"})
	require.NoError(t, err)

	// Someone else's category looks exactly like a missing one.
	_, err = svc.Update(ctx, stranger, category.ID, &dto.CategoryRequest{Name: "Hijacked", Type: "income"})
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)

	_, err = svc.Update(ctx, owner, uuid.New(), &dto.CategoryRequest{Name: "Ghost", Type: "income"})
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)

	updated, err := svc.Update(ctx, owner, category.ID, &dto.CategoryRequest{Name: "Wages", Type: "income"})
	require.NoError(t, err)
	assert.Equal(t, "Wages", updated.Name)
}

func TestCategoryService_DeleteIdempotentNotFound(t *testing.T) {
	svc := service.NewCategoryService(inmemory.NewCategoryStore(), zap.NewNop())
	owner := uuid.New()
	ctx := context.Background()

	category, err := svc.Create(ctx, owner, &dto.CategoryRequest{Name: "Salary", Type: "income"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, category.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner, category.ID), service.ErrCategoryNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, owner, category.ID), service.ErrCategoryNotFound)
}

func TestCategoryService_ListScopedToOwner(t *testing.T) {
	svc := service.NewCategoryService(inmemory.NewCategoryStore(), zap.NewNop())
	alice := uuid.New()
	bob := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, &dto.CategoryRequest{Name: "Salary", Type: "income"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, &dto.CategoryRequest{Name: "Rent", Type: "expense"})
	require.NoError(t, err)

	categories, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Salary", categories[0].Name)
}
