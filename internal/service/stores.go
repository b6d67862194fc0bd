package service

import (
	"context"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
)

// Store interfaces are satisfied by the repository package; tests substitute
// in-memory implementations.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Category, error)
	Update(ctx context.Context, id, userID uuid.UUID, name string, categoryType models.CategoryType, updatedAt time.Time) (*models.Category, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	List(ctx context.Context, q repository.TransactionQuery) ([]*models.Transaction, error)
	Count(ctx context.Context, q repository.TransactionQuery) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	StatsByType(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]models.TypeStat, error)
}
