package service

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCategoryNotFound covers both a missing category and one owned by a
// different user, so existence never leaks across accounts.
var ErrCategoryNotFound = errors.New("category not found")

type CategoryService struct {
	categoryRepo CategoryStore
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo CategoryStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create persists a category owned by the caller. Whatever the payload
// carries, the owner is always the authenticated user.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	category := &models.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Type:      models.CategoryType(req.Type),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

func (s *CategoryService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.CategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Update(ctx, id, userID, req.Name, models.CategoryType(req.Type), time.Now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes the caller's category. Transactions referencing it are
// left untouched; the reference is soft.
func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.categoryRepo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}
