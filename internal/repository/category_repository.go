package repository

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := squirrel.Insert("categories").
		Columns("id", "user_id", "name", "type", "created_at", "updated_at").
		Values(category.ID, category.UserID, category.Name, category.Type, category.CreatedAt, category.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// GetByIDAndUser looks a category up with a single owner-scoped predicate,
// so a foreign category and a missing one are indistinguishable.
func (r *CategoryRepository) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Category, error) {
	query := squirrel.Select("id", "user_id", "name", "type", "created_at", "updated_at").
		From("categories").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var category models.Category
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&category.ID, &category.UserID, &category.Name, &category.Type, &category.CreatedAt, &category.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	query := squirrel.Select("id", "user_id", "name", "type", "created_at", "updated_at").
		From("categories").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID, &category.UserID, &category.Name, &category.Type, &category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}

// Update rewrites name and type for the caller's category and returns the
// stored record. ErrNotFound covers both absence and foreign ownership.
func (r *CategoryRepository) Update(ctx context.Context, id, userID uuid.UUID, name string, categoryType models.CategoryType, updatedAt time.Time) (*models.Category, error) {
	query := squirrel.Update("categories").
		Set("name", name).
		Set("type", categoryType).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING id, user_id, name, type, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var category models.Category
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&category.ID, &category.UserID, &category.Name, &category.Type, &category.CreatedAt, &category.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("categories").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
