package repository

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns("id", "user_id", "type", "category_id", "amount", "date", "description", "created_at", "updated_at").
		Values(tx.ID, tx.UserID, tx.Type, tx.CategoryID, tx.Amount, tx.Date, tx.Description, tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// List returns one page of the caller's transactions with the referenced
// category embedded. The join is LEFT because the category reference is
// soft: a deleted category leaves the transaction behind with no category.
func (r *TransactionRepository) List(ctx context.Context, q TransactionQuery) ([]*models.Transaction, error) {
	query := squirrel.Select(
		"t.id", "t.user_id", "t.type", "t.category_id", "t.amount", "t.date", "t.description", "t.created_at", "t.updated_at",
		"c.id", "c.user_id", "c.name", "c.type", "c.created_at", "c.updated_at").
		From("transactions t").
		LeftJoin("categories c ON c.id = t.category_id").
		Where(q.conditions("t.")).
		OrderBy(fmt.Sprintf("t.%s %s", q.SortField, q.SortOrder)).
		Offset(q.Offset).
		Limit(q.Limit).
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

	var transactions []*models.Transaction
	for rows.Next() {
		var (
			tx         models.Transaction
			catID      *uuid.UUID
			catUserID  *uuid.UUID
			catName    *string
			catType    *string
			catCreated *time.Time
			catUpdated *time.Time
		)
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Type, &tx.CategoryID, &tx.Amount, &tx.Date, &tx.Description, &tx.CreatedAt, &tx.UpdatedAt,
			&catID, &catUserID, &catName, &catType, &catCreated, &catUpdated,
		); err != nil {
			return nil, err
		}
		if catID != nil {
			tx.Category = &models.Category{
				ID:        *catID,
				UserID:    *catUserID,
				Name:      *catName,
				Type:      models.CategoryType(*catType),
				CreatedAt: *catCreated,
				UpdatedAt: *catUpdated,
			}
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

// Count reports how many transactions match the query's filters,
// independent of its offset and limit.
func (r *TransactionRepository) Count(ctx context.Context, q TransactionQuery) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("transactions").
		Where(q.conditions("")).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("transactions").
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

// StatsByType sums and counts the caller's transactions grouped by type.
// Types with no matching rows are simply absent from the result.
func (r *TransactionRepository) StatsByType(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]models.TypeStat, error) {
	q := TransactionQuery{UserID: userID, StartDate: startDate, EndDate: endDate}

	query := squirrel.Select("type", "COALESCE(SUM(amount), 0)", "COUNT(*)").
		From("transactions").
		Where(q.conditions("")).
		GroupBy("type").
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

	var stats []models.TypeStat
	for rows.Next() {
		var stat models.TypeStat
		if err := rows.Scan(&stat.Type, &stat.Total, &stat.Count); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}
