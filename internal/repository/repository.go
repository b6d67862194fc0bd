package repository

import (
	"errors"
	"time"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else: lookups always filter by owner, so the two are the
	// same query outcome.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate signals a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
)

// TransactionQuery describes an owner-scoped transaction selection. A zero
// Type imposes no type constraint; nil date bounds are open-ended.
type TransactionQuery struct {
	UserID    uuid.UUID
	Type      models.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	SortField string
	SortOrder string
	Offset    uint64
	Limit     uint64
}

// conditions renders the query's WHERE clause. The column prefix lets the
// same predicate serve joined and bare selects.
func (q *TransactionQuery) conditions(prefix string) squirrel.And {
	conds := squirrel.And{squirrel.Eq{prefix + "user_id": q.UserID}}
	if q.Type != "" {
		conds = append(conds, squirrel.Eq{prefix + "type": q.Type})
	}
	if q.StartDate != nil {
		conds = append(conds, squirrel.GtOrEq{prefix + "date": *q.StartDate})
	}
	if q.EndDate != nil {
		conds = append(conds, squirrel.LtOrEq{prefix + "date": *q.EndDate})
	}
	return conds
}
