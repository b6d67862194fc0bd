package models

import (
	"time"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeAny categories accept both income and expense transactions.
	CategoryTypeAny CategoryType = "any"
)

func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeAny:
		return true
	}
	return false
}

type Category struct {
	ID        uuid.UUID    `db:"id"`
	UserID    uuid.UUID    `db:"user_id"`
	Name      string       `db:"name"`
	Type      CategoryType `db:"type"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}
