package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Type        TransactionType `db:"type"`
	CategoryID  uuid.UUID       `db:"category_id"`
	Amount      float64         `db:"amount"`
	Date        time.Time       `db:"date"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	// Category is populated on reads. The reference is soft: deleting a
	// category leaves its transactions in place, so this may be nil.
	Category *Category `db:"-"`
}

// TypeStat is one row of the grouped income/expense aggregation.
type TypeStat struct {
	Type  TransactionType
	Total float64
	Count int64
}
