// Package inmemory provides map-backed store implementations with the same
// semantics as the Postgres repositories. They back the service and API
// tests; nothing wires them into the server.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]models.User)}
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := user
	return &u, nil
}

type CategoryStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]models.Category
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[uuid.UUID]models.Category)}
}

func (s *CategoryStore) Create(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = *category
	return nil
}

func (s *CategoryStore) GetByIDAndUser(_ context.Context, id, userID uuid.UUID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[id]
	if !ok || category.UserID != userID {
		return nil, repository.ErrNotFound
	}
	c := category
	return &c, nil
}

func (s *CategoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var categories []*models.Category
	for _, category := range s.categories {
		if category.UserID == userID {
			c := category
			categories = append(categories, &c)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].CreatedAt.Before(categories[j].CreatedAt)
	})
	return categories, nil
}

func (s *CategoryStore) Update(_ context.Context, id, userID uuid.UUID, name string, categoryType models.CategoryType, updatedAt time.Time) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok || category.UserID != userID {
		return nil, repository.ErrNotFound
	}
	category.Name = name
	category.Type = categoryType
	category.UpdatedAt = updatedAt
	s.categories[id] = category
	c := category
	return &c, nil
}

func (s *CategoryStore) get(id uuid.UUID) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[id]
	return category, ok
}

func (s *CategoryStore) Delete(_ context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok || category.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// TransactionStore embeds categories on reads the way the SQL layer's LEFT
// JOIN does, so it needs the category store it joins against.
type TransactionStore struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]models.Transaction
	categories   *CategoryStore
}

func NewTransactionStore(categories *CategoryStore) *TransactionStore {
	return &TransactionStore{
		transactions: make(map[uuid.UUID]models.Transaction),
		categories:   categories,
	}
}

func (s *TransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *tx
	stored.Category = nil
	s.transactions[tx.ID] = stored
	return nil
}

func (s *TransactionStore) matching(q repository.TransactionQuery) []models.Transaction {
	var matched []models.Transaction
	for _, tx := range s.transactions {
		if tx.UserID != q.UserID {
			continue
		}
		if q.Type != "" && tx.Type != q.Type {
			continue
		}
		if q.StartDate != nil && tx.Date.Before(*q.StartDate) {
			continue
		}
		if q.EndDate != nil && tx.Date.After(*q.EndDate) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}

func (s *TransactionStore) List(_ context.Context, q repository.TransactionQuery) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.matching(q)

	asc := strings.EqualFold(q.SortOrder, "ASC")
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !asc {
			a, b = b, a
		}
		if q.SortField == "amount" {
			return a.Amount < b.Amount
		}
		return a.Date.Before(b.Date)
	})

	start := q.Offset
	if start > uint64(len(matched)) {
		start = uint64(len(matched))
	}
	end := start + q.Limit
	if end > uint64(len(matched)) {
		end = uint64(len(matched))
	}

	page := make([]*models.Transaction, 0, end-start)
	for _, tx := range matched[start:end] {
		t := tx
		if category, ok := s.categories.get(t.CategoryID); ok {
			c := category
			t.Category = &c
		}
		page = append(page, &t)
	}
	return page, nil
}

func (s *TransactionStore) Count(_ context.Context, q repository.TransactionQuery) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.matching(q))), nil
}

func (s *TransactionStore) Delete(_ context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok || tx.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *TransactionStore) StatsByType(_ context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]models.TypeStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := repository.TransactionQuery{UserID: userID, StartDate: startDate, EndDate: endDate}
	buckets := make(map[models.TransactionType]*models.TypeStat)
	for _, tx := range s.matching(q) {
		stat, ok := buckets[tx.Type]
		if !ok {
			stat = &models.TypeStat{Type: tx.Type}
			buckets[tx.Type] = stat
		}
		stat.Total += tx.Amount
		stat.Count++
	}

	stats := make([]models.TypeStat, 0, len(buckets))
	for _, stat := range buckets {
		stats = append(stats, *stat)
	}
	return stats, nil
}
