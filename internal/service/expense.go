package service

import (
	"expense-ledger/internal/models"
	"expense-ledger/internal/storage"
)

// ExpenseService handles add, list and delete for a user's expense
// records. Every mutation is a load-modify-save of the whole record set;
// two concurrent writers follow last-writer-wins semantics.
type ExpenseService struct {
	store storage.ExpenseStore
}

// NewExpenseService creates an expense service over store.
func NewExpenseService(store storage.ExpenseStore) *ExpenseService {
	return &ExpenseService{store: store}
}

// Add validates and appends a new expense for username, assigning a
// fresh id. A zero date defaults to today. The full record set is
// persisted before Add returns the stored record.
func (s *ExpenseService) Add(username string, amount float64, category models.Category, date models.Date, currency models.Currency) (models.Expense, error) {
	if date.IsZero() {
		date = models.Today()
	}

	e := models.Expense{
		Amount:   amount,
		Category: category,
		Date:     date,
		Currency: currency,
	}
	if err := e.Validate(); err != nil {
		return models.Expense{}, err
	}
	e.EnsureID()

	all, err := s.store.Load()
	if err != nil {
		return models.Expense{}, err
	}
	all[username] = append(all[username], e)
	if err := s.store.Save(all); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

// List returns username's expenses in insertion order. A user who never
// added an expense gets an empty sequence, not an error.
func (s *ExpenseService) List(username string) ([]models.Expense, error) {
	all, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return all[username], nil
}

// Delete removes the record with the given id from username's expenses
// and persists the result. An absent id is a silent no-op.
func (s *ExpenseService) Delete(username, id string) error {
	all, err := s.store.Load()
	if err != nil {
		return err
	}

	records := all[username]
	kept := make([]models.Expense, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	all[username] = kept
	return s.store.Save(all)
}
