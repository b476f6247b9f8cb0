package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors returned by Expense.Validate.
var (
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidCurrency = errors.New("unknown currency")
	ErrInvalidDate     = errors.New("invalid date")
)

// Category classifies an expense. The set is fixed; records carrying any
// other value are rejected at validation time.
type Category string

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Entertainment Category = "Entertainment"
	Utilities     Category = "Utilities"
	Rent          Category = "Rent"
	Salary        Category = "Salary"
	Other         Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{Food, Transport, Entertainment, Utilities, Rent, Salary, Other}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Currency is a currency code stored as a plain label. Amounts are never
// converted between currencies.
type Currency string

// Currencies lists every accepted currency code.
var Currencies = []Currency{
	"USD", "EUR", "GBP", "JPY", "INR", "AUD", "CAD", "CHF", "CNY", "SEK",
	"NZD", "MXN", "SGD", "HKD", "NOK", "KRW", "TRY", "RUB", "ZAR", "BRL",
}

// Valid reports whether c is one of the accepted currency codes.
func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. It marshals to JSON
// as a quoted "YYYY-MM-DD" string.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// Period returns the "YYYY-MM" month label the date falls in.
func (d Date) Period() string {
	return d.Format("2006-01")
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Expense is a single financial record owned by exactly one user. Records
// are immutable once created; the only lifecycle operations are creation
// and deletion by id.
type Expense struct {
	ID       string   `json:"id"`
	Amount   float64  `json:"amount"`
	Category Category `json:"category"`
	Date     Date     `json:"date"`
	Currency Currency `json:"currency"`
}

// EnsureID assigns a fresh UUID if the record has none yet and reports
// whether an assignment happened.
func (e *Expense) EnsureID() bool {
	if e.ID == "" {
		e.ID = uuid.New().String()
		return true
	}
	return false
}

// Validate checks the record against the fixed category and currency sets
// and the positive-amount and valid-date constraints.
func (e Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	if !e.Currency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, e.Currency)
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
