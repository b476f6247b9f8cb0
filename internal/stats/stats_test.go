package stats

import (
	"testing"

	"expense-ledger/internal/models"

	"github.com/stretchr/testify/assert"
)

func rec(amount float64, category models.Category, date models.Date, currency models.Currency) models.Expense {
	return models.Expense{ID: "x", Amount: amount, Category: category, Date: date, Currency: currency}
}

func TestSumByCategory(t *testing.T) {
	date := models.NewDate(2024, 1, 1)
	records := []models.Expense{
		rec(10, models.Food, date, "USD"),
		rec(5, models.Food, date, "USD"),
		rec(20, models.Rent, date, "USD"),
	}

	got := SumByCategory(records)
	assert.Equal(t, map[models.Category]float64{
		models.Food: 15,
		models.Rent: 20,
	}, got)
	assert.NotContains(t, got, models.Transport, "absent categories are omitted, not zero-filled")
}

func TestSumByCategoryEmpty(t *testing.T) {
	assert.Empty(t, SumByCategory(nil))
}

func TestSumByCurrency(t *testing.T) {
	date := models.NewDate(2024, 1, 1)
	records := []models.Expense{
		rec(10, models.Food, date, "USD"),
		rec(2.50, models.Food, date, "EUR"),
		rec(7.50, models.Rent, date, "EUR"),
	}

	assert.Equal(t, map[models.Currency]float64{
		"USD": 10,
		"EUR": 10,
	}, SumByCurrency(records))
}

func TestSumByMonth(t *testing.T) {
	records := []models.Expense{
		rec(10, models.Food, models.NewDate(2024, 1, 5), "USD"),
		rec(5, models.Food, models.NewDate(2024, 1, 28), "USD"),
		rec(20, models.Rent, models.NewDate(2024, 2, 1), "USD"),
		rec(1, models.Other, models.NewDate(2023, 12, 31), "USD"),
	}

	byMonth := SumByMonth(records)
	assert.Equal(t, map[string]float64{
		"2023-12": 1,
		"2024-01": 15,
		"2024-02": 20,
	}, byMonth)

	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, SortedMonths(byMonth))
}

func TestSumAccumulatesWithoutFloatDrift(t *testing.T) {
	date := models.NewDate(2024, 1, 1)
	records := []models.Expense{
		rec(1.10, models.Food, date, "USD"),
		rec(1.10, models.Food, date, "USD"),
		rec(1.10, models.Food, date, "USD"),
	}

	// Naive float accumulation yields 3.3000000000000003
	assert.Equal(t, 3.30, SumByCategory(records)[models.Food])
}

func TestSumsArePure(t *testing.T) {
	date := models.NewDate(2024, 1, 1)
	records := []models.Expense{rec(10, models.Food, date, "USD")}
	before := records[0]

	SumByCategory(records)
	SumByCurrency(records)
	SumByMonth(records)

	assert.Equal(t, before, records[0], "aggregation must not mutate its input")
}
