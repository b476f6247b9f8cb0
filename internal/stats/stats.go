// Package stats computes expense totals grouped by category, currency,
// and month. All functions are pure: they read the records they are
// given and touch no storage.
package stats

import (
	"math"
	"sort"

	"expense-ledger/internal/models"
)

// cents converts an amount to integer cents with half-up rounding, so
// totals accumulate without floating-point drift.
func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func toAmount(c int64) float64 {
	return float64(c) / 100
}

// SumByCategory totals record amounts per category. Categories with no
// records are absent from the result, not zero-filled.
func SumByCategory(records []models.Expense) map[models.Category]float64 {
	totals := make(map[models.Category]int64)
	for _, r := range records {
		totals[r.Category] += cents(r.Amount)
	}
	out := make(map[models.Category]float64, len(totals))
	for c, t := range totals {
		out[c] = toAmount(t)
	}
	return out
}

// SumByCurrency totals record amounts per currency label. Amounts are
// never converted between currencies; each label is its own bucket.
func SumByCurrency(records []models.Expense) map[models.Currency]float64 {
	totals := make(map[models.Currency]int64)
	for _, r := range records {
		totals[r.Currency] += cents(r.Amount)
	}
	out := make(map[models.Currency]float64, len(totals))
	for c, t := range totals {
		out[c] = toAmount(t)
	}
	return out
}

// SumByMonth totals record amounts per "YYYY-MM" period, each record's
// date truncated to its month. Periods with no records are absent.
func SumByMonth(records []models.Expense) map[string]float64 {
	totals := make(map[string]int64)
	for _, r := range records {
		totals[r.Date.Period()] += cents(r.Amount)
	}
	out := make(map[string]float64, len(totals))
	for p, t := range totals {
		out[p] = toAmount(t)
	}
	return out
}

// SortedMonths returns the period labels of a SumByMonth result in
// chronological order. "YYYY-MM" labels sort lexicographically.
func SortedMonths(byMonth map[string]float64) []string {
	periods := make([]string, 0, len(byMonth))
	for p := range byMonth {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	return periods
}
