package domain

import "time"

const monthLayout = "2006-01"

// MonthlyStatistic aggregates usage per calendar month (UTC).
type MonthlyStatistic struct {
	Month             string    `json:"month"`
	TotalQueries      int64     `json:"total_queries"`
	TotalCost         float64   `json:"total_cost"`
	TotalOpenAITokens int64     `json:"total_openai_tokens"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// MonthKey returns the YYYY-MM key of t in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format(monthLayout)
}

// ValidMonthKey reports whether s is a well-formed YYYY-MM key.
func ValidMonthKey(s string) bool {
	if len(s) != len(monthLayout) {
		return false
	}
	_, err := time.Parse(monthLayout, s)
	return err == nil
}

// MonthStart returns the first instant of t's UTC month.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
