package entity

import "github.com/shopspring/decimal"

// CategorySummary aggregates one category inside a report period.
type CategorySummary struct {
	Category string
	Total    decimal.Decimal
	Average  decimal.Decimal
	Count    int
}

// CategoryTotal is a category ranked by total spend.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// PeriodComparison compares the current period against the immediately
// preceding one. Percent is zero when the prior total is zero.
type PeriodComparison struct {
	Difference decimal.Decimal
	Percent    float64
}

// Report is a derived view over a date range of ledger entries.
// It is computed on demand and never persisted.
type Report struct {
	Period        string
	TotalAmount   decimal.Decimal
	PerCategory   []CategorySummary
	TopCategories []CategoryTotal
	PriorPeriod   PeriodComparison
	Insights      []string
}

// FriendlyInsights is the natural-language rendering of a report, produced
// by the insight narrator (or by deterministic fallbacks when it fails).
type FriendlyInsights struct {
	Summary         string
	TopExpenses     []string
	Recommendations []string
	Warnings        []string
}
