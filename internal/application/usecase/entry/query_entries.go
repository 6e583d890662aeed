package entry

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// QueryKind selects the filter applied by QueryEntriesUseCase.
type QueryKind string

const (
	QueryByPeriod   QueryKind = "periodo"
	QueryByCategory QueryKind = "categoria"
	QueryTotal      QueryKind = "total"
	QueryTopN       QueryKind = "top_n"
)

// IsValid reports whether the query kind is one of the known filters.
func (k QueryKind) IsValid() bool {
	switch k {
	case QueryByPeriod, QueryByCategory, QueryTotal, QueryTopN:
		return true
	}
	return false
}

// CategoryAverage aggregates entries of one category within a query result.
type CategoryAverage struct {
	Category string
	Total    decimal.Decimal
	Average  decimal.Decimal
	Count    int
}

// QueryEntriesInput represents the input for a filtered ledger query.
// StartDate/EndDate apply to periodo queries, Category to categoria
// queries, Limit to top_n queries.
type QueryEntriesInput struct {
	Kind      QueryKind
	StartDate string
	EndDate   string
	Category  string
	Limit     int
}

// QueryEntriesOutput represents the result of a filtered ledger query.
// Balance is income minus expense over the matched entries.
type QueryEntriesOutput struct {
	Entries     []*EntryOutput
	Count       int
	Balance     decimal.Decimal
	PerCategory []CategoryAverage
	Success     bool
	Message     string
}

// QueryEntriesUseCase answers filtered questions about the ledger:
// entries in a date range, entries of a category, overall totals, and
// the N largest entries.
type QueryEntriesUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewQueryEntriesUseCase creates a new QueryEntriesUseCase instance.
func NewQueryEntriesUseCase(entryRepo adapter.EntryRepository) *QueryEntriesUseCase {
	return &QueryEntriesUseCase{entryRepo: entryRepo}
}

// Execute runs the query. An unknown query kind yields Success=false with
// an explanatory message rather than an error, so conversational callers
// can relay it directly.
func (uc *QueryEntriesUseCase) Execute(ctx context.Context, input QueryEntriesInput) (*QueryEntriesOutput, error) {
	if !input.Kind.IsValid() {
		return &QueryEntriesOutput{
			Entries:     []*EntryOutput{},
			PerCategory: []CategoryAverage{},
			Success:     false,
			Message:     fmt.Sprintf("Tipo de consulta inválido: %s", input.Kind),
		}, nil
	}

	entries, err := uc.fetch(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}

	if input.Kind == QueryTopN {
		entries = topByAmount(entries, input.Limit)
	}

	totals := entity.ComputeTotals(entries)

	return &QueryEntriesOutput{
		Entries:     ToEntryOutputs(entries),
		Count:       len(entries),
		Balance:     totals.Balance,
		PerCategory: averagesByCategory(entries),
		Success:     true,
		Message:     "Consulta realizada com sucesso",
	}, nil
}

func (uc *QueryEntriesUseCase) fetch(ctx context.Context, input QueryEntriesInput) ([]*entity.LedgerEntry, error) {
	switch input.Kind {
	case QueryByPeriod:
		if input.StartDate != "" && input.EndDate != "" {
			return uc.entryRepo.FindByDateRange(ctx, input.StartDate, input.EndDate)
		}
	case QueryByCategory:
		if input.Category != "" {
			return uc.entryRepo.FindByCategory(ctx, input.Category)
		}
	}
	return uc.entryRepo.FindAll(ctx)
}

// averagesByCategory groups entries by category preserving first-seen
// order, the same order the entries came back from the store.
func averagesByCategory(entries []*entity.LedgerEntry) []CategoryAverage {
	index := make(map[string]int)
	result := make([]CategoryAverage, 0)

	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(result)
			index[e.Category] = i
			result = append(result, CategoryAverage{Category: e.Category, Total: decimal.Zero})
		}
		result[i].Total = result[i].Total.Add(e.Amount)
		result[i].Count++
	}

	for i := range result {
		result[i].Average = result[i].Total.Div(decimal.NewFromInt(int64(result[i].Count)))
	}
	return result
}

// topByAmount returns the limit largest entries by amount, descending.
// The input slice is not modified.
func topByAmount(entries []*entity.LedgerEntry, limit int) []*entity.LedgerEntry {
	if limit <= 0 {
		limit = 5
	}
	sorted := make([]*entity.LedgerEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
