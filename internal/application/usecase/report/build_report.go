package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// BuildReportInput selects the report window.
type BuildReportInput struct {
	Month int
	Year  int
	Kind  PeriodKind
}

// BuildReportOutput represents the output of report generation.
type BuildReportOutput struct {
	Report  *entity.Report
	Success bool
	Message string
}

// BuildReportUseCase computes a spending report for a period: total,
// per-category aggregates, top categories and a comparison against the
// previous month. The report is derived on every call, never stored.
type BuildReportUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewBuildReportUseCase creates a new BuildReportUseCase instance.
func NewBuildReportUseCase(entryRepo adapter.EntryRepository) *BuildReportUseCase {
	return &BuildReportUseCase{entryRepo: entryRepo}
}

// Execute builds the report. An empty window yields a valid report with
// zero totals and no categories.
func (uc *BuildReportUseCase) Execute(ctx context.Context, input BuildReportInput) (*BuildReportOutput, error) {
	start, end, err := periodBounds(input.Month, input.Year, input.Kind)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load report entries: %w", err)
	}

	total := sumAmounts(entries)
	perCategory := summarizeByCategory(entries)
	top := topCategories(perCategory, 3)
	comparison, err := uc.compareWithPriorMonth(ctx, input.Month, input.Year, total)
	if err != nil {
		return nil, err
	}

	r := &entity.Report{
		Period:        fmt.Sprintf("%s a %s", start, end),
		TotalAmount:   total,
		PerCategory:   perCategory,
		TopCategories: top,
		PriorPeriod:   comparison,
		Insights:      buildInsights(comparison, top),
	}

	return &BuildReportOutput{
		Report:  r,
		Success: true,
		Message: "Análise realizada com sucesso",
	}, nil
}

// compareWithPriorMonth loads the full previous calendar month and computes
// the absolute and relative change. The percent is zero when the prior
// month had no spend, so a first month of data never divides by zero.
func (uc *BuildReportUseCase) compareWithPriorMonth(ctx context.Context, month, year int, total decimal.Decimal) (entity.PeriodComparison, error) {
	prevMonth, prevYear := priorMonth(month, year)
	start := fmt.Sprintf("%04d-%02d-01", prevYear, prevMonth)
	end := fmt.Sprintf("%04d-%02d-%02d", prevYear, prevMonth, lastDay(prevYear, prevMonth))

	entries, err := uc.entryRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return entity.PeriodComparison{}, fmt.Errorf("failed to load prior month entries: %w", err)
	}

	priorTotal := sumAmounts(entries)
	difference := total.Sub(priorTotal)

	percent := 0.0
	if priorTotal.IsPositive() {
		percent, _ = difference.Div(priorTotal).Mul(decimal.NewFromInt(100)).Float64()
	}

	return entity.PeriodComparison{
		Difference: difference,
		Percent:    percent,
	}, nil
}

func sumAmounts(entries []*entity.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// summarizeByCategory groups entries by category in first-seen order.
func summarizeByCategory(entries []*entity.LedgerEntry) []entity.CategorySummary {
	index := make(map[string]int)
	result := make([]entity.CategorySummary, 0)

	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(result)
			index[e.Category] = i
			result = append(result, entity.CategorySummary{Category: e.Category, Total: decimal.Zero})
		}
		result[i].Total = result[i].Total.Add(e.Amount)
		result[i].Count++
	}

	for i := range result {
		result[i].Average = result[i].Total.Div(decimal.NewFromInt(int64(result[i].Count)))
	}
	return result
}

// topCategories ranks categories by total spend descending, keeping at
// most limit entries.
func topCategories(summaries []entity.CategorySummary, limit int) []entity.CategoryTotal {
	ranked := make([]entity.CategoryTotal, len(summaries))
	for i, s := range summaries {
		ranked[i] = entity.CategoryTotal{Category: s.Category, Total: s.Total}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// buildInsights produces the deterministic insight sentences shown in the
// report and in the emailed summary.
func buildInsights(comparison entity.PeriodComparison, top []entity.CategoryTotal) []string {
	insights := make([]string, 0, 2)

	absPercent := comparison.Percent
	if absPercent < 0 {
		absPercent = -absPercent
	}
	if comparison.Difference.IsPositive() {
		insights = append(insights,
			fmt.Sprintf("Seus gastos aumentaram %.1f%% em relação ao período anterior", absPercent))
	} else {
		insights = append(insights,
			fmt.Sprintf("Seus gastos diminuíram %.1f%% em relação ao período anterior", absPercent))
	}

	if len(top) > 0 {
		insights = append(insights,
			fmt.Sprintf("Sua categoria com maior gasto foi %s com R$ %s",
				top[0].Category, top[0].Total.StringFixed(2)))
	}

	return insights
}
