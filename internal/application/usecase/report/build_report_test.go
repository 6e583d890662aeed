// Package report contains reporting and insight use cases.
package report

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// fakeEntryRepo implements adapter.EntryRepository over an in-memory slice,
// applying the same inclusive lexicographic range filter as the store.
type fakeEntryRepo struct {
	entries         []*entity.LedgerEntry
	rangesRequested [][2]string
}

func (r *fakeEntryRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	e.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeEntryRepo) FindAll(_ context.Context) ([]*entity.LedgerEntry, error) {
	return r.entries, nil
}

func (r *fakeEntryRepo) FindByID(_ context.Context, id uint) (*entity.LedgerEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domainerror.ErrEntryNotFound
}

func (r *fakeEntryRepo) FindByDateRange(_ context.Context, start, end string) ([]*entity.LedgerEntry, error) {
	r.rangesRequested = append(r.rangesRequested, [2]string{start, end})
	result := make([]*entity.LedgerEntry, 0)
	for _, e := range r.entries {
		if e.OccurredOn >= start && e.OccurredOn <= end {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeEntryRepo) FindByCategory(_ context.Context, category string) ([]*entity.LedgerEntry, error) {
	result := make([]*entity.LedgerEntry, 0)
	for _, e := range r.entries {
		if e.Category == category {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeEntryRepo) Update(_ context.Context, e *entity.LedgerEntry) error {
	for i, existing := range r.entries {
		if existing.ID == e.ID {
			r.entries[i] = e
			return nil
		}
	}
	return domainerror.ErrEntryNotFound
}

func (r *fakeEntryRepo) Delete(_ context.Context, id uint) error {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrEntryNotFound
}

func expense(amount float64, date, category string) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		Kind:       entity.EntryKindExpense,
		Amount:     decimal.NewFromFloat(amount),
		OccurredOn: date,
		Category:   category,
	}
}

func TestBuildReportUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates a monthly window", func(t *testing.T) {
		repo := &fakeEntryRepo{entries: []*entity.LedgerEntry{
			expense(100, "2024-03-01", "Alimentação"),
			expense(50, "2024-03-10", "Transporte"),
			expense(30, "2024-03-20", "Alimentação"),
			expense(999, "2024-04-01", "Alimentação"), // outside window
		}}
		uc := NewBuildReportUseCase(repo)

		out, err := uc.Execute(ctx, BuildReportInput{Month: 3, Year: 2024, Kind: PeriodMonthly})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Report.Period != "2024-03-01 a 2024-03-31" {
			t.Errorf("unexpected period %q", out.Report.Period)
		}
		if !out.Report.TotalAmount.Equal(decimal.NewFromInt(180)) {
			t.Errorf("expected total 180, got %s", out.Report.TotalAmount)
		}
		if len(out.Report.PerCategory) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(out.Report.PerCategory))
		}
		// First-seen order: Alimentação appears before Transporte.
		if out.Report.PerCategory[0].Category != "Alimentação" {
			t.Errorf("expected Alimentação first, got %s", out.Report.PerCategory[0].Category)
		}
		if out.Report.PerCategory[0].Count != 2 {
			t.Errorf("expected 2 entries in Alimentação, got %d", out.Report.PerCategory[0].Count)
		}
		if !out.Report.PerCategory[0].Average.Equal(decimal.NewFromInt(65)) {
			t.Errorf("expected average 65, got %s", out.Report.PerCategory[0].Average)
		}
		// Top categories are ranked by total.
		if out.Report.TopCategories[0].Category != "Alimentação" {
			t.Errorf("expected Alimentação on top, got %s", out.Report.TopCategories[0].Category)
		}
	})

	t.Run("empty window yields a zeroed report", func(t *testing.T) {
		repo := &fakeEntryRepo{}
		uc := NewBuildReportUseCase(repo)

		out, err := uc.Execute(ctx, BuildReportInput{Month: 1, Year: 2020, Kind: PeriodMonthly})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !out.Report.TotalAmount.IsZero() {
			t.Errorf("expected zero total, got %s", out.Report.TotalAmount)
		}
		if len(out.Report.TopCategories) != 0 {
			t.Errorf("expected no top categories, got %d", len(out.Report.TopCategories))
		}
		if out.Report.PriorPeriod.Percent != 0 {
			t.Errorf("expected zero percent, got %f", out.Report.PriorPeriod.Percent)
		}
		if !out.Success {
			t.Error("expected success")
		}
	})

	t.Run("percent is zero when the prior month had no spend", func(t *testing.T) {
		repo := &fakeEntryRepo{entries: []*entity.LedgerEntry{
			expense(100, "2024-03-05", "Alimentação"),
		}}
		uc := NewBuildReportUseCase(repo)

		out, err := uc.Execute(ctx, BuildReportInput{Month: 3, Year: 2024, Kind: PeriodMonthly})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		comparison := out.Report.PriorPeriod
		if !comparison.Difference.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected difference 100, got %s", comparison.Difference)
		}
		if comparison.Percent != 0 {
			t.Errorf("expected percent 0, got %f", comparison.Percent)
		}
	})

	t.Run("compares against the prior month", func(t *testing.T) {
		repo := &fakeEntryRepo{entries: []*entity.LedgerEntry{
			expense(200, "2024-02-10", "Alimentação"),
			expense(300, "2024-03-10", "Alimentação"),
		}}
		uc := NewBuildReportUseCase(repo)

		out, err := uc.Execute(ctx, BuildReportInput{Month: 3, Year: 2024, Kind: PeriodMonthly})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		comparison := out.Report.PriorPeriod
		if !comparison.Difference.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected difference 100, got %s", comparison.Difference)
		}
		if comparison.Percent != 50 {
			t.Errorf("expected percent 50, got %f", comparison.Percent)
		}
		if out.Report.Insights[0] != "Seus gastos aumentaram 50.0% em relação ao período anterior" {
			t.Errorf("unexpected insight %q", out.Report.Insights[0])
		}
	})

	t.Run("january compares against the previous year's december", func(t *testing.T) {
		repo := &fakeEntryRepo{}
		uc := NewBuildReportUseCase(repo)

		if _, err := uc.Execute(ctx, BuildReportInput{Month: 1, Year: 2024, Kind: PeriodMonthly}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(repo.rangesRequested) != 2 {
			t.Fatalf("expected 2 range queries, got %d", len(repo.rangesRequested))
		}
		prior := repo.rangesRequested[1]
		if prior[0] != "2023-12-01" || prior[1] != "2023-12-31" {
			t.Errorf("unexpected prior range %v", prior)
		}
	})

	t.Run("keeps at most three top categories", func(t *testing.T) {
		repo := &fakeEntryRepo{entries: []*entity.LedgerEntry{
			expense(10, "2024-03-01", "Alimentação"),
			expense(40, "2024-03-02", "Transporte"),
			expense(30, "2024-03-03", "Moradia"),
			expense(20, "2024-03-04", "Lazer"),
		}}
		uc := NewBuildReportUseCase(repo)

		out, err := uc.Execute(ctx, BuildReportInput{Month: 3, Year: 2024, Kind: PeriodMonthly})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		top := out.Report.TopCategories
		if len(top) != 3 {
			t.Fatalf("expected 3 top categories, got %d", len(top))
		}
		if top[0].Category != "Transporte" || top[1].Category != "Moradia" || top[2].Category != "Lazer" {
			t.Errorf("unexpected ranking: %v", top)
		}
	})

	t.Run("rejects an out-of-range month", func(t *testing.T) {
		uc := NewBuildReportUseCase(&fakeEntryRepo{})
		_, err := uc.Execute(ctx, BuildReportInput{Month: 13, Year: 2024, Kind: PeriodMonthly})
		if err == nil {
			t.Fatal("expected an error for month 13")
		}
	})
}

func TestPeriodBounds(t *testing.T) {
	t.Run("weekly covers the first seven days", func(t *testing.T) {
		start, end, err := periodBounds(3, 2024, PeriodWeekly)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start != "2024-03-01" || end != "2024-03-07" {
			t.Errorf("unexpected bounds %s..%s", start, end)
		}
	})

	t.Run("monthly honors leap years", func(t *testing.T) {
		start, end, err := periodBounds(2, 2024, PeriodMonthly)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start != "2024-02-01" || end != "2024-02-29" {
			t.Errorf("unexpected bounds %s..%s", start, end)
		}
	})

	t.Run("quarterly snaps to the calendar quarter", func(t *testing.T) {
		start, end, err := periodBounds(5, 2024, PeriodQuarterly)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start != "2024-04-01" || end != "2024-06-30" {
			t.Errorf("unexpected bounds %s..%s", start, end)
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, _, err := periodBounds(5, 2024, PeriodKind("anual"))
		if err == nil {
			t.Fatal("expected an error for unknown period kind")
		}
	})
}
