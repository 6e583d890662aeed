package entry

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// ListEntriesOutput represents the full ledger listing with per-kind totals.
type ListEntriesOutput struct {
	Entries      []*EntryOutput
	ExpenseCount int
	IncomeCount  int
	ExpenseTotal decimal.Decimal
	IncomeTotal  decimal.Decimal
	Balance      decimal.Decimal
	Message      string
}

// ListEntriesUseCase lists every ledger entry with aggregate totals.
type ListEntriesUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(entryRepo adapter.EntryRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{entryRepo: entryRepo}
}

// Execute performs the full scan and aggregation.
func (uc *ListEntriesUseCase) Execute(ctx context.Context) (*ListEntriesOutput, error) {
	entries, err := uc.entryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	totals := entity.ComputeTotals(entries)

	return &ListEntriesOutput{
		Entries:      ToEntryOutputs(entries),
		ExpenseCount: totals.ExpenseCount,
		IncomeCount:  totals.IncomeCount,
		ExpenseTotal: totals.ExpenseTotal,
		IncomeTotal:  totals.IncomeTotal,
		Balance:      totals.Balance,
		Message: fmt.Sprintf("%d registros encontrados (%d gastos, %d entradas)",
			len(entries), totals.ExpenseCount, totals.IncomeCount),
	}, nil
}
