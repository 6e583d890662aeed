// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind represents the kind of ledger entry (expense or income).
type EntryKind string

const (
	EntryKindExpense EntryKind = "gasto"
	EntryKindIncome  EntryKind = "entrada"
)

// IsValid reports whether the kind is one of the two known values.
func (k EntryKind) IsValid() bool {
	return k == EntryKindExpense || k == EntryKindIncome
}

// Label returns the user-facing name of the kind.
func (k EntryKind) Label() string {
	if k == EntryKindIncome {
		return "Entrada"
	}
	return "Gasto"
}

// Default placeholders applied when extracted fields are absent.
const (
	SourceNotInformed        = "Não informado"
	PaymentMethodNotInformed = "Não informado"
	LabelNotIdentified       = "Item não identificado"
	CategoryOther            = "Outros"
)

// LedgerEntry represents one recorded financial event (expense or income).
// The ID is assigned by the store on insert; OccurredOn is a zero-padded
// YYYY-MM-DD string so date ranges compare lexicographically.
type LedgerEntry struct {
	ID            uint
	Kind          EntryKind
	Amount        decimal.Decimal
	Label         string
	Quantity      int
	Source        string
	OccurredOn    string
	Category      string
	PaymentMethod string
	Tags          []string
	CreatedAt     time.Time
}

// EntryDraft is a fully normalized candidate entry produced by Categorize.
// It carries everything the store needs except the server-assigned fields.
type EntryDraft struct {
	Kind          EntryKind
	Amount        decimal.Decimal
	Label         string
	Quantity      int
	Source        string
	OccurredOn    string
	Category      string
	PaymentMethod string
	Tags          []string
}

// NewLedgerEntry creates a LedgerEntry from a normalized draft.
// ID is left zero for the store to assign.
func NewLedgerEntry(draft EntryDraft) *LedgerEntry {
	return &LedgerEntry{
		Kind:          draft.Kind,
		Amount:        draft.Amount,
		Label:         draft.Label,
		Quantity:      draft.Quantity,
		Source:        draft.Source,
		OccurredOn:    draft.OccurredOn,
		Category:      draft.Category,
		PaymentMethod: draft.PaymentMethod,
		Tags:          draft.Tags,
		CreatedAt:     time.Now().UTC(),
	}
}

// LedgerTotals represents aggregated totals over a set of entries.
type LedgerTotals struct {
	ExpenseCount int
	IncomeCount  int
	ExpenseTotal decimal.Decimal
	IncomeTotal  decimal.Decimal
	Balance      decimal.Decimal // income minus expense
}

// ComputeTotals aggregates counts, per-kind totals and the net balance.
func ComputeTotals(entries []*LedgerEntry) LedgerTotals {
	totals := LedgerTotals{
		ExpenseTotal: decimal.Zero,
		IncomeTotal:  decimal.Zero,
	}
	for _, e := range entries {
		if e.Kind == EntryKindIncome {
			totals.IncomeCount++
			totals.IncomeTotal = totals.IncomeTotal.Add(e.Amount)
		} else {
			totals.ExpenseCount++
			totals.ExpenseTotal = totals.ExpenseTotal.Add(e.Amount)
		}
	}
	totals.Balance = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals
}
