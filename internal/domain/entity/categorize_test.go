// Package entity defines the core business entities for the domain layer.
package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCategorize_Normalization(t *testing.T) {
	t.Run("keeps a fully valid expense unchanged", func(t *testing.T) {
		draft := Categorize(ExtractedEntry{
			Kind:          EntryKindExpense,
			Amount:        decimal.NewFromFloat(25.5),
			Label:         "Almoço",
			Quantity:      2,
			Source:        "Restaurante do João",
			OccurredOn:    "2024-03-15",
			Category:      "Alimentação",
			PaymentMethod: "PIX",
			Tags:          []string{"trabalho"},
		})

		if draft.Category != "Alimentação" {
			t.Errorf("expected category Alimentação, got %s", draft.Category)
		}
		if draft.PaymentMethod != "PIX" {
			t.Errorf("expected payment method PIX, got %s", draft.PaymentMethod)
		}
		if draft.OccurredOn != "2024-03-15" {
			t.Errorf("expected date 2024-03-15, got %s", draft.OccurredOn)
		}
		if draft.Quantity != 2 {
			t.Errorf("expected quantity 2, got %d", draft.Quantity)
		}
	})

	t.Run("out-of-list expense category falls back to Outros", func(t *testing.T) {
		draft := Categorize(ExtractedEntry{
			Kind:     EntryKindExpense,
			Category: "CategoriaInexistente",
		})
		if draft.Category != CategoryOther {
			t.Errorf("expected %s, got %s", CategoryOther, draft.Category)
		}
	})

	t.Run("income category list is independent from expense list", func(t *testing.T) {
		// Alimentação is a valid expense category but not a valid income one.
		draft := Categorize(ExtractedEntry{
			Kind:     EntryKindIncome,
			Category: "Alimentação",
		})
		if draft.Category != CategoryOther {
			t.Errorf("expected %s, got %s", CategoryOther, draft.Category)
		}

		draft = Categorize(ExtractedEntry{
			Kind:     EntryKindIncome,
			Category: "Salário",
		})
		if draft.Category != "Salário" {
			t.Errorf("expected Salário, got %s", draft.Category)
		}
	})

	t.Run("unknown kind defaults to expense", func(t *testing.T) {
		draft := Categorize(ExtractedEntry{Kind: "investimento"})
		if draft.Kind != EntryKindExpense {
			t.Errorf("expected %s, got %s", EntryKindExpense, draft.Kind)
		}
	})

	t.Run("unknown payment method becomes Não informado", func(t *testing.T) {
		draft := Categorize(ExtractedEntry{PaymentMethod: "Cheque"})
		if draft.PaymentMethod != PaymentMethodNotInformed {
			t.Errorf("expected %s, got %s", PaymentMethodNotInformed, draft.PaymentMethod)
		}
	})

	t.Run("malformed date is replaced with today", func(t *testing.T) {
		today := time.Now().Format(DateFormat)
		for _, bad := range []string{"", "15/03/2024", "2024-3-5", "amanhã"} {
			draft := Categorize(ExtractedEntry{OccurredOn: bad})
			if draft.OccurredOn != today {
				t.Errorf("date %q: expected %s, got %s", bad, today, draft.OccurredOn)
			}
		}
	})

	t.Run("well-formed date is kept verbatim", func(t *testing.T) {
		// The pattern checks shape, not calendar validity.
		draft := Categorize(ExtractedEntry{OccurredOn: "2024-03-15"})
		if draft.OccurredOn != "2024-03-15" {
			t.Errorf("expected 2024-03-15, got %s", draft.OccurredOn)
		}
	})

	t.Run("non-positive quantity defaults to 1", func(t *testing.T) {
		for _, q := range []int{0, -3} {
			draft := Categorize(ExtractedEntry{Quantity: q})
			if draft.Quantity != 1 {
				t.Errorf("quantity %d: expected 1, got %d", q, draft.Quantity)
			}
		}
	})

	t.Run("empty and undefined text fields get placeholders", func(t *testing.T) {
		draft := Categorize(ExtractedEntry{Label: "  ", Source: "undefined"})
		if draft.Label != LabelNotIdentified {
			t.Errorf("expected %s, got %s", LabelNotIdentified, draft.Label)
		}
		if draft.Source != SourceNotInformed {
			t.Errorf("expected %s, got %s", SourceNotInformed, draft.Source)
		}
	})

	t.Run("nil tags become an empty slice", func(t *testing.T) {
		draft := Categorize(ExtractedEntry{})
		if draft.Tags == nil {
			t.Error("expected non-nil tags slice")
		}
		if len(draft.Tags) != 0 {
			t.Errorf("expected empty tags, got %v", draft.Tags)
		}
	})
}

func TestComputeTotals(t *testing.T) {
	entries := []*LedgerEntry{
		{Kind: EntryKindExpense, Amount: decimal.NewFromInt(50)},
		{Kind: EntryKindExpense, Amount: decimal.NewFromInt(30)},
		{Kind: EntryKindIncome, Amount: decimal.NewFromInt(200)},
	}

	totals := ComputeTotals(entries)

	if totals.ExpenseCount != 2 {
		t.Errorf("expected 2 expenses, got %d", totals.ExpenseCount)
	}
	if totals.IncomeCount != 1 {
		t.Errorf("expected 1 income, got %d", totals.IncomeCount)
	}
	if !totals.ExpenseTotal.Equal(decimal.NewFromInt(80)) {
		t.Errorf("expected expense total 80, got %s", totals.ExpenseTotal)
	}
	if !totals.Balance.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected balance 120, got %s", totals.Balance)
	}
}
