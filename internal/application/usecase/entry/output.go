// Package entry contains ledger entry-related use cases.
package entry

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// EntryOutput is the use case-level representation of a ledger entry.
type EntryOutput struct {
	ID            uint
	Kind          entity.EntryKind
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

// ToEntryOutput converts a domain entry into the output shape.
func ToEntryOutput(e *entity.LedgerEntry) *EntryOutput {
	return &EntryOutput{
		ID:            e.ID,
		Kind:          e.Kind,
		Amount:        e.Amount,
		Label:         e.Label,
		Quantity:      e.Quantity,
		Source:        e.Source,
		OccurredOn:    e.OccurredOn,
		Category:      e.Category,
		PaymentMethod: e.PaymentMethod,
		Tags:          e.Tags,
		CreatedAt:     e.CreatedAt,
	}
}

// ToEntryOutputs converts a slice of domain entries.
func ToEntryOutputs(entries []*entity.LedgerEntry) []*EntryOutput {
	out := make([]*EntryOutput, len(entries))
	for i, e := range entries {
		out[i] = ToEntryOutput(e)
	}
	return out
}
