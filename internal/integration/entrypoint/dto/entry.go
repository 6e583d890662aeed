package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/usecase/entry"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// EntryResponse represents one ledger entry in API responses.
type EntryResponse struct {
	ID            uint      `json:"id"`
	Kind          string    `json:"tipo"`
	Amount        string    `json:"valor"`
	Label         string    `json:"item"`
	Quantity      int       `json:"quantidade"`
	Source        string    `json:"estabelecimento"`
	OccurredOn    string    `json:"data"`
	Category      string    `json:"categoria"`
	PaymentMethod string    `json:"forma_pagamento"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToEntryResponse converts a use case entry output to an EntryResponse DTO.
func ToEntryResponse(e *entry.EntryOutput) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		Kind:          string(e.Kind),
		Amount:        e.Amount.StringFixed(2),
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

// ToEntryResponses converts a slice of use case entry outputs.
func ToEntryResponses(entries []*entry.EntryOutput) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return out
}

// EntryDraftRequest carries raw entry fields supplied by the client.
// Fields mirror what the extraction oracle produces so a previously
// extracted draft can be resubmitted for confirmation.
type EntryDraftRequest struct {
	Kind          string   `json:"tipo"`
	Amount        float64  `json:"valor"`
	Label         string   `json:"item"`
	Quantity      int      `json:"quantidade"`
	Source        string   `json:"estabelecimento"`
	OccurredOn    string   `json:"data"`
	Category      string   `json:"categoria"`
	PaymentMethod string   `json:"forma_pagamento"`
	Tags          []string `json:"tags"`
}

// ToExtractedEntry converts the request draft to the domain raw shape.
func (r *EntryDraftRequest) ToExtractedEntry() entity.ExtractedEntry {
	return entity.ExtractedEntry{
		Kind:          entity.EntryKind(r.Kind),
		Amount:        decimal.NewFromFloat(r.Amount),
		Label:         r.Label,
		Quantity:      r.Quantity,
		Source:        r.Source,
		OccurredOn:    r.OccurredOn,
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
		Tags:          r.Tags,
	}
}

// CreateEntryRequest registers an entry either from free text or from a
// previously extracted draft.
type CreateEntryRequest struct {
	Utterance string             `json:"texto"`
	Draft     *EntryDraftRequest `json:"dados,omitempty"`
}

// CreateEntryResponse represents the result of entry registration.
type CreateEntryResponse struct {
	Entry        *EntryResponse `json:"registro,omitempty"`
	Confirmation string         `json:"mensagem_confirmacao,omitempty"`
	Success      bool           `json:"sucesso"`
	Message      string         `json:"mensagem"`
}

// ExtractEntryRequest analyzes free text without persisting anything.
type ExtractEntryRequest struct {
	Utterance string `json:"texto" binding:"required"`
}

// ExtractEntryResponse carries the normalized draft back to the client.
type ExtractEntryResponse struct {
	Draft   DraftResponse `json:"dados_categorizados"`
	Success bool          `json:"sucesso"`
	Message string        `json:"mensagem"`
}

// DraftResponse represents a normalized entry draft.
type DraftResponse struct {
	Kind          string   `json:"tipo"`
	Amount        string   `json:"valor"`
	Label         string   `json:"item"`
	Quantity      int      `json:"quantidade"`
	Source        string   `json:"estabelecimento"`
	OccurredOn    string   `json:"data"`
	Category      string   `json:"categoria"`
	PaymentMethod string   `json:"forma_pagamento"`
	Tags          []string `json:"tags"`
}

// ToDraftResponse converts a domain draft to its response shape.
func ToDraftResponse(d entity.EntryDraft) DraftResponse {
	return DraftResponse{
		Kind:          string(d.Kind),
		Amount:        d.Amount.StringFixed(2),
		Label:         d.Label,
		Quantity:      d.Quantity,
		Source:        d.Source,
		OccurredOn:    d.OccurredOn,
		Category:      d.Category,
		PaymentMethod: d.PaymentMethod,
		Tags:          d.Tags,
	}
}

// ListEntriesResponse represents the full ledger listing.
type ListEntriesResponse struct {
	Entries      []EntryResponse `json:"registros"`
	ExpenseCount int             `json:"total_gastos"`
	IncomeCount  int             `json:"total_entradas"`
	ExpenseTotal string          `json:"valor_gastos"`
	IncomeTotal  string          `json:"valor_entradas"`
	Balance      string          `json:"saldo"`
	Success      bool            `json:"sucesso"`
	Message      string          `json:"mensagem"`
}

// CategoryAverageResponse aggregates one category in a query result.
type CategoryAverageResponse struct {
	Category string `json:"categoria"`
	Total    string `json:"total"`
	Average  string `json:"media"`
	Count    int    `json:"quantidade"`
}

// QueryEntriesResponse represents a filtered ledger query result.
type QueryEntriesResponse struct {
	Entries     []EntryResponse           `json:"registros"`
	Count       int                       `json:"total_registros"`
	Balance     string                    `json:"saldo"`
	PerCategory []CategoryAverageResponse `json:"media_por_categoria"`
	Success     bool                      `json:"sucesso"`
	Message     string                    `json:"mensagem"`
}

// ToCategoryAverageResponses converts use case category aggregates.
func ToCategoryAverageResponses(averages []entry.CategoryAverage) []CategoryAverageResponse {
	out := make([]CategoryAverageResponse, len(averages))
	for i, a := range averages {
		out[i] = CategoryAverageResponse{
			Category: a.Category,
			Total:    a.Total.StringFixed(2),
			Average:  a.Average.StringFixed(2),
			Count:    a.Count,
		}
	}
	return out
}

// UpdateEntryRequest replaces all mutable fields of an entry.
type UpdateEntryRequest struct {
	Draft EntryDraftRequest `json:"dados" binding:"required"`
}

// UpdateEntryResponse represents the result of an entry update.
type UpdateEntryResponse struct {
	Entry   *EntryResponse `json:"registro_atualizado,omitempty"`
	Success bool           `json:"sucesso"`
	Message string         `json:"mensagem"`
}

// DeleteEntryResponse represents the result of an entry removal.
type DeleteEntryResponse struct {
	DeletedID uint   `json:"deleted_id"`
	Success   bool   `json:"sucesso"`
	Message   string `json:"mensagem"`
}
