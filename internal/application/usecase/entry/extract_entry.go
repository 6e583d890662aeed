package entry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// incomeHints are substrings that bias extraction towards an income entry
// when the caller did not state the kind explicitly.
var incomeHints = []string{"recebi", "entrada", "salário", "pagamento"}

// ExtractEntryInput represents the input for free-text extraction.
type ExtractEntryInput struct {
	Utterance string
	FromImage bool
	// Kind forces the entry kind; empty lets the heuristic and the oracle decide.
	Kind entity.EntryKind
}

// ExtractEntryOutput represents the normalized draft extracted from text.
// Nothing is persisted by this use case.
type ExtractEntryOutput struct {
	Draft   entity.EntryDraft
	Success bool
	Message string
}

// ExtractEntryUseCase turns a free-text utterance into a normalized entry
// draft via the extraction oracle and categorization.
type ExtractEntryUseCase struct {
	oracle adapter.ExtractionOracle
}

// NewExtractEntryUseCase creates a new ExtractEntryUseCase instance.
func NewExtractEntryUseCase(oracle adapter.ExtractionOracle) *ExtractEntryUseCase {
	return &ExtractEntryUseCase{oracle: oracle}
}

// Execute extracts and normalizes entry fields from the utterance.
// Extraction failure is not an error at this level: the output carries a
// zeroed default draft and Success=false, so callers can report the failure
// to the end user without losing the response envelope.
func (uc *ExtractEntryUseCase) Execute(ctx context.Context, input ExtractEntryInput) (*ExtractEntryOutput, error) {
	hint := input.Kind
	if hint == "" && looksLikeIncome(input.Utterance) {
		hint = entity.EntryKindIncome
	}

	raw, err := uc.oracle.ExtractEntry(ctx, adapter.ExtractEntryInput{
		Utterance: input.Utterance,
		KindHint:  hint,
		FromImage: input.FromImage,
	})
	if err != nil {
		slog.Debug("Entry extraction failed, falling back to default draft", "error", err)
		return &ExtractEntryOutput{
			Draft:   fallbackDraft(),
			Success: false,
			Message: "Erro ao analisar entrada: " + err.Error(),
		}, nil
	}

	return &ExtractEntryOutput{
		Draft:   entity.Categorize(*raw),
		Success: true,
		Message: "Dados extraídos com sucesso",
	}, nil
}

func looksLikeIncome(utterance string) bool {
	lowered := strings.ToLower(utterance)
	for _, hint := range incomeHints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}
	return false
}

// fallbackDraft is the best-effort default returned when extraction fails:
// zero amount, "Outros" category, today's date.
func fallbackDraft() entity.EntryDraft {
	return entity.Categorize(entity.ExtractedEntry{
		Kind:       entity.EntryKindExpense,
		Amount:     decimal.Zero,
		OccurredOn: time.Now().Format(entity.DateFormat),
	})
}
