package entry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// RegisterEntryInput represents the input for registering an entry from
// free text. When Draft is set, extraction is skipped and the draft is
// persisted as-is after normalization (the confirmation flow).
type RegisterEntryInput struct {
	Utterance string
	Draft     *entity.ExtractedEntry
}

// RegisterEntryOutput represents the output of entry registration.
type RegisterEntryOutput struct {
	Entry        *EntryOutput
	Confirmation string
	Success      bool
	Message      string
}

// RegisterEntryUseCase extracts entry data from a free-text utterance,
// normalizes it, and persists the result.
type RegisterEntryUseCase struct {
	extract   *ExtractEntryUseCase
	entryRepo adapter.EntryRepository
}

// NewRegisterEntryUseCase creates a new RegisterEntryUseCase instance.
func NewRegisterEntryUseCase(extract *ExtractEntryUseCase, entryRepo adapter.EntryRepository) *RegisterEntryUseCase {
	return &RegisterEntryUseCase{
		extract:   extract,
		entryRepo: entryRepo,
	}
}

// Execute registers the entry. Resubmitting the same utterance creates a
// new entry each time; registration is not idempotent.
func (uc *RegisterEntryUseCase) Execute(ctx context.Context, input RegisterEntryInput) (*RegisterEntryOutput, error) {
	var draft entity.EntryDraft

	if input.Draft != nil {
		draft = entity.Categorize(*input.Draft)
	} else {
		extracted, err := uc.extract.Execute(ctx, ExtractEntryInput{Utterance: input.Utterance})
		if err != nil {
			return nil, err
		}
		if !extracted.Success {
			return &RegisterEntryOutput{
				Success: false,
				Message: extracted.Message,
			}, nil
		}
		draft = extracted.Draft
	}

	created := entity.NewLedgerEntry(draft)
	if err := uc.entryRepo.Create(ctx, created); err != nil {
		slog.Error("Failed to persist ledger entry", "error", err)
		return &RegisterEntryOutput{
			Success: false,
			Message: fmt.Sprintf("Erro ao registrar: %s", err.Error()),
		}, nil
	}

	return &RegisterEntryOutput{
		Entry:        ToEntryOutput(created),
		Confirmation: confirmationMessage(created),
		Success:      true,
		Message:      fmt.Sprintf("%s registrado com sucesso", created.Kind.Label()),
	}, nil
}

// confirmationMessage builds the chat-friendly summary shown after a
// successful registration.
func confirmationMessage(e *entity.LedgerEntry) string {
	return fmt.Sprintf(`✅ %s registrado com sucesso!

• Item: %s
• Valor: R$ %s
• Estabelecimento: %s
• Data: %s
• Categoria: %s
• Forma de Pagamento: %s

ID do registro: #%d`,
		e.Kind.Label(), e.Label, e.Amount.StringFixed(2), e.Source,
		e.OccurredOn, e.Category, e.PaymentMethod, e.ID)
}
