package receipt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/application/usecase/entry"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// confirmedTags mark receipt entries the user explicitly approved.
var confirmedTags = []string{"OCR", "Comprovante", "Confirmado"}

// RegisterConfirmedInput carries the user-approved draft back for storage.
type RegisterConfirmedInput struct {
	Draft entity.ExtractedEntry
}

// RegisterConfirmedOutput represents the output of confirmed registration.
type RegisterConfirmedOutput struct {
	Entry   *entry.EntryOutput
	Success bool
	Message string
}

// RegisterConfirmedUseCase persists a receipt entry after the user has
// reviewed and confirmed the extracted fields.
type RegisterConfirmedUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewRegisterConfirmedUseCase creates a new RegisterConfirmedUseCase instance.
func NewRegisterConfirmedUseCase(entryRepo adapter.EntryRepository) *RegisterConfirmedUseCase {
	return &RegisterConfirmedUseCase{entryRepo: entryRepo}
}

// Execute persists the confirmed draft with the confirmation tags applied.
func (uc *RegisterConfirmedUseCase) Execute(ctx context.Context, input RegisterConfirmedInput) (*RegisterConfirmedOutput, error) {
	raw := input.Draft
	raw.Tags = confirmedTags

	created := entity.NewLedgerEntry(entity.Categorize(raw))
	if err := uc.entryRepo.Create(ctx, created); err != nil {
		slog.Error("Failed to persist confirmed receipt entry", "error", err)
		return &RegisterConfirmedOutput{
			Success: false,
			Message: "Erro ao registrar: " + err.Error(),
		}, nil
	}

	return &RegisterConfirmedOutput{
		Entry:   entry.ToEntryOutput(created),
		Success: true,
		Message: fmt.Sprintf("%s registrado com sucesso após confirmação", created.Kind.Label()),
	}, nil
}
