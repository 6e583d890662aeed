package entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// UpdateEntryInput represents a full replacement of an existing entry.
// Every field is applied; there are no partial updates.
type UpdateEntryInput struct {
	ID    uint
	Draft entity.ExtractedEntry
}

// UpdateEntryOutput represents the output of an entry update.
type UpdateEntryOutput struct {
	Entry   *EntryOutput
	Success bool
	Message string
}

// UpdateEntryUseCase replaces all mutable fields of an existing entry
// after running the draft through categorization.
type UpdateEntryUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewUpdateEntryUseCase creates a new UpdateEntryUseCase instance.
func NewUpdateEntryUseCase(entryRepo adapter.EntryRepository) *UpdateEntryUseCase {
	return &UpdateEntryUseCase{entryRepo: entryRepo}
}

// Execute updates the entry. A missing ID yields Success=false with a
// user-facing message; storage failures are returned as errors.
func (uc *UpdateEntryUseCase) Execute(ctx context.Context, input UpdateEntryInput) (*UpdateEntryOutput, error) {
	existing, err := uc.entryRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrEntryNotFound) {
			return &UpdateEntryOutput{
				Success: false,
				Message: "Registro não encontrado",
			}, nil
		}
		return nil, fmt.Errorf("failed to load entry %d: %w", input.ID, err)
	}

	draft := entity.Categorize(input.Draft)
	updated := &entity.LedgerEntry{
		ID:            existing.ID,
		Kind:          draft.Kind,
		Amount:        draft.Amount,
		Label:         draft.Label,
		Quantity:      draft.Quantity,
		Source:        draft.Source,
		OccurredOn:    draft.OccurredOn,
		Category:      draft.Category,
		PaymentMethod: draft.PaymentMethod,
		Tags:          draft.Tags,
		CreatedAt:     existing.CreatedAt,
	}

	if err := uc.entryRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update entry %d: %w", input.ID, err)
	}

	return &UpdateEntryOutput{
		Entry:   ToEntryOutput(updated),
		Success: true,
		Message: fmt.Sprintf("%s atualizado com sucesso", updated.Kind.Label()),
	}, nil
}
