package entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-assistant/backend/internal/application/adapter"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// DeleteEntryOutput represents the output of an entry removal.
type DeleteEntryOutput struct {
	DeletedID uint
	Success   bool
	Message   string
}

// DeleteEntryUseCase removes a single entry by ID.
type DeleteEntryUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewDeleteEntryUseCase creates a new DeleteEntryUseCase instance.
func NewDeleteEntryUseCase(entryRepo adapter.EntryRepository) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{entryRepo: entryRepo}
}

// Execute removes the entry. Deletion is idempotent from the caller's
// point of view only in that a second call reports the entry as missing.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, id uint) (*DeleteEntryOutput, error) {
	if err := uc.entryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerror.ErrEntryNotFound) {
			return &DeleteEntryOutput{
				DeletedID: id,
				Success:   false,
				Message:   "Gasto não encontrado",
			}, nil
		}
		return nil, fmt.Errorf("failed to delete entry %d: %w", id, err)
	}

	return &DeleteEntryOutput{
		DeletedID: id,
		Success:   true,
		Message:   "Gasto removido com sucesso",
	}, nil
}
