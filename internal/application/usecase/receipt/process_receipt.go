// Package receipt contains the receipt image OCR use cases.
package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// receiptTags mark entries that originated from a receipt image.
var receiptTags = []string{"OCR", "Comprovante"}

// ProcessReceiptInput represents the input for receipt processing.
type ProcessReceiptInput struct {
	ImageURL string
	// Note is an optional free-text hint from the user about the purchase.
	Note string
}

// ProcessReceiptOutput carries the extracted draft for user confirmation.
// Nothing is persisted; the confirmation step registers the entry.
type ProcessReceiptOutput struct {
	Draft         entity.EntryDraft
	ExtractedText string
	Confidence    float64
	Success       bool
	Message       string
}

// ProcessReceiptUseCase runs the two-step receipt pipeline: OCR the image
// into raw text, then extract structured entry fields from that text.
type ProcessReceiptUseCase struct {
	oracle adapter.ExtractionOracle
}

// NewProcessReceiptUseCase creates a new ProcessReceiptUseCase instance.
func NewProcessReceiptUseCase(oracle adapter.ExtractionOracle) *ProcessReceiptUseCase {
	return &ProcessReceiptUseCase{oracle: oracle}
}

// Execute processes the receipt image. Oracle failures fold into a
// Success=false output with a zeroed draft so conversational callers keep
// their response envelope.
func (uc *ProcessReceiptUseCase) Execute(ctx context.Context, input ProcessReceiptInput) (*ProcessReceiptOutput, error) {
	ocr, err := uc.oracle.ReadReceipt(ctx, input.ImageURL, input.Note)
	if err != nil {
		slog.Warn("Receipt OCR failed", "error", err)
		return failedOutput("Erro ao processar comprovante: " + err.Error()), nil
	}
	if ocr.Text == "" {
		return failedOutput("Erro ao processar comprovante: não foi possível extrair texto da imagem"), nil
	}

	utterance := ocr.Text
	if input.Note != "" {
		utterance = fmt.Sprintf("%s\n\nInformação adicional: %s", ocr.Text, input.Note)
	}

	raw, err := uc.oracle.ExtractEntry(ctx, adapter.ExtractEntryInput{
		Utterance: utterance,
		KindHint:  entity.EntryKindExpense,
		FromImage: true,
	})
	if err != nil {
		slog.Warn("Receipt text analysis failed", "error", err)
		return failedOutput("Erro ao processar comprovante: " + err.Error()), nil
	}

	raw.Kind = entity.EntryKindExpense
	raw.Tags = receiptTags
	draft := entity.Categorize(*raw)

	return &ProcessReceiptOutput{
		Draft:         draft,
		ExtractedText: ocr.Text,
		Confidence:    ocr.Confidence,
		Success:       true,
		Message: fmt.Sprintf(
			"Dados extraídos com sucesso! Confiança do OCR: %.1f%%. Confirme os dados para registrar o gasto.",
			ocr.Confidence*100),
	}, nil
}

func failedOutput(message string) *ProcessReceiptOutput {
	return &ProcessReceiptOutput{
		Draft: entity.Categorize(entity.ExtractedEntry{
			Kind:       entity.EntryKindExpense,
			OccurredOn: time.Now().Format(entity.DateFormat),
		}),
		Success: false,
		Message: message,
	}
}
