// Package receipt contains the receipt image OCR use cases.
package receipt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// scriptedOracle serves canned OCR and extraction results and records the
// utterance handed to the extraction step.
type scriptedOracle struct {
	ocr           *adapter.ReceiptText
	ocrErr        error
	extraction    *entity.ExtractedEntry
	extractionErr error
	quality       *adapter.ImageQualityReport
	qualityErr    error

	lastUtterance string
}

func (o *scriptedOracle) ReadReceipt(_ context.Context, _, _ string) (*adapter.ReceiptText, error) {
	if o.ocrErr != nil {
		return nil, o.ocrErr
	}
	return o.ocr, nil
}

func (o *scriptedOracle) ExtractEntry(_ context.Context, input adapter.ExtractEntryInput) (*entity.ExtractedEntry, error) {
	o.lastUtterance = input.Utterance
	if o.extractionErr != nil {
		return nil, o.extractionErr
	}
	return o.extraction, nil
}

func (o *scriptedOracle) AssessImageQuality(_ context.Context, _ string) (*adapter.ImageQualityReport, error) {
	if o.qualityErr != nil {
		return nil, o.qualityErr
	}
	return o.quality, nil
}

func receiptExtraction() *entity.ExtractedEntry {
	return &entity.ExtractedEntry{
		Kind:     entity.EntryKindIncome, // deliberately wrong, must be forced to expense
		Amount:   decimal.NewFromFloat(45.9),
		Label:    "Restaurante do João",
		Category: "Alimentação",
		Tags:     []string{"jantar"},
	}
}

func TestProcessReceiptUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts a draft tagged as receipt", func(t *testing.T) {
		oracle := &scriptedOracle{
			ocr:        &adapter.ReceiptText{Text: "RESTAURANTE DO JOAO - TOTAL R$ 45,90", Confidence: 0.92},
			extraction: receiptExtraction(),
		}
		uc := NewProcessReceiptUseCase(oracle)

		out, err := uc.Execute(ctx, ProcessReceiptInput{ImageURL: "https://example.com/c.jpg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Success {
			t.Fatalf("expected success, got %q", out.Message)
		}
		if out.Draft.Kind != entity.EntryKindExpense {
			t.Errorf("expected the kind forced to expense, got %s", out.Draft.Kind)
		}
		if len(out.Draft.Tags) != 2 || out.Draft.Tags[0] != "OCR" || out.Draft.Tags[1] != "Comprovante" {
			t.Errorf("expected receipt tags, got %v", out.Draft.Tags)
		}
		if out.Confidence != 0.92 {
			t.Errorf("expected confidence 0.92, got %f", out.Confidence)
		}
		if !strings.Contains(out.Message, "92.0%") {
			t.Errorf("expected the confidence percent in the message, got %q", out.Message)
		}
	})

	t.Run("appends the user note to the extraction utterance", func(t *testing.T) {
		oracle := &scriptedOracle{
			ocr:        &adapter.ReceiptText{Text: "TOTAL R$ 10,00", Confidence: 0.8},
			extraction: receiptExtraction(),
		}
		uc := NewProcessReceiptUseCase(oracle)

		_, err := uc.Execute(ctx, ProcessReceiptInput{
			ImageURL: "https://example.com/c.jpg",
			Note:     "almoço de trabalho",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(oracle.lastUtterance, "Informação adicional: almoço de trabalho") {
			t.Errorf("expected the note in the utterance, got %q", oracle.lastUtterance)
		}
	})

	t.Run("OCR failure folds into the output", func(t *testing.T) {
		oracle := &scriptedOracle{ocrErr: errors.New("image unreadable")}
		uc := NewProcessReceiptUseCase(oracle)

		out, err := uc.Execute(ctx, ProcessReceiptInput{ImageURL: "https://example.com/c.jpg"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Success {
			t.Error("expected a failed outcome")
		}
		if !strings.Contains(out.Message, "Erro ao processar comprovante") {
			t.Errorf("unexpected message %q", out.Message)
		}
		if !out.Draft.Amount.IsZero() {
			t.Errorf("expected a zeroed draft, got amount %s", out.Draft.Amount)
		}
	})

	t.Run("empty OCR text is treated as failure", func(t *testing.T) {
		oracle := &scriptedOracle{ocr: &adapter.ReceiptText{Text: "", Confidence: 0.3}}
		uc := NewProcessReceiptUseCase(oracle)

		out, err := uc.Execute(ctx, ProcessReceiptInput{ImageURL: "https://example.com/c.jpg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Success {
			t.Error("expected a failed outcome")
		}
	})
}

func TestCheckImageQualityUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("relays the oracle verdict", func(t *testing.T) {
		oracle := &scriptedOracle{quality: &adapter.ImageQualityReport{
			SuitableForOCR: true,
			Quality:        "Boa",
		}}
		uc := NewCheckImageQualityUseCase(oracle)

		out, err := uc.Execute(ctx, "https://example.com/c.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Success || !out.SuitableForOCR || out.Quality != "Boa" {
			t.Errorf("unexpected output %+v", out)
		}
	})

	t.Run("assessment failure is pessimistic", func(t *testing.T) {
		oracle := &scriptedOracle{qualityErr: errors.New("timeout")}
		uc := NewCheckImageQualityUseCase(oracle)

		out, err := uc.Execute(ctx, "https://example.com/c.jpg")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Success || out.SuitableForOCR {
			t.Error("expected a pessimistic outcome")
		}
		if out.Quality != "Ruim" {
			t.Errorf("expected quality Ruim, got %s", out.Quality)
		}
	})
}

// recordingRepo captures created entries.
type recordingRepo struct {
	created []*entity.LedgerEntry
	failErr error
}

func (r *recordingRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	if r.failErr != nil {
		return r.failErr
	}
	e.ID = uint(len(r.created) + 1)
	r.created = append(r.created, e)
	return nil
}

func (r *recordingRepo) FindAll(_ context.Context) ([]*entity.LedgerEntry, error) {
	return r.created, nil
}

func (r *recordingRepo) FindByID(_ context.Context, _ uint) (*entity.LedgerEntry, error) {
	return nil, domainerror.ErrEntryNotFound
}

func (r *recordingRepo) FindByDateRange(_ context.Context, _, _ string) ([]*entity.LedgerEntry, error) {
	return nil, nil
}

func (r *recordingRepo) FindByCategory(_ context.Context, _ string) ([]*entity.LedgerEntry, error) {
	return nil, nil
}

func (r *recordingRepo) Update(_ context.Context, _ *entity.LedgerEntry) error {
	return domainerror.ErrEntryNotFound
}

func (r *recordingRepo) Delete(_ context.Context, _ uint) error {
	return domainerror.ErrEntryNotFound
}

func TestRegisterConfirmedUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("registers the confirmed draft with confirmation tags", func(t *testing.T) {
		repo := &recordingRepo{}
		uc := NewRegisterConfirmedUseCase(repo)

		out, err := uc.Execute(ctx, RegisterConfirmedInput{Draft: *receiptExtraction()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Success {
			t.Fatalf("expected success, got %q", out.Message)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(repo.created))
		}
		tags := repo.created[0].Tags
		if len(tags) != 3 || tags[2] != "Confirmado" {
			t.Errorf("expected confirmation tags, got %v", tags)
		}
	})

	t.Run("persistence failure folds into the output", func(t *testing.T) {
		repo := &recordingRepo{failErr: errors.New("disk full")}
		uc := NewRegisterConfirmedUseCase(repo)

		out, err := uc.Execute(ctx, RegisterConfirmedInput{Draft: *receiptExtraction()})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Success {
			t.Error("expected a failed outcome")
		}
		if !strings.Contains(out.Message, "Erro ao registrar") {
			t.Errorf("unexpected message %q", out.Message)
		}
	})
}
