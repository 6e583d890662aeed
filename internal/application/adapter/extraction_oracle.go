// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// ExtractEntryInput carries the free-text payload handed to the oracle.
type ExtractEntryInput struct {
	Utterance string
	// KindHint biases extraction towards expense or income; empty means
	// let the oracle decide.
	KindHint entity.EntryKind
	// FromImage marks utterances that describe an image rather than a
	// typed message.
	FromImage bool
}

// ReceiptText is the OCR output for a receipt image: the full visible text
// plus the oracle's confidence in [0,1].
type ReceiptText struct {
	Text       string
	Confidence float64
}

// ImageQualityReport is the oracle's verdict on whether an image is
// usable for OCR.
type ImageQualityReport struct {
	SuitableForOCR  bool
	Quality         string // Excelente, Boa, Regular, Ruim
	Problems        []string
	Recommendations []string
}

// ExtractionOracle wraps the external structured-generation service used to
// turn free text or an image reference into raw candidate entry fields.
// A single failed call surfaces as domainerror.ErrExtractionFailed; there
// are no retries. The oracle never validates semantic correctness of the
// values it returns — that is Categorize's job.
type ExtractionOracle interface {
	// ExtractEntry extracts raw entry fields from a free-text utterance.
	ExtractEntry(ctx context.Context, input ExtractEntryInput) (*entity.ExtractedEntry, error)

	// ReadReceipt extracts the full visible text from a receipt image.
	ReadReceipt(ctx context.Context, imageURL, note string) (*ReceiptText, error)

	// AssessImageQuality evaluates whether an image is adequate for OCR.
	AssessImageQuality(ctx context.Context, imageURL string) (*ImageQualityReport, error)
}

// InsightNarrator rephrases a deterministic report as friendly natural
// language with recommendations. Best-effort: callers keep the
// deterministic insights when narration fails.
type InsightNarrator interface {
	Narrate(ctx context.Context, report *entity.Report) (*entity.FriendlyInsights, error)
}
