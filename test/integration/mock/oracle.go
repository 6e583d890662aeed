package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// Oracle is a scripted stand-in for the external AI service. Scenarios
// queue the verdicts they expect the real service to produce; any call
// without a scripted response fails loudly.
type Oracle struct {
	mu sync.Mutex

	decision    *adapter.IntentDecision
	decisionErr error

	extraction    *entity.ExtractedEntry
	extractionErr error

	receiptText    *adapter.ReceiptText
	receiptTextErr error

	quality    *adapter.ImageQualityReport
	qualityErr error

	insights    *entity.FriendlyInsights
	insightsErr error
}

var _ adapter.IntentClassifier = (*Oracle)(nil)
var _ adapter.ExtractionOracle = (*Oracle)(nil)
var _ adapter.InsightNarrator = (*Oracle)(nil)

// NewOracle creates a new scripted oracle with no responses queued.
func NewOracle() *Oracle {
	return &Oracle{}
}

// Reset clears all scripted responses.
func (o *Oracle) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decision = nil
	o.decisionErr = nil
	o.extraction = nil
	o.extractionErr = nil
	o.receiptText = nil
	o.receiptTextErr = nil
	o.quality = nil
	o.qualityErr = nil
	o.insights = nil
	o.insightsErr = nil
}

func (o *Oracle) SetDecision(decision *adapter.IntentDecision) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decision = decision
}

func (o *Oracle) SetDecisionError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decisionErr = err
}

func (o *Oracle) SetExtraction(extraction *entity.ExtractedEntry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extraction = extraction
}

func (o *Oracle) SetExtractionError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extractionErr = err
}

func (o *Oracle) SetReceiptText(text *adapter.ReceiptText) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.receiptText = text
}

func (o *Oracle) SetReceiptTextError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.receiptTextErr = err
}

func (o *Oracle) SetImageQuality(quality *adapter.ImageQualityReport) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.quality = quality
}

func (o *Oracle) SetInsights(insights *entity.FriendlyInsights) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.insights = insights
}

func (o *Oracle) SetInsightsError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.insightsErr = err
}

func (o *Oracle) Classify(_ context.Context, utterance, _ string) (*adapter.IntentDecision, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.decisionErr != nil {
		return nil, o.decisionErr
	}
	if o.decision == nil {
		return nil, fmt.Errorf("no intent decision scripted for utterance %q", utterance)
	}
	return o.decision, nil
}

func (o *Oracle) ExtractEntry(_ context.Context, input adapter.ExtractEntryInput) (*entity.ExtractedEntry, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.extractionErr != nil {
		return nil, o.extractionErr
	}
	if o.extraction == nil {
		return nil, fmt.Errorf("no extraction scripted for utterance %q", input.Utterance)
	}
	extraction := *o.extraction
	return &extraction, nil
}

func (o *Oracle) ReadReceipt(_ context.Context, imageURL, _ string) (*adapter.ReceiptText, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.receiptTextErr != nil {
		return nil, o.receiptTextErr
	}
	if o.receiptText == nil {
		return nil, fmt.Errorf("no receipt text scripted for image %q", imageURL)
	}
	return o.receiptText, nil
}

func (o *Oracle) AssessImageQuality(_ context.Context, imageURL string) (*adapter.ImageQualityReport, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.qualityErr != nil {
		return nil, o.qualityErr
	}
	if o.quality == nil {
		return nil, fmt.Errorf("no quality report scripted for image %q", imageURL)
	}
	return o.quality, nil
}

func (o *Oracle) Narrate(_ context.Context, _ *entity.Report) (*entity.FriendlyInsights, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.insightsErr != nil {
		return nil, o.insightsErr
	}
	if o.insights == nil {
		return nil, fmt.Errorf("no insights scripted")
	}
	return o.insights, nil
}
