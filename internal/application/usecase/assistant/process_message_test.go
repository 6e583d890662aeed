package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/application/usecase/entry"
	"github.com/finance-assistant/backend/internal/application/usecase/receipt"
	"github.com/finance-assistant/backend/internal/application/usecase/report"
	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// fakeClassifier returns a canned decision or error.
type fakeClassifier struct {
	decision *adapter.IntentDecision
	failErr  error
}

func (c *fakeClassifier) Classify(_ context.Context, _, _ string) (*adapter.IntentDecision, error) {
	if c.failErr != nil {
		return nil, c.failErr
	}
	return c.decision, nil
}

// fakeOracle serves the extraction paths reached through dispatch.
type fakeOracle struct {
	extraction *entity.ExtractedEntry
	failErr    error
}

func (o *fakeOracle) ExtractEntry(_ context.Context, _ adapter.ExtractEntryInput) (*entity.ExtractedEntry, error) {
	if o.failErr != nil {
		return nil, o.failErr
	}
	return o.extraction, nil
}

func (o *fakeOracle) ReadReceipt(_ context.Context, _, _ string) (*adapter.ReceiptText, error) {
	return nil, errors.New("not scripted")
}

func (o *fakeOracle) AssessImageQuality(_ context.Context, _ string) (*adapter.ImageQualityReport, error) {
	return nil, errors.New("not scripted")
}

// memoryRepo is a minimal in-memory adapter.EntryRepository.
type memoryRepo struct {
	entries []*entity.LedgerEntry
}

func (r *memoryRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	e.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, e)
	return nil
}

func (r *memoryRepo) FindAll(_ context.Context) ([]*entity.LedgerEntry, error) {
	return r.entries, nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uint) (*entity.LedgerEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domainerror.ErrEntryNotFound
}

func (r *memoryRepo) FindByDateRange(_ context.Context, start, end string) ([]*entity.LedgerEntry, error) {
	result := make([]*entity.LedgerEntry, 0)
	for _, e := range r.entries {
		if e.OccurredOn >= start && e.OccurredOn <= end {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *memoryRepo) FindByCategory(_ context.Context, category string) ([]*entity.LedgerEntry, error) {
	result := make([]*entity.LedgerEntry, 0)
	for _, e := range r.entries {
		if e.Category == category {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *memoryRepo) Update(_ context.Context, e *entity.LedgerEntry) error {
	for i, existing := range r.entries {
		if existing.ID == e.ID {
			r.entries[i] = e
			return nil
		}
	}
	return domainerror.ErrEntryNotFound
}

func (r *memoryRepo) Delete(_ context.Context, id uint) error {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrEntryNotFound
}

// fakeMailer records report dispatches.
type fakeMailer struct {
	sent []adapter.ReportEmailInput
}

func (m *fakeMailer) SendReport(_ context.Context, input adapter.ReportEmailInput) (*adapter.ReportDelivery, error) {
	m.sent = append(m.sent, input)
	return &adapter.ReportDelivery{DeliveryID: "d-1", Recipient: input.To, Subject: input.Subject, SentAt: time.Now()}, nil
}

// fakeNarrator echoes a fixed summary.
type fakeNarrator struct{}

func (fakeNarrator) Narrate(_ context.Context, _ *entity.Report) (*entity.FriendlyInsights, error) {
	return &entity.FriendlyInsights{Summary: "ok"}, nil
}

type routerFixture struct {
	uc     *ProcessMessageUseCase
	repo   *memoryRepo
	mailer *fakeMailer
}

func newRouterFixture(classifier adapter.IntentClassifier, oracle *fakeOracle) *routerFixture {
	repo := &memoryRepo{}
	mailer := &fakeMailer{}

	extractUC := entry.NewExtractEntryUseCase(oracle)
	registerUC := entry.NewRegisterEntryUseCase(extractUC, repo)
	queryUC := entry.NewQueryEntriesUseCase(repo)
	processReceiptUC := receipt.NewProcessReceiptUseCase(oracle)
	buildReportUC := report.NewBuildReportUseCase(repo)
	insightsUC := report.NewGenerateInsightsUseCase(fakeNarrator{})
	sendReportUC := report.NewSendReportUseCase(mailer, "default@example.com")

	return &routerFixture{
		uc: NewProcessMessageUseCase(
			classifier,
			registerUC,
			extractUC,
			queryUC,
			processReceiptUC,
			buildReportUC,
			insightsUC,
			sendReportUC,
		),
		repo:   repo,
		mailer: mailer,
	}
}

func TestProcessMessageUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("classification failure yields an error envelope", func(t *testing.T) {
		fx := newRouterFixture(&fakeClassifier{failErr: errors.New("service down")}, &fakeOracle{})

		out, err := fx.uc.Execute(ctx, ProcessMessageInput{Utterance: "qualquer coisa"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Success {
			t.Error("expected envelope failure")
		}
		if out.ActionExecuted != "ERRO_PROCESSAMENTO" {
			t.Errorf("unexpected action %q", out.ActionExecuted)
		}
		if out.CorrelationID == "" {
			t.Error("expected a correlation id")
		}
	})

	t.Run("needs-more-info short-circuits without side effects", func(t *testing.T) {
		fx := newRouterFixture(&fakeClassifier{decision: &adapter.IntentDecision{
			NeedsMoreInfo: true,
			Clarification: "Qual valor você gastou?",
		}}, &fakeOracle{})

		out, err := fx.uc.Execute(ctx, ProcessMessageInput{Utterance: "gastei"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ActionExecuted != "SOLICITAR_CLARIFICACAO" {
			t.Errorf("unexpected action %q", out.ActionExecuted)
		}
		if out.Result == nil || out.Result.Message != "Qual valor você gastou?" {
			t.Error("expected the clarification in the nested outcome")
		}
		if len(fx.repo.entries) != 0 {
			t.Error("expected no ledger writes")
		}
	})

	t.Run("empty clarification gets a default", func(t *testing.T) {
		fx := newRouterFixture(&fakeClassifier{decision: &adapter.IntentDecision{
			NeedsMoreInfo: true,
		}}, &fakeOracle{})

		out, err := fx.uc.Execute(ctx, ProcessMessageInput{Utterance: "?"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Result.Message != "Preciso de mais informações para ajudá-lo melhor." {
			t.Errorf("unexpected clarification %q", out.Result.Message)
		}
	})

	t.Run("registers an entry through the register action", func(t *testing.T) {
		oracle := &fakeOracle{extraction: &entity.ExtractedEntry{
			Kind:       entity.EntryKindExpense,
			Amount:     decimal.NewFromFloat(35),
			Label:      "Pizza",
			OccurredOn: "2024-03-20",
			Category:   "Alimentação",
		}}
		fx := newRouterFixture(&fakeClassifier{decision: &adapter.IntentDecision{
			Action: adapter.ActionRegisterEntry,
		}}, oracle)

		out, err := fx.uc.Execute(ctx, ProcessMessageInput{Utterance: "gastei 35 numa pizza"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Success || !out.Result.Success {
			t.Error("expected both envelope and business success")
		}
		if len(fx.repo.entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(fx.repo.entries))
		}
	})

	t.Run("business failure stays inside a successful envelope", func(t *testing.T) {
		oracle := &fakeOracle{failErr: errors.New("extraction failed")}
		fx := newRouterFixture(&fakeClassifier{decision: &adapter.IntentDecision{
			Action: adapter.ActionRegisterEntry,
		}}, oracle)

		out, err := fx.uc.Execute(ctx, ProcessMessageInput{Utterance: "gastei algo"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Success {
			t.Error("expected envelope success")
		}
		if out.Result.Success {
			t.Error("expected business failure in the nested outcome")
		}
	})

	t.Run("direct reply appends the action menu", func(t *testing.T) {
		fx := newRouterFixture(&fakeClassifier{decision: &adapter.IntentDecision{
			Action:        adapter.ActionDirectReply,
			Clarification: "Posso ajudar com seus gastos.",
		}}, &fakeOracle{})

		out, err := fx.uc.Execute(ctx, ProcessMessageInput{Utterance: "o que você faz?"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.Result.Message, "Posso ajudar com seus gastos.") {
			t.Error("expected the reply text")
		}
		if !strings.Contains(out.Result.Message, "Opções disponíveis") {
			t.Error("expected the action menu appended")
		}
	})

	t.Run("direct reply skips the menu when already included", func(t *testing.T) {
		fx := newRouterFixture(&fakeClassifier{decision: &adapter.IntentDecision{
			Action:        adapter.ActionDirectReply,
			Clarification: "Resposta com menu embutido",
			IncludesMenu:  true,
		}}, &fakeOracle{})

		out, err := fx.uc.Execute(ctx, ProcessMessageInput{Utterance: "ajuda"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out.Result.Message, "Opções disponíveis") {
			t.Error("expected no duplicated menu")
		}
	})

	t.Run("unknown action lists the available vocabulary", func(t *testing.T) {
		fx := newRouterFixture(&fakeClassifier{decision: &adapter.IntentDecision{
			Action: adapter.Action("FERRAMENTA_MISTERIOSA"),
		}}, &fakeOracle{})

		out, err := fx.uc.Execute(ctx, ProcessMessageInput{Utterance: "faz algo"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Result.Success {
			t.Error("expected business failure")
		}
		if !strings.Contains(out.Result.Message, "FERRAMENTA_MISTERIOSA") {
			t.Errorf("unexpected message %q", out.Result.Message)
		}
	})

	t.Run("send email action chains report, insights and dispatch", func(t *testing.T) {
		fx := newRouterFixture(&fakeClassifier{decision: &adapter.IntentDecision{
			Action: adapter.ActionSendReportEmail,
			Parameters: map[string]any{
				"mes":           float64(3),
				"ano":           float64(2024),
				"email_destino": "destino@example.com",
			},
		}}, &fakeOracle{})
		fx.repo.entries = []*entity.LedgerEntry{{
			Kind:       entity.EntryKindExpense,
			Amount:     decimal.NewFromInt(60),
			OccurredOn: "2024-03-15",
			Category:   "Alimentação",
		}}

		out, err := fx.uc.Execute(ctx, ProcessMessageInput{Utterance: "envia o relatório"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Result.Success {
			t.Errorf("expected business success, got %q", out.Result.Message)
		}
		if len(fx.mailer.sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(fx.mailer.sent))
		}
		if fx.mailer.sent[0].To != "destino@example.com" {
			t.Errorf("unexpected recipient %s", fx.mailer.sent[0].To)
		}
	})
}
