package email

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-assistant/backend/internal/application/adapter"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
	"github.com/finance-assistant/backend/internal/integration/email/templates"
)

// Service renders report emails and dispatches them through the sender.
// One render plus one send per call; delivery failures surface to the
// caller unretried.
type Service struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
}

var _ adapter.ReportMailer = (*Service)(nil)

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer) *Service {
	return &Service{
		sender:   sender,
		renderer: renderer,
	}
}

// SendReport renders the expense report template and sends it.
func (s *Service) SendReport(ctx context.Context, input adapter.ReportEmailInput) (*adapter.ReportDelivery, error) {
	sentAt := time.Now().UTC()

	data := templates.ExpenseReportData{
		Period:          input.Period,
		TotalAmount:     input.TotalAmount,
		Summary:         input.Insights.Summary,
		TopExpenses:     input.Insights.TopExpenses,
		Recommendations: input.Insights.Recommendations,
		Warnings:        input.Insights.Warnings,
		GeneratedAt:     sentAt.Format("02/01/2006 15:04"),
	}

	html, text, err := s.renderer.Render("expense_report", data)
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render report email",
			err,
		)
	}

	if _, err := s.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.To,
		Subject: input.Subject,
		HTML:    html,
		Text:    text,
	}); err != nil {
		return nil, err
	}

	return &adapter.ReportDelivery{
		DeliveryID: uuid.NewString(),
		Recipient:  input.To,
		Subject:    input.Subject,
		SentAt:     sentAt,
	}, nil
}
