package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// SendReportInput represents the input for emailing a report.
// Recipient resolution is deterministic: the explicit Recipient wins,
// then the principal's email, then the configured default.
type SendReportInput struct {
	Recipient   string
	Principal   entity.Principal
	Period      string
	TotalAmount decimal.Decimal
	Insights    *entity.FriendlyInsights
}

// SendReportOutput represents the output of a report email dispatch.
type SendReportOutput struct {
	Sent     bool
	Delivery *adapter.ReportDelivery
	Success  bool
	Message  string
}

// SendReportUseCase emails a rendered spending report.
type SendReportUseCase struct {
	mailer           adapter.ReportMailer
	defaultRecipient string
}

// NewSendReportUseCase creates a new SendReportUseCase instance.
func NewSendReportUseCase(mailer adapter.ReportMailer, defaultRecipient string) *SendReportUseCase {
	return &SendReportUseCase{
		mailer:           mailer,
		defaultRecipient: defaultRecipient,
	}
}

// Execute sends the report email. Delivery failure is reported in the
// output, not retried and not raised as an error.
func (uc *SendReportUseCase) Execute(ctx context.Context, input SendReportInput) (*SendReportOutput, error) {
	recipient := uc.resolveRecipient(input)
	if recipient == "" {
		return &SendReportOutput{
			Sent:    false,
			Success: false,
			Message: "Nenhum destinatário disponível para o envio do relatório",
		}, nil
	}

	insights := input.Insights
	if insights == nil {
		insights = &entity.FriendlyInsights{
			Summary:         "Resumo indisponível",
			TopExpenses:     []string{},
			Recommendations: []string{},
			Warnings:        []string{},
		}
	}

	delivery, err := uc.mailer.SendReport(ctx, adapter.ReportEmailInput{
		To:          recipient,
		Subject:     fmt.Sprintf("📊 Relatório de Gastos - %s", input.Period),
		Period:      input.Period,
		TotalAmount: input.TotalAmount.StringFixed(2),
		Insights:    insights,
	})
	if err != nil {
		slog.Error("Report email dispatch failed", "recipient", recipient, "error", err)
		return &SendReportOutput{
			Sent:    false,
			Success: false,
			Message: "Erro ao enviar email: " + err.Error(),
		}, nil
	}

	return &SendReportOutput{
		Sent:     true,
		Delivery: delivery,
		Success:  true,
		Message:  fmt.Sprintf("Relatório enviado com sucesso para %s", recipient),
	}, nil
}

func (uc *SendReportUseCase) resolveRecipient(input SendReportInput) string {
	if input.Recipient != "" {
		return input.Recipient
	}
	if input.Principal.Email != "" {
		return input.Principal.Email
	}
	return uc.defaultRecipient
}
