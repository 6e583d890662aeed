package report

import (
	"context"
	"log/slog"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// GenerateInsightsOutput represents the friendly rendering of a report.
type GenerateInsightsOutput struct {
	Insights *entity.FriendlyInsights
	Success  bool
	Message  string
}

// GenerateInsightsUseCase turns a technical report into plain-language
// insights with recommendations via the narrator oracle.
type GenerateInsightsUseCase struct {
	narrator adapter.InsightNarrator
}

// NewGenerateInsightsUseCase creates a new GenerateInsightsUseCase instance.
func NewGenerateInsightsUseCase(narrator adapter.InsightNarrator) *GenerateInsightsUseCase {
	return &GenerateInsightsUseCase{narrator: narrator}
}

// Execute narrates the report. Narration is best-effort: an empty ledger
// or a narrator failure produce deterministic fallback text with
// Success=false rather than an error.
func (uc *GenerateInsightsUseCase) Execute(ctx context.Context, report *entity.Report) (*GenerateInsightsOutput, error) {
	if report == nil || report.TotalAmount.IsZero() && len(report.PerCategory) == 0 {
		return &GenerateInsightsOutput{
			Insights: &entity.FriendlyInsights{
				Summary:         "Você ainda não registrou nenhum gasto neste período",
				TopExpenses:     []string{},
				Recommendations: []string{"Registre seus gastos para receber insights personalizados"},
				Warnings:        []string{},
			},
			Success: true,
			Message: "Período sem registros",
		}, nil
	}

	insights, err := uc.narrator.Narrate(ctx, report)
	if err != nil {
		slog.Warn("Insight narration failed, using fallback", "error", err)
		return &GenerateInsightsOutput{
			Insights: &entity.FriendlyInsights{
				Summary:         "Não foi possível gerar insights neste momento",
				TopExpenses:     []string{},
				Recommendations: []string{},
				Warnings:        []string{},
			},
			Success: false,
			Message: "Erro ao gerar insights: " + err.Error(),
		}, nil
	}

	return &GenerateInsightsOutput{
		Insights: insights,
		Success:  true,
		Message:  "Insights gerados com sucesso",
	}, nil
}
