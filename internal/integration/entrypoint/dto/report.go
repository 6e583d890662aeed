package dto

import (
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// CategorySummaryResponse aggregates one category inside a report.
type CategorySummaryResponse struct {
	Category string `json:"categoria"`
	Total    string `json:"total"`
	Average  string `json:"media"`
	Count    int    `json:"quantidade"`
}

// CategoryTotalResponse is a category ranked by total spend.
type CategoryTotalResponse struct {
	Category string `json:"categoria"`
	Total    string `json:"total"`
}

// PeriodComparisonResponse compares against the previous month.
type PeriodComparisonResponse struct {
	Difference string  `json:"diferenca"`
	Percent    float64 `json:"percentual"`
}

// ReportResponse represents a period spending report.
type ReportResponse struct {
	Period        string                    `json:"periodo"`
	TotalAmount   string                    `json:"total_gasto"`
	PerCategory   []CategorySummaryResponse `json:"media_por_categoria"`
	TopCategories []CategoryTotalResponse   `json:"categorias_mais_caras"`
	PriorPeriod   PeriodComparisonResponse  `json:"comparacao_mes_anterior"`
	Insights      []string                  `json:"insights"`
}

// ToReportResponse converts a domain report to its response shape.
func ToReportResponse(r *entity.Report) ReportResponse {
	perCategory := make([]CategorySummaryResponse, len(r.PerCategory))
	for i, c := range r.PerCategory {
		perCategory[i] = CategorySummaryResponse{
			Category: c.Category,
			Total:    c.Total.StringFixed(2),
			Average:  c.Average.StringFixed(2),
			Count:    c.Count,
		}
	}

	top := make([]CategoryTotalResponse, len(r.TopCategories))
	for i, c := range r.TopCategories {
		top[i] = CategoryTotalResponse{
			Category: c.Category,
			Total:    c.Total.StringFixed(2),
		}
	}

	return ReportResponse{
		Period:        r.Period,
		TotalAmount:   r.TotalAmount.StringFixed(2),
		PerCategory:   perCategory,
		TopCategories: top,
		PriorPeriod: PeriodComparisonResponse{
			Difference: r.PriorPeriod.Difference.StringFixed(2),
			Percent:    r.PriorPeriod.Percent,
		},
		Insights: r.Insights,
	}
}

// BuildReportResponse wraps a report with the response envelope.
type BuildReportResponse struct {
	Report  ReportResponse `json:"relatorio"`
	Success bool           `json:"sucesso"`
	Message string         `json:"mensagem"`
}

// InsightsResponse represents the friendly rendering of a report.
type InsightsResponse struct {
	Summary         string   `json:"resumo"`
	TopExpenses     []string `json:"principais_gastos"`
	Recommendations []string `json:"recomendacoes"`
	Warnings        []string `json:"alertas"`
}

// ToInsightsResponse converts domain insights to the response shape.
func ToInsightsResponse(i *entity.FriendlyInsights) InsightsResponse {
	return InsightsResponse{
		Summary:         i.Summary,
		TopExpenses:     i.TopExpenses,
		Recommendations: i.Recommendations,
		Warnings:        i.Warnings,
	}
}

// GenerateInsightsResponse wraps insights with the response envelope.
type GenerateInsightsResponse struct {
	Insights InsightsResponse `json:"insights_simples"`
	Success  bool             `json:"sucesso"`
	Message  string           `json:"mensagem"`
}

// SendReportRequest emails the report for a period.
type SendReportRequest struct {
	Month     int    `json:"mes"`
	Year      int    `json:"ano"`
	Kind      string `json:"tipo_periodo"`
	Recipient string `json:"email_destino"`
}

// DeliveryDetailsResponse describes a completed email dispatch.
type DeliveryDetailsResponse struct {
	DeliveryID string `json:"delivery_id"`
	Recipient  string `json:"destinatario"`
	Subject    string `json:"assunto"`
	Timestamp  string `json:"timestamp"`
}

// SendReportResponse represents the result of a report email dispatch.
type SendReportResponse struct {
	Sent     bool                     `json:"email_enviado"`
	Delivery *DeliveryDetailsResponse `json:"detalhes_envio,omitempty"`
	Success  bool                     `json:"sucesso"`
	Message  string                   `json:"mensagem"`
}
