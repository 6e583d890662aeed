package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/application/usecase/report"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/dto"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles reporting endpoints.
type ReportController struct {
	buildUseCase    *report.BuildReportUseCase
	insightsUseCase *report.GenerateInsightsUseCase
	sendUseCase     *report.SendReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	buildUseCase *report.BuildReportUseCase,
	insightsUseCase *report.GenerateInsightsUseCase,
	sendUseCase *report.SendReportUseCase,
) *ReportController {
	return &ReportController{
		buildUseCase:    buildUseCase,
		insightsUseCase: insightsUseCase,
		sendUseCase:     sendUseCase,
	}
}

// Build handles GET /reports requests with mes/ano/tipo_periodo query
// parameters, defaulting to the current month.
func (c *ReportController) Build(ctx *gin.Context) {
	output, err := c.buildUseCase.Execute(ctx.Request.Context(), reportInputFromQuery(ctx))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Failed to build report",
			Details: err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.BuildReportResponse{
		Report:  dto.ToReportResponse(output.Report),
		Success: output.Success,
		Message: output.Message,
	})
}

// Insights handles POST /reports/insights requests.
func (c *ReportController) Insights(ctx *gin.Context) {
	built, err := c.buildUseCase.Execute(ctx.Request.Context(), reportInputFromQuery(ctx))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Failed to build report",
			Details: err.Error(),
		})
		return
	}

	output, err := c.insightsUseCase.Execute(ctx.Request.Context(), built.Report)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to generate insights",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.GenerateInsightsResponse{
		Insights: dto.ToInsightsResponse(output.Insights),
		Success:  output.Success,
		Message:  output.Message,
	})
}

// SendEmail handles POST /reports/email requests.
func (c *ReportController) SendEmail(ctx *gin.Context) {
	var req dto.SendReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	now := time.Now()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	kind := report.PeriodKind(req.Kind)
	if !kind.IsValid() {
		kind = report.PeriodMonthly
	}

	built, err := c.buildUseCase.Execute(ctx.Request.Context(), report.BuildReportInput{
		Month: req.Month,
		Year:  req.Year,
		Kind:  kind,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Failed to build report",
			Details: err.Error(),
		})
		return
	}

	insights, err := c.insightsUseCase.Execute(ctx.Request.Context(), built.Report)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to generate insights",
		})
		return
	}

	principal, _ := middleware.GetPrincipalFromContext(ctx)
	output, err := c.sendUseCase.Execute(ctx.Request.Context(), report.SendReportInput{
		Recipient:   req.Recipient,
		Principal:   principal,
		Period:      built.Report.Period,
		TotalAmount: built.Report.TotalAmount,
		Insights:    insights.Insights,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to send report email",
		})
		return
	}

	resp := dto.SendReportResponse{
		Sent:    output.Sent,
		Success: output.Success,
		Message: output.Message,
	}
	if output.Delivery != nil {
		resp.Delivery = &dto.DeliveryDetailsResponse{
			DeliveryID: output.Delivery.DeliveryID,
			Recipient:  output.Delivery.Recipient,
			Subject:    output.Delivery.Subject,
			Timestamp:  output.Delivery.SentAt.Format(time.RFC3339),
		}
	}
	ctx.JSON(http.StatusOK, resp)
}

func reportInputFromQuery(ctx *gin.Context) report.BuildReportInput {
	now := time.Now()

	month := int(now.Month())
	if monthStr := ctx.Query("mes"); monthStr != "" {
		if parsed, err := strconv.Atoi(monthStr); err == nil {
			month = parsed
		}
	}

	year := now.Year()
	if yearStr := ctx.Query("ano"); yearStr != "" {
		if parsed, err := strconv.Atoi(yearStr); err == nil {
			year = parsed
		}
	}

	kind := report.PeriodKind(ctx.Query("tipo_periodo"))
	if !kind.IsValid() {
		kind = report.PeriodMonthly
	}

	return report.BuildReportInput{Month: month, Year: year, Kind: kind}
}
