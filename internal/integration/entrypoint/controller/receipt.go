package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/application/usecase/receipt"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/dto"
)

// ReceiptController handles receipt image endpoints.
type ReceiptController struct {
	processUseCase *receipt.ProcessReceiptUseCase
	qualityUseCase *receipt.CheckImageQualityUseCase
	confirmUseCase *receipt.RegisterConfirmedUseCase
}

// NewReceiptController creates a new receipt controller instance.
func NewReceiptController(
	processUseCase *receipt.ProcessReceiptUseCase,
	qualityUseCase *receipt.CheckImageQualityUseCase,
	confirmUseCase *receipt.RegisterConfirmedUseCase,
) *ReceiptController {
	return &ReceiptController{
		processUseCase: processUseCase,
		qualityUseCase: qualityUseCase,
		confirmUseCase: confirmUseCase,
	}
}

// Process handles POST /receipts/process requests.
func (c *ReceiptController) Process(ctx *gin.Context) {
	var req dto.ProcessReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.processUseCase.Execute(ctx.Request.Context(), receipt.ProcessReceiptInput{
		ImageURL: req.ImageURL,
		Note:     req.Note,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to process receipt",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ProcessReceiptResponse{
		Draft:         dto.ToDraftResponse(output.Draft),
		ExtractedText: output.ExtractedText,
		Confidence:    output.Confidence,
		Success:       output.Success,
		Message:       output.Message,
	})
}

// Quality handles POST /receipts/quality requests.
func (c *ReceiptController) Quality(ctx *gin.Context) {
	var req dto.CheckImageQualityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.qualityUseCase.Execute(ctx.Request.Context(), req.ImageURL)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to check image quality",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.CheckImageQualityResponse{
		SuitableForOCR:  output.SuitableForOCR,
		Quality:         output.Quality,
		Problems:        output.Problems,
		Recommendations: output.Recommendations,
		Success:         output.Success,
		Message:         output.Message,
	})
}

// Confirm handles POST /receipts/confirm requests.
func (c *ReceiptController) Confirm(ctx *gin.Context) {
	var req dto.ConfirmReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.confirmUseCase.Execute(ctx.Request.Context(), receipt.RegisterConfirmedInput{
		Draft: req.Draft.ToExtractedEntry(),
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to register confirmed entry",
		})
		return
	}

	resp := dto.ConfirmReceiptResponse{
		Success: output.Success,
		Message: output.Message,
	}
	if output.Entry != nil {
		entryResp := dto.ToEntryResponse(output.Entry)
		resp.Entry = &entryResp
	}

	status := http.StatusCreated
	if !output.Success {
		status = http.StatusOK
	}
	ctx.JSON(status, resp)
}
