// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/application/usecase/entry"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/dto"
)

// EntryController handles ledger entry endpoints.
type EntryController struct {
	registerUseCase *entry.RegisterEntryUseCase
	extractUseCase  *entry.ExtractEntryUseCase
	listUseCase     *entry.ListEntriesUseCase
	queryUseCase    *entry.QueryEntriesUseCase
	updateUseCase   *entry.UpdateEntryUseCase
	deleteUseCase   *entry.DeleteEntryUseCase
}

// NewEntryController creates a new entry controller instance.
func NewEntryController(
	registerUseCase *entry.RegisterEntryUseCase,
	extractUseCase *entry.ExtractEntryUseCase,
	listUseCase *entry.ListEntriesUseCase,
	queryUseCase *entry.QueryEntriesUseCase,
	updateUseCase *entry.UpdateEntryUseCase,
	deleteUseCase *entry.DeleteEntryUseCase,
) *EntryController {
	return &EntryController{
		registerUseCase: registerUseCase,
		extractUseCase:  extractUseCase,
		listUseCase:     listUseCase,
		queryUseCase:    queryUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
	}
}

// Create handles POST /entries requests.
// The entry comes either from free text or from a confirmed draft.
func (c *EntryController) Create(ctx *gin.Context) {
	var req dto.CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if req.Utterance == "" && req.Draft == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Either texto or dados must be provided",
		})
		return
	}

	input := entry.RegisterEntryInput{Utterance: req.Utterance}
	if req.Draft != nil {
		draft := req.Draft.ToExtractedEntry()
		input.Draft = &draft
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to register entry",
		})
		return
	}

	resp := dto.CreateEntryResponse{
		Confirmation: output.Confirmation,
		Success:      output.Success,
		Message:      output.Message,
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

// Extract handles POST /entries/extract requests.
// It analyzes free text without persisting anything.
func (c *EntryController) Extract(ctx *gin.Context) {
	var req dto.ExtractEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.extractUseCase.Execute(ctx.Request.Context(), entry.ExtractEntryInput{
		Utterance: req.Utterance,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to extract entry",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ExtractEntryResponse{
		Draft:   dto.ToDraftResponse(output.Draft),
		Success: output.Success,
		Message: output.Message,
	})
}

// List handles GET /entries requests. Query parameters select the filter:
// tipo_consulta with data_inicio/data_fim, categoria or limite. Without
// tipo_consulta the full ledger with per-kind totals is returned.
func (c *EntryController) List(ctx *gin.Context) {
	kind := ctx.Query("tipo_consulta")
	if kind == "" {
		c.listAll(ctx)
		return
	}

	limit := 0
	if limitStr := ctx.Query("limite"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	output, err := c.queryUseCase.Execute(ctx.Request.Context(), entry.QueryEntriesInput{
		Kind:      entry.QueryKind(kind),
		StartDate: ctx.Query("data_inicio"),
		EndDate:   ctx.Query("data_fim"),
		Category:  ctx.Query("categoria"),
		Limit:     limit,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to query entries",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.QueryEntriesResponse{
		Entries:     dto.ToEntryResponses(output.Entries),
		Count:       output.Count,
		Balance:     output.Balance.StringFixed(2),
		PerCategory: dto.ToCategoryAverageResponses(output.PerCategory),
		Success:     output.Success,
		Message:     output.Message,
	})
}

func (c *EntryController) listAll(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to list entries",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ListEntriesResponse{
		Entries:      dto.ToEntryResponses(output.Entries),
		ExpenseCount: output.ExpenseCount,
		IncomeCount:  output.IncomeCount,
		ExpenseTotal: output.ExpenseTotal.StringFixed(2),
		IncomeTotal:  output.IncomeTotal.StringFixed(2),
		Balance:      output.Balance.StringFixed(2),
		Success:      true,
		Message:      output.Message,
	})
}

// Update handles PATCH /entries/:id requests.
func (c *EntryController) Update(ctx *gin.Context) {
	id, ok := parseEntryID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), entry.UpdateEntryInput{
		ID:    id,
		Draft: req.Draft.ToExtractedEntry(),
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to update entry",
		})
		return
	}

	resp := dto.UpdateEntryResponse{
		Success: output.Success,
		Message: output.Message,
	}
	if output.Entry != nil {
		entryResp := dto.ToEntryResponse(output.Entry)
		resp.Entry = &entryResp
	}

	status := http.StatusOK
	if !output.Success {
		status = http.StatusNotFound
	}
	ctx.JSON(status, resp)
}

// Delete handles DELETE /entries/:id requests.
func (c *EntryController) Delete(ctx *gin.Context) {
	id, ok := parseEntryID(ctx)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to delete entry",
		})
		return
	}

	status := http.StatusOK
	if !output.Success {
		status = http.StatusNotFound
	}
	ctx.JSON(status, dto.DeleteEntryResponse{
		DeletedID: output.DeletedID,
		Success:   output.Success,
		Message:   output.Message,
	})
}

func parseEntryID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID",
		})
		return 0, false
	}
	return uint(id), true
}
