package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/application/usecase/assistant"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/dto"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
)

// AssistantController handles the conversational endpoint.
type AssistantController struct {
	processUseCase *assistant.ProcessMessageUseCase
}

// NewAssistantController creates a new assistant controller instance.
func NewAssistantController(processUseCase *assistant.ProcessMessageUseCase) *AssistantController {
	return &AssistantController{
		processUseCase: processUseCase,
	}
}

// ProcessMessage handles POST /assistant/messages requests.
func (c *AssistantController) ProcessMessage(ctx *gin.Context) {
	var req dto.AssistantMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	principal, _ := middleware.GetPrincipalFromContext(ctx)
	outcome, err := c.processUseCase.Execute(ctx.Request.Context(), assistant.ProcessMessageInput{
		Utterance:           req.Utterance,
		ConversationContext: req.ConversationContext,
		Principal:           principal,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to process message",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssistantMessageResponse(outcome))
}
