package dto

import (
	"github.com/finance-assistant/backend/internal/application/usecase/assistant"
)

// AssistantMessageRequest carries one free-text utterance to the router.
type AssistantMessageRequest struct {
	Utterance           string `json:"entrada" binding:"required"`
	ConversationContext string `json:"contexto"`
}

// BusinessOutcomeResponse is the nested business result of a routed message.
type BusinessOutcomeResponse struct {
	Success bool   `json:"sucesso"`
	Message string `json:"mensagem"`
	Payload any    `json:"resultado,omitempty"`
}

// AssistantMessageResponse is the uniform routing envelope.
type AssistantMessageResponse struct {
	ActionExecuted string                   `json:"acao_executada"`
	ActionUsed     string                   `json:"ferramenta_utilizada"`
	CorrelationID  string                   `json:"correlation_id"`
	Result         *BusinessOutcomeResponse `json:"resultado,omitempty"`
	Success        bool                     `json:"sucesso"`
	Message        string                   `json:"mensagem"`
	NextSteps      []string                 `json:"proximos_passos,omitempty"`
}

// ToAssistantMessageResponse converts a routing outcome to its response shape.
func ToAssistantMessageResponse(o *assistant.RoutingOutcome) AssistantMessageResponse {
	resp := AssistantMessageResponse{
		ActionExecuted: o.ActionExecuted,
		ActionUsed:     string(o.ActionUsed),
		CorrelationID:  o.CorrelationID,
		Success:        o.Success,
		Message:        o.Message,
		NextSteps:      o.NextSteps,
	}
	if o.Result != nil {
		resp.Result = &BusinessOutcomeResponse{
			Success: o.Result.Success,
			Message: o.Result.Message,
			Payload: o.Result.Payload,
		}
	}
	return resp
}
