// Package assistant contains the conversational intent router.
package assistant

import "github.com/finance-assistant/backend/internal/application/adapter"

// BusinessOutcome is the result of the business operation an utterance was
// routed to. Its Success flag is independent of the routing envelope: a
// failed registration still travels inside a successfully routed reply.
type BusinessOutcome struct {
	Success bool
	Message string
	Payload any
}

// RoutingOutcome is the uniform envelope returned for every processed
// message. Success reflects routing only; business failures live in Result.
type RoutingOutcome struct {
	ActionExecuted string
	ActionUsed     adapter.Action
	CorrelationID  string
	Result         *BusinessOutcome
	Success        bool
	Message        string
	NextSteps      []string
}
