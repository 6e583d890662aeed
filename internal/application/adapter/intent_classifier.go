package adapter

import "context"

// Action names the fixed vocabulary of business operations the intent
// router can dispatch to. The values double as the wire identifiers.
type Action string

const (
	ActionExtractEntry      Action = "ANALISAR_ENTRADA"
	ActionProcessReceipt    Action = "PROCESSAR_COMPROVANTE"
	ActionQueryEntries      Action = "CONSULTAR_GASTOS"
	ActionAnalyzePeriod     Action = "ANALISAR_DADOS"
	ActionGenerateInsights  Action = "GERAR_INSIGHTS"
	ActionSendReportEmail   Action = "ENVIAR_EMAIL"
	ActionRegisterEntry     Action = "REGISTRAR_GASTO"
	ActionDirectReply       Action = "RESPOSTA_DIRETA"
)

// KnownActions lists the full action vocabulary in presentation order.
var KnownActions = []Action{
	ActionExtractEntry,
	ActionProcessReceipt,
	ActionQueryEntries,
	ActionAnalyzePeriod,
	ActionGenerateInsights,
	ActionSendReportEmail,
	ActionRegisterEntry,
	ActionDirectReply,
}

// IntentDecision is the classifier's structured verdict for one utterance.
type IntentDecision struct {
	Action            Action
	Parameters        map[string]any
	NeedsMoreInfo     bool
	Clarification     string
	ActionDescription string
	// IncludesMenu is set when the clarification text already contains the
	// action menu, so the router does not append it a second time.
	IncludesMenu bool
}

// IntentClassifier maps a free-text utterance onto the action vocabulary.
// The production implementation delegates to the extraction oracle; tests
// substitute deterministic rule-based classifiers.
type IntentClassifier interface {
	Classify(ctx context.Context, utterance, conversationContext string) (*IntentDecision, error)
}
