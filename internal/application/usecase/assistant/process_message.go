package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/application/usecase/entry"
	"github.com/finance-assistant/backend/internal/application/usecase/receipt"
	"github.com/finance-assistant/backend/internal/application/usecase/report"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// actionMenu is the canned list of things the assistant can do, appended
// to direct replies that do not already carry it.
const actionMenu = `📋 Opções disponíveis:

💰 Gestão de Gastos:
• "Registrar gasto: [descrição]" - Ex: "Registrar gasto: almoço R$ 25,50"
• "Consultar gastos" - Ver todos os seus gastos

📊 Análises e Relatórios:
• "Gerar insights" - Análise financeira personalizada
• "Analisar dados" - Relatório detalhado dos gastos
• "Enviar relatório por email" - Receber relatório no email

📷 Processamento de Comprovantes:
• "Processar comprovante" - Analisar imagem de comprovante
• "Verificar qualidade da imagem" - Verificar se a imagem é adequada

💡 Dicas:
• Seja específico na descrição dos gastos
• Para comprovantes, envie uma imagem clara
• Use comandos diretos como "enviar email" ou "consultar gastos"`

// ProcessMessageInput represents one user utterance entering the router.
type ProcessMessageInput struct {
	Utterance           string
	ConversationContext string
	Principal           entity.Principal
}

// ProcessMessageUseCase routes free-text utterances to the fixed action
// vocabulary. Classification is delegated to the injected classifier;
// business handlers fold their own failures into the nested outcome.
type ProcessMessageUseCase struct {
	classifier       adapter.IntentClassifier
	registerEntry    *entry.RegisterEntryUseCase
	extractEntry     *entry.ExtractEntryUseCase
	queryEntries     *entry.QueryEntriesUseCase
	processReceipt   *receipt.ProcessReceiptUseCase
	buildReport      *report.BuildReportUseCase
	generateInsights *report.GenerateInsightsUseCase
	sendReport       *report.SendReportUseCase
}

// NewProcessMessageUseCase creates a new ProcessMessageUseCase instance.
func NewProcessMessageUseCase(
	classifier adapter.IntentClassifier,
	registerEntry *entry.RegisterEntryUseCase,
	extractEntry *entry.ExtractEntryUseCase,
	queryEntries *entry.QueryEntriesUseCase,
	processReceipt *receipt.ProcessReceiptUseCase,
	buildReport *report.BuildReportUseCase,
	generateInsights *report.GenerateInsightsUseCase,
	sendReport *report.SendReportUseCase,
) *ProcessMessageUseCase {
	return &ProcessMessageUseCase{
		classifier:       classifier,
		registerEntry:    registerEntry,
		extractEntry:     extractEntry,
		queryEntries:     queryEntries,
		processReceipt:   processReceipt,
		buildReport:      buildReport,
		generateInsights: generateInsights,
		sendReport:       sendReport,
	}
}

// Execute classifies the utterance and dispatches it. Every return path
// produces a RoutingOutcome; classification failure is the only case where
// the envelope itself reports failure.
func (uc *ProcessMessageUseCase) Execute(ctx context.Context, input ProcessMessageInput) (*RoutingOutcome, error) {
	correlationID := uuid.NewString()

	decision, err := uc.classifier.Classify(ctx, input.Utterance, input.ConversationContext)
	if err != nil {
		slog.Error("Intent classification failed", "correlation_id", correlationID, "error", err)
		return &RoutingOutcome{
			ActionExecuted: "ERRO_PROCESSAMENTO",
			CorrelationID:  correlationID,
			Success:        false,
			Message:        "Erro ao processar entrada: " + err.Error(),
			NextSteps:      []string{"Tentar novamente com entrada diferente"},
		}, nil
	}

	if decision.NeedsMoreInfo {
		clarification := decision.Clarification
		if clarification == "" {
			clarification = "Preciso de mais informações para ajudá-lo melhor."
		}
		return &RoutingOutcome{
			ActionExecuted: "SOLICITAR_CLARIFICACAO",
			CorrelationID:  correlationID,
			Result: &BusinessOutcome{
				Success: true,
				Message: clarification,
			},
			Success:   true,
			Message:   "Solicitando clarificação do usuário",
			NextSteps: []string{"Aguardar resposta do usuário com mais detalhes"},
		}, nil
	}

	outcome := uc.dispatch(ctx, input, decision)

	slog.Info("Message routed",
		"correlation_id", correlationID,
		"action", decision.Action,
		"business_success", outcome.Success)

	return &RoutingOutcome{
		ActionExecuted: decision.ActionDescription,
		ActionUsed:     decision.Action,
		CorrelationID:  correlationID,
		Result:         outcome,
		Success:        true,
		Message:        fmt.Sprintf("Ação executada usando %s", decision.Action),
		NextSteps:      []string{"Apresentar resposta ao usuário"},
	}, nil
}

func (uc *ProcessMessageUseCase) dispatch(ctx context.Context, input ProcessMessageInput, decision *adapter.IntentDecision) *BusinessOutcome {
	switch decision.Action {
	case adapter.ActionRegisterEntry:
		return uc.handleRegister(ctx, input.Utterance)
	case adapter.ActionExtractEntry:
		return uc.handleExtract(ctx, input.Utterance)
	case adapter.ActionProcessReceipt:
		return uc.handleReceipt(ctx, decision.Parameters, input.Utterance)
	case adapter.ActionQueryEntries:
		return uc.handleQuery(ctx, decision.Parameters)
	case adapter.ActionAnalyzePeriod:
		return uc.handleReport(ctx, decision.Parameters)
	case adapter.ActionGenerateInsights:
		return uc.handleInsights(ctx, decision.Parameters)
	case adapter.ActionSendReportEmail:
		return uc.handleEmail(ctx, decision.Parameters, input.Principal)
	case adapter.ActionDirectReply:
		return uc.handleDirectReply(decision)
	default:
		return &BusinessOutcome{
			Success: false,
			Message: fmt.Sprintf("Ferramenta não reconhecida: %s", decision.Action),
			Payload: map[string]any{"ferramentas_disponiveis": adapter.KnownActions},
		}
	}
}

func (uc *ProcessMessageUseCase) handleRegister(ctx context.Context, utterance string) *BusinessOutcome {
	out, err := uc.registerEntry.Execute(ctx, entry.RegisterEntryInput{Utterance: utterance})
	if err != nil {
		return failedOutcome("Erro ao registrar gasto", err)
	}
	return &BusinessOutcome{Success: out.Success, Message: out.Message, Payload: out}
}

func (uc *ProcessMessageUseCase) handleExtract(ctx context.Context, utterance string) *BusinessOutcome {
	out, err := uc.extractEntry.Execute(ctx, entry.ExtractEntryInput{Utterance: utterance})
	if err != nil {
		return failedOutcome("Erro ao analisar entrada", err)
	}
	return &BusinessOutcome{Success: out.Success, Message: out.Message, Payload: out}
}

func (uc *ProcessMessageUseCase) handleReceipt(ctx context.Context, params map[string]any, utterance string) *BusinessOutcome {
	imageURL := stringParam(params, "imagem_url")
	if imageURL == "" {
		return &BusinessOutcome{
			Success: false,
			Message: "Nenhuma imagem de comprovante foi informada",
		}
	}
	out, err := uc.processReceipt.Execute(ctx, receipt.ProcessReceiptInput{
		ImageURL: imageURL,
		Note:     stringParam(params, "descricao_adicional"),
	})
	if err != nil {
		return failedOutcome("Erro ao processar comprovante", err)
	}
	return &BusinessOutcome{Success: out.Success, Message: out.Message, Payload: out}
}

func (uc *ProcessMessageUseCase) handleQuery(ctx context.Context, params map[string]any) *BusinessOutcome {
	kind := entry.QueryKind(stringParam(params, "tipo_consulta"))
	if kind == "" {
		kind = entry.QueryTotal
	}
	out, err := uc.queryEntries.Execute(ctx, entry.QueryEntriesInput{
		Kind:      kind,
		StartDate: stringParam(params, "data_inicio"),
		EndDate:   stringParam(params, "data_fim"),
		Category:  stringParam(params, "categoria"),
		Limit:     intParam(params, "limite"),
	})
	if err != nil {
		return failedOutcome("Erro ao consultar gastos", err)
	}
	return &BusinessOutcome{Success: out.Success, Message: out.Message, Payload: out}
}

func (uc *ProcessMessageUseCase) handleReport(ctx context.Context, params map[string]any) *BusinessOutcome {
	out, err := uc.buildReport.Execute(ctx, reportInput(params))
	if err != nil {
		return failedOutcome("Erro ao analisar dados", err)
	}
	return &BusinessOutcome{Success: out.Success, Message: out.Message, Payload: out}
}

func (uc *ProcessMessageUseCase) handleInsights(ctx context.Context, params map[string]any) *BusinessOutcome {
	built, err := uc.buildReport.Execute(ctx, reportInput(params))
	if err != nil {
		return failedOutcome("Erro ao gerar insights", err)
	}
	out, err := uc.generateInsights.Execute(ctx, built.Report)
	if err != nil {
		return failedOutcome("Erro ao gerar insights", err)
	}
	return &BusinessOutcome{Success: out.Success, Message: out.Message, Payload: out}
}

func (uc *ProcessMessageUseCase) handleEmail(ctx context.Context, params map[string]any, principal entity.Principal) *BusinessOutcome {
	built, err := uc.buildReport.Execute(ctx, reportInput(params))
	if err != nil {
		return failedOutcome("Erro ao enviar email", err)
	}
	insights, err := uc.generateInsights.Execute(ctx, built.Report)
	if err != nil {
		return failedOutcome("Erro ao enviar email", err)
	}
	out, err := uc.sendReport.Execute(ctx, report.SendReportInput{
		Recipient:   stringParam(params, "email_destino"),
		Principal:   principal,
		Period:      built.Report.Period,
		TotalAmount: built.Report.TotalAmount,
		Insights:    insights.Insights,
	})
	if err != nil {
		return failedOutcome("Erro ao enviar email", err)
	}
	return &BusinessOutcome{Success: out.Success, Message: out.Message, Payload: out}
}

func (uc *ProcessMessageUseCase) handleDirectReply(decision *adapter.IntentDecision) *BusinessOutcome {
	message := decision.Clarification
	if message == "" {
		message = "Entendi sua solicitação. Como posso ajudá-lo melhor?"
	}
	if !decision.IncludesMenu {
		message = message + "\n\n" + actionMenu
	}
	return &BusinessOutcome{
		Success: true,
		Message: strings.TrimSpace(message),
	}
}

// reportInput reads the report window from the classifier parameters,
// defaulting to the current month.
func reportInput(params map[string]any) report.BuildReportInput {
	now := time.Now()
	month := intParam(params, "mes")
	if month == 0 {
		month = int(now.Month())
	}
	year := intParam(params, "ano")
	if year == 0 {
		year = now.Year()
	}
	kind := report.PeriodKind(stringParam(params, "tipo_periodo"))
	if !kind.IsValid() {
		kind = report.PeriodMonthly
	}
	return report.BuildReportInput{Month: month, Year: year, Kind: kind}
}

func failedOutcome(prefix string, err error) *BusinessOutcome {
	return &BusinessOutcome{
		Success: false,
		Message: prefix + ": " + err.Error(),
	}
}

// stringParam reads a string parameter, tolerating absent keys and
// non-string values.
func stringParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// intParam reads an integer parameter. Classifier parameters arrive from
// JSON, so numbers show up as float64.
func intParam(params map[string]any, key string) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
