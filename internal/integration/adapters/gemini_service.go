// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// GeminiService implements the extraction oracle, the insight narrator and
// the intent classifier using Google Gemini structured JSON output.
type GeminiService struct {
	apiKey    string
	modelName string
}

// Interface assertions.
var (
	_ adapter.ExtractionOracle = (*GeminiService)(nil)
	_ adapter.InsightNarrator  = (*GeminiService)(nil)
	_ adapter.IntentClassifier = (*GeminiService)(nil)
)

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// geminiExtraction represents the raw extraction response from Gemini.
type geminiExtraction struct {
	Tipo            string   `json:"tipo"`
	Valor           float64  `json:"valor"`
	Item            string   `json:"item"`
	Quantidade      int      `json:"quantidade"`
	Estabelecimento string   `json:"estabelecimento"`
	Data            string   `json:"data"`
	Categoria       string   `json:"categoria"`
	FormaPagamento  string   `json:"forma_pagamento"`
	Tags            []string `json:"tags"`
}

// ExtractEntry extracts raw entry fields from a free-text utterance.
func (s *GeminiService) ExtractEntry(ctx context.Context, input adapter.ExtractEntryInput) (*entity.ExtractedEntry, error) {
	prompt := s.buildExtractionPrompt(input)

	content, err := s.generateJSON(ctx, prompt, 0.1)
	if err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeExtractionFailed,
			"falha ao extrair dados da entrada", err)
	}

	var raw geminiExtraction
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeExtractionFailed,
			fmt.Sprintf("resposta inválida do modelo: %s", content), err)
	}

	return &entity.ExtractedEntry{
		Kind:          entity.EntryKind(raw.Tipo),
		Amount:        decimal.NewFromFloat(raw.Valor),
		Label:         raw.Item,
		Quantity:      raw.Quantidade,
		Source:        raw.Estabelecimento,
		OccurredOn:    raw.Data,
		Category:      raw.Categoria,
		PaymentMethod: raw.FormaPagamento,
		Tags:          raw.Tags,
	}, nil
}

func (s *GeminiService) buildExtractionPrompt(input adapter.ExtractEntryInput) string {
	var sb strings.Builder

	sb.WriteString(`Voce e um assistente especializado em extrair informacoes financeiras de texto em Portugues Brasileiro.

Analise o texto fornecido e extraia:
- tipo: "gasto" ou "entrada"
- valor: o valor total (numero)
- item: descricao principal do que foi comprado ou recebido
- quantidade: quantidade de itens (numero, use 1 se nao especificado)
- estabelecimento: nome do estabelecimento ou origem
- data: data no formato YYYY-MM-DD (use a data de hoje se nao especificada)
- categoria: para gastos uma das: `)
	sb.WriteString(strings.Join(entity.ExpenseCategories, ", "))
	sb.WriteString("; para entradas uma das: ")
	sb.WriteString(strings.Join(entity.IncomeCategories, ", "))
	sb.WriteString("\n- forma_pagamento: uma das: ")
	sb.WriteString(strings.Join(entity.PaymentMethods, ", "))
	sb.WriteString("\n- tags: array de palavras-chave relevantes\n")

	if input.KindHint != "" {
		sb.WriteString(fmt.Sprintf("\nO texto provavelmente descreve um(a) %q.\n", input.KindHint))
	}
	if input.FromImage {
		sb.WriteString("\nO texto abaixo foi extraido de uma imagem de comprovante via OCR.\n")
	}

	sb.WriteString("\nTexto para analisar:\n")
	sb.WriteString(input.Utterance)
	sb.WriteString(`

FORMATO DE RESPOSTA: Retorne apenas o objeto JSON, sem texto adicional:
{"tipo": "gasto", "valor": 0.0, "item": "string", "quantidade": 1, "estabelecimento": "string", "data": "YYYY-MM-DD", "categoria": "string", "forma_pagamento": "string", "tags": []}
`)

	return sb.String()
}

// geminiReceiptText represents the raw OCR response from Gemini.
type geminiReceiptText struct {
	TextoCompleto string  `json:"texto_completo"`
	Confianca     float64 `json:"confianca"`
}

// ReadReceipt extracts the full visible text from a receipt image.
func (s *GeminiService) ReadReceipt(ctx context.Context, imageURL, note string) (*adapter.ReceiptText, error) {
	var sb strings.Builder
	sb.WriteString(`Voce e um especialista em OCR e analise de comprovantes.
Analise a imagem fornecida e extraia TODAS as informacoes visiveis: valores monetarios, nome do estabelecimento, data, itens comprados, forma de pagamento e qualquer outro texto relevante.

Imagem do comprovante: `)
	sb.WriteString(imageURL)
	if note != "" {
		sb.WriteString("\n\nInformacao adicional do usuario: ")
		sb.WriteString(note)
	}
	sb.WriteString(`

FORMATO DE RESPOSTA: Retorne apenas o objeto JSON, sem texto adicional:
{"texto_completo": "string", "confianca": 0.0}
confianca deve estar entre 0 e 1.
`)

	content, err := s.generateJSON(ctx, sb.String(), 0.1)
	if err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeExtractionFailed,
			"falha ao ler comprovante", err)
	}

	var raw geminiReceiptText
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeExtractionFailed,
			fmt.Sprintf("resposta inválida do modelo: %s", content), err)
	}

	return &adapter.ReceiptText{
		Text:       raw.TextoCompleto,
		Confidence: raw.Confianca,
	}, nil
}

// geminiImageQuality represents the raw quality verdict from Gemini.
type geminiImageQuality struct {
	Adequada      bool     `json:"adequada"`
	Qualidade     string   `json:"qualidade"`
	Problemas     []string `json:"problemas"`
	Recomendacoes []string `json:"recomendacoes"`
}

// AssessImageQuality evaluates whether an image is adequate for OCR.
func (s *GeminiService) AssessImageQuality(ctx context.Context, imageURL string) (*adapter.ImageQualityReport, error) {
	prompt := fmt.Sprintf(`Voce e um especialista em qualidade de imagem para OCR.
Avalie se a imagem e adequada para extracao de texto, considerando nitidez, iluminacao, angulo, contraste e resolucao.

Imagem para avaliar: %s

FORMATO DE RESPOSTA: Retorne apenas o objeto JSON, sem texto adicional:
{"adequada": true, "qualidade": "Excelente" | "Boa" | "Regular" | "Ruim", "problemas": [], "recomendacoes": []}
`, imageURL)

	content, err := s.generateJSON(ctx, prompt, 0.1)
	if err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeExtractionFailed,
			"falha ao avaliar qualidade da imagem", err)
	}

	var raw geminiImageQuality
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeExtractionFailed,
			fmt.Sprintf("resposta inválida do modelo: %s", content), err)
	}

	return &adapter.ImageQualityReport{
		SuitableForOCR:  raw.Adequada,
		Quality:         raw.Qualidade,
		Problems:        raw.Problemas,
		Recommendations: raw.Recomendacoes,
	}, nil
}

// geminiInsights represents the raw narration response from Gemini.
type geminiInsights struct {
	Resumo           string   `json:"resumo"`
	PrincipaisGastos []string `json:"principais_gastos"`
	Recomendacoes    []string `json:"recomendacoes"`
	Alertas          []string `json:"alertas"`
}

// Narrate rephrases a report as plain-language insights with recommendations.
func (s *GeminiService) Narrate(ctx context.Context, report *entity.Report) (*entity.FriendlyInsights, error) {
	var top []string
	for _, c := range report.TopCategories {
		top = append(top, fmt.Sprintf("%s (R$ %s)", c.Category, c.Total.StringFixed(2)))
	}

	prompt := fmt.Sprintf(`Voce e um consultor financeiro especializado em analise de gastos pessoais.
Analise o relatorio fornecido e gere insights em linguagem simples e acessivel, incluindo recomendacoes praticas para economia. Seja positivo e motivacional.

Relatorio:
- Periodo: %s
- Total gasto: R$ %s
- Categorias mais caras: %s
- Insights tecnicos: %s

FORMATO DE RESPOSTA: Retorne apenas o objeto JSON, sem texto adicional:
{"resumo": "string", "principais_gastos": [], "recomendacoes": [], "alertas": []}
`, report.Period, report.TotalAmount.StringFixed(2), strings.Join(top, ", "), strings.Join(report.Insights, "; "))

	content, err := s.generateJSON(ctx, prompt, 0.7)
	if err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeExtractionFailed,
			"falha ao gerar insights", err)
	}

	var raw geminiInsights
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeExtractionFailed,
			fmt.Sprintf("resposta inválida do modelo: %s", content), err)
	}

	return &entity.FriendlyInsights{
		Summary:         raw.Resumo,
		TopExpenses:     raw.PrincipaisGastos,
		Recommendations: raw.Recomendacoes,
		Warnings:        raw.Alertas,
	}, nil
}

// geminiDecision represents the raw classification response from Gemini.
type geminiDecision struct {
	Ferramenta           string         `json:"ferramenta"`
	Parametros           map[string]any `json:"parametros"`
	PrecisaMaisInfo      bool           `json:"precisa_mais_info"`
	MensagemClarificacao string         `json:"mensagem_clarificacao"`
	AcaoDescricao        string         `json:"acao_descricao"`
	IncluiMenu           bool           `json:"inclui_menu"`
}

// Classify maps a free-text utterance onto the action vocabulary.
func (s *GeminiService) Classify(ctx context.Context, utterance, conversationContext string) (*adapter.IntentDecision, error) {
	prompt := s.buildClassificationPrompt(utterance, conversationContext)

	content, err := s.generateJSON(ctx, prompt, 0.1)
	if err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeClassificationFailed,
			"falha ao classificar entrada do usuário", err)
	}

	var raw geminiDecision
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, domainerror.NewExtractionError(domainerror.ErrCodeClassificationFailed,
			fmt.Sprintf("resposta inválida do modelo: %s", content), err)
	}

	return &adapter.IntentDecision{
		Action:            adapter.Action(raw.Ferramenta),
		Parameters:        raw.Parametros,
		NeedsMoreInfo:     raw.PrecisaMaisInfo,
		Clarification:     raw.MensagemClarificacao,
		ActionDescription: raw.AcaoDescricao,
		IncludesMenu:      raw.IncluiMenu,
	}, nil
}

func (s *GeminiService) buildClassificationPrompt(utterance, conversationContext string) string {
	var sb strings.Builder

	sb.WriteString(`Voce e um assistente especializado em analisar entradas de usuario e determinar qual ferramenta deve ser usada.

Ferramentas disponiveis:
1. ANALISAR_ENTRADA - Para processar descricoes de gastos em texto sem registrar
2. PROCESSAR_COMPROVANTE - Para processar imagens de comprovantes
3. CONSULTAR_GASTOS - Para consultar gastos existentes
4. ANALISAR_DADOS - Para gerar relatorios e analises
5. GERAR_INSIGHTS - Para gerar insights financeiros
6. ENVIAR_EMAIL - Para enviar relatorios por email
7. REGISTRAR_GASTO - Para registrar um gasto ou uma entrada

REGRAS IMPORTANTES:
- Para ENVIAR_EMAIL: "enviar email", "enviar relatorio", "mandar email" -> ENVIAR_EMAIL com precisa_mais_info false
- Para CONSULTAR_GASTOS: "consultar gastos", "ver gastos", "listar gastos" -> CONSULTAR_GASTOS
- Para GERAR_INSIGHTS: "gerar insight", "insights", "analise financeira" -> GERAR_INSIGHTS
- Para ANALISAR_DADOS: "analisar dados", "relatorio", "estatisticas" -> ANALISAR_DADOS
- Para REGISTRAR_GASTO: "registrar gasto", "gastei", "recebi", "paguei" -> REGISTRAR_GASTO

REGRA ESPECIAL PARA ENTRADAS GENERICAS:
- Entradas genericas como "tenta de novo", "opcoes", "ajuda", "o que posso fazer", "menu" -> RESPOSTA_DIRETA com precisa_mais_info false
- Defina inclui_menu como true apenas se mensagem_clarificacao ja contiver a lista completa de opcoes

So solicite mais informacoes (precisa_mais_info true) se realmente nao conseguir determinar qual ferramenta usar E a entrada nao for generica.

`)
	sb.WriteString(fmt.Sprintf("Entrada do usuario: %q\n", utterance))
	if conversationContext != "" {
		sb.WriteString(fmt.Sprintf("Contexto: %s\n", conversationContext))
	} else {
		sb.WriteString("Contexto: Nenhum contexto adicional\n")
	}
	sb.WriteString(`
FORMATO DE RESPOSTA: Retorne apenas o objeto JSON, sem texto adicional:
{"ferramenta": "REGISTRAR_GASTO", "parametros": {}, "precisa_mais_info": false, "mensagem_clarificacao": "", "acao_descricao": "string", "inclui_menu": false}
`)

	return sb.String()
}

// generateJSON runs one structured-output generation round trip.
func (s *GeminiService) generateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	if !s.IsAvailable() {
		return "", domainerror.NewExtractionError(domainerror.ErrCodeOracleUnavailable,
			"gemini service is not configured", domainerror.ErrOracleUnavailable)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(temperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return "", fmt.Errorf("no text content in response")
	}

	// Strip markdown code fences if present.
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	return strings.TrimSpace(textContent), nil
}
