package dto

// ProcessReceiptRequest submits a receipt image for OCR extraction.
type ProcessReceiptRequest struct {
	ImageURL string `json:"imagem_url" binding:"required"`
	Note     string `json:"descricao_adicional"`
}

// ProcessReceiptResponse carries the extracted draft for confirmation.
type ProcessReceiptResponse struct {
	Draft         DraftResponse `json:"dados_extraidos"`
	ExtractedText string        `json:"texto_extraido"`
	Confidence    float64       `json:"confianca_ocr"`
	Success       bool          `json:"sucesso"`
	Message       string        `json:"mensagem"`
}

// CheckImageQualityRequest asks for an OCR suitability verdict.
type CheckImageQualityRequest struct {
	ImageURL string `json:"imagem_url" binding:"required"`
}

// CheckImageQualityResponse represents the quality verdict.
type CheckImageQualityResponse struct {
	SuitableForOCR  bool     `json:"adequada_para_ocr"`
	Quality         string   `json:"qualidade"`
	Problems        []string `json:"problemas_identificados"`
	Recommendations []string `json:"recomendacoes"`
	Success         bool     `json:"sucesso"`
	Message         string   `json:"mensagem"`
}

// ConfirmReceiptRequest registers a previously extracted receipt draft.
type ConfirmReceiptRequest struct {
	Draft EntryDraftRequest `json:"dados" binding:"required"`
}

// ConfirmReceiptResponse represents the result of confirmed registration.
type ConfirmReceiptResponse struct {
	Entry   *EntryResponse `json:"registro,omitempty"`
	Success bool           `json:"sucesso"`
	Message string         `json:"mensagem"`
}
