package error

import "errors"

// Extraction oracle domain errors.
var (
	// ErrExtractionFailed is returned when the oracle returns no usable object.
	// There are no retries: a single failed call surfaces immediately and the
	// caller falls back to a zeroed default entry.
	ErrExtractionFailed = errors.New("falha ao extrair dados da entrada")

	// ErrClassificationFailed is returned when the intent classifier returns
	// no decision for an utterance.
	ErrClassificationFailed = errors.New("não foi possível analisar a entrada do usuário")

	// ErrOracleUnavailable is returned when the oracle is not configured.
	ErrOracleUnavailable = errors.New("serviço de extração não configurado")
)

// ExtractionErrorCode defines error codes for oracle errors.
// Format: EXT-XXYYYY where XX is category and YYYY is specific error.
type ExtractionErrorCode string

const (
	ErrCodeExtractionFailed     ExtractionErrorCode = "EXT-010001"
	ErrCodeClassificationFailed ExtractionErrorCode = "EXT-010002"
	ErrCodeOracleUnavailable    ExtractionErrorCode = "EXT-010003"
)

// ExtractionError represents an oracle error with code and message.
type ExtractionError struct {
	Code    ExtractionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError with the given code and message.
func NewExtractionError(code ExtractionErrorCode, message string, err error) *ExtractionError {
	return &ExtractionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
