package error

import "errors"

// Reporting domain errors.
var (
	// ErrInvalidReportMonth is returned when the requested month is out of range.
	ErrInvalidReportMonth = errors.New("mês inválido")

	// ErrInvalidPeriodKind is returned when the period kind is not weekly,
	// monthly or quarterly.
	ErrInvalidPeriodKind = errors.New("tipo de período inválido")
)

// ReportErrorCode defines error codes for reporting errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	ErrCodeInvalidReportMonth ReportErrorCode = "RPT-010001"
	ErrCodeInvalidPeriodKind  ReportErrorCode = "RPT-010002"
)

// ReportError represents a reporting error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
