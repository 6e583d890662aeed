// Package error defines domain-specific errors for the Finance Assistant application.
package error

import "errors"

// Ledger entry domain errors.
var (
	// ErrEntryNotFound is returned when an entry is not found in the store.
	ErrEntryNotFound = errors.New("lançamento não encontrado")

	// ErrPersistenceFailed is returned when the store rejects a read or write.
	ErrPersistenceFailed = errors.New("falha de persistência")

	// ErrInvalidEntryKind is returned when the entry kind is neither expense nor income.
	ErrInvalidEntryKind = errors.New("tipo de lançamento inválido")

	// ErrInvalidDateRange is returned when a range query has end before start.
	ErrInvalidDateRange = errors.New("intervalo de datas inválido")
)

// EntryErrorCode defines error codes for ledger entry errors.
// Format: ENT-XXYYYY where XX is category and YYYY is specific error.
type EntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidEntryKind EntryErrorCode = "ENT-010001"
	ErrCodeInvalidDateRange EntryErrorCode = "ENT-010002"

	// Store errors (02XXXX)
	ErrCodeEntryNotFound     EntryErrorCode = "ENT-020001"
	ErrCodePersistenceFailed EntryErrorCode = "ENT-020002"
)

// EntryError represents a ledger entry error with code and message.
type EntryError struct {
	Code    EntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// NewEntryError creates a new EntryError with the given code and message.
func NewEntryError(code EntryErrorCode, message string, err error) *EntryError {
	return &EntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
