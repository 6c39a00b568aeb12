package common

import (
	"fmt"
)

// Stable error codes surfaced to tool-layer callers. Callers dispatch on the
// code, never on the message text.
const (
	ErrCodeInvalidAddress   = "INVALID_ADDRESS"
	ErrCodeInvalidParameter = "INVALID_PARAMETER"
	ErrCodeGasEstimation    = "GAS_ESTIMATION_FAILED"
	ErrCodeTxAnalysis       = "TX_ANALYSIS_FAILED"
)

// Error is a typed failure with a stable code, a human-readable message and a
// structured detail bag holding the offending parameters. The underlying
// cause, when there is one, stays reachable through errors.Unwrap.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewInvalidAddressError(address string) *Error {
	return &Error{
		Code:    ErrCodeInvalidAddress,
		Message: fmt.Sprintf("invalid address: %s", address),
		Details: map[string]any{"address": address},
	}
}

func NewInvalidParameterError(name string, value any, reason string) *Error {
	return &Error{
		Code:    ErrCodeInvalidParameter,
		Message: fmt.Sprintf("invalid parameter %s: %s", name, reason),
		Details: map[string]any{"parameter": name, "value": value},
	}
}

func NewGasEstimationError(cause error, details map[string]any) *Error {
	return &Error{
		Code:    ErrCodeGasEstimation,
		Message: "gas estimation failed",
		Details: details,
		cause:   cause,
	}
}

func NewTxAnalysisError(txHash string, cause error) *Error {
	return &Error{
		Code:    ErrCodeTxAnalysis,
		Message: fmt.Sprintf("couldn't analyze transaction %s", txHash),
		Details: map[string]any{"txHash": txHash},
		cause:   cause,
	}
}
