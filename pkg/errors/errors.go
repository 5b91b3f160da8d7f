package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes
const (
	CodeAppError   = "APP_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// APIError describes a failed call to an upstream model provider.
type APIError struct {
	*AppError
	Provider string
}

func NewAPIError(message, provider string, statusCode int, cause error) *APIError {
	return &APIError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context: map[string]any{
				"provider": provider,
			},
			Cause: cause,
		},
		Provider: provider,
	}
}

// ValidationError is a client error naming the offending request fields.
type ValidationError struct {
	*AppError
	Fields []string
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"fields": fields,
			},
		},
		Fields: fields,
	}
}

// NewMissingFieldsError builds the 400 message for absent required fields,
// e.g. "productName and features are required".
func NewMissingFieldsError(fields ...string) *ValidationError {
	var message string
	switch len(fields) {
	case 0:
		message = "required field is missing"
	case 1:
		message = fields[0] + " field is required"
	default:
		message = strings.Join(fields[:len(fields)-1], ", ") + " and " + fields[len(fields)-1] + " are required"
	}
	return NewValidationError(message, fields...)
}

type CacheError struct {
	*AppError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AppError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// StatusCode reports the HTTP status carried by err, or 500 when err is not
// one of this package's error types.
func StatusCode(err error) int {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.StatusCode
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode > 0 {
		return appErr.StatusCode
	}
	return 500
}
