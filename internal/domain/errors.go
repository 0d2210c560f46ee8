package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"

	// Remote source errors
	CodeTransport       ErrorCode = "TRANSPORT_ERROR"
	CodeAPIStatus       ErrorCode = "API_STATUS_ERROR"
	CodePageStructure   ErrorCode = "PAGE_STRUCTURE_CHANGED"
	CodePageFormat      ErrorCode = "PAGE_FORMAT_CHANGED"
	CodeTargetUnreached ErrorCode = "TARGET_UNREACHABLE"

	// Output errors
	CodePersist ErrorCode = "PERSIST_ERROR"
	CodePublish ErrorCode = "PUBLISH_ERROR"
)

// Sentinels for errors.Is; matching is by code only.
var (
	ErrTransport         = &DomainError{Code: CodeTransport}
	ErrAPIStatus         = &DomainError{Code: CodeAPIStatus}
	ErrPageStructure     = &DomainError{Code: CodePageStructure}
	ErrPageFormat        = &DomainError{Code: CodePageFormat}
	ErrTargetUnreachable = &DomainError{Code: CodeTargetUnreached}
	ErrPersist           = &DomainError{Code: CodePersist}
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Error(),
	})
}

// WithContext attaches a key/value pair for logging and returns e.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

func NewTransportError(message string, err error) *DomainError {
	return NewError(CodeTransport, message, err)
}

// API response codes documented by Open Trivia DB.
var apiStatusMessages = map[int]string{
	1: "no results",
	2: "invalid parameter",
	3: "token not found",
	4: "token empty",
	5: "rate limit",
}

func NewAPIStatusError(responseCode int) *DomainError {
	reason, ok := apiStatusMessages[responseCode]
	if !ok {
		reason = "unknown response code"
	}
	return NewError(CodeAPIStatus,
		fmt.Sprintf("non-success API status %d (%s)", responseCode, reason), nil).
		WithContext("response_code", responseCode)
}

func NewPageStructureError(message string) *DomainError {
	return NewError(CodePageStructure,
		fmt.Sprintf("page structure changed: %s", message), nil)
}

func NewPageFormatError(text string, err error) *DomainError {
	return NewError(CodePageFormat,
		fmt.Sprintf("could not parse question count from %q, the page format probably changed", text), err)
}

func NewNonPositiveCountError(count int) *DomainError {
	return NewError(CodePageFormat,
		fmt.Sprintf("discovered question count %d is not positive", count), nil).
		WithContext("expected", count)
}

func NewTargetUnreachableError(collected, expected int, reason string) *DomainError {
	return NewError(CodeTargetUnreached,
		fmt.Sprintf("could not reach target count: collected %d of %d (%s)", collected, expected, reason), nil).
		WithContext("collected", collected).
		WithContext("expected", expected)
}

func NewPersistError(path string, err error) *DomainError {
	return NewError(CodePersist, fmt.Sprintf("failed to persist results to %s", path), err)
}

func NewPublishError(publisher string, err error) *DomainError {
	return NewError(CodePublish, fmt.Sprintf("publisher %s failed", publisher), err)
}

func NewInvalidInputError(message string, err error) *DomainError {
	return NewError(CodeInvalidInput, message, err)
}

func NewInvalidConfigError(message string) *DomainError {
	return NewError(CodeInvalidConfig, message, nil)
}
