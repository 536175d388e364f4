// Package errors provides custom error types for the toolcompare system.
// These errors enable programmatic error checking with errors.Is and errors.As
// and keep user-facing rejections apart from recoverable remote failures.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// As is an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the toolcompare system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyPresent indicates that a tool is already in the comparison set
	ErrAlreadyPresent = errors.New("already present")

	// ErrLimitExceeded indicates that the comparison set is full
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrRemoteUnavailable indicates that the remote comparison service could not serve a request
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrUnauthorized indicates that the remote rejected the credentials
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLocalStoreCorrupt indicates that persisted local data could not be decoded
	ErrLocalStoreCorrupt = errors.New("local store corrupt")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrClosed indicates use of a closed resource
	ErrClosed = errors.New("closed")
)

// AlreadyPresentError is returned when adding a tool that is already being compared.
type AlreadyPresentError struct {
	ToolID string
}

// Error implements the error interface
func (e *AlreadyPresentError) Error() string {
	return fmt.Sprintf("tool %s is already in the comparison", e.ToolID)
}

// Is implements errors.Is support
func (e *AlreadyPresentError) Is(target error) bool {
	return target == ErrAlreadyPresent
}

// NewAlreadyPresentError creates a new AlreadyPresentError
func NewAlreadyPresentError(toolID string) *AlreadyPresentError {
	return &AlreadyPresentError{ToolID: toolID}
}

// LimitError is returned when the comparison set already holds the maximum number of tools.
type LimitError struct {
	ToolID string
	Limit  int
}

// Error implements the error interface
func (e *LimitError) Error() string {
	return fmt.Sprintf("cannot add tool %s: comparison is limited to %d tools", e.ToolID, e.Limit)
}

// Is implements errors.Is support
func (e *LimitError) Is(target error) bool {
	return target == ErrLimitExceeded
}

// NewLimitError creates a new LimitError
func NewLimitError(toolID string, limit int) *LimitError {
	return &LimitError{ToolID: toolID, Limit: limit}
}

// RemoteClass classifies why a remote call failed.
type RemoteClass string

const (
	// RemoteClassUnavailable covers network errors, timeouts, 5xx and 429 responses.
	RemoteClassUnavailable RemoteClass = "unavailable"
	// RemoteClassAuth covers 401 and 403 responses.
	RemoteClassAuth RemoteClass = "auth"
	// RemoteClassRejected covers every other non-success response.
	RemoteClassRejected RemoteClass = "rejected"
	// RemoteClassNotConfigured is used when no remote endpoint is configured.
	RemoteClassNotConfigured RemoteClass = "not_configured"
)

// RemoteError represents a failed call to the remote comparison service.
// Every RemoteError matches ErrRemoteUnavailable; auth failures also match ErrUnauthorized.
type RemoteError struct {
	Operation string // "list", "add", "remove", "tool"
	Class     RemoteClass
	Err       error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote %s failed (%s): %v", e.Operation, e.Class, e.Err)
	}
	return fmt.Sprintf("remote %s failed (%s)", e.Operation, e.Class)
}

// Unwrap implements errors.Unwrap
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *RemoteError) Is(target error) bool {
	if target == ErrRemoteUnavailable {
		return true
	}
	return target == ErrUnauthorized && e.Class == RemoteClassAuth
}

// NewRemoteError creates a RemoteError, deriving the class from err.
func NewRemoteError(operation string, err error) *RemoteError {
	return &RemoteError{
		Operation: operation,
		Class:     Classify(err),
		Err:       err,
	}
}

// Classify returns the remote class for an error returned by the transport or an APIError.
func Classify(err error) RemoteClass {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Class
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return ClassifyStatus(apiErr.StatusCode)
	}
	return RemoteClassUnavailable
}

// ClassifyStatus maps an HTTP status code to a remote class.
func ClassifyStatus(status int) RemoteClass {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return RemoteClassAuth
	case status == http.StatusTooManyRequests || status == http.StatusRequestTimeout || status >= 500:
		return RemoteClassUnavailable
	default:
		return RemoteClassRejected
	}
}

// CorruptError represents persisted data that could not be decoded.
type CorruptError struct {
	Key string
	Err error
}

// Error implements the error interface
func (e *CorruptError) Error() string {
	return fmt.Sprintf("local store entry %q is corrupt: %v", e.Key, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CorruptError) Is(target error) bool {
	return target == ErrLocalStoreCorrupt
}

// NewCorruptError creates a new CorruptError
func NewCorruptError(key string, err error) *CorruptError {
	return &CorruptError{Key: key, Err: err}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Unwrap implements errors.Unwrap
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents a non-success response from the comparison API
type APIError struct {
	Endpoint   string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error from %s (status %d, %s): %s", e.Endpoint, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch ClassifyStatus(e.StatusCode) {
	case RemoteClassAuth:
		return target == ErrUnauthorized
	case RemoteClassUnavailable:
		return target == ErrRemoteUnavailable
	}
	if e.StatusCode == http.StatusNotFound {
		return target == ErrNotFound
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(endpoint string, statusCode int, message string) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "open", "fetch"
	Resource  string // "client", "store", "request"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsAlreadyPresent checks if an error is an already present rejection
func IsAlreadyPresent(err error) bool {
	return errors.Is(err, ErrAlreadyPresent)
}

// IsLimitExceeded checks if an error is a limit rejection
func IsLimitExceeded(err error) bool {
	return errors.Is(err, ErrLimitExceeded)
}

// IsRejection reports whether err is one of the user-facing comparison rejections.
func IsRejection(err error) bool {
	return IsAlreadyPresent(err) || IsLimitExceeded(err)
}

// IsRemoteUnavailable checks if an error came from a failed remote call
func IsRemoteUnavailable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}

// IsUnauthorized checks if an error is an authorization failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsLocalStoreCorrupt checks if an error is a corrupt local store error
func IsLocalStoreCorrupt(err error) bool {
	return errors.Is(err, ErrLocalStoreCorrupt)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIOError checks if an error is an IOError
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

// WrapRemote wraps an error as a RemoteError for the given operation
func WrapRemote(operation string, err error) error {
	if err == nil {
		return nil
	}
	return NewRemoteError(operation, err)
}
