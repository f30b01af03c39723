package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a file, session or record was not found
	ErrNotFound = errors.New("not found")
	// ErrNoInputs indicates that discovery produced nothing to scan
	ErrNoInputs = errors.New("no inputs matched")
	// ErrUnsupportedInput indicates a file kind that cannot be turned into text
	ErrUnsupportedInput = errors.New("unsupported input")
	// ErrInputTooLarge indicates a file above the configured size limit
	ErrInputTooLarge = errors.New("input too large")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Section string
	Field   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Section != "" && e.Field != "" {
		return fmt.Sprintf("configuration error in section '%s', field '%s': %s", e.Section, e.Field, e.Reason)
	} else if e.Section != "" {
		return fmt.Sprintf("configuration error in section '%s': %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Is lets errors.Is match ConfigurationError against ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(section, field, reason string) *ConfigurationError {
	return &ConfigurationError{
		Section: section,
		Field:   field,
		Reason:  reason,
	}
}

// InputError represents a failure to load or decode one input document
type InputError struct {
	Path    string
	Reason  string
	Wrapped error
}

func (e *InputError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("input error for '%s': %s: %v", e.Path, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("input error for '%s': %s", e.Path, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}

// NewInputError creates a new input error
func NewInputError(path, reason string, wrapped error) *InputError {
	return &InputError{
		Path:    path,
		Reason:  reason,
		Wrapped: wrapped,
	}
}

// CombineErrors combines multiple errors into a single error with formatted
// message. The combined error still matches each part with errors.Is and
// errors.As.
func CombineErrors(errs []error) error {
	var kept []error
	var messages []string
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
			messages = append(messages, err.Error())
		}
	}

	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &combinedError{
		message: fmt.Sprintf("multiple errors occurred: [%s]", strings.Join(messages, "; ")),
		errs:    kept,
	}
}

type combinedError struct {
	message string
	errs    []error
}

func (e *combinedError) Error() string {
	return e.message
}

func (e *combinedError) Unwrap() []error {
	return e.errs
}

// ErrorCollector collects errors from independent units of work, e.g. the
// documents of one batch. It is not safe for concurrent use.
type ErrorCollector struct {
	errors []error
}

// Add adds an error to the collector
func (ec *ErrorCollector) Add(err error) {
	if err != nil {
		ec.errors = append(ec.errors, err)
	}
}

// AddWithContext adds an error with additional context
func (ec *ErrorCollector) AddWithContext(err error, context string) {
	if err != nil {
		ec.errors = append(ec.errors, WrapError(err, context))
	}
}

// HasErrors returns true if any errors were collected
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// Error returns a combined error from all collected errors
func (ec *ErrorCollector) Error() error {
	return CombineErrors(ec.errors)
}

// Errors returns all collected errors
func (ec *ErrorCollector) Errors() []error {
	return ec.errors
}
