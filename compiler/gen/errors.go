package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidModel indicates a model declaration error.
	ErrInvalidModel = errors.New("karst: invalid model")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("karst: missing configuration")
	// ErrInvalidRelationship indicates a relationship declaration error.
	ErrInvalidRelationship = errors.New("karst: invalid relationship")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("karst: code generation failed")
	// ErrValidationFailed indicates a validation failure.
	ErrValidationFailed = errors.New("karst: validation failed")
)

// ModelError represents a model declaration error.
type ModelError struct {
	Type     string // entity type name
	Property string // property name (if applicable)
	Pos      string // source position (if known)
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	var b strings.Builder
	b.WriteString("karst: model error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if e.Pos != "" {
		fmt.Fprintf(&b, " (%s)", e.Pos)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ModelError.
func (e *ModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// NewModelError creates a new ModelError.
func NewModelError(typeName, property, message string, cause error) *ModelError {
	return &ModelError{
		Type:     typeName,
		Property: property,
		Message:  message,
		Cause:    cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("karst: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("karst: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// RelationshipError represents a relationship declaration error.
type RelationshipError struct {
	Source   string
	Target   string
	Property string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *RelationshipError) Error() string {
	var b strings.Builder
	b.WriteString("karst: relationship error")
	if e.Property != "" {
		b.WriteString(" on property ")
		b.WriteString(e.Property)
	}
	if e.Source != "" && e.Target != "" {
		fmt.Fprintf(&b, " (%s -> %s)", e.Source, e.Target)
	} else if e.Source != "" {
		b.WriteString(" from ")
		b.WriteString(e.Source)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RelationshipError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RelationshipError.
func (e *RelationshipError) Is(target error) bool {
	return target == ErrInvalidRelationship
}

// NewRelationshipError creates a new RelationshipError.
func NewRelationshipError(source, target, property, message string, cause error) *RelationshipError {
	return &RelationshipError{
		Source:   source,
		Target:   target,
		Property: property,
		Message:  message,
		Cause:    cause,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Artifact string // "entity", "metadata", "registry"
	File     string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("karst: generation error")
	if e.Artifact != "" {
		b.WriteString(" in artifact ")
		b.WriteString(e.Artifact)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(artifact, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Artifact: artifact,
		File:     file,
		Message:  message,
		Cause:    cause,
	}
}

// ValidationError represents a validation failure surfaced as an error.
// Most validation findings are reported as Diagnostics; this type wraps
// them when a caller asked for strict processing.
type ValidationError struct {
	Type     string
	Property string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("karst: validation error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(typeName, property, message string) *ValidationError {
	return &ValidationError{
		Type:     typeName,
		Property: property,
		Message:  message,
	}
}

// IsModelError reports whether the error is a ModelError.
func IsModelError(err error) bool {
	var modelErr *ModelError
	return errors.As(err, &modelErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsRelationshipError reports whether the error is a RelationshipError.
func IsRelationshipError(err error) bool {
	var relErr *RelationshipError
	return errors.As(err, &relErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
