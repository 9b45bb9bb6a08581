package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// FormatError reports a JSON document that does not match the current
// on-disk shape. Legacy distinguishes "old format, needs migration" from a
// corrupt or unreadable file so callers can tell the two apart.
type FormatError struct {
	Path    string
	Legacy  bool
	Message string
}

func (e *FormatError) Error() string {
	if e.Legacy {
		return fmt.Sprintf("%s: old project format (migration required): %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: unrecognized file format: %s", e.Path, e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrProjectNotFound     = &NotFoundError{Entity: "project"}
	ErrSourceNotFound      = &NotFoundError{Entity: "source"}
	ErrProjectTypeNotFound = &NotFoundError{Entity: "project type"}
	ErrSourceTypeNotFound  = &NotFoundError{Entity: "source type"}
	ErrRegionNotFound      = &NotFoundError{Entity: "region"}
	ErrLinkNotFound        = &NotFoundError{Entity: "source link"}
)

// Already Exists Errors
var (
	ErrProjectExists = &AlreadyExistsError{Entity: "project", Context: "at this path"}
)

// Business Logic Errors
var (
	ErrSourceAlreadyStaged = errors.New("source is already on deck for this project")
	ErrSourceNotStaged     = errors.New("source is not on deck for this project")
	ErrRegionUnresolved    = errors.New("region for source cannot be determined")
)

// Authentication Errors
var (
	ErrInvalidPasscode = &AuthenticationError{Message: "invalid admin passcode"}
	ErrInvalidToken    = &AuthenticationError{Message: "invalid or expired token"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsFormat checks if an error is a FormatError
func IsFormat(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}

// IsLegacyFormat reports whether err is a FormatError for an old-format file
func IsLegacyFormat(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr) && formatErr.Legacy
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewFormatError creates a new FormatError
func NewFormatError(path string, legacy bool, message string) error {
	return &FormatError{Path: path, Legacy: legacy, Message: message}
}
