package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeOutOfBounds indicates a counter was set outside of its limits
	CodeOutOfBounds Code = "out_of_bounds"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"
)

// Entity names the kind of active game object a lookup was for
type Entity string

const (
	EntityCharacter   Entity = "character"
	EntityCombat      Entity = "combat"
	EntityExploration Entity = "exploration"
	EntityEncounter   Entity = "encounter"
	EntityCounter     Entity = "counter"
)

// MetaEntity is the meta key holding the Entity of a not found error
const MetaEntity = "entity"

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var dndErr *Error
	if errors.As(err, &dndErr) {
		return &Error{
			Code:    dndErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(dndErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// OutOfBoundsf creates a formatted out of bounds error
func OutOfBoundsf(format string, args ...any) *Error {
	return Newf(CodeOutOfBounds, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Active entity lookups

// NoCharacter is returned when the author has no active character
func NoCharacter() *Error {
	return NotFound("You have no character active.").WithMeta(MetaEntity, EntityCharacter)
}

// CombatNotFound is returned when the channel is not in combat
func CombatNotFound() *Error {
	return NotFound("This channel is not in combat.").WithMeta(MetaEntity, EntityCombat)
}

// ExplorationNotFound is returned when the channel has no active exploration
func ExplorationNotFound() *Error {
	return NotFound("This channel has no active exploration.").WithMeta(MetaEntity, EntityExploration)
}

// NoEncounter is returned when the author has no random encounter table set up
func NoEncounter() *Error {
	return NotFound("You have no random encounter table set up.").WithMeta(MetaEntity, EntityEncounter)
}

// NoCounter is returned when a character has no custom counter with the name
func NoCounter(name string) *Error {
	return NotFoundf("There is no counter named %s.", name).WithMeta(MetaEntity, EntityCounter)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// IsOutOfBounds checks if the error is an out of bounds error
func IsOutOfBounds(err error) bool {
	return Is(err, CodeOutOfBounds)
}

// IsEntityNotFound reports whether err is a not found error for the given entity
func IsEntityNotFound(err error, entity Entity) bool {
	if !IsNotFound(err) {
		return false
	}
	got, ok := GetMeta(err)[MetaEntity].(Entity)
	return ok && got == entity
}

// GetCode returns the error code
func GetCode(err error) Code {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Meta
	}
	return nil
}

// UserMessage returns the message of the outermost *Error, or "" for foreign errors
func UserMessage(err error) string {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Message
	}
	return ""
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
