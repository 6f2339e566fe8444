package sbol

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrDuplicateIdentity   = errors.New("duplicate identity")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrInvalidValue        = errors.New("invalid value")
	ErrAlreadyOwned        = errors.New("entity already owned by another parent")
	ErrForeignDocument     = errors.New("entity belongs to another document")
	ErrKindMismatch        = errors.New("entity kind mismatch")
	ErrReservedPredicate   = errors.New("annotation predicate is reserved")

	errNilChild = errors.New("nil child entity")
)

// DuplicateIdentityError is returned when an identity is already registered
// in the Document.
type DuplicateIdentityError struct {
	Identity string // the colliding identity
	Kind     Kind   // kind being created or re-versioned
	Existing Kind   // kind of the entity already holding the identity
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("%s %s: identity already registered to a %s", e.Kind, e.Identity, e.Existing)
}

// Is makes errors.Is(err, ErrDuplicateIdentity) hold.
func (e *DuplicateIdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}

// UnresolvedReferenceError is returned by Resolve for identities never
// created in the Document.
type UnresolvedReferenceError struct {
	Reference string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Reference == "" {
		return "unresolved reference: empty identity"
	}
	return fmt.Sprintf("unresolved reference %s", e.Reference)
}

// Is makes errors.Is(err, ErrUnresolvedReference) hold.
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// EntityError provides structured error information for entity mutations.
type EntityError struct {
	Op       string // Operation that failed (e.g., "SetVersion", "AddComponent")
	Kind     Kind   // Kind of the entity being mutated
	Identity string // Identity of the entity being mutated
	Field    string // Field name (for setters)
	Cause    error  // Underlying error
}

// Error implements the error interface.
func (e *EntityError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s %s (field %s): %v", e.Op, e.Kind, e.Identity, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Kind, e.Identity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *EntityError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *EntityError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building EntityErrors.
type ErrorBuilder struct {
	err EntityError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: EntityError{Op: op}}
}

// Entity sets the kind and identity of the entity being mutated.
func (b *ErrorBuilder) Entity(kind Kind, identity string) *ErrorBuilder {
	b.err.Kind = kind
	b.err.Identity = identity
	return b
}

// Field sets the field name for setter failures.
func (b *ErrorBuilder) Field(name string) *ErrorBuilder {
	b.err.Field = name
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Invalid marks the cause as a malformed value, keeping err in the chain.
func (b *ErrorBuilder) Invalid(err error) *ErrorBuilder {
	b.err.Cause = fmt.Errorf("%w: %w", ErrInvalidValue, err)
	return b
}

// Build returns the constructed EntityError.
func (b *ErrorBuilder) Build() *EntityError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// IsNotFound returns true if the error is an unresolved reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnresolvedReference)
}

// IsDuplicate returns true if the error reports an identity collision.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateIdentity)
}

// IsInvalid returns true if a setter rejected a malformed value.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}
