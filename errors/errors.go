// Package errors provides error types and handling for s3sh verb
// processing and backend operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents an s3sh failure with context about where it happened.
// Grammar failures carry the verb symbol and the offending keyword or
// arity; backend failures carry bucket/key context. Ctx is the opaque
// invocation context handle threaded through by the caller, used only for
// source-position reporting at the CLI boundary.
type Error struct {
	// Verb is the verb symbol the failure belongs to (e.g. "ls")
	Verb string

	// Keyword is the offending or missing parameter name (if applicable)
	Keyword string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Takes and Given describe a positional arity mismatch
	Takes int
	Given int

	// Ctx is the opaque invocation context of the offending element
	Ctx any

	// Err is the underlying sentinel or wrapped error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrTooManyArguments):
		return fmt.Sprintf("s3sh.%s: %v: takes %d positional arguments, %d given", e.Verb, e.Err, e.Takes, e.Given)
	case e.Keyword != "":
		return fmt.Sprintf("s3sh.%s: %v: %q", e.Verb, e.Err, e.Keyword)
	case e.Bucket != "" && e.Key != "":
		return fmt.Sprintf("s3sh.%s %s/%s: %v", e.Verb, e.Bucket, e.Key, e.Err)
	case e.Bucket != "":
		return fmt.Sprintf("s3sh.%s bucket %s: %v", e.Verb, e.Bucket, e.Err)
	}
	return fmt.Sprintf("s3sh.%s: %v", e.Verb, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithKeyword adds the offending parameter name to an existing error.
func (e *Error) WithKeyword(keyword string) *Error {
	e.Keyword = keyword
	return e
}

// WithArity records a positional arity mismatch.
func (e *Error) WithArity(takes, given int) *Error {
	e.Takes = takes
	e.Given = given
	return e
}

// WithCtx attaches the opaque invocation context of the offending element.
func (e *Error) WithCtx(ctx any) *Error {
	e.Ctx = ctx
	return e
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error for the given verb symbol and underlying error.
func NewError(verb string, err error) *Error {
	return &Error{
		Verb: verb,
		Err:  err,
	}
}

// Sentinel errors for verb definition and invocation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidDefinition indicates a structurally invalid verb definition
	// (missing symbol or unresolvable backend action). Fatal at load time.
	ErrInvalidDefinition = errors.New("s3sh: invalid verb definition")

	// ErrTooManyArguments indicates more positional arguments than the
	// verb's positional order can absorb.
	ErrTooManyArguments = errors.New("s3sh: too many positional arguments")

	// ErrExtraKeyword indicates an unrecognized keyword was supplied.
	ErrExtraKeyword = errors.New("s3sh: unexpected keyword")

	// ErrMissingKeyword indicates a required parameter was never bound.
	ErrMissingKeyword = errors.New("s3sh: missing required keyword")

	// ErrUnknownVerb indicates a symbol with no registered definition.
	ErrUnknownVerb = errors.New("s3sh: unknown verb")

	// ErrUnknownAction indicates an action name with no registered action.
	ErrUnknownAction = errors.New("s3sh: unknown action")
)

// Sentinel errors surfaced from the backend boundary.
var (
	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("s3sh: object not found")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("s3sh: bucket not found")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("s3sh: access denied")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("s3sh: invalid input")
)

// IsDefinition checks if an error indicates an invalid verb definition.
func IsDefinition(err error) bool {
	return errors.Is(err, ErrInvalidDefinition)
}

// IsTooManyArguments checks if an error indicates a positional arity mismatch.
func IsTooManyArguments(err error) bool {
	return errors.Is(err, ErrTooManyArguments)
}

// IsExtraKeyword checks if an error indicates an unrecognized keyword.
func IsExtraKeyword(err error) bool {
	return errors.Is(err, ErrExtraKeyword)
}

// IsMissingKeyword checks if an error indicates an unbound required keyword.
func IsMissingKeyword(err error) bool {
	return errors.Is(err, ErrMissingKeyword)
}
