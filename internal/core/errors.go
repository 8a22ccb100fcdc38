package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorKind is the machine-readable class of a resolution failure.
type ErrorKind string

const (
	KindUnknownPlatform            ErrorKind = "UnknownPlatformError"
	KindUnknownDependency          ErrorKind = "UnknownDependencyError"
	KindDuplicateDependency        ErrorKind = "DuplicateDependencyError"
	KindDuplicatePlatform          ErrorKind = "DuplicatePlatformError"
	KindMissingRequiredDependency  ErrorKind = "MissingRequiredDependencyError"
	KindUnrequestedOptionalFeature ErrorKind = "UnrequestedOptionalFeatureError"
	KindUnknownOptionalFlag        ErrorKind = "UnknownOptionalFlagError"
	KindConflictingDependencyPath  ErrorKind = "ConflictingDependencyPathError"
	KindConflictingModeFlags       ErrorKind = "ConflictingModeFlagsError"
	KindMalformedPath              ErrorKind = "MalformedPathError"
	KindValidation                 ErrorKind = "ValidationError"
	KindMalformedDeclaration       ErrorKind = "MalformedDeclarationError"
	KindInvalidSelector            ErrorKind = "InvalidSelectorError"
)

// ResolutionError is a single load, lookup, composition or validation
// failure.  Key names the offending platform id, dependency, toggle or path
// and Field names the declaration or selector field it came from.
type ResolutionError struct {
	Kind  ErrorKind
	Key   string
	Field string
	Msg   string
	Cause error
}

func newError(kind ErrorKind, key string, field string, msg string) *ResolutionError {
	return &ResolutionError{Kind: kind, Key: key, Field: field, Msg: msg}
}

// NewMalformedDeclarationError reports a declaration that could not be
// parsed at all.
func NewMalformedDeclarationError(source string, err error) *ResolutionError {
	return newError(KindMalformedDeclaration, source, "declaration", fmt.Sprintf("malformed declaration %s", source)).WithCause(err)
}

func (e *ResolutionError) WithCause(err error) *ResolutionError {
	e.Cause = err
	return e
}

func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Code maps the kind onto the errbuilder code space used for exit codes.
func (e *ResolutionError) Code() errbuilder.ErrCode {
	return codeForKind(e.Kind)
}

// ValidationError aggregates every failed validation check for one working
// set.  errors.As reaches the individual entries.
type ValidationError struct {
	Problems []*ResolutionError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Problems))
	for _, problem := range e.Problems {
		messages = append(messages, problem.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

func (e *ValidationError) Unwrap() []error {
	out := make([]error, 0, len(e.Problems))
	for _, problem := range e.Problems {
		out = append(out, problem)
	}
	return out
}

func (e *ValidationError) Code() errbuilder.ErrCode {
	return codeForKind(KindValidation)
}

// KindOf returns the taxonomy kind of err, or "" for errors outside it.
func KindOf(err error) ErrorKind {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return KindValidation
	}
	var resolution *ResolutionError
	if errors.As(err, &resolution) {
		return resolution.Kind
	}
	return ""
}

// HasKind reports whether err, or any aggregated validation entry, is of
// the given kind.
func HasKind(err error, kind ErrorKind) bool {
	if KindOf(err) == kind {
		return true
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		for _, problem := range validation.Problems {
			if problem.Kind == kind {
				return true
			}
		}
	}
	return false
}

// Offending returns the key and field of the first taxonomy error in err.
func Offending(err error) (string, string) {
	var resolution *ResolutionError
	if errors.As(err, &resolution) {
		return resolution.Key, resolution.Field
	}
	return "", ""
}

func codeForKind(kind ErrorKind) errbuilder.ErrCode {
	switch kind {
	case KindUnknownPlatform, KindUnknownDependency:
		return errbuilder.CodeNotFound
	case KindDuplicateDependency, KindDuplicatePlatform:
		return errbuilder.CodeAlreadyExists
	case KindUnrequestedOptionalFeature, KindUnknownOptionalFlag, KindInvalidSelector, KindMalformedDeclaration:
		return errbuilder.CodeInvalidArgument
	default:
		return errbuilder.CodeFailedPrecondition
	}
}
