// Package errors defines the domain error kinds surfaced by the claim
// services. Every failure carries a stable Code for API clients and a Kind
// that transports map onto a status code.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/rotisserie/eris"
)

// Kind classifies a DomainError.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindPersistence       Kind = "persistence"
	KindInvalidTransition Kind = "invalid_transition"
)

// Stable error codes.
const (
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeClaimNotFound     = "CLAIM_NOT_FOUND"
	CodePersistenceFailed = "PERSISTENCE_FAILED"
	CodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	CodeClaimLocked       = "CLAIM_LOCKED"
)

// DomainError is a classified, user-presentable failure.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"-"`
	Err     error  `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so sentinel errors compare equal to wrapped instances.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrValidation        = &DomainError{Code: CodeValidationFailed, Message: "validation failed", Kind: KindValidation}
	ErrClaimNotFound     = &DomainError{Code: CodeClaimNotFound, Message: "claim not found", Kind: KindNotFound}
	ErrPersistence       = &DomainError{Code: CodePersistenceFailed, Message: "claim store operation failed", Kind: KindPersistence}
	ErrInvalidTransition = &DomainError{Code: CodeInvalidTransition, Message: "invalid status transition", Kind: KindInvalidTransition}
)

// Validation reports malformed or missing input.
func Validation(message string, err error) *DomainError {
	return &DomainError{
		Code:    CodeValidationFailed,
		Message: message,
		Kind:    KindValidation,
		Err:     err,
	}
}

// NotFound reports an absent claim.
func NotFound(claimID string) *DomainError {
	return &DomainError{
		Code:    CodeClaimNotFound,
		Message: fmt.Sprintf("claim %s not found", claimID),
		Kind:    KindNotFound,
	}
}

// Persistence wraps a store failure. The wrapped error keeps its stack trace.
func Persistence(op string, err error) *DomainError {
	return &DomainError{
		Code:    CodePersistenceFailed,
		Message: "claim store operation failed",
		Kind:    KindPersistence,
		Err:     eris.Wrap(err, op),
	}
}

// InvalidTransition reports a status move the state machine forbids.
func InvalidTransition(from, to string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot move claim from %q to %q", from, to),
		Kind:    KindInvalidTransition,
	}
}

// Locked reports an edit to a claim that has left Pending. It maps like an
// invalid transition.
func Locked(claimID, status string) *DomainError {
	return &DomainError{
		Code:    CodeClaimLocked,
		Message: fmt.Sprintf("claim %s is %s and can no longer be edited", claimID, status),
		Kind:    KindInvalidTransition,
	}
}

// KindOf returns the Kind of the first DomainError in err's chain, or "".
func KindOf(err error) Kind {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries a DomainError of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
