package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnauthorized            ErrorKind = "unauthorized"
	KindInvalidStateTransition  ErrorKind = "invalid_state_transition"
	KindNotFound                ErrorKind = "not_found"
	KindValidationFailed        ErrorKind = "validation_failed"
	KindDuplicateAssignment     ErrorKind = "duplicate_assignment"
	KindNoPriorAssignment       ErrorKind = "no_prior_assignment"
	KindNotPending              ErrorKind = "not_pending"
	KindDuplicatePendingRequest ErrorKind = "duplicate_pending_request"
)

// WorkflowError is the one error type the core surfaces to callers. All
// kinds are recoverable at the handler boundary; the helper maps them to
// HTTP statuses.
type WorkflowError struct {
	Kind    ErrorKind
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

func NewWorkflowError(kind ErrorKind, format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ErrUnauthorized(format string, args ...interface{}) *WorkflowError {
	return NewWorkflowError(KindUnauthorized, format, args...)
}

func ErrInvalidTransition(status ArticleStatus, action string) *WorkflowError {
	return NewWorkflowError(KindInvalidStateTransition, "cannot %s article in status %q", action, status)
}

func ErrNotFound(format string, args ...interface{}) *WorkflowError {
	return NewWorkflowError(KindNotFound, format, args...)
}

func ErrValidation(format string, args ...interface{}) *WorkflowError {
	return NewWorkflowError(KindValidationFailed, format, args...)
}

// KindOf returns the workflow error kind, or "" for foreign errors
// (storage failures propagate unchanged).
func KindOf(err error) ErrorKind {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}
