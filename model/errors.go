package model

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input. It is raised
// before any I/O is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError reports a mutation whose target record is absent.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// RepositoryError wraps a failed store operation.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// UploadError reports a blob transfer failure or a file that failed local
// validation (disallowed type, oversized).
type UploadError struct {
	Name   string
	Reason string
	Err    error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload %s: %s: %v", e.Name, e.Reason, e.Err)
	}
	return fmt.Sprintf("upload %s: %s", e.Name, e.Reason)
}

func (e *UploadError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
