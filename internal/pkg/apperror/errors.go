package apperror

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Field   string
	Msg     string
	Details []string
	Err     error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ConflictError reports an illegal state transition or a duplicate record.
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type AuthenticationError struct {
	Msg string
}

func (e AuthenticationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "authentication required"
}

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "forbidden"
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsAuthentication(err error) bool {
	var target AuthenticationError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

// Status maps err onto the HTTP status the API boundary answers with.
// Conflicts share 400 with validation failures.
func Status(err error) int {
	switch {
	case err == nil:
		return 200
	case IsValidation(err), IsConflict(err):
		return 400
	case IsAuthentication(err):
		return 401
	case IsForbidden(err):
		return 403
	case IsNotFound(err):
		return 404
	default:
		return 500
	}
}

// Details returns the per-field messages carried by a ValidationError.
func Details(err error) []string {
	var target ValidationError
	if errors.As(err, &target) {
		return target.Details
	}
	return nil
}
