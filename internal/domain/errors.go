package domain

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field string
	Msg   string
	Err   error
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

// AuthorizationError marks callers outside the administrator allow-list.
// It is distinct from ValidationError so the surface can return 403 vs 400.
type AuthorizationError struct {
	Email string
	Err   error
}

func (e AuthorizationError) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("%s is not an administrator", e.Email)
	}
	return "unauthorized"
}

func (e AuthorizationError) Unwrap() error { return e.Err }

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

// NotificationError covers gateway failures. It is always caught and
// downgraded to a failed dispatch outcome, never surfaced to callers.
type NotificationError struct {
	Msg string
	Err error
}

func (e NotificationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "notification failed"
}

func (e NotificationError) Unwrap() error { return e.Err }

// StoreError is fatal for the current invocation; the caller may re-trigger.
type StoreError struct {
	Op  string
	Err error
}

func (e StoreError) Error() string {
	if e.Op != "" && e.Err != nil {
		return fmt.Sprintf("store error during %s: %v", e.Op, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("store error during %s", e.Op)
	}
	return "store error"
}

func (e StoreError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsAuthorization(err error) bool {
	var target AuthorizationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsNotification(err error) bool {
	var target NotificationError
	return errors.As(err, &target)
}

func IsStore(err error) bool {
	var target StoreError
	return errors.As(err, &target)
}
