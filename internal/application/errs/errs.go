package errs

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (t NotFoundError) Error() string {
	if t.Err == nil {
		return fmt.Sprintf("%s not found", t.Resource)
	}
	return fmt.Sprintf("%s not found: %v", t.Resource, t.Err)
}

func (t NotFoundError) Unwrap() error {
	return t.Err
}

func NotFound(resource string) error {
	return NotFoundError{Resource: resource}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

type RetryableError struct {
	Err error
}

func (t RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %v", t.Err)
}

func (t RetryableError) Unwrap() error {
	return t.Err
}
