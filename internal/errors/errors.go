package errors

import (
	stderrors "errors"
	"fmt"
)

// Error kinds returned by the params loader
var (
	ErrInvalidArguments = fmt.Errorf("INVALID_ARGUMENTS")
	ErrNotFound         = fmt.Errorf("NOT_FOUND")
	ErrIO               = fmt.Errorf("IO_ERROR")
	ErrOutOfMemory      = fmt.Errorf("OUT_OF_MEMORY")
)

// LoadError records the step of a load that failed and the file involved
type LoadError struct {
	Op   string
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError wraps validation errors
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s (value: %v): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ResourceError wraps resource-related errors
type ResourceError struct {
	Resource string
	Limit    interface{}
	Actual   interface{}
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s exceeded limit %v (actual: %v): %v", e.Resource, e.Limit, e.Actual, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Kind returns the taxonomy name of err, "SUCCESS" for nil and
// "UNKNOWN" for errors outside the taxonomy.
func Kind(err error) string {
	switch {
	case err == nil:
		return "SUCCESS"
	case stderrors.Is(err, ErrInvalidArguments):
		return ErrInvalidArguments.Error()
	case stderrors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case stderrors.Is(err, ErrIO):
		return ErrIO.Error()
	case stderrors.Is(err, ErrOutOfMemory):
		return ErrOutOfMemory.Error()
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	switch Kind(err) {
	case "SUCCESS":
		return 0
	case ErrInvalidArguments.Error():
		return 2
	case ErrNotFound.Error():
		return 3
	case ErrIO.Error():
		return 4
	case ErrOutOfMemory.Error():
		return 5
	default:
		return 1
	}
}
