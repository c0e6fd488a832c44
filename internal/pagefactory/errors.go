package pagefactory

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrWrongType  = errors.New("wrong type")
	ErrInvocation = errors.New("invocation failed")
	ErrInternal   = errors.New("internal invariant violated")

	ErrPageNotInitialized = errors.New("current page is not initialized")
)

// NotFoundError reports that a title (optionally inside a block path) did
// not resolve to any binding of the requested kind.
type NotFoundError struct {
	Kind      Kind
	Title     string
	Path      string
	Container string
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s '%s' is not present in block '%s' on '%s'", e.Kind, e.Title, e.Path, e.Container)
	}
	return fmt.Sprintf("%s '%s' is not present on '%s'", e.Kind, e.Title, e.Container)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// WrongTypeError reports a binding that matched by title but whose declared
// type cannot be viewed as the requested one.
type WrongTypeError struct {
	Title     string
	Container string
	Requested reflect.Type
	Declared  reflect.Type
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("element '%s' was found on '%s', but its type is incorrect. Requested '%s', but got '%s'",
		e.Title, e.Container, typeName(e.Requested), typeName(e.Declared))
}

func (e *WrongTypeError) Is(target error) bool {
	return target == ErrWrongType
}

// InvocationError wraps a failure raised by, or while calling, a dispatched
// action or validation rule.
type InvocationError struct {
	Title     string
	Container string
	Cause     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("failed to execute '%s' on '%s': %v", e.Title, e.Container, e.Cause)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocation
}

// InternalError signals a programming defect in a declared model: a binding
// that was enumerated but could not be read.
type InternalError struct {
	Operation string
	Title     string
	Container string
	Cause     error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error during %s of '%s' in '%s': %v", e.Operation, e.Title, e.Container, e.Cause)
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// PreconditionError is returned when an operation needs a current page and
// none has been established yet.
type PreconditionError struct {
	Operation string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, ErrPageNotInitialized)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPageNotInitialized
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// IsNotFound reports whether err is a resolution miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
