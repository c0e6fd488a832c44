package steps

import "errors"

var ErrAssertion = errors.New("assertion failed")

// AssertionError is a failed value check. It is a different kind from the
// resolution errors of pagefactory: the element was found, but its state
// is not what the scenario expects.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return e.Message
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrAssertion
}
