// Package checkfail defines the sentinel error used to accumulate conformance
// diagnostics as the checker descends into nested values.
package checkfail

import "fmt"

// CheckFailure is the single kind of error the conformance checker raises for
// a value that fails to conform to a type. Its Message already carries any
// "While checking ..." context appended by enclosing frames.
type CheckFailure struct {
	Message string
}

func (f *CheckFailure) Error() string {
	return f.Message
}

// New creates a CheckFailure with the given message.
func New(format string, args ...any) *CheckFailure {
	return &CheckFailure{Message: fmt.Sprintf(format, args...)}
}

// Wrap appends a "While checking <shortValue> against type <shortType>" line
// to an existing failure, producing the failure the enclosing frame re-raises.
func Wrap(inner *CheckFailure, shortValue, shortType string) *CheckFailure {
	return &CheckFailure{
		Message: inner.Message + fmt.Sprintf("\nWhile checking %s against type %s", shortValue, shortType),
	}
}

// As reports whether err is a *CheckFailure and returns it.
func As(err error) (*CheckFailure, bool) {
	cf, ok := err.(*CheckFailure)
	return cf, ok
}
