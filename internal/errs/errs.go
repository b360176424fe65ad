package errs

import "fmt"

type ErrLengthMismatch struct {
	Push   int
	Target int
}

func (e ErrLengthMismatch) Error() string {
	return fmt.Sprintf("push order has %d elements but target order has %d", e.Push, e.Target)
}
func (e ErrLengthMismatch) Is(err error) bool {
	_, ok := err.(ErrLengthMismatch)
	return ok
}

// ErrUnexpectedResult is returned when a case declares an expected result
// that the check does not produce.
type ErrUnexpectedResult struct {
	Case string
	Want bool
	Got  bool
}

func (e ErrUnexpectedResult) Error() string {
	return fmt.Sprintf("case %q: got %t, want %t", e.Case, e.Got, e.Want)
}
func (e ErrUnexpectedResult) Is(err error) bool {
	_, ok := err.(ErrUnexpectedResult)
	return ok
}
