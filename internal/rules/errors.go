package rules

import "fmt"

// Error is a structural problem in a rule source. Resolution stops at the
// first one.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}

	return e.Pos.String() + ": " + e.Msg
}

func errorf(pos Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Errorf builds a positioned *Error.
func Errorf(pos Position, format string, args ...any) *Error {
	return errorf(pos, format, args...)
}
