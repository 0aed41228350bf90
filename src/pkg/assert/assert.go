package assert

import "fmt"

// Assert panics when the condition doesn't hold. Used for programmer
// invariants, never for recoverable input validation.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
