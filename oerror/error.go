package oerror

import "fmt"

// AimbenchError is an error raised by the benchmark core. It carries a plain message so callers can surface it as a
// diagnostic without any further formatting.
type AimbenchError struct {
	Err string
}

// New returns a new AimbenchError, formatting the message with the arguments passed.
func New(format string, args ...any) *AimbenchError {
	return &AimbenchError{Err: fmt.Sprintf(format, args...)}
}

func (e *AimbenchError) Error() string {
	return e.Err
}
