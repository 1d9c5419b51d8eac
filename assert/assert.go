package assert

import "github.com/oomph-ac/aimbench/oerror"

// IsTrue panics with the formatted message if ok is false. It is reserved for programmer errors which must never be
// reachable through configuration or input.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
