package internal

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger returns log, or a logger discarding everything if log is nil.
func Logger(log *logrus.Logger) *logrus.Logger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
