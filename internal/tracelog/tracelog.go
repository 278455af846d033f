// Package tracelog is a minimal logger wrapper used for optional
// resolver trace output, modeled directly on the teacher's log.Logger
// wrapper (golang-dep's log/logger.go): a thin io.Writer wrapper with
// Logf/Logln helpers, so callers that don't want trace output simply
// never construct one.
package tracelog

import (
	"fmt"
	"io"
)

// Logger is a minimal wrapper around an io.Writer used for resolver
// trace output. A nil *Logger is valid and silently discards output,
// so components can hold an optional *Logger field without needing to
// nil-check at every call site.
type Logger struct {
	io.Writer
}

// New returns a new Logger which writes to w.
func New(w io.Writer) *Logger {
	return &Logger{Writer: w}
}

// Logln logs a line, doing nothing if l is nil.
func (l *Logger) Logln(args ...interface{}) {
	if l == nil {
		return
	}
	fmt.Fprintln(l, args...)
}

// Logf logs a formatted string, doing nothing if l is nil.
func (l *Logger) Logf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	fmt.Fprintf(l, format, args...)
}
