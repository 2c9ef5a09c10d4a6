package session

import (
	"fmt"
	"io"
	"strings"
)

// Output fans each emitted message out to an ordered list of sinks.
type Output struct {
	sinks []io.Writer
}

// NewOutput creates an Output writing to console and, when capture is non-nil, to capture as well.
func NewOutput(console, capture io.Writer) *Output {
	o := &Output{}
	o.Attach(console)
	o.Attach(capture)
	return o
}

// Attach adds a sink. Nil writers are ignored.
func (o *Output) Attach(w io.Writer) {
	if w != nil {
		o.sinks = append(o.sinks, w)
	}
}

// Emit writes msg to every sink, adding a trailing newline unless msg already ends with one.
func (o *Output) Emit(msg string) error {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	for _, w := range o.sinks {
		if _, err := io.WriteString(w, msg); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// Emitf formats according to format and emits the result.
func (o *Output) Emitf(format string, args ...any) error {
	return o.Emit(fmt.Sprintf(format, args...))
}
