// Package log routes the vault core's diagnostic events to a caller-installed
// sink. No sink is installed by default, so the core stays silent and pays
// nothing on the logging path unless the embedding application asks for
// events. An event carrying a core error surfaces that error's Kind and Op
// as structured fields, letting sinks aggregate failures by taxonomy instead
// of by message text.
package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	vaulterrors "keeptower/internal/errors"
)

// Level classifies an event's severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Field is a key-value pair attached to an event.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Sink consumes diagnostic events. Implementations must be safe for
// concurrent calls.
type Sink func(level Level, msg string, fields []Field)

var (
	sinkMu sync.RWMutex
	sink   Sink
)

// SetSink installs the event sink. Call with nil to silence the core again.
func SetSink(s Sink) {
	sinkMu.Lock()
	sink = s
	sinkMu.Unlock()
}

func emit(level Level, msg string, fields []Field) {
	sinkMu.RLock()
	s := sink
	sinkMu.RUnlock()
	if s == nil {
		return
	}
	s(level, msg, fields)
}

// Debug emits a debug event.
func Debug(msg string, fields ...Field) {
	emit(LevelDebug, msg, fields)
}

// Info emits an info event.
func Info(msg string, fields ...Field) {
	emit(LevelInfo, msg, fields)
}

// Warn emits a warning event.
func Warn(msg string, fields ...Field) {
	emit(LevelWarn, msg, fields)
}

// Error emits an error event.
func Error(msg string, fields ...Field) {
	emit(LevelError, msg, fields)
}

// ErrorE emits an error event describing err. When err is a
// *errors.VaultError its Kind and Op become "kind" and "op" fields next to
// the error text, so a sink can count decoding failures apart from crypto
// failures without parsing messages.
func ErrorE(msg string, err error, fields ...Field) {
	emit(LevelError, msg, appendErrFields(fields, err))
}

func appendErrFields(fields []Field, err error) []Field {
	if err == nil {
		return fields
	}
	out := append(fields, Field{Key: "error", Value: err.Error()})
	var ve *vaulterrors.VaultError
	if vaulterrors.As(err, &ve) {
		out = append(out,
			Field{Key: "kind", Value: ve.Kind.String()},
			Field{Key: "op", Value: ve.Op},
		)
	}
	return out
}

// WriterSink returns a Sink that writes one "timestamp LEVEL message
// key=value ..." line per event to w, dropping events below min.
func WriterSink(w io.Writer, min Level) Sink {
	var mu sync.Mutex
	return func(level Level, msg string, fields []Field) {
		if level < min {
			return
		}
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(w, "%s %s %s", time.Now().Format("2006-01-02 15:04:05.000"), level.String(), msg)
		for _, f := range fields {
			fmt.Fprintf(w, " %s=%v", f.Key, f.Value)
		}
		fmt.Fprintln(w)
	}
}
