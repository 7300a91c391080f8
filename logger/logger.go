// Package logger defines the minimal logging contract the module accepts,
// shaped to be satisfied by go-logger without importing it here.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Logger is the contract the module logs through.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger attaches structured fields to a logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// Default returns a usable logger when none is injected.
func Default() Logger {
	return defaultLogger
}

// WriterLogger is a plain fallback logger that prints one line per entry,
// fields sorted for stable output. Intended for examples and tests; real
// deployments inject go-logger through the adapter.
type WriterLogger struct {
	Out    io.Writer
	fields map[string]any
	mu     sync.Mutex
}

// NewWriterLogger constructs a WriterLogger targeting stderr by default.
func NewWriterLogger(out io.Writer) *WriterLogger {
	if out == nil {
		out = os.Stderr
	}
	return &WriterLogger{Out: out}
}

// WithFields implements FieldsLogger.
func (l *WriterLogger) WithFields(fields map[string]any) Logger {
	if l == nil {
		return NewWriterLogger(nil)
	}
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &WriterLogger{Out: l.Out, fields: merged}
}

// WithContext implements Logger. The writer logger ignores context.
func (l *WriterLogger) WithContext(context.Context) Logger { return l }

func (l *WriterLogger) Trace(msg string, args ...any) { l.write("TRACE", msg, args) }
func (l *WriterLogger) Debug(msg string, args ...any) { l.write("DEBUG", msg, args) }
func (l *WriterLogger) Info(msg string, args ...any)  { l.write("INFO", msg, args) }
func (l *WriterLogger) Warn(msg string, args ...any)  { l.write("WARN", msg, args) }
func (l *WriterLogger) Error(msg string, args ...any) { l.write("ERROR", msg, args) }
func (l *WriterLogger) Fatal(msg string, args ...any) { l.write("FATAL", msg, args) }

func (l *WriterLogger) write(level, msg string, args []any) {
	if l == nil {
		return
	}
	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %s", level, msg)
	for _, key := range sortedKeys(l.fields) {
		fmt.Fprintf(&b, " %s=%v", key, l.fields[key])
	}
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 == 1 {
		fmt.Fprintf(&b, " %v", args[len(args)-1])
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(out, b.String())
}

func sortedKeys(fields map[string]any) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var defaultLogger Logger = NewWriterLogger(nil)

var _ Logger = (*WriterLogger)(nil)
var _ FieldsLogger = (*WriterLogger)(nil)
