package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// defaultMaxLogBytes is the size at which an existing log file is rotated to
// <path>.1 when the logger is opened.
const defaultMaxLogBytes = 5 * 1024 * 1024

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
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Field is a key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for building a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Err builds the conventional "error" field.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

type Event struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Component string         `json:"component,omitempty"`
	Msg       string         `json:"msg"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// sink is shared between a logger and the children created by With.
type sink struct {
	mu   sync.Mutex
	w    io.Writer
	file *os.File
}

type Logger struct {
	out       *sink
	level     Level
	component string
	fields    []Field
}

// New opens a logger. An empty path or "-" logs to stderr; otherwise the file is
// opened for append with 0600 permissions, rotating it first if it has grown
// past the size limit.
func New(path string, level Level) (*Logger, error) {
	if path == "" || path == "-" {
		return NewWriter(os.Stderr, level), nil
	}

	if info, err := os.Stat(path); err == nil && info.Size() >= defaultMaxLogBytes {
		if err := os.Rename(path, path+".1"); err != nil {
			return nil, fmt.Errorf("rotating log file: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	return &Logger{out: &sink{w: file, file: file}, level: level}, nil
}

// NewWriter builds a logger on top of an arbitrary writer.
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{out: &sink{w: w}, level: level}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return NewWriter(io.Discard, LevelError+1)
}

// With returns a child logger tagged with component and carrying fields on
// every line. The child shares the parent's output.
func (l *Logger) With(component string, fields ...Field) *Logger {
	child := &Logger{
		out:       l.out,
		level:     l.level,
		component: component,
	}
	if component == "" {
		child.component = l.component
	}
	child.fields = append(append([]Field{}, l.fields...), fields...)
	return child
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *Logger) log(level Level, msg string, fields []Field) {
	if l == nil || level < l.level {
		return
	}

	event := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Component: l.component,
		Msg:       msg,
	}
	if n := len(l.fields) + len(fields); n > 0 {
		event.Fields = make(map[string]any, n)
		for _, f := range l.fields {
			event.Fields[f.Key] = f.Value
		}
		for _, f := range fields {
			event.Fields[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(event)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"level":%q,"msg":%q}`, event.Level, msg))
	}
	data = append(data, '\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	_, _ = l.out.w.Write(data)
}

func (l *Logger) Close() error {
	if l == nil || l.out.file == nil {
		return nil
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	err := l.out.file.Close()
	l.out.file = nil
	return err
}
