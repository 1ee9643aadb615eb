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

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// LogLevel defines the severity of the log
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// LogFormat defines the output format of the log
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Logger is the interface for logging SQL and internal messages
type Logger interface {
	SetLevel(level LogLevel)
	SetFormat(format LogFormat)
	SetOutput(w io.Writer)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SQL(sql string, duration time.Duration, args ...any)
}

// stdLogger is the default implementation of Logger
type stdLogger struct {
	mu     sync.Mutex
	level  LogLevel
	format LogFormat
	writer io.Writer
}

// NewStdLogger creates a new standard logger writing text to stdout at
// info level.
func NewStdLogger() Logger {
	return &stdLogger{
		level:  LogLevelInfo,
		format: LogFormatText,
		writer: os.Stdout,
	}
}

func (l *stdLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *stdLogger) SetFormat(format LogFormat) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = format
}

func (l *stdLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

func (l *stdLogger) Info(format string, args ...any) {
	l.log(LogLevelInfo, "INFO", fmt.Sprintf(format, args...), nil)
}

func (l *stdLogger) Warn(format string, args ...any) {
	l.log(LogLevelWarn, "WARN", fmt.Sprintf(format, args...), nil)
}

func (l *stdLogger) Error(format string, args ...any) {
	l.log(LogLevelError, "ERROR", fmt.Sprintf(format, args...), nil)
}

func (l *stdLogger) SQL(sql string, duration time.Duration, args ...any) {
	l.log(LogLevelInfo, "SQL", fmt.Sprintf("[%v] %s | args: %v", duration, sql, args), map[string]any{
		"sql":      sql,
		"duration": duration.String(),
		"args":     args,
	})
}

func (l *stdLogger) log(min LogLevel, level, msg string, fields map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level < min {
		return
	}

	now := time.Now()
	if l.format == LogFormatJSON {
		data := map[string]any{
			"time":  now.Format(time.RFC3339),
			"level": level,
		}
		if fields != nil {
			for k, v := range fields {
				data[k] = v
			}
		} else {
			data["msg"] = msg
		}
		json.NewEncoder(l.writer).Encode(data)
		return
	}

	if level == "SQL" {
		msg = sqlColor(msg) + msg + ansiReset
	}
	fmt.Fprintf(l.writer, "[GOCRUD] %s %s: %s\n", now.Format("2006-01-02 15:04:05"), level, msg)
}

func sqlColor(msg string) string {
	s := strings.ToUpper(msg)
	switch {
	case strings.Contains(s, "SELECT"):
		return ansiYellow
	case strings.Contains(s, "INSERT"), strings.Contains(s, "UPDATE"):
		return ansiGreen
	case strings.Contains(s, "DELETE"):
		return ansiRed
	default:
		return ansiCyan
	}
}
