package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger()
	l.SetOutput(&buf)

	l.Info("hello %s", "world")
	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "hello world") {
		t.Errorf("Unexpected log output: %q", out)
	}
	if !strings.Contains(out, "[GOCRUD]") {
		t.Errorf("Expected [GOCRUD] prefix: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger()
	l.SetOutput(&buf)
	l.SetLevel(LogLevelError)

	l.Info("should not appear")
	l.Warn("should not appear")
	if buf.Len() != 0 {
		t.Errorf("Expected no output below error level, got %q", buf.String())
	}

	l.Error("boom")
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("Expected error output, got %q", buf.String())
	}

	buf.Reset()
	l.SetLevel(LogLevelSilent)
	l.Error("still silent")
	if buf.Len() != 0 {
		t.Errorf("Silent level should suppress everything, got %q", buf.String())
	}
}

func TestSQLLog(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger()
	l.SetOutput(&buf)

	l.SQL("SELECT users.id FROM users", 3*time.Millisecond, int64(1))
	out := buf.String()
	if !strings.Contains(out, "SELECT users.id FROM users") {
		t.Errorf("Expected SQL text in output: %q", out)
	}
	if !strings.Contains(out, "SQL") {
		t.Errorf("Expected SQL level marker: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger()
	l.SetOutput(&buf)
	l.SetFormat(LogFormatJSON)

	l.SQL("DELETE FROM users WHERE id = ?", time.Millisecond, int64(7))

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("Output is not valid JSON: %v (%q)", err, buf.String())
	}
	if data["level"] != "SQL" {
		t.Errorf("Expected level SQL, got %v", data["level"])
	}
	if data["sql"] != "DELETE FROM users WHERE id = ?" {
		t.Errorf("Expected sql field, got %v", data["sql"])
	}
}
