package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.config.level != DefaultLevel {
		t.Errorf("expected default level Info, got %v", logger.config.level)
	}

	if logger.config.format != DefaultFormat {
		t.Errorf("expected default format JSON, got %v", logger.config.format)
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()

	logger2 := Make(&buf, WithLevel(LevelError))
	logger2.Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger2.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Trace_BelowDebug(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace))
	logger.Trace("trace message")

	output := buf.String()
	if !strings.Contains(output, "trace message") {
		t.Error("trace message not logged at Trace level")
	}

	if !strings.Contains(output, "TRACE") {
		t.Errorf("expected TRACE level marker, got: %s", output)
	}

	buf.Reset()

	logger2 := Make(&buf, WithLevel(LevelDebug))
	logger2.Trace("hidden")

	if buf.Len() > 0 {
		t.Error("trace message logged when level is Debug")
	}
}

func TestLogger_Make_WithTimeLayout_SetsLayout(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		contains string
	}{
		{"rfc3339 named", "RFC3339", "T"},
		{"kitchen", "3:04PM", "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithTimeLayout(tt.format), WithPretty(false))
			logger.Info("test")

			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf(
					"expected time format to contain %q, got: %s",
					tt.contains,
					output,
				)
			}
		})
	}
}

func TestLogger_Make_FormatText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText))
	logger.Info("text message", slog.String("key", "value"))

	output := buf.String()
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected text-format attrs, got: %s", output)
	}
}

func TestLogger_Make_FormatJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON))
	logger.Info("json message", slog.Int("count", 3))

	var record map[string]any

	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if record["msg"] != "json message" {
		t.Errorf("expected msg field, got: %v", record["msg"])
	}

	if record["count"] != float64(3) {
		t.Errorf("expected count field 3, got: %v", record["count"])
	}
}

func TestLogger_ZeroValue_NoOp(t *testing.T) {
	var logger Logger

	// Must not panic; there is nothing to write to.
	logger.Info("discarded")
	logger.Error("discarded")
	logger.Trace("discarded")
}

func TestLogger_Wrap_OverridesOptions(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelError))

	wrapped := logger.Wrap(WithLevel(LevelDebug))
	wrapped.Debug("wrapped message")

	if !strings.Contains(buf.String(), "wrapped message") {
		t.Error("wrapped logger did not apply new level")
	}

	buf.Reset()
	logger.Debug("original message")

	if buf.Len() > 0 {
		t.Error("original logger config modified by Wrap")
	}
}

func TestLogger_With_AddsAttrs(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf).With(slog.String("component", "kernel"))
	logger.Info("attributed")

	output := buf.String()
	if !strings.Contains(output, "component") ||
		!strings.Contains(output, "kernel") {
		t.Errorf("expected bound attrs in output, got: %s", output)
	}
}

func TestLogger_Accessors(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelWarn), WithFormat(FormatText))

	if logger.Level() != LevelWarn {
		t.Errorf("expected LevelWarn, got %v", logger.Level())
	}

	if logger.Format() != FormatText {
		t.Errorf("expected FormatText, got %v", logger.Format())
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON))

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			for range 50 {
				logger.Info("concurrent", slog.Int("goroutine", n))
			}
		}(i)
	}

	wg.Wait()

	for line := range strings.Lines(buf.String()) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !json.Valid([]byte(line)) {
			t.Fatalf("interleaved log line is not valid JSON: %s", line)
		}
	}
}
