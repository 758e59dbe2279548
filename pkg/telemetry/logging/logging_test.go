package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseLevel(%q) should return an error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup("info", FormatJSON, &buf)
	if err != nil {
		t.Fatalf("Setup() returned error: %v", err)
	}

	logger.Info("hello", "env", "py311")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (output: %s)", err, buf.String())
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v, want %q", entry["msg"], "hello")
	}
	if entry["env"] != "py311" {
		t.Errorf("env = %v, want %q", entry["env"], "py311")
	}
}

func TestSetupTextLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup("warn", FormatText, &buf)
	if err != nil {
		t.Fatalf("Setup() returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info entry was emitted at warn level")
	}
	if !strings.Contains(out, "emitted") {
		t.Error("warn entry was not emitted")
	}
}

func TestSetupInstallsDefault(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Setup("info", FormatText, &buf); err != nil {
		t.Fatalf("Setup() returned error: %v", err)
	}

	slog.Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Error("Setup() did not install the process default logger")
	}
}

func TestSetupErrors(t *testing.T) {
	if _, err := Setup("nope", FormatText, nil); err == nil {
		t.Error("Setup() with an unknown level should return an error")
	}
	if _, err := Setup("info", Format("xml"), nil); err == nil {
		t.Error("Setup() with an unknown format should return an error")
	}
}
