package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("warn", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info().Msg("hidden")
	l.Warn().Str("k", "v").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %q", lines)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["message"] != "shown" || rec["k"] != "v" || rec["time"] == nil {
		t.Errorf("record = %v", rec)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New("chatty", &bytes.Buffer{}); err == nil {
		t.Error("expected error")
	}
}

func TestFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackit.log")
	l, closer, err := File("info", path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	l.Info().Msg("one")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"message":"one"`) {
		t.Errorf("log = %s", data)
	}
}

func TestFileEmptyPathDiscards(t *testing.T) {
	l, closer, err := File("info", "")
	if err != nil {
		t.Fatal(err)
	}
	l.Info().Msg("nowhere")
	if err := closer.Close(); err != nil {
		t.Error(err)
	}
}
