package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	log, err := New("production", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("entry saved")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"entry saved"`) {
		t.Fatalf("expected json log line, got %q", string(b))
	}
}

func TestForTerminalWithoutFileIsSilent(t *testing.T) {
	log, err := ForTerminal("dev", "")
	if err != nil {
		t.Fatalf("for terminal: %v", err)
	}
	if log.Core().Enabled(0) {
		t.Fatalf("expected a no-op logger")
	}
}
