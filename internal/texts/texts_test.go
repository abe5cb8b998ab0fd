package texts

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeTexts(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "texts.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing texts file: %v", err)
	}
	return path
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLoadAndGet(t *testing.T) {
	path := writeTexts(t, `{"btn-skip": "Пропустити", "message-track-diet": "Скільки калорій?"}`)

	txt, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := txt.Get("btn-skip"); got != "Пропустити" {
		t.Errorf("unexpected text: %s", got)
	}
	if got := txt.Get("no-such-key"); got != "" {
		t.Errorf("missing key must yield empty string, got %s", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json"), testLogger()); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeTexts(t, `{"unterminated`)
	if _, err := Load(path, testLogger()); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}
