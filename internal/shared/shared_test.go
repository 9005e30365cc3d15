package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "component", "test")
	SetLogLevel(logger, log.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=test") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("GenerateID() = %q is not a uuid: %v", id, err)
	}
	if GenerateID() == id {
		t.Error("expected unique ids")
	}
}

func TestGenerateNumericID(t *testing.T) {
	id := GenerateNumericID()
	if len(id) < 19 {
		t.Errorf("GenerateNumericID() = %q, expected at least 19 digits", id)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			t.Fatalf("GenerateNumericID() = %q contains non-digit %q", id, r)
		}
	}
}
