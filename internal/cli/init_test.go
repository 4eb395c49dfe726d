package cli

import (
	"bytes"
	"strings"
	"testing"

	"recycling/internal/config"
)

func TestSetupLoggerHonoursConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogLevel = "warn"
	cfg.LogFormat = "json"

	var buf bytes.Buffer
	logger := SetupLogger(cfg, &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"component":"app"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}
