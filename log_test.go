package imageview

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"golang.org/x/exp/slog"
)

func TestLogger(t *testing.T) {
	defer SetLogger(nil)

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("default logger is enabled")
	}

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Debug("measured", "outer", "400x200")
	if got := buf.String(); !strings.Contains(got, "msg=measured") || !strings.Contains(got, "outer=400x200") {
		t.Fatalf("unexpected log output %q", got)
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Warn("dropped")
	if buf.Len() != 0 {
		t.Fatalf("nil logger did not silence output: %q", buf.String())
	}
}
