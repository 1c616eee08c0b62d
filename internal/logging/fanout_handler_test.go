package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if h := newFanoutHandler(nil, nil); h != slog.DiscardHandler {
		t.Fatal("expected the discard handler when every sink is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected a single sink to be returned unwrapped")
	}
}

func TestFanoutRespectsSinkLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	infoSink := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugSink := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newFanoutHandler(infoSink, debugSink))
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug enabled through the debug sink")
	}
	logger.Debug("only debug sink")
	logger.Info("both sinks")

	if strings.Contains(infoBuf.String(), "only debug sink") {
		t.Fatalf("info sink received debug record: %s", infoBuf.String())
	}
	if !strings.Contains(debugBuf.String(), "only debug sink") {
		t.Fatalf("debug sink missing debug record: %s", debugBuf.String())
	}
	for name, buf := range map[string]*bytes.Buffer{"info": &infoBuf, "debug": &debugBuf} {
		if !strings.Contains(buf.String(), "both sinks") {
			t.Fatalf("%s sink missing info record", name)
		}
	}
}

func TestFanoutPropagatesAttrsAndGroups(t *testing.T) {
	var a, b bytes.Buffer
	h := newFanoutHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil))
	slog.New(h).With("tracker", "RHD").WithGroup("upload").Info("sent", "status", 200)

	for _, buf := range []*bytes.Buffer{&a, &b} {
		out := buf.String()
		if !strings.Contains(out, `"tracker":"RHD"`) || !strings.Contains(out, `"upload":{"status":200}`) {
			t.Fatalf("unexpected output %s", out)
		}
	}
}

func TestTeeLogger(t *testing.T) {
	var baseBuf, teeBuf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&baseBuf, nil))
	TeeLogger(base, slog.NewJSONHandler(&teeBuf, nil)).Info("teed")
	if baseBuf.Len() == 0 || teeBuf.Len() == 0 {
		t.Fatalf("expected both sinks written, base=%d tee=%d", baseBuf.Len(), teeBuf.Len())
	}

	var onlyBuf bytes.Buffer
	TeeLogger(nil, slog.NewJSONHandler(&onlyBuf, nil)).Info("no base")
	if onlyBuf.Len() == 0 {
		t.Fatal("expected output without a base logger")
	}
}
