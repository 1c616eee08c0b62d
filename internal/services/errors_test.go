package services_test

import (
	"errors"
	"strings"
	"testing"

	"marquee/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "mkbrr", "download", "fetch archive", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	for _, fragment := range []string{"mkbrr", "download", "fetch archive", "boom"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}

func TestWrapDefaults(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestOutcomeAndExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome string
		code    int
	}{
		{"validation", services.Wrap(services.ErrValidation, "A4K", "checks", "not 4K", nil), services.OutcomeRejected, 2},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "bad", nil), services.OutcomeRejected, 3},
		{"external", services.Wrap(services.ErrExternalTool, "mkbrr", "run", "exit 1", nil), services.OutcomeFailed, 4},
		{"transient", services.Wrap(services.ErrTransient, "upload", "post", "timeout", errors.New("io")), services.OutcomeFailed, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.Outcome(tt.err); got != tt.outcome {
				t.Fatalf("Outcome = %q, want %q", got, tt.outcome)
			}
			if got := services.ExitCode(tt.err); got != tt.code {
				t.Fatalf("ExitCode = %d, want %d", got, tt.code)
			}
		})
	}
	if services.ExitCode(nil) != 0 {
		t.Fatal("nil error should exit 0")
	}
}
