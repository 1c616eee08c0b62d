package trackers

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"marquee/internal/config"
	"marquee/internal/naming"
	"marquee/internal/services"
)

func TestNewRegistry(t *testing.T) {
	var composed []string
	reg, err := NewRegistry(map[string]config.Tracker{
		"rhd": {Enabled: true, APIKey: "a"},
		"A4K": {Enabled: false, APIKey: "b"},
		"FLD": {Enabled: true, APIKey: "c"},
	}, func(name string) *naming.Composer {
		composed = append(composed, name)
		return nil
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if !reflect.DeepEqual(reg.Names(), []string{"A4K", "FLD", "RHD"}) {
		t.Fatalf("names = %v", reg.Names())
	}
	if len(composed) != 3 {
		t.Fatalf("composer requested %d times", len(composed))
	}
	if tr, ok := reg.Get("rhd"); !ok || tr.Name() != "RHD" {
		t.Fatal("expected case-insensitive lookup")
	}

	enabled, err := reg.Select(nil)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(enabled) != 2 || enabled[0].Name() != "FLD" || enabled[1].Name() != "RHD" {
		t.Fatalf("enabled = %v", enabled)
	}
	picked, err := reg.Select([]string{"a4k"})
	if err != nil || len(picked) != 1 || picked[0].Name() != "A4K" {
		t.Fatalf("Select(a4k) = %v, %v", picked, err)
	}
	if _, err := reg.Select([]string{"BHD"}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewRegistryRejectsUnknown(t *testing.T) {
	_, err := NewRegistry(map[string]config.Tracker{"XYZ": {}}, nil)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSelectSuggestsCloseNames(t *testing.T) {
	reg, err := NewRegistry(map[string]config.Tracker{"RHD": {Enabled: true}, "FLD": {}}, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	_, err = reg.Select([]string{"rdh"})
	if err == nil || !strings.Contains(err.Error(), "did you mean RHD?") {
		t.Fatalf("expected suggestion, got %v", err)
	}
	_, err = reg.Select([]string{"PTP"})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("unexpected suggestion in %v", err)
	}
}
