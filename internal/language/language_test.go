package language

import (
	"testing"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en-US", "en"},
		{"de-DE", "de"},
		{"German", "de"},
		{"english", "en"},
		{"GERMAN", "de"},
		{"Deutsch", "de"},
		{"eng", "en"},
		{"ger", "de"},
		{"deu", "de"},
		{"fre", "fr"},
		{"DE", "de"},
		{"xy", "xy"},
		{"Ukrainian", "uk"},
		{"klingon", "klingon"},
		{"  ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeCode(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeCode(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExpandName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"de", "GERMAN"},
		{"eng", "ENGLISH"},
		{"ger", "GERMAN"},
		{"German", "GERMAN"},
		{"fr", "FRENCH"},
		{"uk", "UKRAINIAN"},
		{"en-US", "ENGLISH"},
		{"pt-BR", "PORTUGUESE"},
		{"de_AT", "GERMAN"},
		{"klingon", "KLINGON"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ExpandName(tt.input)
			if result != tt.expected {
				t.Errorf("ExpandName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"eng", "en"},
		{"fra", "fr"},
		{"fre", "fr"},
		{"deu", "de"},
		{"ger", "de"},
		{"chi", "zh"},
		{"dut", "nl"},
		{"French", "fr"},
		{"xy", "xy"},
		{"klingon", ""},
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ToISO2(tt.input)
			if result != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		want  Language
		ok    bool
	}{
		{"de", Language{Code2: "de", Code3: "deu", Name: "German"}, true},
		{"GER", Language{Code2: "de", Code3: "deu", Name: "German"}, true},
		{"Flemish", Language{Code2: "nl", Code3: "nld", Name: "Dutch"}, true},
		{"eng", Language{Code2: "en", Code3: "eng", Name: "English"}, true},
		{"en-US", Language{Code2: "en", Code3: "eng", Name: "English"}, true},
		{"klingon", Language{}, false},
		{"", Language{}, false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Lookup(%q) = %+v, %v; want %+v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"ger", "German"},
		{"nld", "Dutch"},
		{"", "Unknown"},
		{"klingon", "KLINGON"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := DisplayName(tt.input)
			if result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, nil},
		{"dedup", []string{"en", "English", "eng"}, []string{"en"}},
		{"regions", []string{"de-DE", "en-US"}, []string{"de", "en"}},
		{"strips whitespace", []string{" en ", " "}, []string{"en"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeList(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("NormalizeList(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("NormalizeList(%v)[%d] = %q, want %q", tt.input, i, result[i], tt.expected[i])
				}
			}
		})
	}
}
