package domain

import (
	"encoding/json"
	"testing"
)

func TestLocalizedText_UnmarshalKeepsShape(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		localized bool
		de        string
		en        string
	}{
		{"plain string", `"Kaffeehaus"`, false, "Kaffeehaus", "Kaffeehaus"},
		{"localized map", `{"de":"Markt","en":"Market"}`, true, "Markt", "Market"},
		{"only german", `{"de":"Markt"}`, true, "Markt", "Markt"},
		{"null", `null`, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txt LocalizedText
			if err := json.Unmarshal([]byte(tt.input), &txt); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if txt.IsLocalized() != tt.localized {
				t.Fatalf("expected localized=%v", tt.localized)
			}
			if got := txt.Resolve("de", "en"); got != tt.de {
				t.Fatalf("de: expected %q, got %q", tt.de, got)
			}
			if got := txt.Resolve("en", "de"); got != tt.en {
				t.Fatalf("en: expected %q, got %q", tt.en, got)
			}
			if tt.input == "null" {
				return
			}
			out, err := json.Marshal(txt)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var again LocalizedText
			if err := json.Unmarshal(out, &again); err != nil {
				t.Fatalf("unmarshal again: %v", err)
			}
			if again.IsLocalized() != tt.localized {
				t.Fatalf("shape changed on round trip: %s", out)
			}
		})
	}
}

func TestLocalizedText_RejectsNumbers(t *testing.T) {
	var txt LocalizedText
	if err := json.Unmarshal([]byte(`42`), &txt); err == nil {
		t.Fatalf("expected error for numeric text")
	}
}

func TestLocalizedFromAny(t *testing.T) {
	txt := LocalizedFromAny(map[string]interface{}{"de": "Hallo", "en": "Hello", "fr": 3})
	if !txt.IsLocalized() || txt.Resolve("en", "de") != "Hello" {
		t.Fatalf("unexpected %+v", txt)
	}
	if got := LocalizedFromAny("x").Resolve("en", "de"); got != "x" {
		t.Fatalf("expected plain passthrough, got %q", got)
	}
	if !LocalizedFromAny(nil).IsZero() {
		t.Fatalf("expected zero text for nil")
	}
}
