package slug

import "testing"

func TestNameToSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alservorstadt und Michelbeuern", "alservorstadt-und-michelbeuern"},
		{"Die schönsten Märkte", "die-schoensten-maerkte"},
		{"Ma\u0308rkte", "maerkte"},
		{"U\u0308BER den Gu\u0308rtel", "ueber-den-guertel"},
		{"Große Straße", "grosse-strasse"},
		{"ÜBER  den  Gürtel!", "ueber-den-guertel"},
		{"  Café   Sperl ", "cafe-sperl"},
		{"4. Bezirk / Wieden", "4-bezirk-wieden"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NameToSlug(tt.in); got != tt.want {
				t.Fatalf("NameToSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNameToSlug_Deterministic(t *testing.T) {
	name := "Spittelberg & Neubau"
	if NameToSlug(name) != NameToSlug(name) {
		t.Fatalf("expected stable output")
	}
}

func TestFold(t *testing.T) {
	if got := Fold("crème brûlée"); got != "creme brulee" {
		t.Fatalf("unexpected fold %q", got)
	}
}
