package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Languages the UI ships with. The first entry is the fallback.
var Languages = []string{"de", "en"}

// LocalizedText is either a plain string or a per-language map. The JSON shape
// is preserved on round trips so files edited by hand keep their layout.
type LocalizedText struct {
	plain     string
	localized map[string]string
}

// PlainText wraps a language-neutral string.
func PlainText(s string) LocalizedText {
	return LocalizedText{plain: s}
}

// Localized wraps a per-language map. Empty values are dropped.
func Localized(m map[string]string) LocalizedText {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out[strings.ToLower(k)] = v
	}
	return LocalizedText{localized: out}
}

// IsLocalized reports whether the text carries per-language variants.
func (t LocalizedText) IsLocalized() bool {
	return t.localized != nil
}

// IsZero reports whether there is no text in any language.
func (t LocalizedText) IsZero() bool {
	return strings.TrimSpace(t.plain) == "" && len(t.localized) == 0
}

// Resolve returns the text for lang, then for fallback, then for any language
// in Languages order, then any remaining variant.
func (t LocalizedText) Resolve(lang, fallback string) string {
	if !t.IsLocalized() {
		return t.plain
	}
	if v, ok := t.localized[strings.ToLower(lang)]; ok {
		return v
	}
	if v, ok := t.localized[strings.ToLower(fallback)]; ok {
		return v
	}
	for _, l := range Languages {
		if v, ok := t.localized[l]; ok {
			return v
		}
	}
	keys := make([]string, 0, len(t.localized))
	for k := range t.localized {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		return t.localized[keys[0]]
	}
	return ""
}

// Variants returns every non-empty text the value holds.
func (t LocalizedText) Variants() []string {
	if !t.IsLocalized() {
		if t.plain == "" {
			return nil
		}
		return []string{t.plain}
	}
	out := make([]string, 0, len(t.localized))
	for _, l := range Languages {
		if v, ok := t.localized[l]; ok {
			out = append(out, v)
		}
	}
	for k, v := range t.localized {
		if !isKnownLanguage(k) {
			out = append(out, v)
		}
	}
	return out
}

func isKnownLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.IsLocalized() {
		return json.Marshal(t.localized)
	}
	return json.Marshal(t.plain)
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = LocalizedText{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = PlainText(s)
		return nil
	case '{':
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("localized text: %w", err)
		}
		*t = Localized(m)
		return nil
	default:
		return fmt.Errorf("localized text: unexpected JSON %s", string(data))
	}
}

// LocalizedFromAny normalizes a decoded GeoJSON property value.
func LocalizedFromAny(v interface{}) LocalizedText {
	switch x := v.(type) {
	case nil:
		return LocalizedText{}
	case string:
		return PlainText(x)
	case LocalizedText:
		return x
	case map[string]string:
		return Localized(x)
	case map[string]interface{}:
		m := make(map[string]string, len(x))
		for k, val := range x {
			if s, ok := val.(string); ok {
				m[k] = s
			}
		}
		return Localized(m)
	default:
		return PlainText(fmt.Sprint(x))
	}
}

// value returns the form stored in GeoJSON properties.
func (t LocalizedText) value() interface{} {
	if t.IsLocalized() {
		m := make(map[string]interface{}, len(t.localized))
		for k, v := range t.localized {
			m[k] = v
		}
		return m
	}
	return t.plain
}

// Equal reports whether both values hold the same text in the same shape.
func (t LocalizedText) Equal(o LocalizedText) bool {
	if t.IsLocalized() != o.IsLocalized() {
		return false
	}
	if !t.IsLocalized() {
		return t.plain == o.plain
	}
	if len(t.localized) != len(o.localized) {
		return false
	}
	for k, v := range t.localized {
		if w, ok := o.localized[k]; !ok || w != v {
			return false
		}
	}
	return true
}
