package domain

import (
	"fmt"
	"strings"
)

// Category is keyed by Key in categories.json; the key itself is not part of
// the stored object.
type Category struct {
	Key   string        `json:"-"`
	Name  LocalizedText `json:"name"`
	Emoji string        `json:"emoji,omitempty"`
	Icon  string        `json:"icon,omitempty"`
	Color string        `json:"color,omitempty"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("%w: category key required", ErrInvalid)
	}
	if c.Name.IsZero() {
		return fmt.Errorf("%w: category name required", ErrInvalid)
	}
	return nil
}

// Tag is keyed by Key in tags.json.
type Tag struct {
	Key  string        `json:"-"`
	Name LocalizedText `json:"name"`
}

func (t Tag) Validate() error {
	if strings.TrimSpace(t.Key) == "" {
		return fmt.Errorf("%w: tag key required", ErrInvalid)
	}
	if t.Name.IsZero() {
		return fmt.Errorf("%w: tag name required", ErrInvalid)
	}
	return nil
}
