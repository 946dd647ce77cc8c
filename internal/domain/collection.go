package domain

import (
	"fmt"
	"slices"
	"time"
)

// CollectionKind separates curated lists from directional walkthroughs.
type CollectionKind string

const (
	KindList        CollectionKind = "list"
	KindWalkthrough CollectionKind = "walkthrough"
)

// Valid reports whether k is a known kind.
func (k CollectionKind) Valid() bool {
	return k == KindList || k == KindWalkthrough
}

// Plural is the aggregate key used in the JSON files and API paths.
func (k CollectionKind) Plural() string {
	return string(k) + "s"
}

// Collection is an ordered sequence of POI ids. For walkthroughs the order is
// the walking direction.
type Collection struct {
	ID          string         `json:"id"`
	Kind        CollectionKind `json:"-"`
	Title       LocalizedText  `json:"title"`
	Description LocalizedText  `json:"description,omitzero"`
	Slug        string         `json:"slug"`
	POIs        []string       `json:"pois"`
	CreatedAt   time.Time      `json:"createdAt,omitzero"`
	UpdatedAt   time.Time      `json:"updatedAt,omitzero"`
}

func (c Collection) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: unknown collection kind %q", ErrInvalid, c.Kind)
	}
	if c.Title.IsZero() {
		return fmt.Errorf("%w: title required", ErrInvalid)
	}
	return nil
}

// Directional reports whether consecutive stops are connected by arrows.
func (c Collection) Directional() bool {
	return c.Kind == KindWalkthrough
}

// MissingPOIs returns referenced ids that are not in known, in reference order.
func (c Collection) MissingPOIs(known map[string]struct{}) []string {
	var missing []string
	for _, id := range c.POIs {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// SameContent compares everything a client can edit; ids, kind and
// timestamps are ignored.
func (c Collection) SameContent(o Collection) bool {
	return c.Title.Equal(o.Title) &&
		c.Description.Equal(o.Description) &&
		c.Slug == o.Slug &&
		slices.Equal(c.POIs, o.POIs)
}
