package geoquery

import (
	"strings"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/slug"
)

// NeighborhoodMatch is a neighborhood entry of the search dropdown.
type NeighborhoodMatch struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SearchResult groups matches the way the dropdown shows them.
type SearchResult struct {
	Neighborhoods []NeighborhoodMatch `json:"neighborhoods"`
	POIs          []domain.POI        `json:"-"`
}

// Search matches term against neighborhood names and POI names and
// descriptions in every language, ignoring case and diacritics. Names that
// start with the term rank before names that only contain it. limit <= 0
// means no limit per group.
func Search(d *Dataset, term, lang string, limit int) SearchResult {
	res := SearchResult{Neighborhoods: []NeighborhoodMatch{}, POIs: []domain.POI{}}
	q := strings.TrimSpace(slug.Normalize(term))
	if q == "" || d == nil {
		return res
	}

	var prefixN, containsN []NeighborhoodMatch
	for _, n := range d.Neighborhoods {
		if !n.Active {
			continue
		}
		rank := bestRank(q, n.Name.Variants())
		if rank == noMatch {
			continue
		}
		m := NeighborhoodMatch{ID: n.ID, Name: n.Name.Resolve(lang, domain.Languages[0]), Slug: n.Slug}
		if rank == prefixMatch {
			prefixN = append(prefixN, m)
		} else {
			containsN = append(containsN, m)
		}
	}
	res.Neighborhoods = truncate(append(prefixN, containsN...), limit)

	var prefixP, containsP []domain.POI
	for _, p := range d.POIs {
		rank := bestRank(q, []string{p.Name})
		if rank == noMatch {
			if bestRank(q, p.Description.Variants()) != noMatch {
				rank = containsMatch
			}
		}
		switch rank {
		case prefixMatch:
			prefixP = append(prefixP, p)
		case containsMatch:
			containsP = append(containsP, p)
		}
	}
	res.POIs = truncate(append(prefixP, containsP...), limit)
	return res
}

type matchRank int

const (
	noMatch matchRank = iota
	containsMatch
	prefixMatch
)

func bestRank(q string, texts []string) matchRank {
	best := noMatch
	for _, t := range texts {
		n := slug.Normalize(t)
		switch {
		case strings.HasPrefix(n, q):
			return prefixMatch
		case strings.Contains(n, q):
			best = containsMatch
		}
	}
	return best
}

func truncate[T any](items []T, limit int) []T {
	if items == nil {
		return []T{}
	}
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
