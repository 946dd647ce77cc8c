package collection

import (
	"context"
	"fmt"

	"graetzlmap/internal/domain"
)

// Repository stores lists and walkthroughs. Every call is scoped to one kind;
// ids are unique per kind.
//
// Create and Update treat c.Slug as a base and store the first free variant
// within the kind (base, base-2, base-3, ...). The check happens in the same
// critical section as the write. Update keeps the stored CreatedAt, and keeps
// UpdatedAt when the content did not change, so repeating it is a no-op.
type Repository interface {
	List(ctx context.Context, kind domain.CollectionKind) ([]domain.Collection, error)
	GetByID(ctx context.Context, kind domain.CollectionKind, id string) (*domain.Collection, error)
	GetBySlug(ctx context.Context, kind domain.CollectionKind, slug string) (*domain.Collection, error)
	Create(ctx context.Context, c domain.Collection) (*domain.Collection, error)
	Update(ctx context.Context, c domain.Collection) (*domain.Collection, error)
	Delete(ctx context.Context, kind domain.CollectionKind, id string) error
}

// UniqueSlug returns base, or base-N with the smallest N >= 2, such that no
// other collection in items uses it. The collection with id is ignored.
func UniqueSlug(items []domain.Collection, id, base string) string {
	taken := make(map[string]struct{}, len(items))
	for _, c := range items {
		if c.ID != id {
			taken[c.Slug] = struct{}{}
		}
	}
	candidate := base
	for i := 2; ; i++ {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// carryOver copies the fields the store owns from the stored record.
func carryOver(c *domain.Collection, stored domain.Collection) {
	c.CreatedAt = stored.CreatedAt
	if c.SameContent(stored) {
		c.UpdatedAt = stored.UpdatedAt
	}
}
