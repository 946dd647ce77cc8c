package poi

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"graetzlmap/internal/domain"
)

type stubRepo struct {
	items   map[string]domain.POI
	created []domain.POI
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: map[string]domain.POI{}}
}

func (s *stubRepo) List(context.Context) ([]domain.POI, error) {
	out := make([]domain.POI, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.POI, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubRepo) Create(_ context.Context, p domain.POI) (*domain.POI, error) {
	if _, ok := s.items[p.ID]; ok {
		return nil, domain.ErrConflict
	}
	s.items[p.ID] = p
	s.created = append(s.created, p)
	return &p, nil
}

func (s *stubRepo) Update(_ context.Context, p domain.POI) (*domain.POI, error) {
	if _, ok := s.items[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.items[p.ID] = p
	return &p, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type stubCache struct{ invalidations int }

func (c *stubCache) Invalidate() { c.invalidations++ }

func validPOI() domain.POI {
	return domain.POI{Name: " Prater ", Category: "park", Tags: []string{"kids", " kids", ""}, Location: orb.Point{16.4, 48.21}}
}

func TestService_CreateAssignsIDAndInvalidates(t *testing.T) {
	repo := newStubRepo()
	cache := &stubCache{}
	svc := New(repo, cache, nil)

	p, err := svc.Create(context.Background(), validPOI())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(p.ID, "poi-") {
		t.Fatalf("expected generated id, got %q", p.ID)
	}
	if p.Name != "Prater" || !reflect.DeepEqual(p.Tags, []string{"kids"}) {
		t.Fatalf("expected normalized poi, got %+v", p)
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected cache invalidation, got %d", cache.invalidations)
	}
}

func TestService_CreateTwiceMakesTwoRecords(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo, nil, nil)
	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), validPOI()); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if len(repo.created) != 2 || repo.created[0].ID == repo.created[1].ID {
		t.Fatalf("expected two distinct records, got %+v", repo.created)
	}
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*domain.POI)
	}{
		{"missing name", func(p *domain.POI) { p.Name = " " }},
		{"missing category", func(p *domain.POI) { p.Category = "" }},
		{"missing coordinates", func(p *domain.POI) { p.Location = orb.Point{} }},
		{"latitude out of range", func(p *domain.POI) { p.Location = orb.Point{16.4, 95} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &stubCache{}
			svc := New(newStubRepo(), cache, nil)
			p := validPOI()
			tt.mod(&p)
			if _, err := svc.Create(context.Background(), p); !errors.Is(err, domain.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if cache.invalidations != 0 {
				t.Fatalf("cache invalidated on failed create")
			}
		})
	}
}

func TestService_UpdateUsesPathID(t *testing.T) {
	repo := newStubRepo()
	repo.items["poi-1"] = domain.POI{ID: "poi-1", Name: "Old", Category: "park", Location: orb.Point{16.4, 48.21}}
	svc := New(repo, nil, nil)

	p := validPOI()
	p.ID = "something-else"
	out, err := svc.Update(context.Background(), "poi-1", p)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.ID != "poi-1" || repo.items["poi-1"].Name != "Prater" {
		t.Fatalf("expected path id to win, got %+v", out)
	}
	if _, ok := repo.items["something-else"]; ok {
		t.Fatalf("payload id must not create a record")
	}

	if _, err := svc.Update(context.Background(), "missing", validPOI()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := newStubRepo()
	repo.items["poi-1"] = domain.POI{ID: "poi-1"}
	cache := &stubCache{}
	svc := New(repo, cache, nil)
	if err := svc.Delete(context.Background(), "poi-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "poi-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected one invalidation, got %d", cache.invalidations)
	}
}
