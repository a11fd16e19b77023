package memstore

import (
	"context"
	"sort"
	"sync"

	"parish-reserve/internal/domain/resource"
	"parish-reserve/internal/infra"

	"github.com/google/uuid"
)

// ResourceStore is the in-process resource catalog. Entities are cloned on
// the way in and out so callers always work on snapshots.
type ResourceStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*resource.Resource
}

func NewResourceStore() *ResourceStore {
	return &ResourceStore{items: make(map[uuid.UUID]*resource.Resource)}
}

func (s *ResourceStore) Create(_ context.Context, r *resource.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[r.ID()]; ok {
		return infra.WrapStoreErr(nil, infra.KindDuplicateKey, "resource already exists", nil)
	}
	s.items[r.ID()] = cloneResource(r)
	return nil
}

func (s *ResourceStore) Update(_ context.Context, r *resource.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[r.ID()]; !ok {
		return infra.WrapStoreErr(nil, infra.KindNotFound, "resource not found", nil)
	}
	s.items[r.ID()] = cloneResource(r)
	return nil
}

func (s *ResourceStore) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[id]
	if !ok {
		return nil, infra.WrapStoreErr(nil, infra.KindNotFound, "resource not found", nil)
	}
	return cloneResource(r), nil
}

func (s *ResourceStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return infra.WrapStoreErr(nil, infra.KindNotFound, "resource not found", nil)
	}
	delete(s.items, id)
	return nil
}

// List returns resources filtered by optional category and status, ordered
// by name for stable listings.
func (s *ResourceStore) List(_ context.Context, category *resource.Category, status *resource.Status) ([]*resource.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*resource.Resource
	for _, r := range s.items {
		if category != nil && r.Category() != *category {
			continue
		}
		if status != nil && r.Status() != *status {
			continue
		}
		out = append(out, cloneResource(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name() != out[j].Name() {
			return out[i].Name() < out[j].Name()
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

func cloneResource(r *resource.Resource) *resource.Resource {
	return resource.ReconstructResource(
		r.ID(), r.Name(), r.Category(), r.Status(), r.Condition(),
		cloneIntPtr(r.Capacity()), cloneIntPtr(r.Quantity()), cloneInt64Ptr(r.ValueCents()),
		r.CreatedAt(), r.UpdatedAt(),
	)
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
