package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"parish-reserve/internal/domain/maintenance"
	"parish-reserve/internal/infra"

	"github.com/google/uuid"
)

// MaintenanceStore holds the recurring maintenance schedules per resource.
type MaintenanceStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*maintenance.Schedule
}

func NewMaintenanceStore() *MaintenanceStore {
	return &MaintenanceStore{items: make(map[uuid.UUID]*maintenance.Schedule)}
}

func (s *MaintenanceStore) Create(_ context.Context, sc *maintenance.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[sc.ID()]; ok {
		return infra.WrapStoreErr(nil, infra.KindDuplicateKey, "maintenance schedule already exists", nil)
	}
	s.items[sc.ID()] = cloneSchedule(sc)
	return nil
}

func (s *MaintenanceStore) Update(_ context.Context, sc *maintenance.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[sc.ID()]; !ok {
		return infra.WrapStoreErr(nil, infra.KindNotFound, "maintenance schedule not found", nil)
	}
	s.items[sc.ID()] = cloneSchedule(sc)
	return nil
}

func (s *MaintenanceStore) FindByID(_ context.Context, id uuid.UUID) (*maintenance.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.items[id]
	if !ok {
		return nil, infra.WrapStoreErr(nil, infra.KindNotFound, "maintenance schedule not found", nil)
	}
	return cloneSchedule(sc), nil
}

// List returns schedules ordered by next-due date; a nil resourceID returns
// all of them.
func (s *MaintenanceStore) List(_ context.Context, resourceID *uuid.UUID) ([]*maintenance.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*maintenance.Schedule
	for _, sc := range s.items {
		if resourceID != nil && sc.ResourceID() != *resourceID {
			continue
		}
		out = append(out, cloneSchedule(sc))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextDue().Equal(out[j].NextDue()) {
			return out[i].NextDue().Before(out[j].NextDue())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

// DeleteByResource is part of the resource-deletion cascade.
func (s *MaintenanceStore) DeleteByResource(_ context.Context, resourceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sc := range s.items {
		if sc.ResourceID() == resourceID {
			delete(s.items, id)
		}
	}
	return nil
}

func cloneSchedule(sc *maintenance.Schedule) *maintenance.Schedule {
	var last *time.Time
	if sc.LastCompleted() != nil {
		t := *sc.LastCompleted()
		last = &t
	}
	return maintenance.ReconstructSchedule(
		sc.ID(), sc.ResourceID(), sc.TaskType(), sc.Frequency(),
		sc.NextDue(), sc.Priority(), cloneInt64Ptr(sc.EstCostCents()), last,
		sc.CreatedAt(), sc.UpdatedAt(),
	)
}
