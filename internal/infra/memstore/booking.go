package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"parish-reserve/internal/domain/booking"
	"parish-reserve/internal/infra"

	"github.com/google/uuid"
)

// BookingStore is the in-process booking ledger. Mutations touching a single
// resource are serialized through WithResourceLock so the conflict-check and
// the insert that follows it are atomic with respect to other writers of the
// same resource.
type BookingStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*booking.Booking

	lockMu        sync.Mutex
	resourceLocks map[uuid.UUID]*sync.Mutex
}

func NewBookingStore() *BookingStore {
	return &BookingStore{
		items:         make(map[uuid.UUID]*booking.Booking),
		resourceLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// WithResourceLock runs fn while holding this resource's mutation lock.
// Reads are not blocked; only competing mutators of the same resource wait.
func (s *BookingStore) WithResourceLock(ctx context.Context, resourceID uuid.UUID, fn func(ctx context.Context) error) error {
	s.lockMu.Lock()
	lock, ok := s.resourceLocks[resourceID]
	if !ok {
		lock = &sync.Mutex{}
		s.resourceLocks[resourceID] = lock
	}
	s.lockMu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(ctx)
}

func (s *BookingStore) Create(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[b.ID()]; ok {
		return infra.WrapStoreErr(nil, infra.KindDuplicateKey, "booking already exists", nil)
	}
	s.items[b.ID()] = cloneBooking(b)
	return nil
}

func (s *BookingStore) Update(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[b.ID()]; !ok {
		return infra.WrapStoreErr(nil, infra.KindNotFound, "booking not found", nil)
	}
	s.items[b.ID()] = cloneBooking(b)
	return nil
}

func (s *BookingStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.items[id]
	if !ok {
		return nil, infra.WrapStoreErr(nil, infra.KindNotFound, "booking not found", nil)
	}
	return cloneBooking(b), nil
}

// ListByResource returns the resource's bookings, optionally restricted to
// those intersecting [from, to). Zero bounds disable the restriction.
// Cancelled bookings are included; filtering them is the caller's concern.
func (s *BookingStore) ListByResource(_ context.Context, resourceID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*booking.Booking
	for _, b := range s.items {
		if b.ResourceID() != resourceID {
			continue
		}
		if !from.IsZero() && !b.Interval().End().After(from) {
			continue
		}
		if !to.IsZero() && !b.Interval().Start().Before(to) {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	sortBookings(out)
	return out, nil
}

func (s *BookingStore) ListAll(_ context.Context) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*booking.Booking, 0, len(s.items))
	for _, b := range s.items {
		out = append(out, cloneBooking(b))
	}
	sortBookings(out)
	return out, nil
}

// DeleteByResource removes every booking of the resource and strips dangling
// conflict references from bookings that pointed at the removed ones.
// Part of the resource-deletion cascade.
func (s *BookingStore) DeleteByResource(_ context.Context, resourceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := make(map[uuid.UUID]struct{})
	for id, b := range s.items {
		if b.ResourceID() == resourceID {
			removed[id] = struct{}{}
			delete(s.items, id)
		}
	}
	for _, b := range s.items {
		for id := range removed {
			b.RemoveConflict(id)
		}
	}
	return nil
}

func sortBookings(bs []*booking.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		si, sj := bs[i].Interval().Start(), bs[j].Interval().Start()
		if si.Equal(sj) {
			return bs[i].ID().String() < bs[j].ID().String()
		}
		return si.Before(sj)
	})
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	var rule *booking.Rule
	if b.Rule() != nil {
		r := *b.Rule()
		r.Weekdays = append([]time.Weekday(nil), b.Rule().Weekdays...)
		rule = &r
	}
	var seriesID *uuid.UUID
	if b.SeriesID() != nil {
		id := *b.SeriesID()
		seriesID = &id
	}
	return booking.ReconstructBooking(
		b.ID(), b.ResourceID(), seriesID,
		b.Interval(), b.Status(), b.Title(), b.Attendees(),
		cloneInt64Ptr(b.CostCents()), rule, b.Conflicts(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}
