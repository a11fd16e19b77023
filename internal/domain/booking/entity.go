package booking

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrNegativeCost     = errors.New("booking cost cannot be negative")
)

// Booking reserves a resource for a half-open interval. Conflicts with other
// non-cancelled bookings on the same resource are recorded as data, not
// rejected; the conflict set is maintained symmetrically by the ledger.
type Booking struct {
	id         uuid.UUID
	resourceID uuid.UUID
	seriesID   *uuid.UUID
	interval   Interval
	status     Status
	title      string
	attendees  int
	costCents  *int64
	rule       *Rule
	conflicts  map[uuid.UUID]struct{}
	createdAt  time.Time
	updatedAt  time.Time
}

func NewBooking(
	resourceID uuid.UUID,
	interval Interval,
	title string,
	attendees int,
	costCents *int64,
	rule *Rule,
	now time.Time,
) (*Booking, error) {
	if costCents != nil && *costCents < 0 {
		return nil, ErrNegativeCost
	}
	if rule != nil {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}

	return &Booking{
		id:         uuid.New(),
		resourceID: resourceID,
		interval:   interval,
		status:     StatusPending,
		title:      title,
		attendees:  attendees,
		costCents:  costCents,
		rule:       rule,
		conflicts:  make(map[uuid.UUID]struct{}),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructBooking(
	id, resourceID uuid.UUID,
	seriesID *uuid.UUID,
	interval Interval,
	status Status,
	title string,
	attendees int,
	costCents *int64,
	rule *Rule,
	conflicts []uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	set := make(map[uuid.UUID]struct{}, len(conflicts))
	for _, c := range conflicts {
		set[c] = struct{}{}
	}
	return &Booking{
		id:         id,
		resourceID: resourceID,
		seriesID:   seriesID,
		interval:   interval,
		status:     status,
		title:      title,
		attendees:  attendees,
		costCents:  costCents,
		rule:       rule,
		conflicts:  set,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Occurrence derives an independent booking for one expanded occurrence of a
// recurring booking. The result shares the anchor's series id and carries no
// rule of its own.
func (b *Booking) Occurrence(interval Interval, now time.Time) *Booking {
	seriesID := b.id
	return &Booking{
		id:         uuid.New(),
		resourceID: b.resourceID,
		seriesID:   &seriesID,
		interval:   interval,
		status:     b.status,
		title:      b.title,
		attendees:  b.attendees,
		costCents:  b.costCents,
		conflicts:  make(map[uuid.UUID]struct{}),
		createdAt:  now,
		updatedAt:  now,
	}
}

func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) ChangeStatus(status Status, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	b.status = status
	b.updatedAt = now
	return nil
}

func (b *Booking) Retitle(title string, now time.Time) {
	b.title = title
	b.updatedAt = now
}

func (b *Booking) Reschedule(interval Interval, now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.interval = interval
	b.updatedAt = now
	return nil
}

// IsActive reports whether the booking participates in conflict detection
// and availability computation. Cancelled bookings are kept for history but
// excluded from both.
func (b *Booking) IsActive() bool {
	return b.status != StatusCancelled
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

func (b *Booking) AddConflict(id uuid.UUID) {
	if id == b.id {
		return
	}
	b.conflicts[id] = struct{}{}
}

func (b *Booking) RemoveConflict(id uuid.UUID) {
	delete(b.conflicts, id)
}

func (b *Booking) ClearConflicts() {
	b.conflicts = make(map[uuid.UUID]struct{})
}

func (b *Booking) HasConflictWith(id uuid.UUID) bool {
	_, ok := b.conflicts[id]
	return ok
}

// Conflicts returns the conflicting booking ids in a stable order.
func (b *Booking) Conflicts() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.conflicts))
	for id := range b.conflicts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) SeriesID() *uuid.UUID  { return b.seriesID }
func (b *Booking) Interval() Interval    { return b.interval }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) Title() string         { return b.title }
func (b *Booking) Attendees() int        { return b.attendees }
func (b *Booking) CostCents() *int64     { return b.costCents }
func (b *Booking) Rule() *Rule           { return b.rule }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
