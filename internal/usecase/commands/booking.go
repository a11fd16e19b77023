package commands

import (
	"context"
	"time"

	"parish-reserve/internal/domain/booking"
	"parish-reserve/internal/domain/resource"
	"parish-reserve/internal/infra"
	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/pkg/config"
	"parish-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	ResourceID uuid.UUID
	Start      time.Time
	End        time.Time
	Title      string
	Attendees  int
	CostCents  *int64
	Recurrence *booking.Rule
}

type UpdateBookingParams struct {
	Start  *time.Time
	End    *time.Time
	Status *booking.Status
	Title  *string
}

// CreateBookingResult carries the whole materialized series: a single
// booking for plain requests, every expanded occurrence for recurring ones.
type CreateBookingResult struct {
	Bookings []*booking.Booking
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, params UpdateBookingParams) (*booking.Booking, error)
	// CancelBooking is a status transition, not a deletion: the booking is
	// kept for history but drops out of conflict and availability results.
	CancelBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	cfg          config.BookingConfig
	clock        clock.Clock
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	cfg config.BookingConfig,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		cfg:          cfg,
		clock:        clock,
	}
}

func (c *bookingCommandsImpl) policy() booking.ConflictPolicy {
	p := booking.ConflictPolicy(c.cfg.ConflictPolicy)
	if !p.IsValid() {
		return booking.ConflictPolicyFlag
	}
	return p
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error) {
	res, err := c.findResource(ctx, params.ResourceID)
	if err != nil {
		return nil, err
	}
	if res.IsRetired() {
		return nil, errs.ErrResourceRetired
	}
	if !res.FitsAttendees(params.Attendees) {
		return nil, errs.ErrCapacityExceeded
	}

	interval, err := booking.NewInterval(params.Start, params.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInterval)
	}

	now := c.clock.Now()
	intervals := []booking.Interval{interval}
	if params.Recurrence != nil {
		intervals, err = params.Recurrence.Expand(interval, booking.Horizon{
			End:            now.AddDate(0, 0, c.cfg.HorizonDays),
			MaxOccurrences: c.cfg.MaxOccurrences,
		})
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidRecurrence)
		}
		// A bounded rule can legally expand to nothing, e.g. weekly on
		// Sundays with an until date before the first Sunday.
		if len(intervals) == 0 {
			return nil, errs.Mark(errs.New("recurrence rule produced no occurrences"), errs.ErrInvalidRecurrence)
		}
	}

	anchor, err := booking.NewBooking(
		params.ResourceID, intervals[0], params.Title,
		params.Attendees, params.CostCents, params.Recurrence, now,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	series := []*booking.Booking{anchor}
	for _, iv := range intervals[1:] {
		series = append(series, anchor.Occurrence(iv, now))
	}

	result := &CreateBookingResult{}
	err = c.bookingRepo.WithResourceLock(ctx, params.ResourceID, func(ctx context.Context) error {
		existing, err := c.bookingRepo.ListByResource(ctx, params.ResourceID, time.Time{}, time.Time{})
		if err != nil {
			return errs.Mark(err, errs.ErrStoreOperationFailed)
		}

		qty := res.Quantity()
		dirty := make(map[uuid.UUID]*booking.Booking)
		for _, b := range series {
			conflicts := booking.Overlapping(params.ResourceID, b.Interval(), existing, b.ID())
			switch {
			case qty != nil:
				// Quantity-tracked resources share units: overlap is fine
				// until every unit is taken at once.
				if len(conflicts) >= *qty {
					return errs.ErrQuantityExhausted
				}
			case len(conflicts) > 0 && c.policy() == booking.ConflictPolicyReject:
				return errs.ErrBookingConflict
			}
			for _, other := range conflicts {
				b.AddConflict(other.ID())
				other.AddConflict(b.ID())
				dirty[other.ID()] = other
			}
			// Later occurrences must see earlier siblings too.
			existing = append(existing, b)
		}

		for _, b := range series {
			if err := c.bookingRepo.Create(ctx, b); err != nil {
				return errs.Mark(err, errs.ErrStoreOperationFailed)
			}
			delete(dirty, b.ID())
		}
		for _, other := range dirty {
			if err := c.bookingRepo.Update(ctx, other); err != nil {
				return errs.Mark(err, errs.ErrStoreOperationFailed)
			}
		}

		result.Bookings = series
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *bookingCommandsImpl) UpdateBooking(ctx context.Context, id uuid.UUID, params UpdateBookingParams) (*booking.Booking, error) {
	b, err := c.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *booking.Booking
	err = c.bookingRepo.WithResourceLock(ctx, b.ResourceID(), func(ctx context.Context) error {
		// Re-read under the lock; the first read only resolved the resource.
		b, err := c.findBooking(ctx, id)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		rescheduled := false
		if params.Start != nil || params.End != nil {
			start, end := b.Interval().Start(), b.Interval().End()
			if params.Start != nil {
				start = *params.Start
			}
			if params.End != nil {
				end = *params.End
			}
			interval, err := booking.NewInterval(start, end)
			if err != nil {
				return errs.Mark(err, errs.ErrInvalidInterval)
			}
			if err := b.Reschedule(interval, now); err != nil {
				return errs.Mark(err, errs.ErrBookingCancelled)
			}
			rescheduled = true
		}
		if params.Status != nil {
			if err := b.ChangeStatus(*params.Status, now); err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
		}
		if params.Title != nil {
			b.Retitle(*params.Title, now)
		}

		if rescheduled || params.Status != nil {
			if err := c.recomputeConflicts(ctx, b); err != nil {
				return err
			}
		}
		if err := c.bookingRepo.Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrStoreOperationFailed)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := c.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	var cancelled *booking.Booking
	err = c.bookingRepo.WithResourceLock(ctx, b.ResourceID(), func(ctx context.Context) error {
		b, err := c.findBooking(ctx, id)
		if err != nil {
			return err
		}
		if err := b.Cancel(c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrBookingCancelled)
		}

		// Symmetry: drop this booking from every counterpart's conflict set.
		for _, otherID := range b.Conflicts() {
			other, err := c.bookingRepo.FindByID(ctx, otherID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					continue
				}
				return errs.Mark(err, errs.ErrStoreOperationFailed)
			}
			other.RemoveConflict(b.ID())
			if err := c.bookingRepo.Update(ctx, other); err != nil {
				return errs.Mark(err, errs.ErrStoreOperationFailed)
			}
		}
		b.ClearConflicts()

		if err := c.bookingRepo.Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrStoreOperationFailed)
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// recomputeConflicts re-derives the booking's conflict set from the current
// ledger and patches both sides of every changed pair. Callers must hold the
// resource lock.
func (c *bookingCommandsImpl) recomputeConflicts(ctx context.Context, b *booking.Booking) error {
	existing, err := c.bookingRepo.ListByResource(ctx, b.ResourceID(), time.Time{}, time.Time{})
	if err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	fresh := make(map[uuid.UUID]*booking.Booking)
	if b.IsActive() {
		for _, other := range booking.Overlapping(b.ResourceID(), b.Interval(), existing, b.ID()) {
			fresh[other.ID()] = other
		}
	}

	// Same admission rules as create, before anything is persisted.
	res, err := c.findResource(ctx, b.ResourceID())
	if err != nil {
		return err
	}
	if qty := res.Quantity(); qty != nil {
		if len(fresh) >= *qty {
			return errs.ErrQuantityExhausted
		}
	} else if len(fresh) > 0 && c.policy() == booking.ConflictPolicyReject {
		return errs.ErrBookingConflict
	}

	for _, staleID := range b.Conflicts() {
		if _, still := fresh[staleID]; still {
			continue
		}
		b.RemoveConflict(staleID)
		other, err := c.bookingRepo.FindByID(ctx, staleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				continue
			}
			return errs.Mark(err, errs.ErrStoreOperationFailed)
		}
		other.RemoveConflict(b.ID())
		if err := c.bookingRepo.Update(ctx, other); err != nil {
			return errs.Mark(err, errs.ErrStoreOperationFailed)
		}
	}

	for id, other := range fresh {
		if b.HasConflictWith(id) {
			continue
		}
		b.AddConflict(id)
		other.AddConflict(b.ID())
		if err := c.bookingRepo.Update(ctx, other); err != nil {
			return errs.Mark(err, errs.ErrStoreOperationFailed)
		}
	}
	return nil
}

func (c *bookingCommandsImpl) findResource(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, err := c.resourceRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return res, nil
}

func (c *bookingCommandsImpl) findBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := c.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return b, nil
}
