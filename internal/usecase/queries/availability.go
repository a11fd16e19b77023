package queries

import (
	"context"
	"time"

	"parish-reserve/internal/domain/booking"
	"parish-reserve/internal/infra"
	"parish-reserve/internal/pkg/config"
	"parish-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	// ForDay partitions the resource's operating window on the given day
	// into one-hour slots. A slot is unavailable iff at least one
	// non-cancelled booking intersects it.
	ForDay(ctx context.Context, resourceID uuid.UUID, date time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	bookings  BookingReadStore
	resources ResourceReadStore
	cfg       config.BookingConfig
}

func NewAvailabilityQueries(bookings BookingReadStore, resources ResourceReadStore, cfg config.BookingConfig) AvailabilityQueries {
	return &availabilityQueriesImpl{bookings: bookings, resources: resources, cfg: cfg}
}

func (q *availabilityQueriesImpl) ForDay(ctx context.Context, resourceID uuid.UUID, date time.Time) (*AvailabilityView, error) {
	if _, err := q.resources.FindByID(ctx, resourceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	y, m, d := date.Date()
	loc := date.Location()
	windowStart := time.Date(y, m, d, q.cfg.OperatingDayStart, 0, 0, 0, loc)
	windowEnd := time.Date(y, m, d, q.cfg.OperatingDayEnd, 0, 0, 0, loc)

	dayBookings, err := q.bookings.ListByResource(ctx, resourceID, windowStart, windowEnd)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	view := &AvailabilityView{
		ResourceID:  resourceID,
		Date:        windowStart.Format("2006-01-02"),
		FullyBooked: true,
	}

	for hour := q.cfg.OperatingDayStart; hour < q.cfg.OperatingDayEnd; hour++ {
		slotStart := time.Date(y, m, d, hour, 0, 0, 0, loc)
		slot, _ := booking.NewInterval(slotStart, slotStart.Add(time.Hour))

		occupants := booking.Overlapping(resourceID, slot, dayBookings, uuid.Nil)
		ids := make([]uuid.UUID, len(occupants))
		for i, b := range occupants {
			ids[i] = b.ID()
		}

		available := len(ids) == 0
		if available {
			view.FullyBooked = false
		}
		view.Slots = append(view.Slots, TimeSlotView{
			Start:      slot.Start(),
			End:        slot.End(),
			Available:  available,
			BookingIDs: ids,
		})
	}
	return view, nil
}
