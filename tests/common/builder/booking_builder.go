//go:build unit

package builder

import (
	"time"

	dombooking "parish-reserve/internal/domain/booking"
	"parish-reserve/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ResourceID uuid.UUID
	Start      time.Time
	End        time.Time
	Title      string
	Attendees  int
	CostCents  *int64
	Rule       *dombooking.Rule
	CreatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ResourceID: uuid.New(),
		Start:      start,
		End:        start.Add(2 * time.Hour),
		Title:      "Sunday Service",
		Attendees:  80,
		CreatedAt:  time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	interval, err := dombooking.NewInterval(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(b.ResourceID, interval, b.Title, b.Attendees, b.CostCents, b.Rule, b.CreatedAt)
}

func (b *BookingBuilder) BuildCreateParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ResourceID: b.ResourceID,
		Start:      b.Start,
		End:        b.End,
		Title:      b.Title,
		Attendees:  b.Attendees,
		CostCents:  b.CostCents,
		Recurrence: b.Rule,
	}
}
