//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"parish-reserve/internal/domain/booking"
	"parish-reserve/internal/infra/memstore"
	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/pkg/config"
	"parish-reserve/internal/pkg/errs"
	"parish-reserve/internal/usecase/commands"
	"parish-reserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	resources *memstore.ResourceStore
	bookings  *memstore.BookingStore
	clock     *clock.MockClock
	commands  commands.BookingCommands
}

func newBookingFixture(t *testing.T, cfg config.BookingConfig) *bookingFixture {
	t.Helper()
	mockClock := clock.NewMockClock(time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC))
	resources := memstore.NewResourceStore()
	bookings := memstore.NewBookingStore()
	return &bookingFixture{
		resources: resources,
		bookings:  bookings,
		clock:     mockClock,
		commands:  commands.NewBookingCommands(bookings, resources, cfg, mockClock),
	}
}

func defaultBookingConfig() config.BookingConfig {
	return config.NewTestConfig().Booking
}

func (f *bookingFixture) seedResource(t *testing.T, mutate ...func(*builder.ResourceBuilder)) uuid.UUID {
	t.Helper()
	b := builder.NewResourceBuilder()
	for _, m := range mutate {
		m(b)
	}
	r, err := b.BuildDomain()
	require.NoError(t, err)
	require.NoError(t, f.resources.Create(context.Background(), r))
	return r.ID()
}

func (f *bookingFixture) create(t *testing.T, params commands.CreateBookingParams) *booking.Booking {
	t.Helper()
	result, err := f.commands.CreateBooking(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Bookings, 1)
	return result.Bookings[0]
}

func paramsFor(resourceID uuid.UUID, start, end time.Time) commands.CreateBookingParams {
	return builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ResourceID = resourceID
		b.Start = start
		b.End = end
	}).BuildCreateParams()
}

func TestCreateBooking(t *testing.T) {
	day := time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	t.Run("overlapping bookings get symmetric conflict sets", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)

		a := f.create(t, paramsFor(resourceID, at(9), at(11)))
		b := f.create(t, paramsFor(resourceID, at(10), at(12)))

		storedA, err := f.bookings.FindByID(context.Background(), a.ID())
		require.NoError(t, err)
		storedB, err := f.bookings.FindByID(context.Background(), b.ID())
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{b.ID()}, storedA.Conflicts())
		assert.Equal(t, []uuid.UUID{a.ID()}, storedB.Conflicts())
		assert.Equal(t, booking.StatusPending, storedB.Status(), "flag policy still accepts the booking")
	})

	t.Run("bookings on different resources never conflict", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		first := f.seedResource(t)
		second := f.seedResource(t, func(b *builder.ResourceBuilder) { b.Name = "Choir Room" })

		a := f.create(t, paramsFor(first, at(9), at(11)))
		b := f.create(t, paramsFor(second, at(9), at(11)))

		assert.Empty(t, a.Conflicts())
		assert.Empty(t, b.Conflicts())
	})

	t.Run("back to back bookings do not conflict", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)

		f.create(t, paramsFor(resourceID, at(9), at(10)))
		b := f.create(t, paramsFor(resourceID, at(10), at(11)))
		assert.Empty(t, b.Conflicts())
	})

	t.Run("reject policy refuses the overlapping booking", func(t *testing.T) {
		cfg := defaultBookingConfig()
		cfg.ConflictPolicy = "reject"
		f := newBookingFixture(t, cfg)
		resourceID := f.seedResource(t)

		f.create(t, paramsFor(resourceID, at(9), at(11)))
		_, err := f.commands.CreateBooking(context.Background(), paramsFor(resourceID, at(10), at(12)))
		assert.ErrorIs(t, err, errs.ErrBookingConflict)

		all, listErr := f.bookings.ListAll(context.Background())
		require.NoError(t, listErr)
		assert.Len(t, all, 1, "the rejected series must leave no trace")
	})

	t.Run("quantity resources share units until all are taken", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t, func(b *builder.ResourceBuilder) {
			quantity := 2
			b.Name = "Folding Table"
			b.Quantity = &quantity
		})

		a := f.create(t, paramsFor(resourceID, at(9), at(11)))
		b := f.create(t, paramsFor(resourceID, at(10), at(12)))
		assert.Equal(t, []uuid.UUID{a.ID()}, b.Conflicts(), "sharing a unit is still recorded as overlap")

		_, err := f.commands.CreateBooking(context.Background(), paramsFor(resourceID, at(10), at(11)))
		assert.ErrorIs(t, err, errs.ErrQuantityExhausted)

		all, listErr := f.bookings.ListAll(context.Background())
		require.NoError(t, listErr)
		assert.Len(t, all, 2)
	})

	t.Run("unknown resource", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		_, err := f.commands.CreateBooking(context.Background(), paramsFor(uuid.New(), at(9), at(11)))
		assert.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("retired resource", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)
		now := f.clock.Now()
		r, err := f.resources.FindByID(context.Background(), resourceID)
		require.NoError(t, err)
		require.NoError(t, r.ChangeStatus("retired", now))
		require.NoError(t, f.resources.Update(context.Background(), r))

		_, err = f.commands.CreateBooking(context.Background(), paramsFor(resourceID, at(9), at(11)))
		assert.ErrorIs(t, err, errs.ErrResourceRetired)
	})

	t.Run("attendees over capacity", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t, func(b *builder.ResourceBuilder) {
			capacity := 30
			b.Capacity = &capacity
		})

		params := paramsFor(resourceID, at(9), at(11))
		params.Attendees = 31
		_, err := f.commands.CreateBooking(context.Background(), params)
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("inverted interval", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)
		_, err := f.commands.CreateBooking(context.Background(), paramsFor(resourceID, at(11), at(9)))
		assert.True(t, errs.Is(err, errs.ErrInvalidInterval))
	})
}

func TestCreateBookingSeries(t *testing.T) {
	t.Run("recurring booking materializes the whole series", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)

		count := 3
		params := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ResourceID = resourceID
			b.Rule = &booking.Rule{
				Frequency: booking.FrequencyWeekly,
				Interval:  1,
				Weekdays:  []time.Weekday{time.Sunday},
				Count:     &count,
			}
		}).BuildCreateParams()

		result, err := f.commands.CreateBooking(context.Background(), params)
		require.NoError(t, err)
		require.Len(t, result.Bookings, 3)

		anchor := result.Bookings[0]
		assert.Nil(t, anchor.SeriesID())
		assert.NotNil(t, anchor.Rule())
		for _, occ := range result.Bookings[1:] {
			require.NotNil(t, occ.SeriesID())
			assert.Equal(t, anchor.ID(), *occ.SeriesID())
			assert.Nil(t, occ.Rule())
			assert.Equal(t, time.Sunday, occ.Interval().Start().Weekday())
		}
	})

	t.Run("series members conflict with prior bookings individually", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)

		// A plain booking sitting on the second occurrence's slot.
		blocker := f.create(t, paramsFor(resourceID,
			time.Date(2024, 11, 10, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 11, 10, 11, 0, 0, 0, time.UTC),
		))

		count := 3
		params := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ResourceID = resourceID
			b.Rule = &booking.Rule{
				Frequency: booking.FrequencyWeekly,
				Interval:  1,
				Weekdays:  []time.Weekday{time.Sunday},
				Count:     &count,
			}
		}).BuildCreateParams()

		result, err := f.commands.CreateBooking(context.Background(), params)
		require.NoError(t, err)
		require.Len(t, result.Bookings, 3)

		assert.Empty(t, result.Bookings[0].Conflicts())
		assert.Equal(t, []uuid.UUID{blocker.ID()}, result.Bookings[1].Conflicts())
		assert.Empty(t, result.Bookings[2].Conflicts())

		storedBlocker, err := f.bookings.FindByID(context.Background(), blocker.ID())
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{result.Bookings[1].ID()}, storedBlocker.Conflicts())
	})

	t.Run("a rule whose bounds yield no occurrences is rejected", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)

		// Weekly on Sundays, but the until date falls before the first
		// Sunday after the Monday anchor.
		until := time.Date(2024, 11, 9, 0, 0, 0, 0, time.UTC)
		params := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ResourceID = resourceID
			b.Start = time.Date(2024, 11, 4, 9, 0, 0, 0, time.UTC)
			b.End = time.Date(2024, 11, 4, 11, 0, 0, 0, time.UTC)
			b.Rule = &booking.Rule{
				Frequency: booking.FrequencyWeekly,
				Interval:  1,
				Weekdays:  []time.Weekday{time.Sunday},
				Until:     &until,
			}
		}).BuildCreateParams()

		_, err := f.commands.CreateBooking(context.Background(), params)
		assert.True(t, errs.Is(err, errs.ErrInvalidRecurrence))

		all, listErr := f.bookings.ListAll(context.Background())
		require.NoError(t, listErr)
		assert.Empty(t, all)
	})
}

func TestCancelBooking(t *testing.T) {
	day := time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	t.Run("cancelling releases both sides of each conflict", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)

		a := f.create(t, paramsFor(resourceID, at(9), at(11)))
		b := f.create(t, paramsFor(resourceID, at(10), at(12)))

		cancelled, err := f.commands.CancelBooking(context.Background(), a.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
		assert.Empty(t, cancelled.Conflicts())

		storedB, err := f.bookings.FindByID(context.Background(), b.ID())
		require.NoError(t, err)
		assert.Empty(t, storedB.Conflicts())
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)
		a := f.create(t, paramsFor(resourceID, at(9), at(11)))

		_, err := f.commands.CancelBooking(context.Background(), a.ID())
		require.NoError(t, err)
		_, err = f.commands.CancelBooking(context.Background(), a.ID())
		assert.True(t, errs.Is(err, errs.ErrBookingCancelled))
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		_, err := f.commands.CancelBooking(context.Background(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

func TestUpdateBooking(t *testing.T) {
	day := time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	t.Run("rescheduling away drops the conflict on both sides", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)

		a := f.create(t, paramsFor(resourceID, at(9), at(11)))
		b := f.create(t, paramsFor(resourceID, at(10), at(12)))

		newStart, newEnd := at(14), at(16)
		updated, err := f.commands.UpdateBooking(context.Background(), b.ID(), commands.UpdateBookingParams{
			Start: &newStart,
			End:   &newEnd,
		})
		require.NoError(t, err)
		assert.Empty(t, updated.Conflicts())

		storedA, err := f.bookings.FindByID(context.Background(), a.ID())
		require.NoError(t, err)
		assert.Empty(t, storedA.Conflicts())
	})

	t.Run("rescheduling onto a busy slot records the conflict", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)

		a := f.create(t, paramsFor(resourceID, at(9), at(11)))
		b := f.create(t, paramsFor(resourceID, at(14), at(16)))

		newStart, newEnd := at(10), at(12)
		updated, err := f.commands.UpdateBooking(context.Background(), b.ID(), commands.UpdateBookingParams{
			Start: &newStart,
			End:   &newEnd,
		})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a.ID()}, updated.Conflicts())

		storedA, err := f.bookings.FindByID(context.Background(), a.ID())
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{b.ID()}, storedA.Conflicts())
	})

	t.Run("reject policy refuses rescheduling onto a busy slot", func(t *testing.T) {
		cfg := defaultBookingConfig()
		cfg.ConflictPolicy = "reject"
		f := newBookingFixture(t, cfg)
		resourceID := f.seedResource(t)

		a := f.create(t, paramsFor(resourceID, at(9), at(11)))
		b := f.create(t, paramsFor(resourceID, at(14), at(16)))

		newStart, newEnd := at(10), at(12)
		_, err := f.commands.UpdateBooking(context.Background(), b.ID(), commands.UpdateBookingParams{
			Start: &newStart,
			End:   &newEnd,
		})
		assert.ErrorIs(t, err, errs.ErrBookingConflict)

		storedB, err := f.bookings.FindByID(context.Background(), b.ID())
		require.NoError(t, err)
		assert.Equal(t, at(14), storedB.Interval().Start(), "the refused reschedule must not persist")
		assert.Empty(t, storedB.Conflicts())

		storedA, err := f.bookings.FindByID(context.Background(), a.ID())
		require.NoError(t, err)
		assert.Empty(t, storedA.Conflicts())
	})

	t.Run("rescheduling onto a fully taken quantity window fails", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t, func(b *builder.ResourceBuilder) {
			quantity := 2
			b.Name = "Projector"
			b.Quantity = &quantity
		})

		f.create(t, paramsFor(resourceID, at(9), at(11)))
		f.create(t, paramsFor(resourceID, at(9), at(11)))
		c := f.create(t, paramsFor(resourceID, at(14), at(16)))

		newStart, newEnd := at(10), at(12)
		_, err := f.commands.UpdateBooking(context.Background(), c.ID(), commands.UpdateBookingParams{
			Start: &newStart,
			End:   &newEnd,
		})
		assert.ErrorIs(t, err, errs.ErrQuantityExhausted)

		storedC, err := f.bookings.FindByID(context.Background(), c.ID())
		require.NoError(t, err)
		assert.Equal(t, at(14), storedC.Interval().Start())
	})

	t.Run("retitling does not touch conflicts", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)

		a := f.create(t, paramsFor(resourceID, at(9), at(11)))
		f.create(t, paramsFor(resourceID, at(10), at(12)))

		title := "Evening Prayer"
		updated, err := f.commands.UpdateBooking(context.Background(), a.ID(), commands.UpdateBookingParams{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Evening Prayer", updated.Title())
		assert.Len(t, updated.Conflicts(), 1)
	})

	t.Run("rescheduling a cancelled booking fails", func(t *testing.T) {
		f := newBookingFixture(t, defaultBookingConfig())
		resourceID := f.seedResource(t)
		a := f.create(t, paramsFor(resourceID, at(9), at(11)))
		_, err := f.commands.CancelBooking(context.Background(), a.ID())
		require.NoError(t, err)

		newStart, newEnd := at(14), at(16)
		_, err = f.commands.UpdateBooking(context.Background(), a.ID(), commands.UpdateBookingParams{
			Start: &newStart,
			End:   &newEnd,
		})
		assert.True(t, errs.Is(err, errs.ErrBookingCancelled))
	})
}
