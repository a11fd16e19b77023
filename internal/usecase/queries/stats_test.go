//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"parish-reserve/internal/domain/resource"
	"parish-reserve/internal/infra/memstore"
	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/pkg/config"
	"parish-reserve/internal/usecase/queries"
	"parish-reserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsFixture struct {
	resources   *memstore.ResourceStore
	bookings    *memstore.BookingStore
	maintenance *memstore.MaintenanceStore
	clock       *clock.MockClock
	queries     queries.StatsQueries
}

func newStatsFixture(t *testing.T) *statsFixture {
	t.Helper()
	cfg := config.NewTestConfig()
	mockClock := clock.NewMockClock(time.Date(2024, 11, 15, 12, 0, 0, 0, time.UTC))
	resources := memstore.NewResourceStore()
	bookings := memstore.NewBookingStore()
	maintenanceStore := memstore.NewMaintenanceStore()
	return &statsFixture{
		resources:   resources,
		bookings:    bookings,
		maintenance: maintenanceStore,
		clock:       mockClock,
		queries:     queries.NewStatsQueries(resources, bookings, maintenanceStore, cfg.Booking, cfg.Alerts, mockClock),
	}
}

func (f *statsFixture) seedResource(t *testing.T, mutate ...func(*builder.ResourceBuilder)) uuid.UUID {
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

func (f *statsFixture) seedBooking(t *testing.T, resourceID uuid.UUID, start time.Time, hours int, costCents *int64) uuid.UUID {
	t.Helper()
	b, err := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		bb.ResourceID = resourceID
		bb.Start = start
		bb.End = start.Add(time.Duration(hours) * time.Hour)
		bb.CostCents = costCents
	}).BuildDomain()
	require.NoError(t, err)
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b.ID()
}

func int64Ptr(v int64) *int64 { return &v }

func TestSummary(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		f := newStatsFixture(t)
		view, err := f.queries.Summary(context.Background())
		require.NoError(t, err)
		assert.Zero(t, view.TotalResources)
		assert.Zero(t, view.UtilizationRate)
		assert.Zero(t, view.RevenueCents)
		assert.Empty(t, view.Alerts)
	})

	t.Run("category and status counts", func(t *testing.T) {
		f := newStatsFixture(t)
		f.seedResource(t)
		f.seedResource(t, func(b *builder.ResourceBuilder) { b.Name = "Projector"; b.Category = resource.CategoryTechnology })
		f.seedResource(t, func(b *builder.ResourceBuilder) { b.Name = "Van"; b.Category = resource.CategoryVehicle })

		view, err := f.queries.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, view.TotalResources)
		assert.Equal(t, 1, view.ByCategory["facility"])
		assert.Equal(t, 1, view.ByCategory["technology"])
		assert.Equal(t, 1, view.ByCategory["vehicle"])
		assert.Equal(t, 3, view.ByStatus["available"])
	})

	t.Run("utilization over the window", func(t *testing.T) {
		f := newStatsFixture(t)
		resourceID := f.seedResource(t)

		now := f.clock.Now()
		// 48 booked hours in the window against 1 resource × 16 h × 30 d.
		f.seedBooking(t, resourceID, now.AddDate(0, 0, -2), 24, nil)
		f.seedBooking(t, resourceID, now.AddDate(0, 0, -5), 24, nil)
		// Outside the window and in the future: both excluded.
		f.seedBooking(t, resourceID, now.AddDate(0, 0, -40), 24, nil)
		f.seedBooking(t, resourceID, now.AddDate(0, 0, 2), 24, nil)

		view, err := f.queries.Summary(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, 48.0/(16.0*30.0)*100.0, view.UtilizationRate, 1e-9)
	})

	t.Run("cancelled bookings count for nothing", func(t *testing.T) {
		f := newStatsFixture(t)
		resourceID := f.seedResource(t)

		now := f.clock.Now()
		id := f.seedBooking(t, resourceID, now.AddDate(0, 0, -2), 24, int64Ptr(50_000))
		b, err := f.bookings.FindByID(context.Background(), id)
		require.NoError(t, err)
		require.NoError(t, b.Cancel(now))
		require.NoError(t, f.bookings.Update(context.Background(), b))

		view, err := f.queries.Summary(context.Background())
		require.NoError(t, err)
		assert.Zero(t, view.UtilizationRate)
		assert.Zero(t, view.RevenueCents)
	})

	t.Run("revenue covers the current calendar month", func(t *testing.T) {
		f := newStatsFixture(t)
		resourceID := f.seedResource(t)

		now := f.clock.Now() // 2024-11-15
		f.seedBooking(t, resourceID, time.Date(2024, 11, 2, 9, 0, 0, 0, time.UTC), 2, int64Ptr(10_000))
		f.seedBooking(t, resourceID, time.Date(2024, 11, 28, 9, 0, 0, 0, time.UTC), 2, int64Ptr(5_000))
		f.seedBooking(t, resourceID, time.Date(2024, 10, 20, 9, 0, 0, 0, time.UTC), 2, int64Ptr(7_000))
		f.seedBooking(t, resourceID, time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC), 2, int64Ptr(9_000))
		f.seedBooking(t, resourceID, now.Add(24*time.Hour), 2, nil)

		view, err := f.queries.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(15_000), view.RevenueCents)
	})

	t.Run("alert counts surface in the summary", func(t *testing.T) {
		f := newStatsFixture(t)
		resourceID := f.seedResource(t)
		now := f.clock.Now()

		overdue, err := builder.NewScheduleBuilder().With(func(b *builder.ScheduleBuilder) {
			b.ResourceID = resourceID
			b.NextDue = now.AddDate(0, 0, -1)
		}).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, f.maintenance.Create(context.Background(), overdue))

		dueSoon, err := builder.NewScheduleBuilder().With(func(b *builder.ScheduleBuilder) {
			b.ResourceID = resourceID
			b.NextDue = now.AddDate(0, 0, 3)
		}).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, f.maintenance.Create(context.Background(), dueSoon))

		quiet, err := builder.NewScheduleBuilder().With(func(b *builder.ScheduleBuilder) {
			b.ResourceID = resourceID
			b.NextDue = now.AddDate(0, 1, 0)
		}).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, f.maintenance.Create(context.Background(), quiet))

		view, err := f.queries.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, view.OverdueAlerts)
		assert.Equal(t, 1, view.DueSoonAlerts)
		assert.Len(t, view.Alerts, 2)
	})
}
