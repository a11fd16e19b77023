package queries

import (
	"context"
	"time"

	"parish-reserve/internal/domain/maintenance"
	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/pkg/config"
	"parish-reserve/internal/pkg/errs"
)

// Hours per day a resource is assumed bookable. A modeling placeholder, not
// a measurement; accurate reporting should read operating hours from the
// resource itself.
const assumedDailyCapacityHours = 16.0

type StatsQueries interface {
	// Summary aggregates catalog counts, fleet utilization over the recent
	// window, revenue for the current calendar month, and current alerts.
	Summary(ctx context.Context) (*SummaryView, error)
}

type statsQueriesImpl struct {
	resources   ResourceReadStore
	bookings    BookingReadStore
	maintenance MaintenanceReadStore
	bookingCfg  config.BookingConfig
	alertCfg    config.AlertConfig
	clock       clock.Clock
}

func NewStatsQueries(
	resources ResourceReadStore,
	bookings BookingReadStore,
	maintenanceStore MaintenanceReadStore,
	bookingCfg config.BookingConfig,
	alertCfg config.AlertConfig,
	clock clock.Clock,
) StatsQueries {
	return &statsQueriesImpl{
		resources:   resources,
		bookings:    bookings,
		maintenance: maintenanceStore,
		bookingCfg:  bookingCfg,
		alertCfg:    alertCfg,
		clock:       clock,
	}
}

func (q *statsQueriesImpl) Summary(ctx context.Context) (*SummaryView, error) {
	resources, err := q.resources.List(ctx, nil, nil)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	bookings, err := q.bookings.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	schedules, err := q.maintenance.List(ctx, nil)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	now := q.clock.Now()
	view := &SummaryView{
		TotalResources: len(resources),
		ByCategory:     make(map[string]int),
		ByStatus:       make(map[string]int),
	}
	for _, r := range resources {
		view.ByCategory[r.Category().String()]++
		view.ByStatus[r.Status().String()]++
	}

	windowDays := q.bookingCfg.UtilizationWindowD
	windowStart := now.AddDate(0, 0, -windowDays)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var bookedHours float64
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		start := b.Interval().Start()
		if !start.Before(windowStart) && !start.After(now) {
			bookedHours += b.Interval().Duration().Hours()
		}
		if b.CostCents() != nil && !start.Before(monthStart) && start.Before(monthStart.AddDate(0, 1, 0)) {
			view.RevenueCents += *b.CostCents()
		}
	}

	if len(resources) > 0 {
		capacity := float64(len(resources)) * assumedDailyCapacityHours * float64(windowDays)
		view.UtilizationRate = bookedHours / capacity * 100.0
	}

	alerts := maintenance.BuildAlerts(schedules, now, q.alertCfg.DueSoonWindow)
	for _, a := range alerts {
		view.Alerts = append(view.Alerts, NewAlertView(a))
		switch a.Kind {
		case maintenance.AlertOverdue:
			view.OverdueAlerts++
		case maintenance.AlertDueSoon:
			view.DueSoonAlerts++
		}
	}
	return view, nil
}
