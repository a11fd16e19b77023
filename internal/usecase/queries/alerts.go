package queries

import (
	"context"

	"parish-reserve/internal/domain/maintenance"
	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/pkg/config"
	"parish-reserve/internal/pkg/errs"
)

type AlertQueries interface {
	// List projects maintenance schedules onto alerts: overdue when the
	// due date has passed, due_soon when it falls within the configured
	// window. Sorted by priority, then due date. Nothing is stored.
	List(ctx context.Context) ([]AlertView, error)
}

type alertQueriesImpl struct {
	store MaintenanceReadStore
	cfg   config.AlertConfig
	clock clock.Clock
}

func NewAlertQueries(store MaintenanceReadStore, cfg config.AlertConfig, clock clock.Clock) AlertQueries {
	return &alertQueriesImpl{store: store, cfg: cfg, clock: clock}
}

func (q *alertQueriesImpl) List(ctx context.Context) ([]AlertView, error) {
	schedules, err := q.store.List(ctx, nil)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	alerts := maintenance.BuildAlerts(schedules, q.clock.Now(), q.cfg.DueSoonWindow)
	views := make([]AlertView, len(alerts))
	for i, a := range alerts {
		views[i] = NewAlertView(a)
	}
	return views, nil
}
