package queries

import (
	"context"

	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type MaintenanceQueries interface {
	// List returns every schedule (or the resource's schedules when
	// resourceID is set), with isOverdue recomputed against the clock at
	// call time. Staleness is pull-based: a schedule only "becomes"
	// overdue when observed.
	List(ctx context.Context, resourceID *uuid.UUID) ([]*ScheduleView, error)
}

type maintenanceQueriesImpl struct {
	store MaintenanceReadStore
	clock clock.Clock
}

func NewMaintenanceQueries(store MaintenanceReadStore, clock clock.Clock) MaintenanceQueries {
	return &maintenanceQueriesImpl{store: store, clock: clock}
}

func (q *maintenanceQueriesImpl) List(ctx context.Context, resourceID *uuid.UUID) ([]*ScheduleView, error) {
	schedules, err := q.store.List(ctx, resourceID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	now := q.clock.Now()
	views := make([]*ScheduleView, len(schedules))
	for i, s := range schedules {
		views[i] = NewScheduleView(s, now)
	}
	return views, nil
}
