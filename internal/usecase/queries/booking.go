package queries

import (
	"context"
	"time"

	"parish-reserve/internal/infra"
	"parish-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingFilters struct {
	ResourceID uuid.UUID
	From       time.Time
	To         time.Time
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByResource(ctx context.Context, filters BookingFilters) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	b, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return NewBookingView(b), nil
}

func (q *bookingQueriesImpl) ListByResource(ctx context.Context, filters BookingFilters) ([]*BookingView, error) {
	bs, err := q.store.ListByResource(ctx, filters.ResourceID, filters.From, filters.To)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	views := make([]*BookingView, len(bs))
	for i, b := range bs {
		views[i] = NewBookingView(b)
	}
	return views, nil
}
