package queries

import (
	"context"

	"parish-reserve/internal/domain/resource"
	"parish-reserve/internal/infra"
	"parish-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type ResourceFilters struct {
	Category *resource.Category
	Status   *resource.Status
}

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, filters ResourceFilters) ([]*ResourceView, error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
}

func NewResourceQueries(store ResourceReadStore) ResourceQueries {
	return &resourceQueriesImpl{store: store}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	r, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return NewResourceView(r), nil
}

func (q *resourceQueriesImpl) List(ctx context.Context, filters ResourceFilters) ([]*ResourceView, error) {
	rs, err := q.store.List(ctx, filters.Category, filters.Status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	views := make([]*ResourceView, len(rs))
	for i, r := range rs {
		views[i] = NewResourceView(r)
	}
	return views, nil
}
