package commands

import (
	"context"

	"parish-reserve/internal/domain/resource"
	"parish-reserve/internal/infra"
	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateResourceParams struct {
	Name       string
	Category   resource.Category
	Condition  int
	Capacity   *int
	Quantity   *int
	ValueCents *int64
}

type UpdateResourceParams struct {
	Name      *string
	Status    *resource.Status
	Condition *int
}

type ResourceCommands interface {
	CreateResource(ctx context.Context, params CreateResourceParams) (*resource.Resource, error)
	UpdateResource(ctx context.Context, id uuid.UUID, params UpdateResourceParams) (*resource.Resource, error)
	// DeleteResource cascades: the resource's bookings and maintenance
	// schedules are removed along with it.
	DeleteResource(ctx context.Context, id uuid.UUID) error
}

type resourceCommandsImpl struct {
	resourceRepo    ResourceRepository
	bookingRepo     BookingRepository
	maintenanceRepo MaintenanceRepository
	clock           clock.Clock
}

func NewResourceCommands(
	resourceRepo ResourceRepository,
	bookingRepo BookingRepository,
	maintenanceRepo MaintenanceRepository,
	clock clock.Clock,
) ResourceCommands {
	return &resourceCommandsImpl{
		resourceRepo:    resourceRepo,
		bookingRepo:     bookingRepo,
		maintenanceRepo: maintenanceRepo,
		clock:           clock,
	}
}

func (c *resourceCommandsImpl) CreateResource(ctx context.Context, params CreateResourceParams) (*resource.Resource, error) {
	r, err := resource.NewResource(
		params.Name,
		params.Category,
		params.Condition,
		params.Capacity,
		params.Quantity,
		params.ValueCents,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.resourceRepo.Create(ctx, r); err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return r, nil
}

func (c *resourceCommandsImpl) UpdateResource(ctx context.Context, id uuid.UUID, params UpdateResourceParams) (*resource.Resource, error) {
	r, err := c.resourceRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	now := c.clock.Now()
	if params.Name != nil {
		if err := r.Rename(*params.Name, now); err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}
	if params.Status != nil {
		if err := r.ChangeStatus(*params.Status, now); err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}
	if params.Condition != nil {
		if err := r.ChangeCondition(*params.Condition, now); err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}

	if err := c.resourceRepo.Update(ctx, r); err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return r, nil
}

func (c *resourceCommandsImpl) DeleteResource(ctx context.Context, id uuid.UUID) error {
	if _, err := c.resourceRepo.FindByID(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrResourceNotFound
		}
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	// Cascade under the resource's booking lock so no new booking slips in
	// between the dependent deletes and the resource delete.
	return c.bookingRepo.WithResourceLock(ctx, id, func(ctx context.Context) error {
		if err := c.bookingRepo.DeleteByResource(ctx, id); err != nil {
			return errs.Mark(err, errs.ErrStoreOperationFailed)
		}
		if err := c.maintenanceRepo.DeleteByResource(ctx, id); err != nil {
			return errs.Mark(err, errs.ErrStoreOperationFailed)
		}
		if err := c.resourceRepo.Delete(ctx, id); err != nil {
			return errs.Mark(err, errs.ErrStoreOperationFailed)
		}
		return nil
	})
}
