package commands

import (
	"context"
	"time"

	"parish-reserve/internal/domain/maintenance"
	"parish-reserve/internal/infra"
	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateScheduleParams struct {
	ResourceID   uuid.UUID
	TaskType     string
	Frequency    maintenance.Frequency
	NextDue      time.Time
	Priority     maintenance.Priority
	EstCostCents *int64
}

type MaintenanceCommands interface {
	CreateSchedule(ctx context.Context, params CreateScheduleParams) (*maintenance.Schedule, error)
	// CompleteMaintenance advances the schedule's next-due date by exactly
	// one frequency period.
	CompleteMaintenance(ctx context.Context, id uuid.UUID) (*maintenance.Schedule, error)
}

type maintenanceCommandsImpl struct {
	maintenanceRepo MaintenanceRepository
	resourceRepo    ResourceRepository
	clock           clock.Clock
}

func NewMaintenanceCommands(
	maintenanceRepo MaintenanceRepository,
	resourceRepo ResourceRepository,
	clock clock.Clock,
) MaintenanceCommands {
	return &maintenanceCommandsImpl{
		maintenanceRepo: maintenanceRepo,
		resourceRepo:    resourceRepo,
		clock:           clock,
	}
}

func (c *maintenanceCommandsImpl) CreateSchedule(ctx context.Context, params CreateScheduleParams) (*maintenance.Schedule, error) {
	if _, err := c.resourceRepo.FindByID(ctx, params.ResourceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	s, err := maintenance.NewSchedule(
		params.ResourceID,
		params.TaskType,
		params.Frequency,
		params.NextDue,
		params.Priority,
		params.EstCostCents,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.maintenanceRepo.Create(ctx, s); err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return s, nil
}

func (c *maintenanceCommandsImpl) CompleteMaintenance(ctx context.Context, id uuid.UUID) (*maintenance.Schedule, error) {
	s, err := c.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrScheduleNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	s.Complete(c.clock.Now())

	if err := c.maintenanceRepo.Update(ctx, s); err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return s, nil
}
