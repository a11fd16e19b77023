//go:build unit

package builder

import (
	"time"

	dommaintenance "parish-reserve/internal/domain/maintenance"
	"parish-reserve/internal/usecase/commands"

	"github.com/google/uuid"
)

type ScheduleBuilder struct {
	ResourceID   uuid.UUID
	TaskType     string
	Frequency    dommaintenance.Frequency
	NextDue      time.Time
	Priority     dommaintenance.Priority
	EstCostCents *int64
	CreatedAt    time.Time
}

func NewScheduleBuilder() *ScheduleBuilder {
	return &ScheduleBuilder{
		ResourceID: uuid.New(),
		TaskType:   "HVAC filter change",
		Frequency:  dommaintenance.FrequencyMonthly,
		NextDue:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		Priority:   dommaintenance.PriorityMedium,
		CreatedAt:  time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ScheduleBuilder) With(mutate func(*ScheduleBuilder)) *ScheduleBuilder {
	mutate(b)
	return b
}

func (b *ScheduleBuilder) BuildDomain() (*dommaintenance.Schedule, error) {
	return dommaintenance.NewSchedule(b.ResourceID, b.TaskType, b.Frequency, b.NextDue, b.Priority, b.EstCostCents, b.CreatedAt)
}

func (b *ScheduleBuilder) BuildCreateParams() commands.CreateScheduleParams {
	return commands.CreateScheduleParams{
		ResourceID:   b.ResourceID,
		TaskType:     b.TaskType,
		Frequency:    b.Frequency,
		NextDue:      b.NextDue,
		Priority:     b.Priority,
		EstCostCents: b.EstCostCents,
	}
}
