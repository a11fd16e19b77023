package request

import (
	"time"

	"parish-reserve/internal/domain/maintenance"
	"parish-reserve/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateScheduleRequest struct {
	ResourceID   uuid.UUID `json:"resource_id" binding:"required"`
	TaskType     string    `json:"task_type" binding:"required,max=255"`
	Frequency    string    `json:"frequency" binding:"required,oneof=daily weekly monthly quarterly yearly"`
	NextDue      time.Time `json:"next_due" binding:"required"`
	Priority     string    `json:"priority" binding:"required,oneof=low medium high critical"`
	EstCostCents *int64    `json:"est_cost_cents" binding:"omitempty,min=0"`
}

func (r CreateScheduleRequest) ToParams() commands.CreateScheduleParams {
	return commands.CreateScheduleParams{
		ResourceID:   r.ResourceID,
		TaskType:     r.TaskType,
		Frequency:    maintenance.Frequency(r.Frequency),
		NextDue:      r.NextDue,
		Priority:     maintenance.Priority(r.Priority),
		EstCostCents: r.EstCostCents,
	}
}
