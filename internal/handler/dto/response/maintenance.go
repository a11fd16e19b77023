package response

import (
	"time"

	"parish-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ScheduleResponse struct {
	ID            uuid.UUID  `json:"id"`
	ResourceID    uuid.UUID  `json:"resource_id"`
	TaskType      string     `json:"task_type"`
	Frequency     string     `json:"frequency"`
	NextDue       time.Time  `json:"next_due"`
	Priority      string     `json:"priority"`
	EstCostCents  *int64     `json:"est_cost_cents,omitempty"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	IsOverdue     bool       `json:"is_overdue"`
}

func FromScheduleView(v *queries.ScheduleView) *ScheduleResponse {
	return &ScheduleResponse{
		ID:            v.ID,
		ResourceID:    v.ResourceID,
		TaskType:      v.TaskType,
		Frequency:     v.Frequency,
		NextDue:       v.NextDue,
		Priority:      v.Priority,
		EstCostCents:  v.EstCostCents,
		LastCompleted: v.LastCompleted,
		IsOverdue:     v.IsOverdue,
	}
}

type AlertResponse struct {
	ScheduleID   uuid.UUID `json:"schedule_id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	TaskType     string    `json:"task_type"`
	Kind         string    `json:"kind"`
	Priority     string    `json:"priority"`
	DueDate      time.Time `json:"due_date"`
	EstCostCents *int64    `json:"est_cost_cents,omitempty"`
}

func FromAlertView(v queries.AlertView) AlertResponse {
	return AlertResponse{
		ScheduleID:   v.ScheduleID,
		ResourceID:   v.ResourceID,
		TaskType:     v.TaskType,
		Kind:         v.Kind,
		Priority:     v.Priority,
		DueDate:      v.DueDate,
		EstCostCents: v.EstCostCents,
	}
}

type SummaryResponse struct {
	TotalResources  int             `json:"total_resources"`
	ByCategory      map[string]int  `json:"by_category"`
	ByStatus        map[string]int  `json:"by_status"`
	UtilizationRate float64         `json:"utilization_rate"`
	RevenueCents    int64           `json:"revenue_cents"`
	OverdueAlerts   int             `json:"overdue_alerts"`
	DueSoonAlerts   int             `json:"due_soon_alerts"`
	Alerts          []AlertResponse `json:"alerts"`
}

func FromSummaryView(v *queries.SummaryView) *SummaryResponse {
	out := &SummaryResponse{
		TotalResources:  v.TotalResources,
		ByCategory:      v.ByCategory,
		ByStatus:        v.ByStatus,
		UtilizationRate: v.UtilizationRate,
		RevenueCents:    v.RevenueCents,
		OverdueAlerts:   v.OverdueAlerts,
		DueSoonAlerts:   v.DueSoonAlerts,
	}
	for _, a := range v.Alerts {
		out.Alerts = append(out.Alerts, FromAlertView(a))
	}
	return out
}
