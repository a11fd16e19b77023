package maintenance

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type AlertKind string

const (
	AlertOverdue AlertKind = "overdue"
	AlertDueSoon AlertKind = "due_soon"
)

// Alert is a derived, never-persisted projection of one schedule's due
// state. It has no lifecycle of its own.
type Alert struct {
	ScheduleID   uuid.UUID
	ResourceID   uuid.UUID
	TaskType     string
	Kind         AlertKind
	Priority     Priority
	DueDate      time.Time
	EstCostCents *int64
}

// Classify maps a schedule's due date onto an alert kind:
// past due → overdue, due within the window → due_soon, otherwise none.
func Classify(s *Schedule, now time.Time, dueSoonWindow time.Duration) (AlertKind, bool) {
	switch {
	case s.NextDue().Before(now):
		return AlertOverdue, true
	case !s.NextDue().After(now.Add(dueSoonWindow)):
		return AlertDueSoon, true
	default:
		return "", false
	}
}

// BuildAlerts projects the schedules onto alerts, sorted by priority
// (critical first) and then by due date ascending.
func BuildAlerts(schedules []*Schedule, now time.Time, dueSoonWindow time.Duration) []Alert {
	var alerts []Alert
	for _, s := range schedules {
		kind, ok := Classify(s, now, dueSoonWindow)
		if !ok {
			continue
		}
		alerts = append(alerts, Alert{
			ScheduleID:   s.ID(),
			ResourceID:   s.ResourceID(),
			TaskType:     s.TaskType(),
			Kind:         kind,
			Priority:     s.Priority(),
			DueDate:      s.NextDue(),
			EstCostCents: s.EstCostCents(),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Priority.Rank() != alerts[j].Priority.Rank() {
			return alerts[i].Priority.Rank() > alerts[j].Priority.Rank()
		}
		return alerts[i].DueDate.Before(alerts[j].DueDate)
	})
	return alerts
}
