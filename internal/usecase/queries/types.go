package queries

import (
	"context"
	"time"

	"parish-reserve/internal/domain/booking"
	"parish-reserve/internal/domain/maintenance"
	"parish-reserve/internal/domain/resource"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type ResourceView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	Condition  int       `json:"condition"`
	Capacity   *int      `json:"capacity,omitempty"`
	Quantity   *int      `json:"quantity,omitempty"`
	ValueCents *int64    `json:"value_cents,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BookingView struct {
	ID         uuid.UUID   `json:"id"`
	ResourceID uuid.UUID   `json:"resource_id"`
	SeriesID   *uuid.UUID  `json:"series_id,omitempty"`
	Start      time.Time   `json:"start"`
	End        time.Time   `json:"end"`
	Status     string      `json:"status"`
	Title      string      `json:"title,omitempty"`
	Attendees  int         `json:"attendees,omitempty"`
	CostCents  *int64      `json:"cost_cents,omitempty"`
	Conflicts  []uuid.UUID `json:"conflicts"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TimeSlotView is one fixed-width subdivision of an operating day. When
// multiple bookings overlap a slot, BookingIDs reports all of them, ordered
// by start time then id.
type TimeSlotView struct {
	Start      time.Time   `json:"start"`
	End        time.Time   `json:"end"`
	Available  bool        `json:"available"`
	BookingIDs []uuid.UUID `json:"booking_ids,omitempty"`
}

type AvailabilityView struct {
	ResourceID  uuid.UUID      `json:"resource_id"`
	Date        string         `json:"date"`
	Slots       []TimeSlotView `json:"slots"`
	FullyBooked bool           `json:"fully_booked"`
}

type ScheduleView struct {
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

type AlertView struct {
	ScheduleID   uuid.UUID `json:"schedule_id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	TaskType     string    `json:"task_type"`
	Kind         string    `json:"kind"`
	Priority     string    `json:"priority"`
	DueDate      time.Time `json:"due_date"`
	EstCostCents *int64    `json:"est_cost_cents,omitempty"`
}

type SummaryView struct {
	TotalResources  int            `json:"total_resources"`
	ByCategory      map[string]int `json:"by_category"`
	ByStatus        map[string]int `json:"by_status"`
	UtilizationRate float64        `json:"utilization_rate"`
	RevenueCents    int64          `json:"revenue_cents"`
	OverdueAlerts   int            `json:"overdue_alerts"`
	DueSoonAlerts   int            `json:"due_soon_alerts"`
	Alerts          []AlertView    `json:"alerts"`
}

// Read-side ports, implemented by the same stores as the write side.

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	List(ctx context.Context, category *resource.Category, status *resource.Status) ([]*resource.Resource, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*booking.Booking, error)
	ListAll(ctx context.Context) ([]*booking.Booking, error)
}

type MaintenanceReadStore interface {
	List(ctx context.Context, resourceID *uuid.UUID) ([]*maintenance.Schedule, error)
}

// View constructors shared by the query implementations.

func NewResourceView(r *resource.Resource) *ResourceView {
	return &ResourceView{
		ID:         r.ID(),
		Name:       r.Name(),
		Category:   r.Category().String(),
		Status:     r.Status().String(),
		Condition:  r.Condition(),
		Capacity:   r.Capacity(),
		Quantity:   r.Quantity(),
		ValueCents: r.ValueCents(),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
	}
}

func NewBookingView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:         b.ID(),
		ResourceID: b.ResourceID(),
		SeriesID:   b.SeriesID(),
		Start:      b.Interval().Start(),
		End:        b.Interval().End(),
		Status:     b.Status().String(),
		Title:      b.Title(),
		Attendees:  b.Attendees(),
		CostCents:  b.CostCents(),
		Conflicts:  b.Conflicts(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
}

func NewScheduleView(s *maintenance.Schedule, now time.Time) *ScheduleView {
	return &ScheduleView{
		ID:            s.ID(),
		ResourceID:    s.ResourceID(),
		TaskType:      s.TaskType(),
		Frequency:     s.Frequency().String(),
		NextDue:       s.NextDue(),
		Priority:      s.Priority().String(),
		EstCostCents:  s.EstCostCents(),
		LastCompleted: s.LastCompleted(),
		IsOverdue:     s.IsOverdue(now),
	}
}

func NewAlertView(a maintenance.Alert) AlertView {
	return AlertView{
		ScheduleID:   a.ScheduleID,
		ResourceID:   a.ResourceID,
		TaskType:     a.TaskType,
		Kind:         string(a.Kind),
		Priority:     a.Priority.String(),
		DueDate:      a.DueDate,
		EstCostCents: a.EstCostCents,
	}
}
