package request

import (
	"strings"
	"time"

	"parish-reserve/internal/domain/booking"
	"parish-reserve/internal/pkg/errs"
	"parish-reserve/internal/usecase/commands"

	"github.com/google/uuid"
)

type RecurrenceRequest struct {
	Frequency string     `json:"frequency" binding:"required,oneof=daily weekly monthly yearly"`
	Interval  int        `json:"interval" binding:"omitempty,min=1"`
	Weekdays  []string   `json:"weekdays" binding:"omitempty,dive,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	Until     *time.Time `json:"until"`
	Count     *int       `json:"count" binding:"omitempty,min=1"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (r *RecurrenceRequest) ToDomain() (*booking.Rule, error) {
	interval := r.Interval
	if interval == 0 {
		interval = 1
	}
	rule := &booking.Rule{
		Frequency: booking.Frequency(r.Frequency),
		Interval:  interval,
		Until:     r.Until,
		Count:     r.Count,
	}
	for _, name := range r.Weekdays {
		wd, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, errs.Newf("unknown weekday %q", name)
		}
		rule.Weekdays = append(rule.Weekdays, wd)
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

type CreateBookingRequest struct {
	ResourceID uuid.UUID          `json:"resource_id" binding:"required"`
	StartTime  time.Time          `json:"start_time" binding:"required"`
	EndTime    time.Time          `json:"end_time" binding:"required"`
	Title      string             `json:"title" binding:"omitempty,max=255"`
	Attendees  int                `json:"attendees" binding:"omitempty,min=0"`
	CostCents  *int64             `json:"cost_cents" binding:"omitempty,min=0"`
	Recurrence *RecurrenceRequest `json:"recurrence"`
}

func (r CreateBookingRequest) ToParams() (commands.CreateBookingParams, error) {
	params := commands.CreateBookingParams{
		ResourceID: r.ResourceID,
		Start:      r.StartTime,
		End:        r.EndTime,
		Title:      r.Title,
		Attendees:  r.Attendees,
		CostCents:  r.CostCents,
	}
	if r.Recurrence != nil {
		rule, err := r.Recurrence.ToDomain()
		if err != nil {
			return commands.CreateBookingParams{}, err
		}
		params.Recurrence = rule
	}
	return params, nil
}

type UpdateBookingRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	Title     *string    `json:"title" binding:"omitempty,max=255"`
}

func (r UpdateBookingRequest) ToParams() commands.UpdateBookingParams {
	params := commands.UpdateBookingParams{
		Start: r.StartTime,
		End:   r.EndTime,
		Title: r.Title,
	}
	if r.Status != nil {
		status := booking.Status(*r.Status)
		params.Status = &status
	}
	return params
}
