package response

import (
	"time"

	"parish-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
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

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:         v.ID,
		ResourceID: v.ResourceID,
		SeriesID:   v.SeriesID,
		Start:      v.Start,
		End:        v.End,
		Status:     v.Status,
		Title:      v.Title,
		Attendees:  v.Attendees,
		CostCents:  v.CostCents,
		Conflicts:  v.Conflicts,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

// BookingSeriesResponse is the creation payload: one element for plain
// bookings, the whole materialized series for recurring ones.
type BookingSeriesResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
}

func FromBookingViews(vs []*queries.BookingView) *BookingSeriesResponse {
	out := &BookingSeriesResponse{Bookings: make([]*BookingResponse, len(vs))}
	for i, v := range vs {
		out.Bookings[i] = FromBookingView(v)
	}
	return out
}
