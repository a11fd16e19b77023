package response

import (
	"time"

	"parish-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type TimeSlotResponse struct {
	Start      time.Time   `json:"start"`
	End        time.Time   `json:"end"`
	Available  bool        `json:"available"`
	BookingIDs []uuid.UUID `json:"booking_ids,omitempty"`
}

type AvailabilityResponse struct {
	ResourceID  uuid.UUID          `json:"resource_id"`
	Date        string             `json:"date"`
	Slots       []TimeSlotResponse `json:"slots"`
	FullyBooked bool               `json:"fully_booked"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	out := &AvailabilityResponse{
		ResourceID:  v.ResourceID,
		Date:        v.Date,
		FullyBooked: v.FullyBooked,
		Slots:       make([]TimeSlotResponse, len(v.Slots)),
	}
	for i, s := range v.Slots {
		out.Slots[i] = TimeSlotResponse{
			Start:      s.Start,
			End:        s.End,
			Available:  s.Available,
			BookingIDs: s.BookingIDs,
		}
	}
	return out
}
