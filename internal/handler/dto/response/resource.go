package response

import (
	"time"

	"parish-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceResponse struct {
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

func FromResourceView(v *queries.ResourceView) *ResourceResponse {
	return &ResourceResponse{
		ID:         v.ID,
		Name:       v.Name,
		Category:   v.Category,
		Status:     v.Status,
		Condition:  v.Condition,
		Capacity:   v.Capacity,
		Quantity:   v.Quantity,
		ValueCents: v.ValueCents,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
