package request

import (
	"parish-reserve/internal/domain/resource"
	"parish-reserve/internal/usecase/commands"
)

type CreateResourceRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	Category   string `json:"category" binding:"required,oneof=facility equipment material vehicle technology other"`
	Condition  int    `json:"condition" binding:"required,min=1,max=5"`
	Capacity   *int   `json:"capacity" binding:"omitempty,min=0"`
	Quantity   *int   `json:"quantity" binding:"omitempty,min=0"`
	ValueCents *int64 `json:"value_cents" binding:"omitempty,min=0"`
}

func (r CreateResourceRequest) ToParams() commands.CreateResourceParams {
	return commands.CreateResourceParams{
		Name:       r.Name,
		Category:   resource.Category(r.Category),
		Condition:  r.Condition,
		Capacity:   r.Capacity,
		Quantity:   r.Quantity,
		ValueCents: r.ValueCents,
	}
}

type UpdateResourceRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=255"`
	Status    *string `json:"status" binding:"omitempty,oneof=available in_use maintenance out_of_order retired"`
	Condition *int    `json:"condition" binding:"omitempty,min=1,max=5"`
}

func (r UpdateResourceRequest) ToParams() commands.UpdateResourceParams {
	params := commands.UpdateResourceParams{
		Name:      r.Name,
		Condition: r.Condition,
	}
	if r.Status != nil {
		status := resource.Status(*r.Status)
		params.Status = &status
	}
	return params
}
