//go:build unit

package builder

import (
	"time"

	domresource "parish-reserve/internal/domain/resource"
	reqdto "parish-reserve/internal/handler/dto/request"
	"parish-reserve/internal/usecase/commands"
)

type ResourceBuilder struct {
	Name       string
	Category   domresource.Category
	Condition  int
	Capacity   *int
	Quantity   *int
	ValueCents *int64
	CreatedAt  time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	capacity := 120
	return &ResourceBuilder{
		Name:      "Fellowship Hall",
		Category:  domresource.CategoryFacility,
		Condition: 4,
		Capacity:  &capacity,
		CreatedAt: time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(b)
	return b
}

func (b *ResourceBuilder) BuildDomain() (*domresource.Resource, error) {
	return domresource.NewResource(b.Name, b.Category, b.Condition, b.Capacity, b.Quantity, b.ValueCents, b.CreatedAt)
}

func (b *ResourceBuilder) BuildCreateParams() commands.CreateResourceParams {
	return commands.CreateResourceParams{
		Name:       b.Name,
		Category:   b.Category,
		Condition:  b.Condition,
		Capacity:   b.Capacity,
		Quantity:   b.Quantity,
		ValueCents: b.ValueCents,
	}
}

func (b *ResourceBuilder) BuildCreateRequestDTO() reqdto.CreateResourceRequest {
	return reqdto.CreateResourceRequest{
		Name:       b.Name,
		Category:   b.Category.String(),
		Condition:  b.Condition,
		Capacity:   b.Capacity,
		Quantity:   b.Quantity,
		ValueCents: b.ValueCents,
	}
}
