package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrInvalidCategory     = errors.New("invalid resource category")
	ErrInvalidStatus       = errors.New("invalid resource status")
	ErrInvalidCondition    = errors.New("condition rating must be between 1 and 5")
	ErrNegativeCapacity    = errors.New("capacity cannot be negative")
	ErrNegativeQuantity    = errors.New("quantity cannot be negative")
	ErrNegativeValue       = errors.New("monetary value cannot be negative")
)

const (
	MaxResourceNameLength = 255
	MinCondition          = 1
	MaxCondition          = 5
)

// Resource is a bookable physical or equipment asset. Capacity applies to
// spaces (facilities), quantity to consumables; both are optional.
type Resource struct {
	id         uuid.UUID
	name       string
	category   Category
	status     Status
	condition  int
	capacity   *int
	quantity   *int
	valueCents *int64
	createdAt  time.Time
	updatedAt  time.Time
}

func NewResource(
	name string,
	category Category,
	condition int,
	capacity, quantity *int,
	valueCents *int64,
	now time.Time,
) (*Resource, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if condition < MinCondition || condition > MaxCondition {
		return nil, ErrInvalidCondition
	}
	if capacity != nil && *capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if quantity != nil && *quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if valueCents != nil && *valueCents < 0 {
		return nil, ErrNegativeValue
	}

	return &Resource{
		id:         uuid.New(),
		name:       strings.TrimSpace(name),
		category:   category,
		status:     StatusAvailable,
		condition:  condition,
		capacity:   capacity,
		quantity:   quantity,
		valueCents: valueCents,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructResource(
	id uuid.UUID,
	name string,
	category Category,
	status Status,
	condition int,
	capacity, quantity *int,
	valueCents *int64,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:         id,
		name:       name,
		category:   category,
		status:     status,
		condition:  condition,
		capacity:   capacity,
		quantity:   quantity,
		valueCents: valueCents,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Resource) ChangeStatus(status Status, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	r.updatedAt = now
	return nil
}

func (r *Resource) ChangeCondition(condition int, now time.Time) error {
	if condition < MinCondition || condition > MaxCondition {
		return ErrInvalidCondition
	}
	r.condition = condition
	r.updatedAt = now
	return nil
}

func (r *Resource) Rename(name string, now time.Time) error {
	if err := validateName(name); err != nil {
		return err
	}
	r.name = strings.TrimSpace(name)
	r.updatedAt = now
	return nil
}

func (r *Resource) IsRetired() bool {
	return r.status == StatusRetired
}

// FitsAttendees reports whether a requested headcount fits the resource
// capacity. Resources without a capacity accept any headcount.
func (r *Resource) FitsAttendees(attendees int) bool {
	if r.capacity == nil || attendees <= 0 {
		return true
	}
	return attendees <= *r.capacity
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Category() Category   { return r.category }
func (r *Resource) Status() Status       { return r.status }
func (r *Resource) Condition() int       { return r.condition }
func (r *Resource) Capacity() *int       { return r.capacity }
func (r *Resource) Quantity() *int       { return r.quantity }
func (r *Resource) ValueCents() *int64   { return r.valueCents }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }
