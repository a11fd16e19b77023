package commands

import (
	"context"
	"time"

	"parish-reserve/internal/domain/booking"
	"parish-reserve/internal/domain/maintenance"
	"parish-reserve/internal/domain/resource"

	"github.com/google/uuid"
)

// Write-side ports. Implemented by memstore (in-process) and pgstore
// (Postgres); the engine never sees which.

type ResourceRepository interface {
	Create(ctx context.Context, r *resource.Resource) error
	Update(ctx context.Context, r *resource.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*booking.Booking, error)
	DeleteByResource(ctx context.Context, resourceID uuid.UUID) error

	// WithResourceLock serializes booking mutations per resource so the
	// conflict-check-then-insert sequence stays atomic under concurrent
	// writers. Implementations may use an in-process mutex or a database
	// advisory lock.
	WithResourceLock(ctx context.Context, resourceID uuid.UUID, fn func(ctx context.Context) error) error
}

type MaintenanceRepository interface {
	Create(ctx context.Context, s *maintenance.Schedule) error
	Update(ctx context.Context, s *maintenance.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Schedule, error)
	DeleteByResource(ctx context.Context, resourceID uuid.UUID) error
}
