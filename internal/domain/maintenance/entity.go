package maintenance

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTaskType    = errors.New("maintenance task type cannot be empty")
	ErrInvalidFrequency = errors.New("invalid maintenance frequency")
	ErrInvalidPriority  = errors.New("invalid maintenance priority")
	ErrZeroNextDue      = errors.New("next due date is required")
	ErrNegativeCost     = errors.New("estimated cost cannot be negative")
)

// Schedule is a recurring upkeep task attached to a resource. Overdue is
// never stored: it is recomputed from nextDue against the observer's clock.
type Schedule struct {
	id            uuid.UUID
	resourceID    uuid.UUID
	taskType      string
	frequency     Frequency
	nextDue       time.Time
	priority      Priority
	estCostCents  *int64
	lastCompleted *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewSchedule(
	resourceID uuid.UUID,
	taskType string,
	frequency Frequency,
	nextDue time.Time,
	priority Priority,
	estCostCents *int64,
	now time.Time,
) (*Schedule, error) {
	taskType = strings.TrimSpace(taskType)
	if taskType == "" {
		return nil, ErrEmptyTaskType
	}
	if !frequency.IsValid() {
		return nil, ErrInvalidFrequency
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if nextDue.IsZero() {
		return nil, ErrZeroNextDue
	}
	if estCostCents != nil && *estCostCents < 0 {
		return nil, ErrNegativeCost
	}

	return &Schedule{
		id:           uuid.New(),
		resourceID:   resourceID,
		taskType:     taskType,
		frequency:    frequency,
		nextDue:      nextDue,
		priority:     priority,
		estCostCents: estCostCents,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructSchedule(
	id, resourceID uuid.UUID,
	taskType string,
	frequency Frequency,
	nextDue time.Time,
	priority Priority,
	estCostCents *int64,
	lastCompleted *time.Time,
	createdAt, updatedAt time.Time,
) *Schedule {
	return &Schedule{
		id:            id,
		resourceID:    resourceID,
		taskType:      taskType,
		frequency:     frequency,
		nextDue:       nextDue,
		priority:      priority,
		estCostCents:  estCostCents,
		lastCompleted: lastCompleted,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Complete records a finished maintenance task and advances nextDue by
// exactly one frequency period from the previous due date.
func (s *Schedule) Complete(now time.Time) {
	completed := now
	s.lastCompleted = &completed
	s.nextDue = s.frequency.advance(s.nextDue)
	s.updatedAt = now
}

// IsOverdue is a pure function of (nextDue, now): true iff nextDue < now.
func (s *Schedule) IsOverdue(now time.Time) bool {
	return s.nextDue.Before(now)
}

func (f Frequency) advance(from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return from.AddDate(0, 3, 0)
	case FrequencyYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from
	}
}

func (s *Schedule) ID() uuid.UUID             { return s.id }
func (s *Schedule) ResourceID() uuid.UUID     { return s.resourceID }
func (s *Schedule) TaskType() string          { return s.taskType }
func (s *Schedule) Frequency() Frequency      { return s.frequency }
func (s *Schedule) NextDue() time.Time        { return s.nextDue }
func (s *Schedule) Priority() Priority        { return s.priority }
func (s *Schedule) EstCostCents() *int64      { return s.estCostCents }
func (s *Schedule) LastCompleted() *time.Time { return s.lastCompleted }
func (s *Schedule) CreatedAt() time.Time      { return s.createdAt }
func (s *Schedule) UpdatedAt() time.Time      { return s.updatedAt }
