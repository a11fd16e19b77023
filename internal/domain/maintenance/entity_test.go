//go:build unit

package maintenance_test

import (
	"testing"
	"time"

	"parish-reserve/internal/domain/maintenance"
	"parish-reserve/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		s, err := builder.NewScheduleBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "HVAC filter change", s.TaskType())
		assert.Equal(t, maintenance.FrequencyMonthly, s.Frequency())
		assert.Nil(t, s.LastCompleted())
	})

	cases := []struct {
		name   string
		mutate func(*builder.ScheduleBuilder)
		errIs  error
	}{
		{
			name:   "empty task type",
			mutate: func(b *builder.ScheduleBuilder) { b.TaskType = "  " },
			errIs:  maintenance.ErrEmptyTaskType,
		},
		{
			name:   "unknown frequency",
			mutate: func(b *builder.ScheduleBuilder) { b.Frequency = "biweekly" },
			errIs:  maintenance.ErrInvalidFrequency,
		},
		{
			name:   "unknown priority",
			mutate: func(b *builder.ScheduleBuilder) { b.Priority = "urgent" },
			errIs:  maintenance.ErrInvalidPriority,
		},
		{
			name:   "zero next due",
			mutate: func(b *builder.ScheduleBuilder) { b.NextDue = time.Time{} },
			errIs:  maintenance.ErrZeroNextDue,
		},
		{
			name: "negative estimated cost",
			mutate: func(b *builder.ScheduleBuilder) {
				cost := int64(-100)
				b.EstCostCents = &cost
			},
			errIs: maintenance.ErrNegativeCost,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewScheduleBuilder()
			tc.mutate(b)
			_, err := b.BuildDomain()
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestScheduleIsOverdue(t *testing.T) {
	due := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	s, err := builder.NewScheduleBuilder().With(func(b *builder.ScheduleBuilder) { b.NextDue = due }).BuildDomain()
	require.NoError(t, err)

	assert.False(t, s.IsOverdue(due.Add(-time.Hour)))
	assert.False(t, s.IsOverdue(due), "due exactly now is not yet overdue")
	assert.True(t, s.IsOverdue(due.Add(time.Hour)))
}

func TestScheduleComplete(t *testing.T) {
	cases := []struct {
		name      string
		frequency maintenance.Frequency
		nextDue   time.Time
		wantNext  time.Time
	}{
		{
			name:      "daily",
			frequency: maintenance.FrequencyDaily,
			nextDue:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantNext:  time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "weekly",
			frequency: maintenance.FrequencyWeekly,
			nextDue:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantNext:  time.Date(2024, 12, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly",
			frequency: maintenance.FrequencyMonthly,
			nextDue:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantNext:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "quarterly",
			frequency: maintenance.FrequencyQuarterly,
			nextDue:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantNext:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "yearly",
			frequency: maintenance.FrequencyYearly,
			nextDue:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantNext:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := builder.NewScheduleBuilder().With(func(b *builder.ScheduleBuilder) {
				b.Frequency = tc.frequency
				b.NextDue = tc.nextDue
			}).BuildDomain()
			require.NoError(t, err)

			completedAt := tc.nextDue.Add(36 * time.Hour)
			s.Complete(completedAt)

			require.NotNil(t, s.LastCompleted())
			assert.Equal(t, completedAt, *s.LastCompleted())
			// The next due advances from the previous due date, not from the
			// completion time, so a late completion does not drift the cycle.
			assert.Equal(t, tc.wantNext, s.NextDue())
		})
	}
}
