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

const dueSoonWindow = 168 * time.Hour

func scheduleDue(t *testing.T, due time.Time, priority maintenance.Priority) *maintenance.Schedule {
	t.Helper()
	s, err := builder.NewScheduleBuilder().With(func(b *builder.ScheduleBuilder) {
		b.NextDue = due
		b.Priority = priority
	}).BuildDomain()
	require.NoError(t, err)
	return s
}

func TestClassify(t *testing.T) {
	now := time.Date(2024, 11, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		due      time.Time
		wantKind maintenance.AlertKind
		wantOK   bool
	}{
		{
			name:     "past due is overdue",
			due:      now.Add(-24 * time.Hour),
			wantKind: maintenance.AlertOverdue,
			wantOK:   true,
		},
		{
			name:     "within the window is due soon",
			due:      now.Add(3 * 24 * time.Hour),
			wantKind: maintenance.AlertDueSoon,
			wantOK:   true,
		},
		{
			name:     "exactly at the window edge is due soon",
			due:      now.Add(dueSoonWindow),
			wantKind: maintenance.AlertDueSoon,
			wantOK:   true,
		},
		{
			name:   "beyond the window is silent",
			due:    now.Add(30 * 24 * time.Hour),
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := maintenance.Classify(scheduleDue(t, tc.due, maintenance.PriorityMedium), now, dueSoonWindow)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantKind, kind)
			}
		})
	}
}

func TestBuildAlerts(t *testing.T) {
	now := time.Date(2024, 11, 15, 12, 0, 0, 0, time.UTC)

	lowOverdue := scheduleDue(t, now.Add(-48*time.Hour), maintenance.PriorityLow)
	criticalDueSoon := scheduleDue(t, now.Add(2*24*time.Hour), maintenance.PriorityCritical)
	highEarly := scheduleDue(t, now.Add(-72*time.Hour), maintenance.PriorityHigh)
	highLate := scheduleDue(t, now.Add(24*time.Hour), maintenance.PriorityHigh)
	quiet := scheduleDue(t, now.Add(60*24*time.Hour), maintenance.PriorityCritical)

	alerts := maintenance.BuildAlerts(
		[]*maintenance.Schedule{lowOverdue, criticalDueSoon, highEarly, highLate, quiet},
		now, dueSoonWindow,
	)

	require.Len(t, alerts, 4)
	// Priority first, then due date ascending within the same priority.
	assert.Equal(t, criticalDueSoon.ID(), alerts[0].ScheduleID)
	assert.Equal(t, highEarly.ID(), alerts[1].ScheduleID)
	assert.Equal(t, highLate.ID(), alerts[2].ScheduleID)
	assert.Equal(t, lowOverdue.ID(), alerts[3].ScheduleID)

	assert.Equal(t, maintenance.AlertDueSoon, alerts[0].Kind)
	assert.Equal(t, maintenance.AlertOverdue, alerts[1].Kind)
}
