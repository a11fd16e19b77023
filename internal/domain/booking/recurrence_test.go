//go:build unit

package booking_test

import (
	"testing"
	"time"

	"parish-reserve/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int              { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestRuleValidate(t *testing.T) {
	cases := []struct {
		name  string
		rule  booking.Rule
		errIs error
	}{
		{
			name: "daily with count",
			rule: booking.Rule{Frequency: booking.FrequencyDaily, Interval: 1, Count: intPtr(5)},
		},
		{
			name:  "unknown frequency",
			rule:  booking.Rule{Frequency: "fortnightly", Interval: 1, Count: intPtr(5)},
			errIs: booking.ErrInvalidFrequency,
		},
		{
			name:  "zero interval",
			rule:  booking.Rule{Frequency: booking.FrequencyDaily, Interval: 0, Count: intPtr(5)},
			errIs: booking.ErrInvalidRuleInterval,
		},
		{
			name: "both until and count",
			rule: booking.Rule{
				Frequency: booking.FrequencyDaily,
				Interval:  1,
				Until:     timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
				Count:     intPtr(5),
			},
			errIs: booking.ErrInvalidRuleBounds,
		},
		{
			name: "weekdays on a monthly rule",
			rule: booking.Rule{
				Frequency: booking.FrequencyMonthly,
				Interval:  1,
				Weekdays:  []time.Weekday{time.Sunday},
				Count:     intPtr(3),
			},
			errIs: booking.ErrWeekdaysNotAllowed,
		},
		{
			name:  "non-positive count",
			rule:  booking.Rule{Frequency: booking.FrequencyDaily, Interval: 1, Count: intPtr(0)},
			errIs: booking.ErrInvalidRuleBounds,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRuleExpand(t *testing.T) {
	// 2024-11-03 is a Sunday.
	anchor := mustInterval(t,
		time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 3, 11, 0, 0, 0, time.UTC),
	)

	t.Run("weekly on sundays with count", func(t *testing.T) {
		rule := booking.Rule{
			Frequency: booking.FrequencyWeekly,
			Interval:  1,
			Weekdays:  []time.Weekday{time.Sunday},
			Count:     intPtr(3),
		}
		occs, err := rule.Expand(anchor, booking.Horizon{MaxOccurrences: 52})
		require.NoError(t, err)
		require.Len(t, occs, 3)
		assert.Equal(t, time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC), occs[0].Start())
		assert.Equal(t, time.Date(2024, 11, 10, 9, 0, 0, 0, time.UTC), occs[1].Start())
		assert.Equal(t, time.Date(2024, 11, 17, 9, 0, 0, 0, time.UTC), occs[2].Start())
		for _, occ := range occs {
			assert.Equal(t, 2*time.Hour, occ.Duration())
			assert.Equal(t, time.Sunday, occ.Start().Weekday())
		}
	})

	t.Run("twice weekly set spans the anchor week", func(t *testing.T) {
		rule := booking.Rule{
			Frequency: booking.FrequencyWeekly,
			Interval:  1,
			Weekdays:  []time.Weekday{time.Sunday, time.Wednesday},
			Count:     intPtr(4),
		}
		occs, err := rule.Expand(anchor, booking.Horizon{MaxOccurrences: 52})
		require.NoError(t, err)
		require.Len(t, occs, 4)
		assert.Equal(t, time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC), occs[0].Start())
		assert.Equal(t, time.Date(2024, 11, 6, 9, 0, 0, 0, time.UTC), occs[1].Start())
		assert.Equal(t, time.Date(2024, 11, 10, 9, 0, 0, 0, time.UTC), occs[2].Start())
		assert.Equal(t, time.Date(2024, 11, 13, 9, 0, 0, 0, time.UTC), occs[3].Start())
	})

	t.Run("daily until bound is inclusive of the boundary start", func(t *testing.T) {
		rule := booking.Rule{
			Frequency: booking.FrequencyDaily,
			Interval:  1,
			Until:     timePtr(time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)),
		}
		occs, err := rule.Expand(anchor, booking.Horizon{MaxOccurrences: 52})
		require.NoError(t, err)
		require.Len(t, occs, 3)
		assert.Equal(t, time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC), occs[2].Start())
	})

	t.Run("monthly keeps the day of month", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyMonthly, Interval: 1, Count: intPtr(3)}
		occs, err := rule.Expand(anchor, booking.Horizon{MaxOccurrences: 52})
		require.NoError(t, err)
		require.Len(t, occs, 3)
		assert.Equal(t, time.Date(2024, 12, 3, 9, 0, 0, 0, time.UTC), occs[1].Start())
		assert.Equal(t, time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC), occs[2].Start())
	})

	t.Run("horizon occurrence cap trims an open rule", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyDaily, Interval: 1}
		occs, err := rule.Expand(anchor, booking.Horizon{MaxOccurrences: 10})
		require.NoError(t, err)
		assert.Len(t, occs, 10)
	})

	t.Run("horizon date bound trims an open rule", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyWeekly, Interval: 1}
		occs, err := rule.Expand(anchor, booking.Horizon{End: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)})
		require.NoError(t, err)
		require.Len(t, occs, 4)
		assert.Equal(t, time.Date(2024, 11, 24, 9, 0, 0, 0, time.UTC), occs[3].Start())
	})

	t.Run("open rule with no horizon fails", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyDaily, Interval: 1}
		_, err := rule.Expand(anchor, booking.Horizon{})
		assert.ErrorIs(t, err, booking.ErrUnboundedExpansion)
	})

	t.Run("rule count tighter than horizon wins", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyDaily, Interval: 1, Count: intPtr(2)}
		occs, err := rule.Expand(anchor, booking.Horizon{MaxOccurrences: 52})
		require.NoError(t, err)
		assert.Len(t, occs, 2)
	})

	t.Run("interval stride skips periods", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyWeekly, Interval: 2, Count: intPtr(3)}
		occs, err := rule.Expand(anchor, booking.Horizon{MaxOccurrences: 52})
		require.NoError(t, err)
		require.Len(t, occs, 3)
		assert.Equal(t, time.Date(2024, 11, 17, 9, 0, 0, 0, time.UTC), occs[1].Start())
		assert.Equal(t, time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC), occs[2].Start())
	})
}
