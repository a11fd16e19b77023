//go:build unit

package booking_test

import (
	"testing"
	"time"

	"parish-reserve/internal/domain/booking"
	"parish-reserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end time.Time) booking.Interval {
	t.Helper()
	iv, err := booking.NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestNewInterval(t *testing.T) {
	base := time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC)

	t.Run("valid interval", func(t *testing.T) {
		iv, err := booking.NewInterval(base, base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, base, iv.Start())
		assert.Equal(t, base.Add(2*time.Hour), iv.End())
		assert.Equal(t, 2*time.Hour, iv.Duration())
	})

	t.Run("end equals start", func(t *testing.T) {
		_, err := booking.NewInterval(base, base)
		assert.ErrorIs(t, err, errs.ErrInvalidInterval)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := booking.NewInterval(base, base.Add(-time.Minute))
		assert.ErrorIs(t, err, errs.ErrInvalidInterval)
	})
}

func TestIntervalOverlaps(t *testing.T) {
	day := time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	cases := []struct {
		name    string
		a, b    booking.Interval
		overlap bool
	}{
		{
			name:    "partial overlap",
			a:       mustInterval(t, at(9), at(11)),
			b:       mustInterval(t, at(10), at(12)),
			overlap: true,
		},
		{
			name:    "containment",
			a:       mustInterval(t, at(9), at(17)),
			b:       mustInterval(t, at(10), at(11)),
			overlap: true,
		},
		{
			name:    "identical",
			a:       mustInterval(t, at(9), at(11)),
			b:       mustInterval(t, at(9), at(11)),
			overlap: true,
		},
		{
			name:    "back to back is not an overlap",
			a:       mustInterval(t, at(9), at(10)),
			b:       mustInterval(t, at(10), at(11)),
			overlap: false,
		},
		{
			name:    "disjoint",
			a:       mustInterval(t, at(9), at(10)),
			b:       mustInterval(t, at(14), at(15)),
			overlap: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.overlap, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestIntervalShiftDate(t *testing.T) {
	iv := mustInterval(t,
		time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 3, 11, 0, 0, 0, time.UTC),
	)

	shifted := iv.ShiftDate(0, 1, 0)
	assert.Equal(t, time.Date(2024, 12, 3, 9, 0, 0, 0, time.UTC), shifted.Start())
	assert.Equal(t, 2*time.Hour, shifted.Duration())
}
