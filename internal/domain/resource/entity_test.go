//go:build unit

package resource_test

import (
	"testing"
	"time"

	"parish-reserve/internal/domain/resource"
	"parish-reserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResource(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		r, err := builder.NewResourceBuilder().BuildDomain()
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, resource.StatusAvailable, r.Status(), "new resources start available")
		assert.Equal(t, "Fellowship Hall", r.Name())
	})

	cases := []struct {
		name   string
		mutate func(*builder.ResourceBuilder)
		errIs  error
	}{
		{
			name:   "empty name",
			mutate: func(b *builder.ResourceBuilder) { b.Name = "   " },
			errIs:  resource.ErrEmptyResourceName,
		},
		{
			name:   "unknown category",
			mutate: func(b *builder.ResourceBuilder) { b.Category = "furniture" },
			errIs:  resource.ErrInvalidCategory,
		},
		{
			name:   "condition below range",
			mutate: func(b *builder.ResourceBuilder) { b.Condition = 0 },
			errIs:  resource.ErrInvalidCondition,
		},
		{
			name:   "condition above range",
			mutate: func(b *builder.ResourceBuilder) { b.Condition = 6 },
			errIs:  resource.ErrInvalidCondition,
		},
		{
			name: "negative capacity",
			mutate: func(b *builder.ResourceBuilder) {
				capacity := -1
				b.Capacity = &capacity
			},
			errIs: resource.ErrNegativeCapacity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewResourceBuilder()
			tc.mutate(b)
			_, err := b.BuildDomain()
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestResourceFitsAttendees(t *testing.T) {
	t.Run("within capacity", func(t *testing.T) {
		r, err := builder.NewResourceBuilder().BuildDomain()
		require.NoError(t, err)
		assert.True(t, r.FitsAttendees(120))
		assert.False(t, r.FitsAttendees(121))
	})

	t.Run("no capacity means no limit", func(t *testing.T) {
		r, err := builder.NewResourceBuilder().With(func(b *builder.ResourceBuilder) {
			b.Capacity = nil
		}).BuildDomain()
		require.NoError(t, err)
		assert.True(t, r.FitsAttendees(10000))
	})
}

func TestResourceTransitions(t *testing.T) {
	now := time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC)
	r, err := builder.NewResourceBuilder().BuildDomain()
	require.NoError(t, err)

	require.NoError(t, r.ChangeStatus(resource.StatusRetired, now))
	assert.True(t, r.IsRetired())
	assert.Equal(t, now, r.UpdatedAt())

	assert.ErrorIs(t, r.ChangeStatus("broken", now), resource.ErrInvalidStatus)
	assert.ErrorIs(t, r.ChangeCondition(9, now), resource.ErrInvalidCondition)
	assert.ErrorIs(t, r.Rename("", now), resource.ErrEmptyResourceName)
}
