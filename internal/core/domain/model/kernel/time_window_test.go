package kernel_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeWindow(t *testing.T) {
	start := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	t.Run("should create window with valid bounds", func(t *testing.T) {
		window, err := kernel.NewTimeWindow(start, start.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, start, window.Start())
		assert.Equal(t, start.Add(time.Hour), window.End())
		assert.Equal(t, time.Hour, window.Duration())
		require.NoError(t, window.Validate())
	})

	t.Run("should return error when end equals start", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(start, start)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "end")
	})

	t.Run("should return error when end is before start", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(start, start.Add(-time.Minute))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not after")
	})

	t.Run("should return error for zero start", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(time.Time{}, start)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "start")
	})

	t.Run("should return error for zero end", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(start, time.Time{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "end")
	})
}

func TestTimeWindow_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var window kernel.TimeWindow

		err := window.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrTimeWindowIsNotConstructed, err)
	})
}

func TestTimeWindow_IsEqual(t *testing.T) {
	start := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	t.Run("windows with same bounds are equal", func(t *testing.T) {
		first, err := kernel.NewTimeWindow(start, start.Add(time.Hour))
		require.NoError(t, err)
		second, err := kernel.NewTimeWindow(start, start.Add(time.Hour))
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
	})

	t.Run("windows with different bounds are not equal", func(t *testing.T) {
		first, err := kernel.NewTimeWindow(start, start.Add(time.Hour))
		require.NoError(t, err)
		second, err := kernel.NewTimeWindow(start, start.Add(2*time.Hour))
		require.NoError(t, err)

		assert.False(t, first.IsEqual(second))
	})

	t.Run("equality ignores time zone representation", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*60*60)
		first, err := kernel.NewTimeWindow(start, start.Add(time.Hour))
		require.NoError(t, err)
		second, err := kernel.NewTimeWindow(start.In(loc), start.Add(time.Hour).In(loc))
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
	})
}
