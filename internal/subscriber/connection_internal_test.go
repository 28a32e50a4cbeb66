package subscriber

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDelay_GrowsExponentiallyAndCaps(t *testing.T) {
	c := &Connection{
		baseDelay: 10 * time.Millisecond,
		maxDelay:  80 * time.Millisecond,
		jitterMax: 0,
	}

	assert.Equal(t, 10*time.Millisecond, c.nextDelay())
	assert.Equal(t, 20*time.Millisecond, c.nextDelay())
	assert.Equal(t, 40*time.Millisecond, c.nextDelay())
	assert.Equal(t, 80*time.Millisecond, c.nextDelay())
	// Capped from here on.
	assert.Equal(t, 80*time.Millisecond, c.nextDelay())
	assert.Equal(t, 5, c.attempts)
}

func TestNextDelay_JitterStaysBounded(t *testing.T) {
	c := &Connection{
		baseDelay: 10 * time.Millisecond,
		maxDelay:  time.Second,
		jitterMax: 5 * time.Millisecond,
	}

	for attempt := 0; attempt < 4; attempt++ {
		expected := 10 * time.Millisecond << uint(attempt)
		delay := c.nextDelay()
		assert.GreaterOrEqual(t, delay, expected)
		assert.Less(t, delay, expected+5*time.Millisecond)
	}
}

func TestNextDelay_OverflowFallsBackToMax(t *testing.T) {
	c := &Connection{
		baseDelay: time.Second,
		maxDelay:  30 * time.Second,
		attempts:  63,
	}

	assert.Equal(t, 30*time.Second, c.nextDelay())
}

func TestCanTransition_ClosedIsTerminal(t *testing.T) {
	for _, to := range []State{StateConnecting, StateConnected, StateDisconnected, StateClosed} {
		assert.False(t, canTransition(StateClosed, to), "closed -> %s", to)
	}
}

func TestCanTransition_FollowsCycle(t *testing.T) {
	assert.True(t, canTransition(StateConnecting, StateConnected))
	assert.True(t, canTransition(StateConnecting, StateDisconnected))
	assert.True(t, canTransition(StateConnected, StateDisconnected))
	assert.True(t, canTransition(StateDisconnected, StateConnecting))

	assert.False(t, canTransition(StateConnected, StateConnecting))
	assert.False(t, canTransition(StateDisconnected, StateConnected))

	for _, from := range []State{StateConnecting, StateConnected, StateDisconnected} {
		assert.True(t, canTransition(from, StateClosed), "%s -> closed", from)
	}
}

func TestParseQueueMetric(t *testing.T) {
	payload := json.RawMessage(`{"queue":"kitchen","updatedAt":"2026-03-01T12:00:00Z","depth":7,"oldest":"order-1"}`)

	metric, err := parseQueueMetric(payload)
	require.NoError(t, err)

	assert.Equal(t, "kitchen", metric.Queue)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), metric.UpdatedAt)
	assert.Equal(t, float64(7), metric.Fields["depth"])
	assert.Equal(t, "order-1", metric.Fields["oldest"])
	assert.NotContains(t, metric.Fields, "queue")
	assert.NotContains(t, metric.Fields, "updatedAt")
}

func TestParseQueueMetric_RejectsMissingKeyOrTimestamp(t *testing.T) {
	_, err := parseQueueMetric(json.RawMessage(`{"updatedAt":"2026-03-01T12:00:00Z"}`))
	assert.ErrorIs(t, err, errMetricWithoutQueue)

	_, err = parseQueueMetric(json.RawMessage(`{"queue":"kitchen","updatedAt":"yesterday"}`))
	assert.Error(t, err)

	_, err = parseQueueMetric(json.RawMessage(`[1,2,3]`))
	assert.Error(t, err)
}

func TestMergeQueueMetric_LaterSnapshotWinsAndRetainsFields(t *testing.T) {
	earlier := QueueMetric{
		Queue:     "kitchen",
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Fields:    map[string]any{"depth": 3, "operator": "ada"},
	}
	later := QueueMetric{
		Queue:     "kitchen",
		UpdatedAt: time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
		Fields:    map[string]any{"depth": 9},
	}

	merged := mergeQueueMetric(mergeQueueMetric(nil, earlier), later)

	require.Len(t, merged, 1)
	assert.Equal(t, later.UpdatedAt, merged[0].UpdatedAt)
	assert.Equal(t, 9, merged[0].Fields["depth"])
	// Metadata absent from the newer snapshot survives the merge.
	assert.Equal(t, "ada", merged[0].Fields["operator"])
}

func TestMergeQueueMetric_OutOfOrderSnapshotDoesNotRegress(t *testing.T) {
	later := QueueMetric{
		Queue:     "kitchen",
		UpdatedAt: time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
		Fields:    map[string]any{"depth": 9},
	}
	earlier := QueueMetric{
		Queue:     "kitchen",
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Fields:    map[string]any{"depth": 3},
	}

	merged := mergeQueueMetric(mergeQueueMetric(nil, later), earlier)

	require.Len(t, merged, 1)
	assert.Equal(t, later.UpdatedAt, merged[0].UpdatedAt)
	assert.Equal(t, 9, merged[0].Fields["depth"])
}

func TestMergeQueueMetric_SortedMostRecentFirst(t *testing.T) {
	kitchen := QueueMetric{
		Queue:     "kitchen",
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Fields:    map[string]any{},
	}
	storage := QueueMetric{
		Queue:     "storage",
		UpdatedAt: time.Date(2026, 3, 1, 12, 10, 0, 0, time.UTC),
		Fields:    map[string]any{},
	}

	merged := mergeQueueMetric(mergeQueueMetric(nil, kitchen), storage)

	require.Len(t, merged, 2)
	assert.Equal(t, "storage", merged[0].Queue)
	assert.Equal(t, "kitchen", merged[1].Queue)
}
