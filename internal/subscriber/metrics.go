package subscriber

import (
	"encoding/json"
	"errors"
	"sort"
	"time"
)

var errMetricWithoutQueue = errors.New("queue metric without queue key")

// QueueMetric is one merged metric snapshot for a queue key.
type QueueMetric struct {
	Queue     string
	UpdatedAt time.Time
	Fields    map[string]any
}

// parseQueueMetric decodes a queue.metrics payload. The envelope carries the
// queue key, an ISO-8601 updatedAt and an open set of additional fields.
func parseQueueMetric(payload json.RawMessage) (QueueMetric, error) {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return QueueMetric{}, err
	}

	queue, ok := raw["queue"].(string)
	if !ok || queue == "" {
		return QueueMetric{}, errMetricWithoutQueue
	}

	updatedAtRaw, _ := raw["updatedAt"].(string)
	updatedAt, err := time.Parse(time.RFC3339, updatedAtRaw)
	if err != nil {
		return QueueMetric{}, err
	}

	fields := make(map[string]any, len(raw))
	for key, value := range raw {
		if key == "queue" || key == "updatedAt" {
			continue
		}
		fields[key] = value
	}

	return QueueMetric{Queue: queue, UpdatedAt: updatedAt, Fields: fields}, nil
}

// mergeQueueMetric folds an incoming snapshot into the collection. The later
// snapshot wins per field, fields absent from the newer snapshot are retained,
// and the result stays sorted most recent first.
func mergeQueueMetric(metrics []QueueMetric, incoming QueueMetric) []QueueMetric {
	merged := incoming
	out := make([]QueueMetric, 0, len(metrics)+1)

	for _, existing := range metrics {
		if existing.Queue != incoming.Queue {
			out = append(out, existing)
			continue
		}
		merged = combineSnapshots(existing, incoming)
	}

	out = append(out, merged)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func combineSnapshots(existing, incoming QueueMetric) QueueMetric {
	older, newer := existing, incoming
	if existing.UpdatedAt.After(incoming.UpdatedAt) {
		older, newer = incoming, existing
	}

	fields := make(map[string]any, len(older.Fields)+len(newer.Fields))
	for key, value := range older.Fields {
		fields[key] = value
	}
	for key, value := range newer.Fields {
		fields[key] = value
	}

	return QueueMetric{Queue: newer.Queue, UpdatedAt: newer.UpdatedAt, Fields: fields}
}
