package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListUpcomingSlotIDsQueryHandler lists slots whose window starts between now
// and now plus the query horizon.
type ListUpcomingSlotIDsQueryHandler struct {
	db *gorm.DB
}

// NewListUpcomingSlotIDsQueryHandler creates a handler for upcoming slot id reads.
func NewListUpcomingSlotIDsQueryHandler(db *gorm.DB) ListUpcomingSlotIDsQueryHandler {
	return ListUpcomingSlotIDsQueryHandler{db: db}
}

// Handle executes the query.
func (h ListUpcomingSlotIDsQueryHandler) Handle(
	ctx context.Context,
	query ListUpcomingSlotIDsQuery,
) ([]kernel.UUID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id
		FROM slots
		WHERE start_time >= ? AND start_time <= ?
		ORDER BY start_time ASC
	`, now, now.Add(query.Horizon())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []kernel.UUID
	for rows.Next() {
		var raw uuid.UUID
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
