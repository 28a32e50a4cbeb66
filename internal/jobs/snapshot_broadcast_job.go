package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// snapshotHorizon bounds how far ahead slot windows are swept per tick.
const snapshotHorizon = 24 * time.Hour

// SnapshotBroadcastJob periodically republishes the enriched views of
// upcoming slots. Subscribers that joined late or dropped an event converge
// on current capacity without waiting for the next mutation.
type SnapshotBroadcastJob struct {
	upcoming  queries.ListUpcomingSlotIDsQueryHandler
	publisher commands.SlotPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewSnapshotBroadcastJob creates a job that sweeps upcoming slots every 30 seconds.
func NewSnapshotBroadcastJob(
	upcoming queries.ListUpcomingSlotIDsQueryHandler,
	publisher commands.SlotPublisher,
	logger *slog.Logger,
) *SnapshotBroadcastJob {
	return &SnapshotBroadcastJob{
		upcoming:  upcoming,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "snapshot_broadcast_job"),
	}
}

// Start begins the snapshot broadcast job.
func (j *SnapshotBroadcastJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewListUpcomingSlotIDsQuery(snapshotHorizon)
		if err != nil {
			j.logger.ErrorContext(ctx, "Snapshot broadcast job misconfigured", "error", err)
			return
		}

		ids, err := j.upcoming.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Snapshot broadcast job failed to list slots", "error", err)
			return
		}

		for _, id := range ids {
			j.publisher.Publish(ctx, id)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot broadcast job started (running every 30 seconds)")
	return nil
}

// Stop stops the snapshot broadcast job.
func (j *SnapshotBroadcastJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Snapshot broadcast job stopped")
}
