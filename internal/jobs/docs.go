// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SnapshotBroadcastJob - Runs every 30 seconds to republish the enriched
// views of upcoming slots through the realtime broadcaster, so subscribers
// that missed a change converge on current capacity.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(upcomingSlotsHandler, broadcaster, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Broadcasting is best-effort: a failed republish of one slot is logged and
// does not stop the sweep, and the next tick retries the full window anyway.
package jobs
