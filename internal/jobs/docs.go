// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision). A tick
// is skipped while the previous run of the same job is still going, and each
// run gets its own bounded context.
//
// # Available Jobs
//
// 1. DispatchSweepJob - re-dispatches the oldest REQUESTED jobs with coordinates
// 2. PresenceExpiryJob - takes cleaners offline once their presence is older than the TTL
//
// # Usage
//
//	manager := jobs.NewJobManager(logger,
//		jobs.NewDispatchSweepJob(jobStore, dispatcher, "*/30 * * * * *", 50, jobMetrics, logger),
//		jobs.NewPresenceExpiryJob(expirer, 15*time.Minute, "0 * * * * *", jobMetrics, logger),
//	)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// - The sweep treats no match and already assigned as normal outcomes
// - A failed dispatch of one job is logged and the sweep moves on
// - Failed job starts stop any already running jobs
package jobs
