// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// DispatchJob runs a dispatch over the pending orders on a configurable schedule.
// The schedule accepts six-field cron expressions with seconds ("*/30 * * * * *")
// and descriptors ("@every 1m").
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(dispatchHandler, "@every 30s", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next tick tries again. A tick that fires while the
// previous run is still working is skipped.
package jobs
