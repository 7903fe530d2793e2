// Package jobs schedules the storage lifecycle cleanup.
//
// Two CleanupJob instances run on independent cron schedules
// (github.com/robfig/cron/v3, six fields with seconds):
//
//   - fulfilled: deletes the files of delivered orders and clears their
//     references, daily by default.
//   - abandoned: deletes the files and records of orders that never got past
//     OrderPlaced within the retention window, hourly by default.
//
// Each job wraps its schedule in cron.SkipIfStillRunning, which is the run
// lock: a trigger that fires while the previous pass of the same policy is
// still running is dropped and logged.
//
//	manager := jobs.NewJobManager(fulfilledJob, abandonedJob)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer manager.StopAll()
//
// A pass never fails because of one candidate; the run summary is logged at
// Warn when any candidate was skipped or errored.
package jobs
