package jobs

import (
	"fmt"
)

// JobManager starts and stops the scheduled cleanup jobs together.
type JobManager struct {
	jobs []*CleanupJob
}

func NewJobManager(jobs ...*CleanupJob) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts every job. When one fails to start, the ones already
// started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
	}
	return nil
}

// StopAll stops every job and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	for _, job := range jm.jobs {
		job.Stop()
	}
}
