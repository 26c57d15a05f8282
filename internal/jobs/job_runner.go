package jobs

import (
	"time"

	"gamerent-backend/internal/logger"
	"gamerent-backend/internal/repository"
	"gamerent-backend/internal/service"
)

// JobRunner coordinates the scheduled sweep over rentals, ledger codes and
// expiry warnings.
type JobRunner struct {
	store         repository.Store
	email         service.EmailService
	warningWindow time.Duration
}

func NewJobRunner(store repository.Store, email service.EmailService, warningWindow time.Duration) *JobRunner {
	if warningWindow <= 0 {
		warningWindow = 5 * time.Minute
	}
	return &JobRunner{
		store:         store,
		email:         email,
		warningWindow: warningWindow,
	}
}

// runWithRecovery wraps job execution with panic recovery so one failing
// check never takes the scheduler down.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Debug("Starting job", "job", jobName)
	jobFunc()
	logger.Debug("Job completed", "job", jobName)
}
