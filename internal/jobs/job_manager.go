package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/pkg/metrics"
)

// Schedules are six-field cron expressions (with seconds).
type Schedules struct {
	TransferReport string
	LotReport      string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	transferBacklogJob *TransferBacklogJob
	lotBacklogJob      *LotBacklogJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	transfers PendingTransfersLister,
	lots AvailableLotsLister,
	m *metrics.Metrics,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		transferBacklogJob: NewTransferBacklogJob(transfers, m, schedules.TransferReport, logger),
		lotBacklogJob:      NewLotBacklogJob(lots, m, schedules.LotReport, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.transferBacklogJob.Start(); err != nil {
		return fmt.Errorf("failed to start transfer backlog job: %w", err)
	}

	if err := jm.lotBacklogJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.transferBacklogJob.Stop()
		return fmt.Errorf("failed to start lot backlog job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.lotBacklogJob.Stop()
	jm.transferBacklogJob.Stop()
}
