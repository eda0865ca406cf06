package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// PendingTransfersLister is satisfied by queries.GetPendingTransfersQueryHandler.
type PendingTransfersLister interface {
	Handle(ctx context.Context, query queries.GetPendingTransfersQuery) ([]queries.GetPendingTransfersQueryResponse, error)
}

// TransferBacklogJob reports the transfer requests the floor has not confirmed yet.
// Picking of a SKU is blocked while any of its requests is pending, so a growing backlog
// shows up as idle pickers.
type TransferBacklogJob struct {
	lister   PendingTransfersLister
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

func NewTransferBacklogJob(
	lister PendingTransfersLister,
	m *metrics.Metrics,
	schedule string,
	logger *slog.Logger,
) *TransferBacklogJob {
	return &TransferBacklogJob{
		lister:   lister,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "transfer_backlog_job"),
		now:      time.Now,
	}
}

// Start registers the report on the cron schedule.
func (j *TransferBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Transfer backlog job started", "schedule", j.schedule)
	return nil
}

// Run performs one report.
func (j *TransferBacklogJob) Run(ctx context.Context) {
	pending, err := j.lister.Handle(ctx, queries.NewGetPendingTransfersQuery(""))
	if err != nil {
		j.logger.ErrorContext(ctx, "Transfer backlog report failed", "error", err)
		return
	}

	boxes := 0
	for _, t := range pending {
		boxes += t.BoxCount
	}
	j.metrics.PendingTransfers.Set(float64(len(pending)))
	j.metrics.PendingTransferBoxes.Set(float64(boxes))

	if len(pending) == 0 {
		return
	}

	// Pending transfers are listed oldest first.
	oldest := pending[0]
	j.logger.InfoContext(ctx, "Transfers waiting for confirmation",
		"count", len(pending),
		"boxes", boxes,
		"oldest_sku", oldest.SKU,
		"oldest_pallet", oldest.PalletID,
		"oldest_age", j.now().Sub(oldest.CreatedAt).Round(time.Second).String(),
	)
}

// Stop stops the schedule and waits for a running report to finish.
func (j *TransferBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Transfer backlog job stopped")
}
