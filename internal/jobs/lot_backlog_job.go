package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// AvailableLotsLister is satisfied by queries.GetAvailableLotsQueryHandler.
type AvailableLotsLister interface {
	Handle(ctx context.Context, query queries.GetAvailableLotsQuery) ([]queries.GetAvailableLotsQueryResponse, error)
}

// LotBacklogJob exports how many lots wait for a picker and how many are being picked.
type LotBacklogJob struct {
	lister   AvailableLotsLister
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewLotBacklogJob(lister AvailableLotsLister, m *metrics.Metrics, schedule string, logger *slog.Logger) *LotBacklogJob {
	return &LotBacklogJob{
		lister:   lister,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "lot_backlog_job"),
	}
}

func (j *LotBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lot backlog job started", "schedule", j.schedule)
	return nil
}

// Run performs one report.
func (j *LotBacklogJob) Run(ctx context.Context) {
	lots, err := j.lister.Handle(ctx, queries.NewGetAvailableLotsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Lot backlog report failed", "error", err)
		return
	}

	waiting, started, boxes := 0, 0, 0
	for _, l := range lots {
		if l.PickerID == nil {
			waiting++
		} else {
			started++
		}
		boxes += l.BoxCount
	}
	j.metrics.OpenLots.WithLabelValues("waiting").Set(float64(waiting))
	j.metrics.OpenLots.WithLabelValues("claimed").Set(float64(started))

	j.logger.DebugContext(ctx, "Lot backlog", "waiting", waiting, "claimed", started, "boxes", boxes)
}

func (j *LotBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Lot backlog job stopped")
}
