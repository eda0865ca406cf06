package jobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPendingTransfersLister struct{ mock.Mock }

func (m *MockPendingTransfersLister) Handle(
	ctx context.Context,
	query queries.GetPendingTransfersQuery,
) ([]queries.GetPendingTransfersQueryResponse, error) {
	args := m.Called(ctx, query)
	if r := args.Get(0); r != nil {
		return r.([]queries.GetPendingTransfersQueryResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAvailableLotsLister struct{ mock.Mock }

func (m *MockAvailableLotsLister) Handle(
	ctx context.Context,
	query queries.GetAvailableLotsQuery,
) ([]queries.GetAvailableLotsQueryResponse, error) {
	args := m.Called(ctx, query)
	if r := args.Get(0); r != nil {
		return r.([]queries.GetAvailableLotsQueryResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestTransferBacklogJob_Run_ExportsBacklog(t *testing.T) {
	created := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	lister := new(MockPendingTransfersLister)
	lister.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetPendingTransfersQuery) bool {
		return q.SKU() == ""
	})).Return([]queries.GetPendingTransfersQueryResponse{
		{ID: kernel.NewUUID(), SKU: "4607001771234", PalletID: "P-0001", BoxCount: 40, CreatedAt: created},
		{ID: kernel.NewUUID(), SKU: "4607001775678", PalletID: "P-0002", BoxCount: 12, CreatedAt: created.Add(time.Minute)},
	}, nil).Once()

	var logs bytes.Buffer
	m := metrics.New()
	job := NewTransferBacklogJob(lister, m, "0 */5 * * * *", slog.New(slog.NewTextHandler(&logs, nil)))
	job.now = func() time.Time { return created.Add(90 * time.Minute) }

	job.Run(t.Context())

	body := scrape(t, m)
	assert.Contains(t, body, "fulfillment_transfers_pending 2")
	assert.Contains(t, body, "fulfillment_transfers_pending_boxes 52")
	assert.Contains(t, logs.String(), "oldest_pallet=P-0001")
	assert.Contains(t, logs.String(), "oldest_age=1h30m0s")
	lister.AssertExpectations(t)
}

func TestTransferBacklogJob_Run_EmptyBacklogResetsGauges(t *testing.T) {
	lister := new(MockPendingTransfersLister)
	lister.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.GetPendingTransfersQueryResponse{{BoxCount: 5}}, nil).Once()
	lister.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.GetPendingTransfersQueryResponse{}, nil).Once()

	m := metrics.New()
	job := NewTransferBacklogJob(lister, m, "0 */5 * * * *", slog.New(slog.NewTextHandler(io.Discard, nil)))

	job.Run(t.Context())
	job.Run(t.Context())

	body := scrape(t, m)
	assert.Contains(t, body, "fulfillment_transfers_pending 0")
	assert.Contains(t, body, "fulfillment_transfers_pending_boxes 0")
}

func TestTransferBacklogJob_Run_QueryErrorKeepsLastValue(t *testing.T) {
	lister := new(MockPendingTransfersLister)
	lister.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.GetPendingTransfersQueryResponse{{BoxCount: 7}}, nil).Once()
	lister.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()

	var logs bytes.Buffer
	m := metrics.New()
	job := NewTransferBacklogJob(lister, m, "0 */5 * * * *", slog.New(slog.NewTextHandler(&logs, nil)))

	job.Run(t.Context())
	job.Run(t.Context())

	assert.Contains(t, scrape(t, m), "fulfillment_transfers_pending 1")
	assert.Contains(t, logs.String(), "connection reset")
}

func TestLotBacklogJob_Run_SplitsByClaim(t *testing.T) {
	picker := kernel.NewUUID()
	lister := new(MockAvailableLotsLister)
	lister.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetAvailableLotsQueryResponse{
		{LotNumber: "6000000001-1", BoxCount: 3},
		{LotNumber: "6000000001-2", BoxCount: 4},
		{LotNumber: "6000000002-1", PickerID: &picker, BoxCount: 9},
	}, nil).Once()

	m := metrics.New()
	job := NewLotBacklogJob(lister, m, "*/30 * * * * *", slog.New(slog.NewTextHandler(io.Discard, nil)))

	job.Run(t.Context())

	body := scrape(t, m)
	assert.Contains(t, body, `fulfillment_lots_open{state="waiting"} 2`)
	assert.Contains(t, body, `fulfillment_lots_open{state="claimed"} 1`)
}

func TestJobManager_StartAll_InvalidScheduleStopsStartedJobs(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jm := NewJobManager(new(MockPendingTransfersLister), new(MockAvailableLotsLister), metrics.New(),
		Schedules{TransferReport: "0 0 * * * *", LotReport: "not a schedule"}, logger)

	err := jm.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lot backlog job")
}

func TestJobManager_StartAndStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jm := NewJobManager(new(MockPendingTransfersLister), new(MockAvailableLotsLister), metrics.New(),
		Schedules{TransferReport: "0 0 * * * *", LotReport: "0 0 * * * *"}, logger)

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
