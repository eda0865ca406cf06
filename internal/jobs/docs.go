// Package jobs provides scheduled background reports for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TransferBacklogJob - exports and logs the unconfirmed transfer requests. Picking of a
// SKU stays blocked until its transfers are confirmed, so this is the first place to look
// when pickers report missing stock.
// 2. LotBacklogJob - exports the number of lots waiting for a picker and being picked.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(pendingTransfersHandler, availableLotsHandler, m,
//		jobs.Schedules{TransferReport: "0 */5 * * * *", LotReport: "*/30 * * * * *"}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed report is logged and retried on the next tick. A failed start stops the jobs
// already running.
package jobs
