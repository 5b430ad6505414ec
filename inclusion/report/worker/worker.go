package worker

import (
	"context"

	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/inclusion/report/reportsrv"
	"github.com/incluempleo/vinculo/pkg/logx"
)

// ReportWorker consumes the delivery queue and runs the report pipeline
type ReportWorker struct {
	service *reportsrv.Service
	queue   report.Queue
	workers int
}

// NewReportWorker creates a worker pool over the delivery queue
func NewReportWorker(service *reportsrv.Service, queue report.Queue, workers int) *ReportWorker {
	if workers < 1 {
		workers = 1
	}
	return &ReportWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

// Start launches the worker pool. Workers stop when ctx is cancelled.
func (w *ReportWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d report delivery workers", w.workers)

	for i := 0; i < w.workers; i++ {
		go w.processDeliveries(ctx, i)
	}
}

func (w *ReportWorker) processDeliveries(ctx context.Context, workerID int) {
	logx.Infof("Report worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Report worker %d stopping", workerID)
			return
		default:
			id, err := w.queue.Dequeue(ctx)
			if err != nil {
				logx.Errorf("Report worker %d dequeue error: %v", workerID, err)
				continue
			}
			if id == nil {
				// Queue timeout, nothing to do
				continue
			}

			logx.Infof("Report worker %d processing report %s", workerID, id.String())
			result, err := w.service.GenerateAndSendReport(ctx, *id)
			if err != nil {
				logx.Errorf("Report worker %d delivery failed for %s: %v", workerID, id.String(), err)
				continue
			}
			if !result.Success {
				logx.Warnf("Report worker %d delivery refused for %s: %s", workerID, id.String(), result.Error)
			}
		}
	}
}
