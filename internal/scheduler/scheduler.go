// Package scheduler wires the cron jobs that drive the report retry
// sweep and the monthly quota snapshots.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/incluempleo/vinculo/inclusion/quota/quotasrv"
	"github.com/incluempleo/vinculo/inclusion/report/reportsrv"
	"github.com/incluempleo/vinculo/pkg/logx"
)

const (
	// Hourly sweep over FAILED and RETRY reports with attempts left
	DefaultRetrySpec = "0 * * * *"
	// First day of each month, snapshots freeze the previous month
	DefaultSnapshotSpec = "0 2 1 * *"
)

// Scheduler wraps robfig/cron around the recurring compliance jobs
type Scheduler struct {
	cron         *cron.Cron
	reports      *reportsrv.Service
	quotas       *quotasrv.Service
	retrySpec    string
	snapshotSpec string
}

// New creates a scheduler over the report and quota services. Blank cron
// specs fall back to the defaults.
func New(reports *reportsrv.Service, quotas *quotasrv.Service, retrySpec, snapshotSpec string) *Scheduler {
	if retrySpec == "" {
		retrySpec = DefaultRetrySpec
	}
	if snapshotSpec == "" {
		snapshotSpec = DefaultSnapshotSpec
	}
	return &Scheduler{
		cron:         cron.New(),
		reports:      reports,
		quotas:       quotas,
		retrySpec:    retrySpec,
		snapshotSpec: snapshotSpec,
	}
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.retrySpec, func() {
		s.runRetrySweep(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule retry sweep: %w", err)
	}

	if _, err := s.cron.AddFunc(s.snapshotSpec, func() {
		s.runMonthlySnapshots(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule quota snapshots: %w", err)
	}

	s.cron.Start()
	logx.Info("Scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	logx.Info("Scheduler stopped")
}

func (s *Scheduler) runRetrySweep(ctx context.Context) {
	outcomes, err := s.reports.RetryFailedReports(ctx)
	if err != nil {
		logx.Errorf("Retry sweep failed: %v", err)
		return
	}
	if len(outcomes) > 0 {
		logx.Infof("Retry sweep processed %d reports", len(outcomes))
	}
}

func (s *Scheduler) runMonthlySnapshots(ctx context.Context) {
	// Snapshot the month that just closed
	previous := time.Now().AddDate(0, -1, 0)
	year, month := previous.Year(), int(previous.Month())

	count, err := s.quotas.TakeMonthlySnapshots(ctx, year, month)
	if err != nil {
		logx.Errorf("Quota snapshots for %d-%02d failed: %v", year, month, err)
		return
	}
	logx.Infof("Quota snapshots taken for %d-%02d: %d companies", year, month, count)
}
