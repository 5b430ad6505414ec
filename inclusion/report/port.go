package report

import (
	"context"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// StatusFilter narrows report listings
type StatusFilter struct {
	Status *ReportStatus
}

type Repository interface {
	// Create persists a new hiring report
	Create(ctx context.Context, report *HiringReport) error

	// Update persists changes to an existing hiring report
	Update(ctx context.Context, id kernel.ReportID, report *HiringReport) error

	// GetByID retrieves a hiring report by ID
	GetByID(ctx context.Context, id kernel.ReportID) (*HiringReport, error)

	// ListByCompany retrieves a company's reports, newest first
	ListByCompany(ctx context.Context, companyID kernel.UserID, filter StatusFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[HiringReport], error)

	// ListAll retrieves reports across companies. Admin listings.
	ListAll(ctx context.Context, filter StatusFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[HiringReport], error)

	// ListRetryable retrieves FAILED and RETRY reports with attempts left
	ListRetryable(ctx context.Context) ([]HiringReport, error)

	// ExistsByContract checks contract number uniqueness within a company
	ExistsByContract(ctx context.Context, companyID kernel.UserID, contractNumber string) (bool, error)

	// CountConfirmedByCompany counts a company's CONFIRMED reports
	CountConfirmedByCompany(ctx context.Context, companyID kernel.UserID) (int64, error)

	// CountByStatus counts reports per status
	CountByStatus(ctx context.Context) (map[ReportStatus]int64, error)

	// CountByDisabilityType counts CONFIRMED reports per coded type
	CountByDisabilityType(ctx context.Context) (map[kernel.DisabilityCode]int64, error)
}

// MinistryResult is the outcome of one delivery attempt. A nil error with
// Success=false means the ministry refused or was unreachable; err is
// reserved for local faults.
type MinistryResult struct {
	Success       bool
	ReceiptNumber string
	Response      map[string]any
	Error         string
}

// MinistryClient delivers reports to the Ministerio de Trabajo endpoint
type MinistryClient interface {
	Submit(ctx context.Context, report *HiringReport) (*MinistryResult, error)
}

// Queue decouples report creation from delivery
type Queue interface {
	// Enqueue schedules a report for asynchronous delivery
	Enqueue(ctx context.Context, id kernel.ReportID) error

	// Dequeue blocks until a report is available or the timeout elapses.
	// A nil ID with nil error means the timeout hit.
	Dequeue(ctx context.Context) (*kernel.ReportID, error)
}
