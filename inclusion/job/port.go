package job

import (
	"context"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PublicFilters narrow the public listing of approved postings
type PublicFilters struct {
	JobType         *JobType
	DisabilityFocus *kernel.DisabilityCategory
	RemoteOnly      bool
	Search          string
}

type Repository interface {
	// Create persists a new job posting
	Create(ctx context.Context, job *Job) error

	// Update persists changes to an existing job posting
	Update(ctx context.Context, id kernel.JobID, job *Job) error

	// GetByID retrieves a job posting by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// ListPublic retrieves approved, active, non-expired postings
	ListPublic(ctx context.Context, filters PublicFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListByCompany retrieves all postings owned by a company
	ListByCompany(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListByStatus retrieves postings in a review status, oldest first
	ListByStatus(ctx context.Context, status ComplianceStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// CountByStatus counts postings per review status
	CountByStatus(ctx context.Context) (map[ComplianceStatus]int64, error)
}

type AuditRepository interface {
	// Append writes an audit entry. Entries are never modified afterwards.
	Append(ctx context.Context, entry *AuditLog) error

	// ListByJob retrieves the audit trail of a posting, newest first
	ListByJob(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[AuditLog], error)
}
