package complaint

import (
	"context"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// TriageFilters narrow the admin complaint listing
type TriageFilters struct {
	Status   *ComplaintStatus
	Type     *ComplaintType
	Priority *int
}

type Repository interface {
	// Create persists a new complaint
	Create(ctx context.Context, complaint *Complaint) error

	// Update persists changes to an existing complaint
	Update(ctx context.Context, id kernel.ComplaintID, complaint *Complaint) error

	// GetByID retrieves a complaint by ID
	GetByID(ctx context.Context, id kernel.ComplaintID) (*Complaint, error)

	// GetByTrackingCode retrieves a complaint by its public tracking code
	GetByTrackingCode(ctx context.Context, code string) (*Complaint, error)

	// List retrieves complaints for triage, urgent first
	List(ctx context.Context, filters TriageFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[Complaint], error)

	// CountByStatus counts complaints per status
	CountByStatus(ctx context.Context) (map[ComplaintStatus]int64, error)
}

type HistoryRepository interface {
	// Append writes a status history entry. Entries are never modified.
	Append(ctx context.Context, change *StatusChange) error

	// ListByComplaint retrieves a complaint's history, oldest first
	ListByComplaint(ctx context.Context, id kernel.ComplaintID) ([]StatusChange, error)
}
