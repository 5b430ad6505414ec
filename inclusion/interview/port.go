package interview

import (
	"context"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// ListFilters narrow the interview listing of one participant
type ListFilters struct {
	Status       *InterviewStatus
	UpcomingOnly bool
}

type Repository interface {
	// Create persists a new interview
	Create(ctx context.Context, interview *Interview) error

	// Update persists changes to an existing interview
	Update(ctx context.Context, id kernel.InterviewID, interview *Interview) error

	// GetByID retrieves an interview by ID
	GetByID(ctx context.Context, id kernel.InterviewID) (*Interview, error)

	// ListByParticipant retrieves interviews where the user is either
	// side, soonest first
	ListByParticipant(ctx context.Context, userID kernel.UserID, filters ListFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[Interview], error)
}
