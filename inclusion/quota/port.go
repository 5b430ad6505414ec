package quota

import (
	"context"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

type Repository interface {
	// Upsert creates or replaces a company's quota row
	Upsert(ctx context.Context, quota *EmploymentQuota) error

	// GetByCompany retrieves a company's quota row
	GetByCompany(ctx context.Context, companyID kernel.UserID) (*EmploymentQuota, error)

	// ListAll retrieves every company's quota row
	ListAll(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[EmploymentQuota], error)
}

type SnapshotRepository interface {
	// Create persists a snapshot. Fails if one exists for the company+month.
	Create(ctx context.Context, snapshot *QuotaSnapshot) error

	// ExistsForMonth checks if a snapshot was already taken
	ExistsForMonth(ctx context.Context, companyID kernel.UserID, year, month int) (bool, error)

	// ListByCompany retrieves a company's snapshots, newest first
	ListByCompany(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[QuotaSnapshot], error)
}
