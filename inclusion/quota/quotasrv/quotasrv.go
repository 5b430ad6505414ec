package quotasrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/inclusion/quota"
	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

// Service handles employment quota tracking. The confirmed-hire side of
// every row mirrors the company's CONFIRMED hiring reports.
type Service struct {
	repo      quota.Repository
	snapshots quota.SnapshotRepository
	reports   report.Repository
}

// NewService creates a new quota service
func NewService(repo quota.Repository, snapshots quota.SnapshotRepository, reports report.Repository) *Service {
	return &Service{
		repo:      repo,
		snapshots: snapshots,
		reports:   reports,
	}
}

// GetStatus retrieves a company's quota standing, refreshing the confirmed
// hire count first. Companies without a row yet get a zeroed one.
func (s *Service) GetStatus(ctx context.Context, companyID kernel.UserID) (*quota.QuotaStatusResponse, error) {
	q, err := s.getOrCreate(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.syncConfirmed(ctx, q); err != nil {
		return nil, err
	}

	return quota.ToStatusResponse(q), nil
}

// UpdateEmployeeCount sets the self-reported workforce size
func (s *Service) UpdateEmployeeCount(ctx context.Context, companyID kernel.UserID, total int) (*quota.QuotaStatusResponse, error) {
	q, err := s.getOrCreate(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := q.UpdateEmployeeCount(total); err != nil {
		return nil, err
	}

	if err := s.syncConfirmed(ctx, q); err != nil {
		return nil, err
	}

	return quota.ToStatusResponse(q), nil
}

// ListAll retrieves every company's quota standing. Admin operation.
func (s *Service) ListAll(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[quota.EmploymentQuota], error) {
	return s.repo.ListAll(ctx, pagination)
}

// ListSnapshots retrieves a company's monthly history
func (s *Service) ListSnapshots(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[quota.QuotaSnapshot], error) {
	return s.snapshots.ListByCompany(ctx, companyID, pagination)
}

// TakeMonthlySnapshots freezes every company's standing for the given
// month. Companies already snapshotted for that month are skipped; the
// run is idempotent.
func (s *Service) TakeMonthlySnapshots(ctx context.Context, year, month int) (int, error) {
	taken := 0
	page := 1

	for {
		batch, err := s.repo.ListAll(ctx, kernel.PaginationOptions{Page: page, PageSize: 100})
		if err != nil {
			return taken, err
		}
		if batch.Empty {
			break
		}

		for i := range batch.Items {
			q := &batch.Items[i]

			exists, err := s.snapshots.ExistsForMonth(ctx, q.CompanyID, year, month)
			if err != nil {
				logx.Errorf("Snapshot existence check failed for company %s: %v", q.CompanyID.String(), err)
				continue
			}
			if exists {
				continue
			}

			if err := s.syncConfirmed(ctx, q); err != nil {
				logx.Errorf("Confirmed-hire sync failed for company %s: %v", q.CompanyID.String(), err)
				continue
			}

			if err := s.snapshots.Create(ctx, q.Snapshot(year, month)); err != nil {
				logx.Errorf("Snapshot write failed for company %s: %v", q.CompanyID.String(), err)
				continue
			}
			taken++
		}

		if page >= batch.Page.Pages {
			break
		}
		page++
	}

	logx.Infof("Quota snapshots taken for %04d-%02d: %d companies", year, month, taken)
	return taken, nil
}

func (s *Service) getOrCreate(ctx context.Context, companyID kernel.UserID) (*quota.EmploymentQuota, error) {
	q, err := s.repo.GetByCompany(ctx, companyID)
	if err == nil {
		return q, nil
	}

	now := time.Now()
	q = &quota.EmploymentQuota{
		ID:        kernel.NewQuotaID(uuid.NewString()),
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// syncConfirmed refreshes the confirmed-hire mirror and persists the row
func (s *Service) syncConfirmed(ctx context.Context, q *quota.EmploymentQuota) error {
	confirmed, err := s.reports.CountConfirmedByCompany(ctx, q.CompanyID)
	if err != nil {
		return err
	}
	q.SyncConfirmedHires(int(confirmed))
	return s.repo.Upsert(ctx, q)
}
