package jobsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/inclusion/job"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

// JobService handles job posting business logic, including the compliance
// review pipeline and its audit trail.
type JobService struct {
	repo  job.Repository
	audit job.AuditRepository
}

// NewJobService creates a new job service
func NewJobService(repo job.Repository, audit job.AuditRepository) *JobService {
	return &JobService{
		repo:  repo,
		audit: audit,
	}
}

// CreateJob creates a posting for a company. Every new posting lands in
// PENDING_REVIEW regardless of its compliance check; the check result is
// returned to the caller as information only.
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest, companyID kernel.UserID, ip string) (*job.JobWithCompliance, error) {
	if req.Title == "" || req.Description == "" {
		return nil, job.ErrInvalidJob().WithDetail("reason", "title and description are required")
	}

	now := time.Now()
	j := &job.Job{
		ID:                         kernel.NewJobID(uuid.NewString()),
		CompanyID:                  companyID,
		Title:                      req.Title,
		Description:                req.Description,
		Responsibilities:           req.Responsibilities,
		Requirements:               req.Requirements,
		Location:                   req.Location,
		RemoteAvailable:            req.RemoteAvailable,
		JobType:                    req.JobType,
		ExperienceLevel:            req.ExperienceLevel,
		DisabilityFocus:            req.DisabilityFocus,
		AccessibilityFeatures:      req.AccessibilityFeatures,
		SalaryMin:                  req.SalaryMin,
		SalaryMax:                  req.SalaryMax,
		ApplicationDeadline:        req.ApplicationDeadline,
		ReasonableAccommodations:   req.ReasonableAccommodations,
		WorkplaceAccessibility:     req.WorkplaceAccessibility,
		NonDiscriminationStatement: req.NonDiscriminationStatement,
		Status:                     job.StatusPendingReview,
		IsActive:                   false,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, j, companyID, job.AuditCreated, ip, "", nil)
	logx.Infof("Job %s created by company %s, pending review", j.ID.String(), companyID.String())

	return job.WithCompliance(j), nil
}

// UpdateJob applies a partial update and resubmits the posting for review.
// Only the owning company can update.
func (s *JobService) UpdateJob(ctx context.Context, id kernel.JobID, companyID kernel.UserID, req job.UpdateJobRequest, ip string) (*job.JobWithCompliance, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, job.ErrNotOwner()
	}

	applyUpdate(j, req)

	wasRefused := j.Status == job.StatusRejected || j.Status == job.StatusChangesRequested
	j.SubmitForReview()

	if err := s.repo.Update(ctx, id, j); err != nil {
		return nil, err
	}

	action := job.AuditUpdated
	if wasRefused {
		action = job.AuditResubmitted
	}
	s.appendAudit(ctx, j, companyID, action, ip, "", nil)

	return job.WithCompliance(j), nil
}

// GetJob retrieves a posting without visibility filtering. Callers enforce
// ownership or role.
func (s *JobService) GetJob(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// GetPublicJob retrieves a posting only if candidates may see it
func (s *JobService) GetPublicJob(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !j.IsPubliclyVisible() {
		return nil, job.ErrJobNotFound()
	}
	return j, nil
}

// ListPublicJobs retrieves approved, active, non-expired postings
func (s *JobService) ListPublicJobs(ctx context.Context, filters job.PublicFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return s.repo.ListPublic(ctx, filters, pagination)
}

// ListCompanyJobs retrieves all postings owned by a company
func (s *JobService) ListCompanyJobs(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return s.repo.ListByCompany(ctx, companyID, pagination)
}

// ListReviewQueue retrieves postings waiting for review, oldest first
func (s *JobService) ListReviewQueue(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return s.repo.ListByStatus(ctx, job.StatusPendingReview, pagination)
}

// ApproveJob approves a posting. Approval is blocked here while any
// mandated legal field is blank; the entity itself does not validate.
func (s *JobService) ApproveJob(ctx context.Context, id kernel.JobID, admin kernel.UserID, ip string) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ok, missing := j.ValidateLegalCompliance(); !ok {
		return nil, job.ErrNonCompliant().WithDetail("missing_fields", missing)
	}

	if err := j.Approve(admin); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, j); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, j, admin, job.AuditApproved, ip, "", nil)
	logx.Infof("Job %s approved by %s", id.String(), admin.String())
	return j, nil
}

// RejectJob refuses a posting with a reason
func (s *JobService) RejectJob(ctx context.Context, id kernel.JobID, admin kernel.UserID, reason, ip string) (*job.Job, error) {
	return s.refuseJob(ctx, id, admin, reason, ip, job.AuditRejected)
}

// RequestChanges sends a posting back for edits with a reason
func (s *JobService) RequestChanges(ctx context.Context, id kernel.JobID, admin kernel.UserID, reason, ip string) (*job.Job, error) {
	return s.refuseJob(ctx, id, admin, reason, ip, job.AuditChangesRequested)
}

func (s *JobService) refuseJob(ctx context.Context, id kernel.JobID, admin kernel.UserID, reason, ip string, action job.AuditAction) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if action == job.AuditRejected {
		err = j.Reject(admin, reason)
	} else {
		err = j.RequestChanges(admin, reason)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, j); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, j, admin, action, ip, reason, nil)
	return j, nil
}

// DeactivateJob hides a posting. Allowed to the owning company and admins.
func (s *JobService) DeactivateJob(ctx context.Context, id kernel.JobID, actor kernel.UserID, isAdmin bool, ip string) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && j.CompanyID != actor {
		return nil, job.ErrNotOwner()
	}

	j.Deactivate()

	if err := s.repo.Update(ctx, id, j); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, j, actor, job.AuditDeactivated, ip, "", nil)
	return j, nil
}

// GetAuditTrail retrieves the audit trail of a posting
func (s *JobService) GetAuditTrail(ctx context.Context, id kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.AuditLog], error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.audit.ListByJob(ctx, id, pagination)
}

// CountByStatus counts postings per review status
func (s *JobService) CountByStatus(ctx context.Context) (map[job.ComplianceStatus]int64, error) {
	return s.repo.CountByStatus(ctx)
}

// appendAudit writes the trail entry. Audit failures are logged, never
// propagated; the transition itself already committed.
func (s *JobService) appendAudit(ctx context.Context, j *job.Job, actor kernel.UserID, action job.AuditAction, ip, notes string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	details["status"] = string(j.Status)

	entry := job.NewAuditLog(j.ID, actor, action, ip, notes, details)
	if err := s.audit.Append(ctx, entry); err != nil {
		logx.Errorf("Failed to append audit log for job %s: %v", j.ID.String(), err)
	}
}

func applyUpdate(j *job.Job, req job.UpdateJobRequest) {
	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Responsibilities != nil {
		j.Responsibilities = *req.Responsibilities
	}
	if req.Requirements != nil {
		j.Requirements = *req.Requirements
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.RemoteAvailable != nil {
		j.RemoteAvailable = *req.RemoteAvailable
	}
	if req.JobType != nil {
		j.JobType = *req.JobType
	}
	if req.ExperienceLevel != nil {
		j.ExperienceLevel = *req.ExperienceLevel
	}
	if req.DisabilityFocus != nil {
		j.DisabilityFocus = *req.DisabilityFocus
	}
	if req.AccessibilityFeatures != nil {
		j.AccessibilityFeatures = *req.AccessibilityFeatures
	}
	if req.SalaryMin != nil {
		j.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		j.SalaryMax = *req.SalaryMax
	}
	if req.ApplicationDeadline != nil {
		j.ApplicationDeadline = req.ApplicationDeadline
	}
	if req.ReasonableAccommodations != nil {
		j.ReasonableAccommodations = *req.ReasonableAccommodations
	}
	if req.WorkplaceAccessibility != nil {
		j.WorkplaceAccessibility = *req.WorkplaceAccessibility
	}
	if req.NonDiscriminationStatement != nil {
		j.NonDiscriminationStatement = *req.NonDiscriminationStatement
	}
}
