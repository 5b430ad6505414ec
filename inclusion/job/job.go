package job

import (
	"strings"
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// ComplianceStatus represents the review status of a job posting
type ComplianceStatus string

const (
	StatusDraft            ComplianceStatus = "DRAFT"             // Created but never submitted
	StatusPendingReview    ComplianceStatus = "PENDING_REVIEW"    // Waiting for an admin reviewer
	StatusApproved         ComplianceStatus = "APPROVED"          // Publicly visible
	StatusRejected         ComplianceStatus = "REJECTED"          // Refused by a reviewer
	StatusChangesRequested ComplianceStatus = "CHANGES_REQUESTED" // Sent back for edits
)

// JobType represents the contract modality of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeTemporary  JobType = "TEMPORARY"
)

// ExperienceLevel represents the seniority a posting asks for
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "ENTRY"
	ExperienceMid    ExperienceLevel = "MID"
	ExperienceSenior ExperienceLevel = "SENIOR"
	ExperienceAny    ExperienceLevel = "ANY"
)

// Mandated legal field names, in the order reviewers see them
const (
	FieldReasonableAccommodations   = "reasonable_accommodations"
	FieldWorkplaceAccessibility     = "workplace_accessibility"
	FieldNonDiscriminationStatement = "non_discrimination_statement"
)

type Job struct {
	ID          kernel.JobID          `db:"id" json:"id"`
	CompanyID   kernel.UserID         `db:"company_id" json:"company_id"`
	Title       kernel.JobTitle       `db:"title" json:"title"`
	Description kernel.JobDescription `db:"description" json:"description"`

	Responsibilities []string `db:"responsibilities" json:"responsibilities"`
	Requirements     []string `db:"requirements" json:"requirements"`

	Location        string          `db:"location" json:"location"`
	RemoteAvailable bool            `db:"remote_available" json:"remote_available"`
	JobType         JobType         `db:"job_type" json:"job_type"`
	ExperienceLevel ExperienceLevel `db:"experience_level" json:"experience_level"`

	// Inclusion profile of the posting
	DisabilityFocus       kernel.DisabilityCategory `db:"disability_focus" json:"disability_focus"`
	AccessibilityFeatures []string                  `db:"accessibility_features" json:"accessibility_features"`

	SalaryMin           int64      `db:"salary_min" json:"salary_min"`
	SalaryMax           int64      `db:"salary_max" json:"salary_max"`
	ApplicationDeadline *time.Time `db:"application_deadline" json:"application_deadline,omitempty"`

	// Legal texts mandated by Ley 1618; approval is gated on all three
	ReasonableAccommodations   string `db:"reasonable_accommodations" json:"reasonable_accommodations"`
	WorkplaceAccessibility     string `db:"workplace_accessibility" json:"workplace_accessibility"`
	NonDiscriminationStatement string `db:"non_discrimination_statement" json:"non_discrimination_statement"`

	Status       ComplianceStatus `db:"status" json:"status"`
	ReviewReason string           `db:"review_reason" json:"review_reason,omitempty"`
	ReviewedBy   *kernel.UserID   `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time       `db:"reviewed_at" json:"reviewed_at,omitempty"`

	IsActive  bool      `db:"is_active" json:"is_active"`
	Featured  bool      `db:"featured" json:"featured"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsApproved checks if the posting has passed review
func (j *Job) IsApproved() bool {
	return j.Status == StatusApproved
}

// IsPendingReview checks if the posting is waiting for a reviewer
func (j *Job) IsPendingReview() bool {
	return j.Status == StatusPendingReview
}

// IsExpired checks the application deadline
func (j *Job) IsExpired() bool {
	return j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(time.Now())
}

// IsPubliclyVisible checks if candidates can see the posting
func (j *Job) IsPubliclyVisible() bool {
	return j.IsApproved() && j.IsActive && !j.IsExpired()
}

// ValidateLegalCompliance checks the three mandated legal texts. It returns
// the names of the fields that are blank after whitespace stripping, in
// declared order.
func (j *Job) ValidateLegalCompliance() (bool, []string) {
	missing := []string{}
	if strings.TrimSpace(j.ReasonableAccommodations) == "" {
		missing = append(missing, FieldReasonableAccommodations)
	}
	if strings.TrimSpace(j.WorkplaceAccessibility) == "" {
		missing = append(missing, FieldWorkplaceAccessibility)
	}
	if strings.TrimSpace(j.NonDiscriminationStatement) == "" {
		missing = append(missing, FieldNonDiscriminationStatement)
	}
	return len(missing) == 0, missing
}

// SubmitForReview moves the posting into the review queue. Every company
// save lands here, including edits to an already approved posting.
func (j *Job) SubmitForReview() {
	j.Status = StatusPendingReview
	j.ReviewReason = ""
	j.ReviewedBy = nil
	j.ReviewedAt = nil
	j.UpdatedAt = time.Now()
}

// CanBeReviewed checks if an admin decision is applicable
func (j *Job) CanBeReviewed() bool {
	return j.Status == StatusPendingReview
}

// Approve marks the posting as approved and active. Compliance is checked
// by the caller, not here.
func (j *Job) Approve(admin kernel.UserID) error {
	if !j.CanBeReviewed() {
		return ErrNotPendingReview().WithDetail("current_status", j.Status)
	}

	now := time.Now()
	j.Status = StatusApproved
	j.IsActive = true
	j.ReviewReason = ""
	j.ReviewedBy = &admin
	j.ReviewedAt = &now
	j.UpdatedAt = now
	return nil
}

// Reject refuses the posting with a reason
func (j *Job) Reject(admin kernel.UserID, reason string) error {
	return j.refuse(StatusRejected, admin, reason)
}

// RequestChanges sends the posting back for edits with a reason
func (j *Job) RequestChanges(admin kernel.UserID, reason string) error {
	return j.refuse(StatusChangesRequested, admin, reason)
}

func (j *Job) refuse(status ComplianceStatus, admin kernel.UserID, reason string) error {
	if !j.CanBeReviewed() {
		return ErrNotPendingReview().WithDetail("current_status", j.Status)
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired()
	}

	now := time.Now()
	j.Status = status
	j.IsActive = false
	j.ReviewReason = reason
	j.ReviewedBy = &admin
	j.ReviewedAt = &now
	j.UpdatedAt = now
	return nil
}

// Deactivate hides the posting without touching its review status
func (j *Job) Deactivate() {
	j.IsActive = false
	j.UpdatedAt = time.Now()
}
