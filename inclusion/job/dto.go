package job

import (
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// CreateJobRequest - DTO for creating a job posting
type CreateJobRequest struct {
	Title            kernel.JobTitle       `json:"title" validate:"required"`
	Description      kernel.JobDescription `json:"description" validate:"required"`
	Responsibilities []string              `json:"responsibilities,omitempty"`
	Requirements     []string              `json:"requirements,omitempty"`

	Location        string          `json:"location,omitempty"`
	RemoteAvailable bool            `json:"remote_available"`
	JobType         JobType         `json:"job_type,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`

	DisabilityFocus       kernel.DisabilityCategory `json:"disability_focus,omitempty"`
	AccessibilityFeatures []string                  `json:"accessibility_features,omitempty"`

	SalaryMin           int64      `json:"salary_min,omitempty"`
	SalaryMax           int64      `json:"salary_max,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`

	ReasonableAccommodations   string `json:"reasonable_accommodations,omitempty"`
	WorkplaceAccessibility     string `json:"workplace_accessibility,omitempty"`
	NonDiscriminationStatement string `json:"non_discrimination_statement,omitempty"`
}

// UpdateJobRequest - DTO for updating a job posting. Nil fields are left
// untouched; any accepted update resubmits the posting for review.
type UpdateJobRequest struct {
	Title            *kernel.JobTitle       `json:"title,omitempty"`
	Description      *kernel.JobDescription `json:"description,omitempty"`
	Responsibilities *[]string              `json:"responsibilities,omitempty"`
	Requirements     *[]string              `json:"requirements,omitempty"`

	Location        *string          `json:"location,omitempty"`
	RemoteAvailable *bool            `json:"remote_available,omitempty"`
	JobType         *JobType         `json:"job_type,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`

	DisabilityFocus       *kernel.DisabilityCategory `json:"disability_focus,omitempty"`
	AccessibilityFeatures *[]string                  `json:"accessibility_features,omitempty"`

	SalaryMin           *int64     `json:"salary_min,omitempty"`
	SalaryMax           *int64     `json:"salary_max,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`

	ReasonableAccommodations   *string `json:"reasonable_accommodations,omitempty"`
	WorkplaceAccessibility     *string `json:"workplace_accessibility,omitempty"`
	NonDiscriminationStatement *string `json:"non_discrimination_statement,omitempty"`
}

// ReviewDecisionRequest - DTO for admin reject / request-changes decisions
type ReviewDecisionRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ComplianceCheckResponse - DTO returned alongside saves and review blocks
type ComplianceCheckResponse struct {
	Compliant     bool     `json:"compliant"`
	MissingFields []string `json:"missing_fields"`
}

// JobWithCompliance - DTO pairing a posting with its compliance check
type JobWithCompliance struct {
	Job        *Job                    `json:"job"`
	Compliance ComplianceCheckResponse `json:"compliance"`
}

// WithCompliance attaches the compliance check result to a posting
func WithCompliance(j *Job) *JobWithCompliance {
	ok, missing := j.ValidateLegalCompliance()
	return &JobWithCompliance{
		Job: j,
		Compliance: ComplianceCheckResponse{
			Compliant:     ok,
			MissingFields: missing,
		},
	}
}
