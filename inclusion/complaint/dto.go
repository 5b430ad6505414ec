package complaint

import (
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// FileComplaintRequest - DTO for filing a complaint. No authentication is
// required; identity fields are optional.
type FileComplaintRequest struct {
	Type        ComplaintType `json:"complaint_type" validate:"required"`
	Subject     string        `json:"subject" validate:"required"`
	Description string        `json:"description" validate:"required"`

	CompanyName   string `json:"company_name,omitempty"`
	JobPostingURL string `json:"job_posting_url,omitempty"`

	IsAnonymous      bool         `json:"is_anonymous"`
	ComplainantName  string       `json:"complainant_name,omitempty"`
	ComplainantEmail kernel.Email `json:"complainant_email,omitempty"`
	ComplainantPhone kernel.Phone `json:"complainant_phone,omitempty"`

	// Evidence files, base64 is not used; multipart uploads arrive
	// through the handler and land here as stored paths
	Priority int `json:"priority,omitempty"`
}

// FiledResponse - DTO returned after filing; the tracking code is the
// only handle an anonymous filer gets
type FiledResponse struct {
	TrackingCode string    `json:"tracking_code"`
	Status       string    `json:"status"`
	FiledAt      time.Time `json:"filed_at"`
	Message      string    `json:"message"`
}

// StatusCheckResponse - DTO of the public status lookup. Identity and
// audit fields are never exposed here.
type StatusCheckResponse struct {
	TrackingCode  string          `json:"tracking_code"`
	Type          ComplaintType   `json:"complaint_type"`
	Subject       string          `json:"subject"`
	Status        ComplaintStatus `json:"status"`
	AdminResponse string          `json:"admin_response,omitempty"`
	FiledAt       time.Time       `json:"filed_at"`
	ResolvedAt    *time.Time      `json:"resolved_at,omitempty"`
	History       []StatusChange  `json:"history,omitempty"`
}

// ChangeStatusRequest - DTO for admin status changes
type ChangeStatusRequest struct {
	Status ComplaintStatus `json:"status" validate:"required"`
	Reason string          `json:"reason,omitempty"`
}

// RespondRequest - DTO for the admin response shown to the filer
type RespondRequest struct {
	Response string `json:"response" validate:"required"`
}

// AssignRequest - DTO for complaint assignment
type AssignRequest struct {
	AdminID kernel.UserID `json:"admin_id" validate:"required"`
}
