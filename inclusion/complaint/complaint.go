package complaint

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// ComplaintStatus represents the handling state of a complaint
type ComplaintStatus string

const (
	StatusReceived  ComplaintStatus = "RECEIVED"  // Filed, waiting for triage
	StatusInReview  ComplaintStatus = "IN_REVIEW" // Assigned to an admin
	StatusResolved  ComplaintStatus = "RESOLVED"  // Closed with a resolution
	StatusDismissed ComplaintStatus = "DISMISSED" // Closed without action
)

// ComplaintType classifies what inclusion rule was allegedly broken
type ComplaintType string

const (
	TypeDiscriminatoryOffer  ComplaintType = "JOB_OFFER"
	TypeRecruitmentProcess   ComplaintType = "RECRUITMENT_PROCESS"
	TypeWorkplaceAccess      ComplaintType = "WORKPLACE_ACCESSIBILITY"
	TypeDiscrimination       ComplaintType = "DISCRIMINATION"
	TypeDeniedAccommodations ComplaintType = "LACK_OF_ADJUSTMENTS"
	TypeQuotaNonCompliance   ComplaintType = "QUOTA_NON_COMPLIANCE"
	TypeOther                ComplaintType = "OTHER"
)

// Priority levels, 1 lowest to 4 urgent
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
	PriorityUrgent = 4
)

// MaxEvidenceFiles caps attachments per complaint
const MaxEvidenceFiles = 3

// Complaint is a report of an inclusion-rule violation. Filing needs no
// account; the tracking code is the public handle for status checks.
type Complaint struct {
	ID           kernel.ComplaintID `db:"id" json:"id"`
	TrackingCode string             `db:"tracking_code" json:"tracking_code"`

	Type        ComplaintType `db:"complaint_type" json:"complaint_type"`
	Subject     string        `db:"subject" json:"subject"`
	Description string        `db:"description" json:"description"`

	// What the complaint is about
	CompanyName   string `db:"company_name" json:"company_name,omitempty"`
	JobPostingURL string `db:"job_posting_url" json:"job_posting_url,omitempty"`

	// Complainant identity, withheld when anonymous
	IsAnonymous      bool           `db:"is_anonymous" json:"is_anonymous"`
	ComplainantID    *kernel.UserID `db:"complainant_id" json:"complainant_id,omitempty"`
	ComplainantName  string         `db:"complainant_name" json:"complainant_name,omitempty"`
	ComplainantEmail kernel.Email   `db:"complainant_email" json:"complainant_email,omitempty"`
	ComplainantPhone kernel.Phone   `db:"complainant_phone" json:"complainant_phone,omitempty"`

	EvidencePaths []string `db:"evidence_paths" json:"evidence_paths,omitempty"`

	Status   ComplaintStatus `db:"status" json:"status"`
	Priority int             `db:"priority" json:"priority"`

	AdminResponse string         `db:"admin_response" json:"admin_response,omitempty"`
	AssignedTo    *kernel.UserID `db:"assigned_to" json:"assigned_to,omitempty"`

	// Audit fields captured at filing time
	IPAddress string `db:"ip_address" json:"-"`
	UserAgent string `db:"user_agent" json:"-"`

	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
	ResolvedAt *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
}

// StatusChange is one append-only entry of a complaint's status history
type StatusChange struct {
	ID          kernel.AuditLogID  `db:"id" json:"id"`
	ComplaintID kernel.ComplaintID `db:"complaint_id" json:"complaint_id"`
	ActorID     *kernel.UserID     `db:"actor_id" json:"actor_id,omitempty"`
	Previous    ComplaintStatus    `db:"previous_status" json:"previous_status"`
	New         ComplaintStatus    `db:"new_status" json:"new_status"`
	Reason      string             `db:"reason" json:"reason,omitempty"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

const trackingChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTrackingCode builds a QJ-YYYY-XXXXXX public tracking code
func NewTrackingCode(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to
		// a time-derived suffix rather than refusing the complaint
		return fmt.Sprintf("QJ-%d-%06d", now.Year(), now.UnixNano()%1000000)
	}
	for i := range buf {
		buf[i] = trackingChars[int(buf[i])%len(trackingChars)]
	}
	return fmt.Sprintf("QJ-%d-%s", now.Year(), string(buf))
}

// IsOpen checks whether the complaint is still being handled
func (c *Complaint) IsOpen() bool {
	return c.Status == StatusReceived || c.Status == StatusInReview
}

// ComplainantDisplayName returns the filer's name or the anonymous label
func (c *Complaint) ComplainantDisplayName() string {
	if c.IsAnonymous || c.ComplainantName == "" {
		return "Anónimo"
	}
	return c.ComplainantName
}

// CanTransitionTo checks the status machine: RECEIVED → IN_REVIEW →
// RESOLVED or DISMISSED. Closing straight from RECEIVED is allowed.
func (c *Complaint) CanTransitionTo(next ComplaintStatus) bool {
	transitions := map[ComplaintStatus][]ComplaintStatus{
		StatusReceived:  {StatusInReview, StatusResolved, StatusDismissed},
		StatusInReview:  {StatusResolved, StatusDismissed},
		StatusResolved:  {},
		StatusDismissed: {},
	}
	for _, allowed := range transitions[c.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the complaint to the next status
func (c *Complaint) TransitionTo(next ComplaintStatus) error {
	if !c.CanTransitionTo(next) {
		return ErrInvalidTransition().
			WithDetail("from", string(c.Status)).
			WithDetail("to", string(next))
	}

	now := time.Now()
	c.Status = next
	c.UpdatedAt = now
	if next == StatusResolved || next == StatusDismissed {
		c.ResolvedAt = &now
	}
	return nil
}

// Assign hands the complaint to an admin and moves it into review
func (c *Complaint) Assign(admin kernel.UserID) error {
	c.AssignedTo = &admin
	if c.Status == StatusReceived {
		return c.TransitionTo(StatusInReview)
	}
	c.UpdatedAt = time.Now()
	return nil
}

// Validate checks the complaint fields before persistence
func (c *Complaint) Validate() error {
	if !c.Type.IsValid() {
		return ErrInvalidComplaint().WithDetail("field", "complaint_type")
	}
	if len(strings.TrimSpace(c.Subject)) < 10 {
		return ErrInvalidComplaint().WithDetail("field", "subject").WithDetail("reason", "at least 10 characters")
	}
	if len(strings.TrimSpace(c.Description)) < 50 {
		return ErrInvalidComplaint().WithDetail("field", "description").WithDetail("reason", "at least 50 characters")
	}
	if c.Priority < PriorityLow || c.Priority > PriorityUrgent {
		return ErrInvalidComplaint().WithDetail("field", "priority")
	}
	if len(c.EvidencePaths) > MaxEvidenceFiles {
		return ErrTooMuchEvidence()
	}
	return nil
}

// IsValid checks the complaint type enum
func (t ComplaintType) IsValid() bool {
	switch t {
	case TypeDiscriminatoryOffer, TypeRecruitmentProcess, TypeWorkplaceAccess,
		TypeDiscrimination, TypeDeniedAccommodations, TypeQuotaNonCompliance, TypeOther:
		return true
	}
	return false
}
