package interview

import (
	"strings"
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// InterviewStatus represents the lifecycle of an interview
type InterviewStatus string

const (
	StatusProposed  InterviewStatus = "PROPOSED"  // Waiting for the candidate
	StatusConfirmed InterviewStatus = "CONFIRMED" // Both sides confirmed
	StatusCompleted InterviewStatus = "COMPLETED" // Held and closed
	StatusCancelled InterviewStatus = "CANCELLED" // Called off by either side
)

// InterviewType is how the interview takes place
type InterviewType string

const (
	TypeInPerson InterviewType = "IN_PERSON"
	TypeVideo    InterviewType = "VIDEO"
	TypePhone    InterviewType = "PHONE"
)

// AccessibilityNeeds are the accommodations requested for the interview
type AccessibilityNeeds struct {
	SignLanguageInterpreter bool   `db:"needs_sign_language_interpreter" json:"sign_language_interpreter"`
	AccessibleLocation      bool   `db:"needs_accessible_location" json:"accessible_location"`
	ScreenReaderSupport     bool   `db:"needs_screen_reader_support" json:"screen_reader_support"`
	Captioning              bool   `db:"needs_captioning" json:"captioning"`
	Other                   string `db:"other_accessibility_needs" json:"other,omitempty"`
}

// List returns the requested accommodations as display labels
func (n AccessibilityNeeds) List() []string {
	needs := []string{}
	if n.SignLanguageInterpreter {
		needs = append(needs, "Intérprete de lengua de señas")
	}
	if n.AccessibleLocation {
		needs = append(needs, "Ubicación accesible")
	}
	if n.ScreenReaderSupport {
		needs = append(needs, "Soporte para lector de pantalla")
	}
	if n.Captioning {
		needs = append(needs, "Subtítulos en tiempo real")
	}
	if strings.TrimSpace(n.Other) != "" {
		needs = append(needs, n.Other)
	}
	return needs
}

// Interview is a meeting proposed by a company to a candidate. It
// becomes CONFIRMED once both sides have confirmed.
type Interview struct {
	ID          kernel.InterviewID `db:"id" json:"id"`
	CompanyID   kernel.UserID      `db:"company_id" json:"company_id"`
	CandidateID kernel.UserID      `db:"candidate_id" json:"candidate_id"`

	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description,omitempty"`
	JobTitle    string `db:"job_title" json:"job_title,omitempty"`

	ScheduledAt     time.Time     `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int           `db:"duration_minutes" json:"duration_minutes"`
	Type            InterviewType `db:"interview_type" json:"interview_type"`

	// Video and phone details
	Platform   string `db:"platform" json:"platform,omitempty"`
	MeetingURL string `db:"meeting_url" json:"meeting_url,omitempty"`
	MeetingID  string `db:"meeting_id" json:"meeting_id,omitempty"`

	// In-person details
	LocationAddress      string `db:"location_address" json:"location_address,omitempty"`
	LocationInstructions string `db:"location_instructions" json:"location_instructions,omitempty"`

	Accessibility AccessibilityNeeds `db:"accessibility" json:"accessibility"`

	Status             InterviewStatus `db:"status" json:"status"`
	CompanyConfirmed   bool            `db:"company_confirmed" json:"company_confirmed"`
	CandidateConfirmed bool            `db:"candidate_confirmed" json:"candidate_confirmed"`

	CancelledBy        *kernel.UserID `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CancellationReason string         `db:"cancellation_reason" json:"cancellation_reason,omitempty"`

	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	ConfirmedAt *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsParticipant checks whether a user belongs to the interview
func (i *Interview) IsParticipant(userID kernel.UserID) bool {
	return i.CompanyID == userID || i.CandidateID == userID
}

// IsPast checks whether the scheduled moment already passed
func (i *Interview) IsPast() bool {
	return i.ScheduledAt.Before(time.Now())
}

// IsUpcoming checks whether the interview is still ahead and alive
func (i *Interview) IsUpcoming() bool {
	return !i.IsPast() && (i.Status == StatusProposed || i.Status == StatusConfirmed)
}

// CanBeCancelled checks whether cancellation is still possible
func (i *Interview) CanBeCancelled() bool {
	return (i.Status == StatusProposed || i.Status == StatusConfirmed) && !i.IsPast()
}

// ConfirmBy records one side's confirmation; the interview moves to
// CONFIRMED once both sides have confirmed
func (i *Interview) ConfirmBy(userID kernel.UserID) error {
	if i.Status != StatusProposed {
		return ErrInvalidTransition().
			WithDetail("from", string(i.Status)).
			WithDetail("to", string(StatusConfirmed))
	}

	switch userID {
	case i.CandidateID:
		i.CandidateConfirmed = true
	case i.CompanyID:
		i.CompanyConfirmed = true
	default:
		return ErrNotParticipant()
	}

	now := time.Now()
	i.UpdatedAt = now
	if i.CandidateConfirmed && i.CompanyConfirmed {
		i.Status = StatusConfirmed
		i.ConfirmedAt = &now
	}
	return nil
}

// Cancel calls the interview off. Either participant may cancel while
// it has not happened yet; a reason is required.
func (i *Interview) Cancel(userID kernel.UserID, reason string) error {
	if !i.IsParticipant(userID) {
		return ErrNotParticipant()
	}
	if !i.CanBeCancelled() {
		return ErrInvalidTransition().
			WithDetail("from", string(i.Status)).
			WithDetail("to", string(StatusCancelled))
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired()
	}

	now := time.Now()
	i.Status = StatusCancelled
	i.CancelledBy = &userID
	i.CancellationReason = reason
	i.CancelledAt = &now
	i.UpdatedAt = now
	return nil
}

// Complete closes a confirmed interview after it took place
func (i *Interview) Complete() error {
	if i.Status != StatusConfirmed {
		return ErrInvalidTransition().
			WithDetail("from", string(i.Status)).
			WithDetail("to", string(StatusCompleted))
	}
	if !i.IsPast() {
		return ErrNotYetHeld()
	}

	now := time.Now()
	i.Status = StatusCompleted
	i.CompletedAt = &now
	i.UpdatedAt = now
	return nil
}

// Reschedule moves the interview to a new moment and back to PROPOSED,
// so the candidate confirms the new slot again
func (i *Interview) Reschedule(scheduledAt time.Time) error {
	if i.Status != StatusProposed && i.Status != StatusConfirmed {
		return ErrInvalidTransition().
			WithDetail("from", string(i.Status)).
			WithDetail("to", string(StatusProposed))
	}
	if scheduledAt.Before(time.Now()) {
		return ErrScheduledInPast()
	}

	i.ScheduledAt = scheduledAt
	i.Status = StatusProposed
	i.CandidateConfirmed = false
	i.CompanyConfirmed = true
	i.ConfirmedAt = nil
	i.UpdatedAt = time.Now()
	return nil
}

// Validate checks the interview fields before persistence
func (i *Interview) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrInvalidInterview().WithDetail("field", "title")
	}
	if i.ScheduledAt.Before(time.Now()) {
		return ErrScheduledInPast()
	}
	if i.DurationMinutes <= 0 {
		return ErrInvalidInterview().WithDetail("field", "duration_minutes")
	}
	if !i.Type.IsValid() {
		return ErrInvalidInterview().WithDetail("field", "interview_type")
	}
	if i.Type == TypeInPerson && strings.TrimSpace(i.LocationAddress) == "" {
		return ErrInvalidInterview().
			WithDetail("field", "location_address").
			WithDetail("reason", "in-person interviews need an address")
	}
	if i.Type == TypeVideo && strings.TrimSpace(i.MeetingURL) == "" {
		return ErrInvalidInterview().
			WithDetail("field", "meeting_url").
			WithDetail("reason", "video interviews need a meeting link")
	}
	return nil
}

// IsValid checks the interview type enum
func (t InterviewType) IsValid() bool {
	switch t {
	case TypeInPerson, TypeVideo, TypePhone:
		return true
	}
	return false
}
