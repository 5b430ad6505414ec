package interview

import (
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// ProposeInterviewRequest - DTO for a company proposing an interview
type ProposeInterviewRequest struct {
	CandidateID kernel.UserID `json:"candidate_id" validate:"required"`

	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`

	ScheduledAt     time.Time     `json:"scheduled_at" validate:"required"`
	DurationMinutes int           `json:"duration_minutes,omitempty"`
	Type            InterviewType `json:"interview_type" validate:"required"`

	Platform   string `json:"platform,omitempty"`
	MeetingURL string `json:"meeting_url,omitempty"`
	MeetingID  string `json:"meeting_id,omitempty"`

	LocationAddress      string `json:"location_address,omitempty"`
	LocationInstructions string `json:"location_instructions,omitempty"`

	Accessibility AccessibilityNeeds `json:"accessibility,omitempty"`
}

// CancelRequest - DTO for calling an interview off
type CancelRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RescheduleRequest - DTO for proposing a new slot
type RescheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}
