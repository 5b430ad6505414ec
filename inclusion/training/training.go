package training

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// CourseCategory groups courses by the soft skill they teach
type CourseCategory string

const (
	CategoryCommunication      CourseCategory = "COMMUNICATION"
	CategoryTeamwork           CourseCategory = "TEAMWORK"
	CategoryProblemSolving     CourseCategory = "PROBLEM_SOLVING"
	CategoryLeadership         CourseCategory = "LEADERSHIP"
	CategoryConflictResolution CourseCategory = "CONFLICT_RESOLUTION"
	CategoryTimeManagement     CourseCategory = "TIME_MANAGEMENT"
)

// CourseDifficulty is the level of a course
type CourseDifficulty string

const (
	DifficultyBeginner     CourseDifficulty = "BEGINNER"
	DifficultyIntermediate CourseDifficulty = "INTERMEDIATE"
	DifficultyAdvanced     CourseDifficulty = "ADVANCED"
)

// LessonContentType is what kind of material a lesson carries
type LessonContentType string

const (
	ContentVideo       LessonContentType = "VIDEO"
	ContentText        LessonContentType = "TEXT"
	ContentQuiz        LessonContentType = "QUIZ"
	ContentInteractive LessonContentType = "INTERACTIVE"
)

// EnrollmentStatus is a candidate's standing in a course
type EnrollmentStatus string

const (
	StatusEnrolled   EnrollmentStatus = "ENROLLED"    // Signed up, nothing done yet
	StatusInProgress EnrollmentStatus = "IN_PROGRESS" // At least one lesson done
	StatusCompleted  EnrollmentStatus = "COMPLETED"   // All mandatory lessons done
	StatusDropped    EnrollmentStatus = "DROPPED"     // Left the course
)

// Course is an e-learning course for candidates
type Course struct {
	ID          kernel.CourseID  `db:"id" json:"id"`
	Title       string           `db:"title" json:"title"`
	Description string           `db:"description" json:"description"`
	Category    CourseCategory   `db:"category" json:"category"`
	Difficulty  CourseDifficulty `db:"difficulty" json:"difficulty"`

	DurationHours int  `db:"duration_hours" json:"duration_hours"`
	DisplayOrder  int  `db:"display_order" json:"display_order"`
	IsActive      bool `db:"is_active" json:"is_active"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Lesson is one unit inside a course. Video lessons carry a transcript
// for accessibility.
type Lesson struct {
	ID       kernel.LessonID   `db:"id" json:"id"`
	CourseID kernel.CourseID   `db:"course_id" json:"course_id"`
	Title    string            `db:"title" json:"title"`
	Type     LessonContentType `db:"content_type" json:"content_type"`
	Content  string            `db:"content" json:"content"`

	VideoURL             string `db:"video_url" json:"video_url,omitempty"`
	VideoDurationMinutes int    `db:"video_duration_minutes" json:"video_duration_minutes,omitempty"`
	Transcript           string `db:"transcript" json:"transcript,omitempty"`

	LessonOrder int  `db:"lesson_order" json:"lesson_order"`
	IsMandatory bool `db:"is_mandatory" json:"is_mandatory"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Enrollment is a candidate's participation in one course
type Enrollment struct {
	ID          kernel.EnrollmentID `db:"id" json:"id"`
	CandidateID kernel.UserID       `db:"candidate_id" json:"candidate_id"`
	CourseID    kernel.CourseID     `db:"course_id" json:"course_id"`

	Status             EnrollmentStatus `db:"status" json:"status"`
	ProgressPercentage float64          `db:"progress_percentage" json:"progress_percentage"`

	CertificateIssued bool   `db:"certificate_issued" json:"certificate_issued"`
	CertificateNumber string `db:"certificate_number" json:"certificate_number,omitempty"`
	CertificatePath   string `db:"certificate_path" json:"-"`

	EnrolledAt  time.Time  `db:"enrolled_at" json:"enrolled_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// LessonProgress tracks a candidate's work on one lesson
type LessonProgress struct {
	EnrollmentID kernel.EnrollmentID `db:"enrollment_id" json:"enrollment_id"`
	LessonID     kernel.LessonID     `db:"lesson_id" json:"lesson_id"`

	Completed        bool       `db:"completed" json:"completed"`
	CompletedAt      *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	TimeSpentMinutes int        `db:"time_spent_minutes" json:"time_spent_minutes"`

	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// NewCertificateNumber builds a CERT-YYYY-NNNNNN certificate number
func NewCertificateNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return fmt.Sprintf("CERT-%d-%06d", now.Year(), now.UnixNano()%1000000)
	}
	return fmt.Sprintf("CERT-%d-%06d", now.Year(), n.Int64())
}

// Validate checks the course fields before persistence
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrInvalidCourse().WithDetail("field", "title")
	}
	if !c.Category.IsValid() {
		return ErrInvalidCourse().WithDetail("field", "category")
	}
	if !c.Difficulty.IsValid() {
		return ErrInvalidCourse().WithDetail("field", "difficulty")
	}
	if c.DurationHours < 1 {
		return ErrInvalidCourse().WithDetail("field", "duration_hours")
	}
	return nil
}

// Validate checks the lesson fields before persistence
func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrInvalidLesson().WithDetail("field", "title")
	}
	if !l.Type.IsValid() {
		return ErrInvalidLesson().WithDetail("field", "content_type")
	}
	if l.Type == ContentVideo && strings.TrimSpace(l.Transcript) == "" {
		return ErrInvalidLesson().
			WithDetail("field", "transcript").
			WithDetail("reason", "video lessons need a transcript for accessibility")
	}
	return nil
}

// RecomputeProgress recalculates the progress percentage from the
// completed mandatory lessons and advances the enrollment status.
// Courses with no mandatory lessons count as fully complete.
func (e *Enrollment) RecomputeProgress(mandatoryTotal, mandatoryCompleted int, now time.Time) {
	if e.Status == StatusDropped {
		return
	}

	progress := 100.0
	if mandatoryTotal > 0 {
		progress = float64(mandatoryCompleted) / float64(mandatoryTotal) * 100
	}
	e.ProgressPercentage = math.Round(progress*100) / 100

	switch {
	case e.ProgressPercentage >= 100:
		e.Status = StatusCompleted
		if e.CompletedAt == nil {
			e.CompletedAt = &now
		}
	case e.ProgressPercentage > 0:
		e.Status = StatusInProgress
		if e.StartedAt == nil {
			e.StartedAt = &now
		}
	}
}

// IsCompleted reports whether the candidate finished the course
func (e *Enrollment) IsCompleted() bool {
	return e.Status == StatusCompleted
}

// IssueCertificate assigns a certificate number once
func (e *Enrollment) IssueCertificate(now time.Time) bool {
	if e.CertificateIssued || !e.IsCompleted() {
		return false
	}
	e.CertificateNumber = NewCertificateNumber(now)
	e.CertificateIssued = true
	return true
}

// MarkCompleted stamps the lesson progress
func (p *LessonProgress) MarkCompleted(now time.Time) {
	if p.Completed {
		return
	}
	p.Completed = true
	p.CompletedAt = &now
	p.UpdatedAt = now
}

// IsValid checks the category enum
func (c CourseCategory) IsValid() bool {
	switch c {
	case CategoryCommunication, CategoryTeamwork, CategoryProblemSolving,
		CategoryLeadership, CategoryConflictResolution, CategoryTimeManagement:
		return true
	}
	return false
}

// IsValid checks the difficulty enum
func (d CourseDifficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// IsValid checks the content type enum
func (t LessonContentType) IsValid() bool {
	switch t {
	case ContentVideo, ContentText, ContentQuiz, ContentInteractive:
		return true
	}
	return false
}
