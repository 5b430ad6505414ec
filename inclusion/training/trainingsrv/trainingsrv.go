package trainingsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/inclusion/training"
	"github.com/incluempleo/vinculo/inclusion/user"
	"github.com/incluempleo/vinculo/internal/document"
	"github.com/incluempleo/vinculo/pkg/fsx"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

const certificateDir = "training/certificates"

// Service handles the e-learning catalog, enrollments and certificates
type Service struct {
	courses     training.CourseRepository
	lessons     training.LessonRepository
	enrollments training.EnrollmentRepository
	progress    training.ProgressRepository
	users       user.Repository
	files       fsx.FileSystem
}

// NewService creates a new training service
func NewService(
	courses training.CourseRepository,
	lessons training.LessonRepository,
	enrollments training.EnrollmentRepository,
	progress training.ProgressRepository,
	users user.Repository,
	files fsx.FileSystem,
) *Service {
	return &Service{
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		progress:    progress,
		users:       users,
		files:       files,
	}
}

// ============================================================================
// Catalog
// ============================================================================

// CreateCourse adds a course to the catalog
func (s *Service) CreateCourse(ctx context.Context, req training.CreateCourseRequest) (*training.Course, error) {
	now := time.Now()
	course := &training.Course{
		ID:            kernel.NewCourseID(uuid.NewString()),
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		DurationHours: req.DurationHours,
		DisplayOrder:  req.DisplayOrder,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	logx.Infof("Course created: %s (%s)", course.Title, course.ID)
	return course, nil
}

// UpdateCourse applies the non-nil fields of the request
func (s *Service) UpdateCourse(ctx context.Context, id kernel.CourseID, req training.UpdateCourseRequest) (*training.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Difficulty != nil {
		course.Difficulty = *req.Difficulty
	}
	if req.DurationHours != nil {
		course.DurationHours = *req.DurationHours
	}
	if req.DisplayOrder != nil {
		course.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	course.UpdatedAt = time.Now()

	if err := course.Validate(); err != nil {
		return nil, err
	}

	if err := s.courses.Update(ctx, id, course); err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses retrieves the catalog in display order
func (s *Service) ListCourses(ctx context.Context, filters training.CourseFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[training.Course], error) {
	return s.courses.List(ctx, filters, pagination)
}

// GetCourseDetail retrieves a course with its lessons and enrollment count
func (s *Service) GetCourseDetail(ctx context.Context, id kernel.CourseID) (*training.CourseDetail, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessons.ListByCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollments.CountByCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	return &training.CourseDetail{
		Course:        *course,
		Lessons:       lessons,
		EnrolledCount: enrolled,
	}, nil
}

// AddLesson appends a lesson to a course
func (s *Service) AddLesson(ctx context.Context, courseID kernel.CourseID, req training.CreateLessonRequest) (*training.Lesson, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	now := time.Now()
	lesson := &training.Lesson{
		ID:                   kernel.NewLessonID(uuid.NewString()),
		CourseID:             courseID,
		Title:                req.Title,
		Type:                 req.Type,
		Content:              req.Content,
		VideoURL:             req.VideoURL,
		VideoDurationMinutes: req.VideoDurationMinutes,
		Transcript:           req.Transcript,
		LessonOrder:          req.LessonOrder,
		IsMandatory:          req.IsMandatory,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// ============================================================================
// Enrollment and Progress
// ============================================================================

// Enroll signs a candidate up for an active course
func (s *Service) Enroll(ctx context.Context, candidateID kernel.UserID, courseID kernel.CourseID) (*training.Enrollment, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsActive {
		return nil, training.ErrCourseInactive()
	}

	enrollment := &training.Enrollment{
		ID:          kernel.NewEnrollmentID(uuid.NewString()),
		CandidateID: candidateID,
		CourseID:    courseID,
		Status:      training.StatusEnrolled,
		EnrolledAt:  time.Now(),
	}

	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	logx.Infof("Candidate %s enrolled in course %s", candidateID, course.Title)
	return enrollment, nil
}

// ListEnrollments retrieves the caller's enrollments, newest first
func (s *Service) ListEnrollments(ctx context.Context, candidateID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[training.Enrollment], error) {
	return s.enrollments.ListByCandidate(ctx, candidateID, pagination)
}

// GetEnrollmentDetail retrieves an enrollment with its course and
// per-lesson progress
func (s *Service) GetEnrollmentDetail(ctx context.Context, candidateID kernel.UserID, courseID kernel.CourseID) (*training.EnrollmentDetail, error) {
	enrollment, err := s.enrollments.GetByCandidateAndCourse(ctx, candidateID, courseID)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progress.ListByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}

	return &training.EnrollmentDetail{
		Enrollment: *enrollment,
		Course:     *course,
		Progress:   progress,
	}, nil
}

// CompleteLesson records a finished lesson and recomputes the course
// progress; finishing the last mandatory lesson issues the certificate
func (s *Service) CompleteLesson(ctx context.Context, candidateID kernel.UserID, courseID kernel.CourseID, lessonID kernel.LessonID, req training.CompleteLessonRequest) (*training.Enrollment, error) {
	enrollment, err := s.enrollments.GetByCandidateAndCourse(ctx, candidateID, courseID)
	if err != nil {
		return nil, err
	}

	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.CourseID != courseID {
		return nil, training.ErrLessonNotFound().WithDetail("course_id", courseID.String())
	}

	now := time.Now()
	progress := &training.LessonProgress{
		EnrollmentID:     enrollment.ID,
		LessonID:         lessonID,
		TimeSpentMinutes: req.TimeSpentMinutes,
		UpdatedAt:        now,
	}
	progress.MarkCompleted(now)

	if err := s.progress.Upsert(ctx, progress); err != nil {
		return nil, err
	}

	if err := s.recomputeProgress(ctx, enrollment, now); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// GetCertificate streams the completion certificate PDF
func (s *Service) GetCertificate(ctx context.Context, candidateID kernel.UserID, courseID kernel.CourseID) ([]byte, string, error) {
	enrollment, err := s.enrollments.GetByCandidateAndCourse(ctx, candidateID, courseID)
	if err != nil {
		return nil, "", err
	}
	if !enrollment.CertificateIssued || enrollment.CertificatePath == "" {
		return nil, "", training.ErrCertificateMissing()
	}

	data, err := s.files.ReadFile(ctx, enrollment.CertificatePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read certificate: %w", err)
	}
	return data, enrollment.CertificateNumber, nil
}

// recomputeProgress refreshes the enrollment from the mandatory-lesson
// counts and issues the certificate on completion
func (s *Service) recomputeProgress(ctx context.Context, enrollment *training.Enrollment, now time.Time) error {
	mandatoryTotal, err := s.lessons.CountMandatory(ctx, enrollment.CourseID)
	if err != nil {
		return err
	}
	mandatoryCompleted, err := s.progress.CountCompletedMandatory(ctx, enrollment.ID)
	if err != nil {
		return err
	}

	enrollment.RecomputeProgress(mandatoryTotal, mandatoryCompleted, now)

	if enrollment.IssueCertificate(now) {
		if err := s.renderCertificate(ctx, enrollment, now); err != nil {
			// The completion stands; the certificate can be rebuilt later
			logx.Errorf("Failed to render certificate for enrollment %s: %v", enrollment.ID, err)
		}
	}

	return s.enrollments.Update(ctx, enrollment.ID, enrollment)
}

func (s *Service) renderCertificate(ctx context.Context, enrollment *training.Enrollment, now time.Time) error {
	course, err := s.courses.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		return err
	}
	candidate, err := s.users.GetByID(ctx, enrollment.CandidateID)
	if err != nil {
		return err
	}

	pdf, err := document.BuildCertificatePDF(document.CertificateData{
		CertificateNumber: enrollment.CertificateNumber,
		StudentName:       candidate.GetFullName(),
		CourseTitle:       course.Title,
		DurationHours:     course.DurationHours,
		CompletedAt:       now,
	})
	if err != nil {
		return err
	}

	path := s.files.Join(certificateDir, enrollment.CertificateNumber+".pdf")
	if err := s.files.WriteFile(ctx, path, pdf); err != nil {
		return err
	}

	enrollment.CertificatePath = path
	logx.Infof("Certificate %s issued for candidate %s, course %s", enrollment.CertificateNumber, enrollment.CandidateID, course.Title)
	return nil
}
