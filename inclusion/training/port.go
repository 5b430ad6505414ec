package training

import (
	"context"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// CourseFilters narrow the course catalog listing
type CourseFilters struct {
	Category   *CourseCategory
	Difficulty *CourseDifficulty
	ActiveOnly bool
}

type CourseRepository interface {
	// Create persists a new course
	Create(ctx context.Context, course *Course) error

	// Update persists changes to an existing course
	Update(ctx context.Context, id kernel.CourseID, course *Course) error

	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id kernel.CourseID) (*Course, error)

	// List retrieves courses in display order
	List(ctx context.Context, filters CourseFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[Course], error)
}

type LessonRepository interface {
	// Create persists a new lesson
	Create(ctx context.Context, lesson *Lesson) error

	// Update persists changes to an existing lesson
	Update(ctx context.Context, id kernel.LessonID, lesson *Lesson) error

	// GetByID retrieves a lesson by ID
	GetByID(ctx context.Context, id kernel.LessonID) (*Lesson, error)

	// ListByCourse retrieves a course's lessons in course order
	ListByCourse(ctx context.Context, courseID kernel.CourseID) ([]Lesson, error)

	// CountMandatory counts a course's mandatory lessons
	CountMandatory(ctx context.Context, courseID kernel.CourseID) (int, error)
}

type EnrollmentRepository interface {
	// Create persists a new enrollment
	Create(ctx context.Context, enrollment *Enrollment) error

	// Update persists changes to an existing enrollment
	Update(ctx context.Context, id kernel.EnrollmentID, enrollment *Enrollment) error

	// GetByID retrieves an enrollment by ID
	GetByID(ctx context.Context, id kernel.EnrollmentID) (*Enrollment, error)

	// GetByCandidateAndCourse retrieves a candidate's enrollment in a course
	GetByCandidateAndCourse(ctx context.Context, candidateID kernel.UserID, courseID kernel.CourseID) (*Enrollment, error)

	// ListByCandidate retrieves a candidate's enrollments, newest first
	ListByCandidate(ctx context.Context, candidateID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Enrollment], error)

	// CountByCourse counts active enrollments per course
	CountByCourse(ctx context.Context, courseID kernel.CourseID) (int64, error)
}

type ProgressRepository interface {
	// Upsert persists lesson progress, inserting or updating the row
	Upsert(ctx context.Context, progress *LessonProgress) error

	// Get retrieves one lesson's progress under an enrollment
	Get(ctx context.Context, enrollmentID kernel.EnrollmentID, lessonID kernel.LessonID) (*LessonProgress, error)

	// ListByEnrollment retrieves all lesson progress under an enrollment
	ListByEnrollment(ctx context.Context, enrollmentID kernel.EnrollmentID) ([]LessonProgress, error)

	// CountCompletedMandatory counts completed mandatory lessons under
	// an enrollment
	CountCompletedMandatory(ctx context.Context, enrollmentID kernel.EnrollmentID) (int, error)
}
