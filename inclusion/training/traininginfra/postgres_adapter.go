package traininginfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/incluempleo/vinculo/inclusion/training"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PostgresCourseRepository implements training.CourseRepository
type PostgresCourseRepository struct {
	db *sqlx.DB
}

// NewPostgresCourseRepository creates a new course repository
func NewPostgresCourseRepository(db *sqlx.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: db,
	}
}

const courseColumns = `
	id, title, description, category, difficulty, duration_hours,
	display_order, is_active, created_at, updated_at
`

// Create persists a new course
func (r *PostgresCourseRepository) Create(ctx context.Context, course *training.Course) error {
	query := `
		INSERT INTO courses (
			id, title, description, category, difficulty, duration_hours,
			display_order, is_active, created_at, updated_at
		) VALUES (
			:id, :title, :description, :category, :difficulty, :duration_hours,
			:display_order, :is_active, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// Update persists changes to an existing course
func (r *PostgresCourseRepository) Update(ctx context.Context, id kernel.CourseID, course *training.Course) error {
	course.ID = id

	query := `
		UPDATE courses SET
			title = :title,
			description = :description,
			category = :category,
			difficulty = :difficulty,
			duration_hours = :duration_hours,
			display_order = :display_order,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return training.ErrCourseNotFound()
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id kernel.CourseID) (*training.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	var course training.Course
	err := r.db.GetContext(ctx, &course, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, training.ErrCourseNotFound()
		}
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// List retrieves courses in display order
func (r *PostgresCourseRepository) List(ctx context.Context, filters training.CourseFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[training.Course], error) {
	conditions := []string{}
	args := []any{}

	if filters.Category != nil {
		args = append(args, string(*filters.Category))
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filters.Difficulty != nil {
		args = append(args, string(*filters.Difficulty))
		conditions = append(conditions, fmt.Sprintf("difficulty = $%d", len(args)))
	}
	if filters.ActiveOnly {
		conditions = append(conditions, "is_active")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM courses` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := fmt.Sprintf(`
		SELECT %s FROM courses%s
		ORDER BY display_order ASC, title ASC
		LIMIT $%d OFFSET $%d
	`, courseColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, offset)

	var courses []training.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return &kernel.Paginated[training.Course]{
		Items: courses,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(courses) == 0,
	}, nil
}

// ============================================================================
// Lesson Repository
// ============================================================================

// PostgresLessonRepository implements training.LessonRepository
type PostgresLessonRepository struct {
	db *sqlx.DB
}

// NewPostgresLessonRepository creates a new lesson repository
func NewPostgresLessonRepository(db *sqlx.DB) *PostgresLessonRepository {
	return &PostgresLessonRepository{
		db: db,
	}
}

const lessonColumns = `
	id, course_id, title, content_type, content, video_url,
	video_duration_minutes, transcript, lesson_order, is_mandatory,
	created_at, updated_at
`

// Create persists a new lesson
func (r *PostgresLessonRepository) Create(ctx context.Context, lesson *training.Lesson) error {
	query := `
		INSERT INTO lessons (
			id, course_id, title, content_type, content, video_url,
			video_duration_minutes, transcript, lesson_order, is_mandatory,
			created_at, updated_at
		) VALUES (
			:id, :course_id, :title, :content_type, :content, :video_url,
			:video_duration_minutes, :transcript, :lesson_order, :is_mandatory,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, lesson); err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	return nil
}

// Update persists changes to an existing lesson
func (r *PostgresLessonRepository) Update(ctx context.Context, id kernel.LessonID, lesson *training.Lesson) error {
	lesson.ID = id

	query := `
		UPDATE lessons SET
			title = :title,
			content_type = :content_type,
			content = :content,
			video_url = :video_url,
			video_duration_minutes = :video_duration_minutes,
			transcript = :transcript,
			lesson_order = :lesson_order,
			is_mandatory = :is_mandatory,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, lesson)
	if err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return training.ErrLessonNotFound()
	}

	return nil
}

// GetByID retrieves a lesson by ID
func (r *PostgresLessonRepository) GetByID(ctx context.Context, id kernel.LessonID) (*training.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	var lesson training.Lesson
	err := r.db.GetContext(ctx, &lesson, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, training.ErrLessonNotFound()
		}
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// ListByCourse retrieves a course's lessons in course order
func (r *PostgresLessonRepository) ListByCourse(ctx context.Context, courseID kernel.CourseID) ([]training.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE course_id = $1 ORDER BY lesson_order ASC`

	var lessons []training.Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, string(courseID)); err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

// CountMandatory counts a course's mandatory lessons
func (r *PostgresLessonRepository) CountMandatory(ctx context.Context, courseID kernel.CourseID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM lessons WHERE course_id = $1 AND is_mandatory`
	if err := r.db.GetContext(ctx, &count, query, string(courseID)); err != nil {
		return 0, fmt.Errorf("failed to count mandatory lessons: %w", err)
	}
	return count, nil
}

// ============================================================================
// Enrollment Repository
// ============================================================================

// PostgresEnrollmentRepository implements training.EnrollmentRepository
type PostgresEnrollmentRepository struct {
	db *sqlx.DB
}

// NewPostgresEnrollmentRepository creates a new enrollment repository
func NewPostgresEnrollmentRepository(db *sqlx.DB) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{
		db: db,
	}
}

const enrollmentColumns = `
	id, candidate_id, course_id, status, progress_percentage,
	certificate_issued, certificate_number, certificate_path, enrolled_at,
	started_at, completed_at
`

// Create persists a new enrollment
func (r *PostgresEnrollmentRepository) Create(ctx context.Context, enrollment *training.Enrollment) error {
	query := `
		INSERT INTO enrollments (
			id, candidate_id, course_id, status, progress_percentage,
			certificate_issued, certificate_number, certificate_path,
			enrolled_at, started_at, completed_at
		) VALUES (
			:id, :candidate_id, :course_id, :status, :progress_percentage,
			:certificate_issued, :certificate_number, :certificate_path,
			:enrolled_at, :started_at, :completed_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return training.ErrAlreadyEnrolled()
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	return nil
}

// Update persists changes to an existing enrollment
func (r *PostgresEnrollmentRepository) Update(ctx context.Context, id kernel.EnrollmentID, enrollment *training.Enrollment) error {
	enrollment.ID = id

	query := `
		UPDATE enrollments SET
			status = :status,
			progress_percentage = :progress_percentage,
			certificate_issued = :certificate_issued,
			certificate_number = :certificate_number,
			certificate_path = :certificate_path,
			started_at = :started_at,
			completed_at = :completed_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, enrollment)
	if err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return training.ErrEnrollmentNotFound()
	}

	return nil
}

// GetByID retrieves an enrollment by ID
func (r *PostgresEnrollmentRepository) GetByID(ctx context.Context, id kernel.EnrollmentID) (*training.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`

	var enrollment training.Enrollment
	err := r.db.GetContext(ctx, &enrollment, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, training.ErrEnrollmentNotFound()
		}
		return nil, fmt.Errorf("failed to get enrollment by id: %w", err)
	}

	return &enrollment, nil
}

// GetByCandidateAndCourse retrieves a candidate's enrollment in a course
func (r *PostgresEnrollmentRepository) GetByCandidateAndCourse(ctx context.Context, candidateID kernel.UserID, courseID kernel.CourseID) (*training.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE candidate_id = $1 AND course_id = $2`

	var enrollment training.Enrollment
	err := r.db.GetContext(ctx, &enrollment, query, candidateID.String(), string(courseID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, training.ErrEnrollmentNotFound()
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return &enrollment, nil
}

// ListByCandidate retrieves a candidate's enrollments, newest first
func (r *PostgresEnrollmentRepository) ListByCandidate(ctx context.Context, candidateID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[training.Enrollment], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM enrollments WHERE candidate_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, candidateID.String()); err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := `
		SELECT ` + enrollmentColumns + ` FROM enrollments
		WHERE candidate_id = $1
		ORDER BY enrolled_at DESC
		LIMIT $2 OFFSET $3
	`

	var enrollments []training.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, candidateID.String(), pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	return &kernel.Paginated[training.Enrollment]{
		Items: enrollments,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(enrollments) == 0,
	}, nil
}

// CountByCourse counts active enrollments per course
func (r *PostgresEnrollmentRepository) CountByCourse(ctx context.Context, courseID kernel.CourseID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status != $2`
	if err := r.db.GetContext(ctx, &count, query, string(courseID), string(training.StatusDropped)); err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}

// ============================================================================
// Progress Repository
// ============================================================================

// PostgresProgressRepository implements training.ProgressRepository
type PostgresProgressRepository struct {
	db *sqlx.DB
}

// NewPostgresProgressRepository creates a new lesson progress repository
func NewPostgresProgressRepository(db *sqlx.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{
		db: db,
	}
}

const progressColumns = `
	enrollment_id, lesson_id, completed, completed_at, time_spent_minutes, updated_at
`

// Upsert persists lesson progress, inserting or updating the row
func (r *PostgresProgressRepository) Upsert(ctx context.Context, progress *training.LessonProgress) error {
	query := `
		INSERT INTO lesson_progress (
			enrollment_id, lesson_id, completed, completed_at,
			time_spent_minutes, updated_at
		) VALUES (
			:enrollment_id, :lesson_id, :completed, :completed_at,
			:time_spent_minutes, :updated_at
		)
		ON CONFLICT (enrollment_id, lesson_id) DO UPDATE SET
			completed = EXCLUDED.completed,
			completed_at = EXCLUDED.completed_at,
			time_spent_minutes = lesson_progress.time_spent_minutes + EXCLUDED.time_spent_minutes,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, progress); err != nil {
		return fmt.Errorf("failed to upsert lesson progress: %w", err)
	}

	return nil
}

// Get retrieves one lesson's progress under an enrollment
func (r *PostgresProgressRepository) Get(ctx context.Context, enrollmentID kernel.EnrollmentID, lessonID kernel.LessonID) (*training.LessonProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM lesson_progress WHERE enrollment_id = $1 AND lesson_id = $2`

	var progress training.LessonProgress
	err := r.db.GetContext(ctx, &progress, query, enrollmentID.String(), string(lessonID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lesson progress: %w", err)
	}

	return &progress, nil
}

// ListByEnrollment retrieves all lesson progress under an enrollment
func (r *PostgresProgressRepository) ListByEnrollment(ctx context.Context, enrollmentID kernel.EnrollmentID) ([]training.LessonProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM lesson_progress WHERE enrollment_id = $1`

	var progress []training.LessonProgress
	if err := r.db.SelectContext(ctx, &progress, query, enrollmentID.String()); err != nil {
		return nil, fmt.Errorf("failed to list lesson progress: %w", err)
	}
	return progress, nil
}

// CountCompletedMandatory counts completed mandatory lessons under an
// enrollment
func (r *PostgresProgressRepository) CountCompletedMandatory(ctx context.Context, enrollmentID kernel.EnrollmentID) (int, error) {
	query := `
		SELECT COUNT(*) FROM lesson_progress p
		JOIN lessons l ON l.id = p.lesson_id
		WHERE p.enrollment_id = $1 AND p.completed AND l.is_mandatory
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, enrollmentID.String()); err != nil {
		return 0, fmt.Errorf("failed to count completed mandatory lessons: %w", err)
	}
	return count, nil
}
