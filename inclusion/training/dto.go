package training

// CreateCourseRequest - DTO for an admin creating a course
type CreateCourseRequest struct {
	Title         string           `json:"title" validate:"required"`
	Description   string           `json:"description" validate:"required"`
	Category      CourseCategory   `json:"category" validate:"required"`
	Difficulty    CourseDifficulty `json:"difficulty" validate:"required"`
	DurationHours int              `json:"duration_hours" validate:"required"`
	DisplayOrder  int              `json:"display_order,omitempty"`
}

// UpdateCourseRequest - DTO for updating a course; nil fields are untouched
type UpdateCourseRequest struct {
	Title         *string           `json:"title,omitempty"`
	Description   *string           `json:"description,omitempty"`
	Category      *CourseCategory   `json:"category,omitempty"`
	Difficulty    *CourseDifficulty `json:"difficulty,omitempty"`
	DurationHours *int              `json:"duration_hours,omitempty"`
	DisplayOrder  *int              `json:"display_order,omitempty"`
	IsActive      *bool             `json:"is_active,omitempty"`
}

// CreateLessonRequest - DTO for an admin adding a lesson to a course
type CreateLessonRequest struct {
	Title                string            `json:"title" validate:"required"`
	Type                 LessonContentType `json:"content_type" validate:"required"`
	Content              string            `json:"content" validate:"required"`
	VideoURL             string            `json:"video_url,omitempty"`
	VideoDurationMinutes int               `json:"video_duration_minutes,omitempty"`
	Transcript           string            `json:"transcript,omitempty"`
	LessonOrder          int               `json:"lesson_order"`
	IsMandatory          bool              `json:"is_mandatory"`
}

// CourseDetail - DTO of a course with its lessons and enrollment stats
type CourseDetail struct {
	Course        Course   `json:"course"`
	Lessons       []Lesson `json:"lessons"`
	EnrolledCount int64    `json:"enrolled_count"`
}

// EnrollmentDetail - DTO of an enrollment with per-lesson progress
type EnrollmentDetail struct {
	Enrollment Enrollment       `json:"enrollment"`
	Course     Course           `json:"course"`
	Progress   []LessonProgress `json:"progress"`
}

// CompleteLessonRequest - DTO for recording work on a lesson
type CompleteLessonRequest struct {
	TimeSpentMinutes int `json:"time_spent_minutes,omitempty"`
}
