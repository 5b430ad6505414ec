package training

import (
	"net/http"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("TRAINING")

// Error codes
var (
	CodeCourseNotFound     = ErrRegistry.Register("COURSE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Course not found")
	CodeLessonNotFound     = ErrRegistry.Register("LESSON_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Lesson not found")
	CodeEnrollmentNotFound = ErrRegistry.Register("ENROLLMENT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Enrollment not found")
	CodeInvalidCourse      = ErrRegistry.Register("INVALID_COURSE", errx.TypeValidation, http.StatusBadRequest, "Invalid course data")
	CodeInvalidLesson      = ErrRegistry.Register("INVALID_LESSON", errx.TypeValidation, http.StatusBadRequest, "Invalid lesson data")
	CodeAlreadyEnrolled    = ErrRegistry.Register("ALREADY_ENROLLED", errx.TypeConflict, http.StatusConflict, "Candidate is already enrolled in this course")
	CodeCourseInactive     = ErrRegistry.Register("COURSE_INACTIVE", errx.TypeBusiness, http.StatusConflict, "Course is not open for enrollment")
	CodeNotCompleted       = ErrRegistry.Register("NOT_COMPLETED", errx.TypeBusiness, http.StatusConflict, "Course has not been completed")
	CodeCertificateMissing = ErrRegistry.Register("CERTIFICATE_MISSING", errx.TypeNotFound, http.StatusNotFound, "Certificate has not been issued")
)

// Helper functions
func ErrCourseNotFound() *errx.Error {
	return ErrRegistry.New(CodeCourseNotFound)
}

func ErrLessonNotFound() *errx.Error {
	return ErrRegistry.New(CodeLessonNotFound)
}

func ErrEnrollmentNotFound() *errx.Error {
	return ErrRegistry.New(CodeEnrollmentNotFound)
}

func ErrInvalidCourse() *errx.Error {
	return ErrRegistry.New(CodeInvalidCourse)
}

func ErrInvalidLesson() *errx.Error {
	return ErrRegistry.New(CodeInvalidLesson)
}

func ErrAlreadyEnrolled() *errx.Error {
	return ErrRegistry.New(CodeAlreadyEnrolled)
}

func ErrCourseInactive() *errx.Error {
	return ErrRegistry.New(CodeCourseInactive)
}

func ErrNotCompleted() *errx.Error {
	return ErrRegistry.New(CodeNotCompleted)
}

func ErrCertificateMissing() *errx.Error {
	return ErrRegistry.New(CodeCertificateMissing)
}
