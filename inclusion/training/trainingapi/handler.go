package trainingapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/training"
	"github.com/incluempleo/vinculo/inclusion/training/trainingsrv"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Handlers provides HTTP handlers for training operations
type Handlers struct {
	service *trainingsrv.Service
}

// NewHandlers creates a new training handlers instance
func NewHandlers(service *trainingsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ============================================================================
// Catalog
// ============================================================================

// ListCourses retrieves the course catalog
// GET /api/courses
func (h *Handlers) ListCourses(c *fiber.Ctx) error {
	filters := training.CourseFilters{ActiveOnly: true}
	if raw := c.Query("category"); raw != "" {
		category := training.CourseCategory(raw)
		filters.Category = &category
	}
	if raw := c.Query("difficulty"); raw != "" {
		difficulty := training.CourseDifficulty(raw)
		filters.Difficulty = &difficulty
	}

	pagination := parsePaginationOptions(c)
	courses, err := h.service.ListCourses(c.Context(), filters, pagination)
	if err != nil {
		return err
	}

	return c.JSON(courses)
}

// GetCourse retrieves a course with lessons and enrollment stats
// GET /api/courses/:id
func (h *Handlers) GetCourse(c *fiber.Ctx) error {
	courseID := kernel.CourseID(c.Params("id"))
	if courseID.IsEmpty() {
		return training.ErrCourseNotFound().WithDetail("id", "missing or empty")
	}

	detail, err := h.service.GetCourseDetail(c.Context(), courseID)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// ============================================================================
// Candidate
// ============================================================================

// Enroll signs the caller up for a course
// POST /api/courses/:id/enroll
func (h *Handlers) Enroll(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	courseID := kernel.CourseID(c.Params("id"))
	if courseID.IsEmpty() {
		return training.ErrCourseNotFound().WithDetail("id", "missing or empty")
	}

	enrollment, err := h.service.Enroll(c.Context(), authContext.UserID, courseID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

// ListEnrollments retrieves the caller's enrollments
// GET /api/my-courses
func (h *Handlers) ListEnrollments(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := parsePaginationOptions(c)
	enrollments, err := h.service.ListEnrollments(c.Context(), authContext.UserID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(enrollments)
}

// GetEnrollment retrieves the caller's progress in a course
// GET /api/my-courses/:course_id
func (h *Handlers) GetEnrollment(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	courseID := kernel.CourseID(c.Params("course_id"))
	if courseID.IsEmpty() {
		return training.ErrCourseNotFound().WithDetail("course_id", "missing or empty")
	}

	detail, err := h.service.GetEnrollmentDetail(c.Context(), authContext.UserID, courseID)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// CompleteLesson records a finished lesson
// POST /api/my-courses/:course_id/lessons/:lesson_id/complete
func (h *Handlers) CompleteLesson(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	courseID := kernel.CourseID(c.Params("course_id"))
	lessonID := kernel.LessonID(c.Params("lesson_id"))
	if courseID.IsEmpty() || lessonID.IsEmpty() {
		return training.ErrLessonNotFound().WithDetail("id", "missing or empty")
	}

	var req training.CompleteLessonRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return training.ErrInvalidLesson().WithDetail("parse_error", err.Error())
		}
	}

	enrollment, err := h.service.CompleteLesson(c.Context(), authContext.UserID, courseID, lessonID, req)
	if err != nil {
		return err
	}

	return c.JSON(enrollment)
}

// GetCertificate downloads the caller's completion certificate
// GET /api/my-courses/:course_id/certificate
func (h *Handlers) GetCertificate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	courseID := kernel.CourseID(c.Params("course_id"))
	if courseID.IsEmpty() {
		return training.ErrCourseNotFound().WithDetail("course_id", "missing or empty")
	}

	data, certificateNumber, err := h.service.GetCertificate(c.Context(), authContext.UserID, courseID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+certificateNumber+`.pdf"`)
	return c.Send(data)
}

// ============================================================================
// Admin
// ============================================================================

// CreateCourse adds a course to the catalog
// POST /api/admin/courses
func (h *Handlers) CreateCourse(c *fiber.Ctx) error {
	var req training.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return training.ErrInvalidCourse().WithDetail("parse_error", err.Error())
	}

	course, err := h.service.CreateCourse(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// UpdateCourse applies partial changes to a course
// PATCH /api/admin/courses/:id
func (h *Handlers) UpdateCourse(c *fiber.Ctx) error {
	courseID := kernel.CourseID(c.Params("id"))
	if courseID.IsEmpty() {
		return training.ErrCourseNotFound().WithDetail("id", "missing or empty")
	}

	var req training.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return training.ErrInvalidCourse().WithDetail("parse_error", err.Error())
	}

	course, err := h.service.UpdateCourse(c.Context(), courseID, req)
	if err != nil {
		return err
	}

	return c.JSON(course)
}

// AddLesson appends a lesson to a course
// POST /api/admin/courses/:id/lessons
func (h *Handlers) AddLesson(c *fiber.Ctx) error {
	courseID := kernel.CourseID(c.Params("id"))
	if courseID.IsEmpty() {
		return training.ErrCourseNotFound().WithDetail("id", "missing or empty")
	}

	var req training.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return training.ErrInvalidLesson().WithDetail("parse_error", err.Error())
	}

	lesson, err := h.service.AddLesson(c.Context(), courseID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(lesson)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all training routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	// Catalog, visible to any authenticated user
	courses := app.Group("/api/courses", authMiddleware.Authenticate())
	courses.Get("/", handlers.ListCourses)
	courses.Get("/:id", handlers.GetCourse)

	courses.Post("/:id/enroll",
		authMiddleware.RequireRoles(auth.RoleCandidate),
		handlers.Enroll,
	)

	// Candidate progress
	myCourses := app.Group("/api/my-courses",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCandidate),
	)
	myCourses.Get("/", handlers.ListEnrollments)
	myCourses.Get("/:course_id", handlers.GetEnrollment)
	myCourses.Post("/:course_id/lessons/:lesson_id/complete", handlers.CompleteLesson)
	myCourses.Get("/:course_id/certificate", handlers.GetCertificate)

	// Admin catalog management
	admin := app.Group("/api/admin/courses",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleAdmin),
	)
	admin.Post("/", handlers.CreateCourse)
	admin.Patch("/:id", handlers.UpdateCourse)
	admin.Post("/:id/lessons", handlers.AddLesson)
}
