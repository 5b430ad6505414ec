package interviewapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/interview"
	"github.com/incluempleo/vinculo/inclusion/interview/interviewsrv"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Handlers provides HTTP handlers for interview operations
type Handlers struct {
	service *interviewsrv.Service
}

// NewHandlers creates a new interview handlers instance
func NewHandlers(service *interviewsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ProposeInterview creates a proposal for a candidate
// POST /api/interviews
func (h *Handlers) ProposeInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req interview.ProposeInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidInterview().WithDetail("parse_error", err.Error())
	}

	proposed, err := h.service.ProposeInterview(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(proposed)
}

// ListInterviews retrieves the caller's interviews, soonest first
// GET /api/interviews
func (h *Handlers) ListInterviews(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	filters := interview.ListFilters{
		UpcomingOnly: c.QueryBool("upcoming"),
	}
	if raw := c.Query("status"); raw != "" {
		status := interview.InterviewStatus(raw)
		filters.Status = &status
	}

	pagination := parsePaginationOptions(c)
	interviews, err := h.service.ListInterviews(c.Context(), authContext.UserID, filters, pagination)
	if err != nil {
		return err
	}

	return c.JSON(interviews)
}

// GetInterview retrieves one interview
// GET /api/interviews/:id
func (h *Handlers) GetInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID.IsEmpty() {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	i, err := h.service.GetInterview(c.Context(), interviewID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// ConfirmInterview records the caller's confirmation
// POST /api/interviews/:id/confirm
func (h *Handlers) ConfirmInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID.IsEmpty() {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	i, err := h.service.ConfirmInterview(c.Context(), interviewID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// CancelInterview calls an interview off
// POST /api/interviews/:id/cancel
func (h *Handlers) CancelInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID.IsEmpty() {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	var req interview.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrReasonRequired().WithDetail("parse_error", err.Error())
	}

	i, err := h.service.CancelInterview(c.Context(), interviewID, authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// RescheduleInterview proposes a new slot
// POST /api/interviews/:id/reschedule
func (h *Handlers) RescheduleInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID.IsEmpty() {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	var req interview.RescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidInterview().WithDetail("parse_error", err.Error())
	}

	i, err := h.service.RescheduleInterview(c.Context(), interviewID, authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// CompleteInterview closes a confirmed interview after it took place
// POST /api/interviews/:id/complete
func (h *Handlers) CompleteInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID.IsEmpty() {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	i, err := h.service.CompleteInterview(c.Context(), interviewID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(i)
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

// RegisterRoutes registers all interview routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	interviews := app.Group("/api/interviews",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCandidate, auth.RoleCompany),
	)

	interviews.Post("/",
		authMiddleware.RequireRoles(auth.RoleCompany),
		handlers.ProposeInterview,
	)
	interviews.Get("/", handlers.ListInterviews)
	interviews.Get("/:id", handlers.GetInterview)
	interviews.Post("/:id/confirm", handlers.ConfirmInterview)
	interviews.Post("/:id/cancel", handlers.CancelInterview)
	interviews.Post("/:id/reschedule", handlers.RescheduleInterview)
	interviews.Post("/:id/complete", handlers.CompleteInterview)
}
