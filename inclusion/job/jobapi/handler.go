package jobapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/job"
	"github.com/incluempleo/vinculo/inclusion/job/jobsrv"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Handlers provides HTTP handlers for job posting operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ============================================================================
// Public
// ============================================================================

// ListPublicJobs retrieves approved postings with filters
// GET /api/jobs
func (h *Handlers) ListPublicJobs(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	filters := job.PublicFilters{
		RemoteOnly: c.QueryBool("remote"),
		Search:     c.Query("search"),
	}
	if raw := c.Query("job_type"); raw != "" {
		jt := job.JobType(raw)
		filters.JobType = &jt
	}
	if raw := c.Query("disability_focus"); raw != "" {
		focus := kernel.DisabilityCategory(raw)
		if !focus.IsValid() {
			return job.ErrInvalidJob().WithDetail("disability_focus", raw)
		}
		filters.DisabilityFocus = &focus
	}

	jobs, err := h.service.ListPublicJobs(c.Context(), filters, pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetPublicJob retrieves a single approved posting
// GET /api/jobs/:id
func (h *Handlers) GetPublicJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	j, err := h.service.GetPublicJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(j)
}

// ============================================================================
// Company
// ============================================================================

// CreateJob creates a posting for the authenticated company
// POST /api/company/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJob().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateJob(c.Context(), req, authContext.UserID, c.IP())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateJob updates a posting owned by the authenticated company
// PUT /api/company/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJob().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.Context(), jobID, authContext.UserID, req, c.IP())
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// ListCompanyJobs retrieves the authenticated company's postings
// GET /api/company/jobs
func (h *Handlers) ListCompanyJobs(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := parsePaginationOptions(c)
	jobs, err := h.service.ListCompanyJobs(c.Context(), authContext.UserID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// DeactivateJob hides a posting owned by the authenticated company
// POST /api/company/jobs/:id/deactivate
func (h *Handlers) DeactivateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	j, err := h.service.DeactivateJob(c.Context(), jobID, authContext.UserID, authContext.Role == auth.RoleAdmin, c.IP())
	if err != nil {
		return err
	}

	return c.JSON(j)
}

// ============================================================================
// Admin Review
// ============================================================================

// ListReviewQueue retrieves postings waiting for review
// GET /api/admin/jobs/pending
func (h *Handlers) ListReviewQueue(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)
	jobs, err := h.service.ListReviewQueue(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetJobForReview retrieves any posting with its compliance check
// GET /api/admin/jobs/:id
func (h *Handlers) GetJobForReview(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	j, err := h.service.GetJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(job.WithCompliance(j))
}

// ApproveJob approves a pending posting
// POST /api/admin/jobs/:id/approve
func (h *Handlers) ApproveJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	j, err := h.service.ApproveJob(c.Context(), jobID, authContext.UserID, c.IP())
	if err != nil {
		return err
	}

	return c.JSON(j)
}

// RejectJob refuses a pending posting
// POST /api/admin/jobs/:id/reject
func (h *Handlers) RejectJob(c *fiber.Ctx) error {
	return h.refuseJob(c, false)
}

// RequestChanges sends a pending posting back for edits
// POST /api/admin/jobs/:id/request-changes
func (h *Handlers) RequestChanges(c *fiber.Ctx) error {
	return h.refuseJob(c, true)
}

func (h *Handlers) refuseJob(c *fiber.Ctx, changesRequested bool) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.ReviewDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrReasonRequired().WithDetail("parse_error", err.Error())
	}

	var (
		j   *job.Job
		err error
	)
	if changesRequested {
		j, err = h.service.RequestChanges(c.Context(), jobID, authContext.UserID, req.Reason, c.IP())
	} else {
		j, err = h.service.RejectJob(c.Context(), jobID, authContext.UserID, req.Reason, c.IP())
	}
	if err != nil {
		return err
	}

	return c.JSON(j)
}

// GetAuditTrail retrieves the audit trail of a posting
// GET /api/admin/jobs/:id/audit
func (h *Handlers) GetAuditTrail(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	pagination := parsePaginationOptions(c)
	trail, err := h.service.GetAuditTrail(c.Context(), jobID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(trail)
}

// ============================================================================
// Helper Functions
// ============================================================================

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

// RegisterRoutes registers all job posting routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	// Public listing, no auth required
	public := app.Group("/api/jobs")
	public.Get("/", handlers.ListPublicJobs)
	public.Get("/:id", handlers.GetPublicJob)

	// Company routes
	company := app.Group("/api/company/jobs")

	company.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCompany),
		handlers.CreateJob,
	)

	company.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCompany),
		handlers.ListCompanyJobs,
	)

	company.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCompany),
		handlers.UpdateJob,
	)

	company.Post("/:id/deactivate",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCompany, auth.RoleAdmin),
		handlers.DeactivateJob,
	)

	// Admin review routes
	admin := app.Group("/api/admin/jobs",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleAdmin),
	)

	admin.Get("/pending", handlers.ListReviewQueue)
	admin.Get("/:id", handlers.GetJobForReview)
	admin.Get("/:id/audit", handlers.GetAuditTrail)
	admin.Post("/:id/approve", handlers.ApproveJob)
	admin.Post("/:id/reject", handlers.RejectJob)
	admin.Post("/:id/request-changes", handlers.RequestChanges)
}
