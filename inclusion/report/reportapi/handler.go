package reportapi

import (
	"path"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/inclusion/report/reportsrv"
	"github.com/incluempleo/vinculo/internal/preview"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Handlers provides HTTP handlers for hiring report operations
type Handlers struct {
	service *reportsrv.Service
}

// NewHandlers creates a new report handlers instance
func NewHandlers(service *reportsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ============================================================================
// Company
// ============================================================================

// CreateReport registers a hire for the authenticated company
// POST /api/company/reports
func (h *Handlers) CreateReport(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req report.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return report.ErrInvalidReport().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateReport(c.Context(), req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateReport edits an unconfirmed report
// PUT /api/company/reports/:id
func (h *Handlers) UpdateReport(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	reportID := kernel.ReportID(c.Params("id"))
	if reportID == "" {
		return report.ErrReportNotFound().WithDetail("id", "missing or empty")
	}

	var req report.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return report.ErrInvalidReport().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateReport(c.Context(), reportID, authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// GetReport retrieves one of the company's reports
// GET /api/company/reports/:id
func (h *Handlers) GetReport(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	reportID := kernel.ReportID(c.Params("id"))
	if reportID == "" {
		return report.ErrReportNotFound().WithDetail("id", "missing or empty")
	}

	r, err := h.service.GetReport(c.Context(), reportID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(r)
}

// ListReports retrieves the company's reports
// GET /api/company/reports
func (h *Handlers) ListReports(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := parsePaginationOptions(c)
	filter := parseStatusFilter(c)

	reports, err := h.service.ListReports(c.Context(), authContext.UserID, filter, pagination)
	if err != nil {
		return err
	}

	return c.JSON(reports)
}

// SendReport runs the delivery pipeline and returns the JSON envelope
// POST /api/company/reports/:id/send
func (h *Handlers) SendReport(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	reportID := kernel.ReportID(c.Params("id"))
	if reportID == "" {
		return report.ErrReportNotFound().WithDetail("id", "missing or empty")
	}

	result, err := h.service.SendReport(c.Context(), reportID, authContext.UserID)
	if err != nil {
		return err
	}

	if !result.Success {
		return c.JSON(report.Envelope{Success: false, Error: result.Error, Data: result})
	}
	return c.JSON(report.Envelope{Success: true, Data: result})
}

// DownloadPDF streams the generated PDF artifact
// GET /api/company/reports/:id/pdf
func (h *Handlers) DownloadPDF(c *fiber.Ctx) error {
	return h.download(c, "pdf", "application/pdf")
}

// DownloadXML streams the generated XML artifact
// GET /api/company/reports/:id/xml
func (h *Handlers) DownloadXML(c *fiber.Ctx) error {
	return h.download(c, "xml", "application/xml")
}

func (h *Handlers) download(c *fiber.Ctx, kind, contentType string) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	reportID := kernel.ReportID(c.Params("id"))
	if reportID == "" {
		return report.ErrReportNotFound().WithDetail("id", "missing or empty")
	}

	// Admins can fetch any company's artifacts
	var owner *kernel.UserID
	if authContext.Role != auth.RoleAdmin {
		owner = &authContext.UserID
	}

	data, storedPath, err := h.service.GetArtifact(c.Context(), reportID, owner, kind)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+path.Base(storedPath)+`"`)
	return c.Send(data)
}

// ============================================================================
// Admin
// ============================================================================

// ListAllReports retrieves reports across companies
// GET /api/admin/reports
func (h *Handlers) ListAllReports(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)
	filter := parseStatusFilter(c)

	reports, err := h.service.ListAllReports(c.Context(), filter, pagination)
	if err != nil {
		return err
	}

	return c.JSON(reports)
}

// GetReportAdmin retrieves any report
// GET /api/admin/reports/:id
func (h *Handlers) GetReportAdmin(c *fiber.Ctx) error {
	reportID := kernel.ReportID(c.Params("id"))
	if reportID == "" {
		return report.ErrReportNotFound().WithDetail("id", "missing or empty")
	}

	r, err := h.service.GetReportAdmin(c.Context(), reportID)
	if err != nil {
		return err
	}

	return c.JSON(r)
}

// RetryFailedReports runs a retry batch and returns per-report outcomes
// POST /api/admin/reports/retry
func (h *Handlers) RetryFailedReports(c *fiber.Ctx) error {
	outcomes, err := h.service.RetryFailedReports(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(report.Envelope{Success: true, Data: outcomes})
}

// PreviewPDF renders the first page of the PDF artifact as a JPEG for the
// review screens
// GET /api/admin/reports/:id/preview
func (h *Handlers) PreviewPDF(c *fiber.Ctx) error {
	reportID := kernel.ReportID(c.Params("id"))
	if reportID == "" {
		return report.ErrReportNotFound().WithDetail("id", "missing or empty")
	}

	data, _, err := h.service.GetArtifact(c.Context(), reportID, nil, "pdf")
	if err != nil {
		return err
	}

	p, err := preview.FirstPage(data)
	if err != nil {
		return report.ErrArtifactNotFound().WithCause(err)
	}

	c.Set("X-Page-Count", strconv.Itoa(p.PageCount))
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(p.FirstPageJPEG)
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

// parseStatusFilter extracts the optional status query parameter
func parseStatusFilter(c *fiber.Ctx) report.StatusFilter {
	filter := report.StatusFilter{}
	if raw := c.Query("status"); raw != "" {
		status := report.ReportStatus(raw)
		filter.Status = &status
	}
	return filter
}

// RegisterRoutes registers all hiring report routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	// Company routes
	company := app.Group("/api/company/reports",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCompany, auth.RoleAdmin),
	)

	company.Post("/", handlers.CreateReport)
	company.Get("/", handlers.ListReports)
	company.Get("/:id", handlers.GetReport)
	company.Put("/:id", handlers.UpdateReport)
	company.Post("/:id/send", handlers.SendReport)
	company.Get("/:id/pdf", handlers.DownloadPDF)
	company.Get("/:id/xml", handlers.DownloadXML)

	// Admin routes
	admin := app.Group("/api/admin/reports",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleAdmin),
	)

	admin.Get("/", handlers.ListAllReports)
	admin.Post("/retry", handlers.RetryFailedReports)
	admin.Get("/:id", handlers.GetReportAdmin)
	admin.Get("/:id/preview", handlers.PreviewPDF)
}
