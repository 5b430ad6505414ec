package quotaapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/quota"
	"github.com/incluempleo/vinculo/inclusion/quota/quotasrv"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Handlers provides HTTP handlers for employment quota operations
type Handlers struct {
	service *quotasrv.Service
}

// NewHandlers creates a new quota handlers instance
func NewHandlers(service *quotasrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetStatus retrieves the authenticated company's quota standing
// GET /api/company/quota
func (h *Handlers) GetStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	status, err := h.service.GetStatus(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(status)
}

// UpdateEmployeeCount sets the self-reported workforce size and returns
// the JSON envelope
// PUT /api/company/quota/employees
func (h *Handlers) UpdateEmployeeCount(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req quota.UpdateEmployeeCountRequest
	if err := c.BodyParser(&req); err != nil {
		return quota.ErrInvalidEmployeeCount().WithDetail("parse_error", err.Error())
	}

	status, err := h.service.UpdateEmployeeCount(c.Context(), authContext.UserID, req.TotalEmployees)
	if err != nil {
		return err
	}

	return c.JSON(quota.Envelope{Success: true, Data: status})
}

// ListSnapshots retrieves the authenticated company's monthly history
// GET /api/company/quota/history
func (h *Handlers) ListSnapshots(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := parsePaginationOptions(c)
	snapshots, err := h.service.ListSnapshots(c.Context(), authContext.UserID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(snapshots)
}

// ListAll retrieves every company's quota standing. Admin only.
// GET /api/admin/quota
func (h *Handlers) ListAll(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)
	quotas, err := h.service.ListAll(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(quotas)
}

// GetCompanyStatus retrieves any company's quota standing. Admin only.
// GET /api/admin/quota/:company_id
func (h *Handlers) GetCompanyStatus(c *fiber.Ctx) error {
	companyID := kernel.UserID(c.Params("company_id"))
	if companyID.IsEmpty() {
		return quota.ErrQuotaNotFound().WithDetail("company_id", "missing or empty")
	}

	status, err := h.service.GetStatus(c.Context(), companyID)
	if err != nil {
		return err
	}

	return c.JSON(status)
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

// RegisterRoutes registers all employment quota routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	company := app.Group("/api/company/quota",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCompany),
	)

	company.Get("/", handlers.GetStatus)
	company.Put("/employees", handlers.UpdateEmployeeCount)
	company.Get("/history", handlers.ListSnapshots)

	admin := app.Group("/api/admin/quota",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleAdmin),
	)

	admin.Get("/", handlers.ListAll)
	admin.Get("/:company_id", handlers.GetCompanyStatus)
}
