package dashboardapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/dashboard/dashboardsrv"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
)

// Handlers provides HTTP handlers for the admin dashboard
type Handlers struct {
	service *dashboardsrv.Service
}

// NewHandlers creates a new dashboard handlers instance
func NewHandlers(service *dashboardsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Overview retrieves the dashboard counters and series
// GET /api/admin/dashboard
func (h *Handlers) Overview(c *fiber.Ctx) error {
	overview, err := h.service.Overview(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(overview)
}

// ExportCompliance downloads the quota standing workbook
// GET /api/admin/dashboard/export
func (h *Handlers) ExportCompliance(c *fiber.Ctx) error {
	data, err := h.service.ExportCompliance(c.Context())
	if err != nil {
		return err
	}

	filename := "cumplimiento_" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// RegisterRoutes registers all dashboard routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	admin := app.Group("/api/admin/dashboard",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleAdmin),
	)
	admin.Get("/", handlers.Overview)
	admin.Get("/export", handlers.ExportCompliance)
}
