package libraryapi

import (
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/library"
	"github.com/incluempleo/vinculo/inclusion/library/librarysrv"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Handlers provides HTTP handlers for the best-practices library
type Handlers struct {
	service *librarysrv.Service
}

// NewHandlers creates a new library handlers instance
func NewHandlers(service *librarysrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Home is the library landing payload
// GET /api/library
func (h *Handlers) Home(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	home, err := h.service.Home(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(home)
}

// ListResources retrieves published resources matching the filters
// GET /api/library/resources
func (h *Handlers) ListResources(c *fiber.Ctx) error {
	filters := library.ListFilters{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		Sort:         c.Query("sort"),
	}
	if raw := c.Query("type"); raw != "" {
		t := library.ResourceType(strings.ToUpper(raw))
		filters.Type = &t
	}

	pagination := parsePaginationOptions(c)
	resources, err := h.service.ListResources(c.Context(), filters, pagination)
	if err != nil {
		return err
	}

	return c.JSON(resources)
}

// GetResource retrieves one resource with the caller's reading context
// GET /api/library/resources/:slug
func (h *Handlers) GetResource(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	detail, err := h.service.GetResource(c.Context(), c.Params("slug"), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// DownloadResource streams the attached file
// GET /api/library/resources/:slug/download
func (h *Handlers) DownloadResource(c *fiber.Ctx) error {
	data, filename, err := h.service.DownloadResource(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ToggleBookmark saves or unsaves the resource for the caller
// POST /api/library/resources/:slug/bookmark
func (h *Handlers) ToggleBookmark(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req library.BookmarkRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return library.ErrInvalidResource().WithDetail("parse_error", err.Error())
		}
	}

	toggled, err := h.service.ToggleBookmark(c.Context(), authContext.UserID, c.Params("slug"), req)
	if err != nil {
		return err
	}

	return c.JSON(toggled)
}

// ListBookmarks retrieves the caller's saved resources
// GET /api/library/bookmarks
func (h *Handlers) ListBookmarks(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := parsePaginationOptions(c)
	bookmarks, err := h.service.ListBookmarks(c.Context(), authContext.UserID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(bookmarks)
}

// ============================================================================
// Admin
// ============================================================================

// CreateCategory adds a category
// POST /api/admin/library/categories
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var req library.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return library.ErrInvalidCategory().WithDetail("parse_error", err.Error())
	}

	category, err := h.service.CreateCategory(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// CreateResource publishes a resource, JSON or multipart with a file
// POST /api/admin/library/resources
func (h *Handlers) CreateResource(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req library.CreateResourceRequest
	var file *librarysrv.ResourceFile

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		parsed, upload, err := parseMultipartResource(c)
		if err != nil {
			return err
		}
		req = *parsed
		file = upload
	} else {
		if err := c.BodyParser(&req); err != nil {
			return library.ErrInvalidResource().WithDetail("parse_error", err.Error())
		}
	}

	res, err := h.service.CreateResource(c.Context(), authContext.UserID, req, file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// UpdateResource edits a resource
// PATCH /api/admin/library/resources/:slug
func (h *Handlers) UpdateResource(c *fiber.Ctx) error {
	var req library.UpdateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return library.ErrInvalidResource().WithDetail("parse_error", err.Error())
	}

	res, err := h.service.UpdateResource(c.Context(), c.Params("slug"), req)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// GetStats aggregates the library usage counters
// GET /api/admin/library/stats
func (h *Handlers) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// ============================================================================
// Helpers
// ============================================================================

func parseMultipartResource(c *fiber.Ctx) (*library.CreateResourceRequest, *librarysrv.ResourceFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, library.ErrInvalidResource().WithDetail("parse_error", err.Error())
	}

	req := &library.CreateResourceRequest{
		CategoryID:         kernel.CategoryID(c.FormValue("category_id")),
		Title:              c.FormValue("title"),
		Type:               library.ResourceType(strings.ToUpper(c.FormValue("resource_type"))),
		Description:        c.FormValue("description"),
		Content:            c.FormValue("content"),
		ExternalURL:        c.FormValue("external_url"),
		Author:             c.FormValue("author"),
		Tags:               c.FormValue("tags"),
		IsFeatured:         c.FormValue("is_featured") == "true",
		IsAccessible:       c.FormValue("is_accessible") != "false",
		AccessibilityNotes: c.FormValue("accessibility_notes"),
	}
	if raw := c.FormValue("publication_date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			req.PublicationDate = &parsed
		}
	}

	headers := form.File["file"]
	if len(headers) == 0 {
		return req, nil, nil
	}

	data, err := readUpload(headers[0])
	if err != nil {
		return nil, nil, library.ErrInvalidResource().WithDetail("file_error", err.Error())
	}
	return req, &librarysrv.ResourceFile{Filename: headers[0].Filename, Data: data}, nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 12)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 12
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all library routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	lib := app.Group("/api/library",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCompany, auth.RoleAdmin),
	)

	lib.Get("/", handlers.Home)
	lib.Get("/resources", handlers.ListResources)
	lib.Get("/resources/:slug", handlers.GetResource)
	lib.Get("/resources/:slug/download", handlers.DownloadResource)
	lib.Post("/resources/:slug/bookmark", handlers.ToggleBookmark)
	lib.Get("/bookmarks", handlers.ListBookmarks)

	admin := app.Group("/api/admin/library",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleAdmin),
	)

	admin.Post("/categories", handlers.CreateCategory)
	admin.Post("/resources", handlers.CreateResource)
	admin.Patch("/resources/:slug", handlers.UpdateResource)
	admin.Get("/stats", handlers.GetStats)
}
