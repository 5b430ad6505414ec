package complaintapi

import (
	"io"
	"mime/multipart"
	"path"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/complaint"
	"github.com/incluempleo/vinculo/inclusion/complaint/complaintsrv"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Handlers provides HTTP handlers for complaint operations
type Handlers struct {
	service *complaintsrv.Service
}

// NewHandlers creates a new complaint handlers instance
func NewHandlers(service *complaintsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ============================================================================
// Public
// ============================================================================

// FileComplaint registers a complaint. No authentication is required;
// a logged-in filer is linked unless they asked for anonymity. Accepts
// JSON or multipart form with up to three evidence files.
// POST /api/complaints
func (h *Handlers) FileComplaint(c *fiber.Ctx) error {
	var req complaint.FileComplaintRequest
	var evidence []complaintsrv.Evidence

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		parsed, files, err := parseMultipartComplaint(c)
		if err != nil {
			return err
		}
		req = *parsed
		evidence = files
	} else {
		if err := c.BodyParser(&req); err != nil {
			return complaint.ErrInvalidComplaint().WithDetail("parse_error", err.Error())
		}
	}

	var complainantID *kernel.UserID
	if authContext, ok := auth.GetAuthContext(c); ok {
		complainantID = &authContext.UserID
	}

	filed, err := h.service.FileComplaint(c.Context(), req, complainantID, evidence, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(filed)
}

// CheckStatus is the public tracking-code lookup
// GET /api/complaints/track/:code
func (h *Handlers) CheckStatus(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return complaint.ErrComplaintNotFound().WithDetail("tracking_code", "missing or empty")
	}

	status, err := h.service.CheckStatus(c.Context(), code)
	if err != nil {
		return err
	}

	return c.JSON(status)
}

// ============================================================================
// Admin Triage
// ============================================================================

// ListComplaints retrieves complaints for triage, urgent first
// GET /api/admin/complaints
func (h *Handlers) ListComplaints(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	filters := complaint.TriageFilters{}
	if raw := c.Query("status"); raw != "" {
		status := complaint.ComplaintStatus(raw)
		filters.Status = &status
	}
	if raw := c.Query("type"); raw != "" {
		complaintType := complaint.ComplaintType(raw)
		filters.Type = &complaintType
	}
	if raw := c.Query("priority"); raw != "" {
		priority, err := strconv.Atoi(raw)
		if err != nil {
			return complaint.ErrInvalidComplaint().WithDetail("priority", raw)
		}
		filters.Priority = &priority
	}

	complaints, err := h.service.ListComplaints(c.Context(), filters, pagination)
	if err != nil {
		return err
	}

	return c.JSON(complaints)
}

// GetComplaint retrieves a complaint with full detail
// GET /api/admin/complaints/:id
func (h *Handlers) GetComplaint(c *fiber.Ctx) error {
	complaintID := kernel.ComplaintID(c.Params("id"))
	if complaintID.IsEmpty() {
		return complaint.ErrComplaintNotFound().WithDetail("id", "missing or empty")
	}

	found, err := h.service.GetComplaint(c.Context(), complaintID)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

// GetHistory retrieves the status history of a complaint
// GET /api/admin/complaints/:id/history
func (h *Handlers) GetHistory(c *fiber.Ctx) error {
	complaintID := kernel.ComplaintID(c.Params("id"))
	if complaintID.IsEmpty() {
		return complaint.ErrComplaintNotFound().WithDetail("id", "missing or empty")
	}

	history, err := h.service.GetHistory(c.Context(), complaintID)
	if err != nil {
		return err
	}

	return c.JSON(history)
}

// ChangeStatus moves a complaint through its status machine
// POST /api/admin/complaints/:id/status
func (h *Handlers) ChangeStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	complaintID := kernel.ComplaintID(c.Params("id"))
	if complaintID.IsEmpty() {
		return complaint.ErrComplaintNotFound().WithDetail("id", "missing or empty")
	}

	var req complaint.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return complaint.ErrInvalidComplaint().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.ChangeStatus(c.Context(), complaintID, authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// AssignComplaint hands a complaint to an admin
// POST /api/admin/complaints/:id/assign
func (h *Handlers) AssignComplaint(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	complaintID := kernel.ComplaintID(c.Params("id"))
	if complaintID.IsEmpty() {
		return complaint.ErrComplaintNotFound().WithDetail("id", "missing or empty")
	}

	var req complaint.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return complaint.ErrInvalidComplaint().WithDetail("parse_error", err.Error())
	}
	if req.AdminID.IsEmpty() {
		req.AdminID = authContext.UserID
	}

	updated, err := h.service.Assign(c.Context(), complaintID, authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// RespondComplaint records the admin response shown to the filer
// POST /api/admin/complaints/:id/respond
func (h *Handlers) RespondComplaint(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	complaintID := kernel.ComplaintID(c.Params("id"))
	if complaintID.IsEmpty() {
		return complaint.ErrComplaintNotFound().WithDetail("id", "missing or empty")
	}

	var req complaint.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return complaint.ErrInvalidComplaint().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.Respond(c.Context(), complaintID, authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// GetEvidence downloads one evidence file of a complaint
// GET /api/admin/complaints/:id/evidence/:index
func (h *Handlers) GetEvidence(c *fiber.Ctx) error {
	complaintID := kernel.ComplaintID(c.Params("id"))
	if complaintID.IsEmpty() {
		return complaint.ErrComplaintNotFound().WithDetail("id", "missing or empty")
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return complaint.ErrComplaintNotFound().WithDetail("evidence_index", c.Params("index"))
	}

	data, filePath, err := h.service.GetEvidence(c.Context(), complaintID, index)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+path.Base(filePath)+`"`)
	return c.Send(data)
}

// ============================================================================
// Helper Functions
// ============================================================================

func parseMultipartComplaint(c *fiber.Ctx) (*complaint.FileComplaintRequest, []complaintsrv.Evidence, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, complaint.ErrInvalidComplaint().WithDetail("parse_error", err.Error())
	}

	priority := 0
	if raw := c.FormValue("priority"); raw != "" {
		priority, _ = strconv.Atoi(raw)
	}

	req := &complaint.FileComplaintRequest{
		Type:             complaint.ComplaintType(c.FormValue("complaint_type")),
		Subject:          c.FormValue("subject"),
		Description:      c.FormValue("description"),
		CompanyName:      c.FormValue("company_name"),
		JobPostingURL:    c.FormValue("job_posting_url"),
		IsAnonymous:      c.FormValue("is_anonymous") == "true",
		ComplainantName:  c.FormValue("complainant_name"),
		ComplainantEmail: kernel.Email(c.FormValue("complainant_email")),
		ComplainantPhone: kernel.Phone(c.FormValue("complainant_phone")),
		Priority:         priority,
	}

	files := form.File["evidence"]
	if len(files) > complaint.MaxEvidenceFiles {
		return nil, nil, complaint.ErrTooMuchEvidence().
			WithDetail("max", complaint.MaxEvidenceFiles).
			WithDetail("got", len(files))
	}

	evidence := make([]complaintsrv.Evidence, 0, len(files))
	for _, header := range files {
		data, err := readUpload(header)
		if err != nil {
			return nil, nil, complaint.ErrInvalidComplaint().WithDetail("evidence", err.Error())
		}
		evidence = append(evidence, complaintsrv.Evidence{
			Filename: header.Filename,
			Data:     data,
		})
	}

	return req, evidence, nil
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

// RegisterRoutes registers all complaint routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	// Public intake and tracking, no auth required
	public := app.Group("/api/complaints")
	public.Post("/", handlers.FileComplaint)
	public.Get("/track/:code", handlers.CheckStatus)

	// Admin triage routes
	admin := app.Group("/api/admin/complaints",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleAdmin),
	)

	admin.Get("/", handlers.ListComplaints)
	admin.Get("/:id", handlers.GetComplaint)
	admin.Get("/:id/history", handlers.GetHistory)
	admin.Get("/:id/evidence/:index", handlers.GetEvidence)
	admin.Post("/:id/status", handlers.ChangeStatus)
	admin.Post("/:id/assign", handlers.AssignComplaint)
	admin.Post("/:id/respond", handlers.RespondComplaint)
}
