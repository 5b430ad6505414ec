package userapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/user"
	"github.com/incluempleo/vinculo/inclusion/user/usersrv"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Handlers provides HTTP handlers for account operations
type Handlers struct {
	service *usersrv.Service
}

// NewHandlers creates a new account handlers instance
func NewHandlers(service *usersrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Register creates a new candidate or company account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidEmail().WithDetail("parse_error", err.Error())
	}

	session, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// Login authenticates credentials and returns a session token
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return auth.ErrInvalidCredentials().WithDetail("parse_error", err.Error())
	}

	session, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// Me returns the authenticated account
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	u, err := h.service.GetByID(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(user.ToResponse(u))
}

// UpdateProfile applies a partial update to the authenticated account
// PATCH /api/auth/me
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req user.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidEmail().WithDetail("parse_error", err.Error())
	}

	u, err := h.service.UpdateProfile(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(user.ToResponse(u))
}

// UpdateAccessibility replaces the accessibility preferences of the
// authenticated account
// PUT /api/auth/me/accessibility
func (h *Handlers) UpdateAccessibility(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req user.UpdateAccessibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidEmail().WithDetail("parse_error", err.Error())
	}

	u, err := h.service.UpdateAccessibility(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(user.ToResponse(u))
}

// ListUsers retrieves accounts with pagination. Admin only.
// GET /api/admin/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	var roleFilter *auth.Role
	if raw := c.Query("role"); raw != "" {
		role, err := auth.ParseRole(raw)
		if err != nil {
			return user.ErrInvalidRole().WithDetail("role", raw)
		}
		roleFilter = &role
	}

	users, err := h.service.List(c.Context(), roleFilter, pagination)
	if err != nil {
		return err
	}

	return c.JSON(users)
}

// SetUserActive activates or deactivates an account. Admin only.
// PUT /api/admin/users/:id/active
func (h *Handlers) SetUserActive(c *fiber.Ctx) error {
	userID := kernel.UserID(c.Params("id"))
	if userID.IsEmpty() {
		return user.ErrUserNotFound().WithDetail("id", "missing or empty")
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRole().WithDetail("parse_error", err.Error())
	}

	u, err := h.service.SetActive(c.Context(), userID, req.Active)
	if err != nil {
		return err
	}

	return c.JSON(user.ToResponse(u))
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

// RegisterRoutes registers all account routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/auth")

	// Public routes
	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)

	// Authenticated routes
	api.Get("/me",
		authMiddleware.Authenticate(),
		handlers.Me,
	)

	api.Patch("/me",
		authMiddleware.Authenticate(),
		handlers.UpdateProfile,
	)

	api.Put("/me/accessibility",
		authMiddleware.Authenticate(),
		handlers.UpdateAccessibility,
	)

	// Admin routes
	admin := app.Group("/api/admin/users")

	admin.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleAdmin),
		handlers.ListUsers,
	)

	admin.Put("/:id/active",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleAdmin),
		handlers.SetUserActive,
	)
}
