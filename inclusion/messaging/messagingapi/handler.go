package messagingapi

import (
	"io"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/inclusion/messaging"
	"github.com/incluempleo/vinculo/inclusion/messaging/messagingsrv"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Handlers provides HTTP handlers for messaging operations
type Handlers struct {
	service *messagingsrv.Service
}

// NewHandlers creates a new messaging handlers instance
func NewHandlers(service *messagingsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// StartConversation opens a thread with an initial message
// POST /api/conversations
func (h *Handlers) StartConversation(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req messaging.StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return messaging.ErrInvalidConversation().WithDetail("parse_error", err.Error())
	}

	conversation, err := h.service.StartConversation(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(conversation)
}

// ListConversations retrieves the caller's inbox
// GET /api/conversations
func (h *Handlers) ListConversations(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	pagination := parsePaginationOptions(c)
	conversations, err := h.service.ListConversations(c.Context(), authContext.UserID, c.QueryBool("archived"), pagination)
	if err != nil {
		return err
	}

	return c.JSON(conversations)
}

// GetConversation retrieves one thread
// GET /api/conversations/:id
func (h *Handlers) GetConversation(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	conversationID := kernel.ConversationID(c.Params("id"))
	if conversationID.IsEmpty() {
		return messaging.ErrConversationNotFound().WithDetail("id", "missing or empty")
	}

	conversation, err := h.service.GetConversation(c.Context(), conversationID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(conversation)
}

// ListMessages retrieves a thread's messages, oldest first
// GET /api/conversations/:id/messages
func (h *Handlers) ListMessages(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	conversationID := kernel.ConversationID(c.Params("id"))
	if conversationID.IsEmpty() {
		return messaging.ErrConversationNotFound().WithDetail("id", "missing or empty")
	}

	pagination := parsePaginationOptions(c)
	messages, err := h.service.ListMessages(c.Context(), conversationID, authContext.UserID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(messages)
}

// SendMessage appends a message, optionally with a multipart attachment
// POST /api/conversations/:id/messages
func (h *Handlers) SendMessage(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	conversationID := kernel.ConversationID(c.Params("id"))
	if conversationID.IsEmpty() {
		return messaging.ErrConversationNotFound().WithDetail("id", "missing or empty")
	}

	var req messaging.SendMessageRequest
	var attachment *messagingsrv.Attachment

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		req.Content = c.FormValue("content")
		req.AttachmentAltText = c.FormValue("attachment_alt_text")

		header, err := c.FormFile("attachment")
		if err == nil && header != nil {
			file, err := header.Open()
			if err != nil {
				return messaging.ErrInvalidMessage().WithDetail("attachment", err.Error())
			}
			data, err := io.ReadAll(file)
			_ = file.Close()
			if err != nil {
				return messaging.ErrInvalidMessage().WithDetail("attachment", err.Error())
			}
			attachment = &messagingsrv.Attachment{
				Filename: header.Filename,
				Data:     data,
			}
		}
	} else {
		if err := c.BodyParser(&req); err != nil {
			return messaging.ErrInvalidMessage().WithDetail("parse_error", err.Error())
		}
	}

	message, err := h.service.SendMessage(c.Context(), conversationID, authContext.UserID, req, attachment)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkRead stamps the caller's last-read marker
// POST /api/conversations/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	conversationID := kernel.ConversationID(c.Params("id"))
	if conversationID.IsEmpty() {
		return messaging.ErrConversationNotFound().WithDetail("id", "missing or empty")
	}

	conversation, err := h.service.MarkRead(c.Context(), conversationID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(conversation)
}

// SetArchived toggles the caller's archive flag
// PUT /api/conversations/:id/archive
func (h *Handlers) SetArchived(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	conversationID := kernel.ConversationID(c.Params("id"))
	if conversationID.IsEmpty() {
		return messaging.ErrConversationNotFound().WithDetail("id", "missing or empty")
	}

	var req messaging.ArchiveRequest
	if err := c.BodyParser(&req); err != nil {
		return messaging.ErrInvalidConversation().WithDetail("parse_error", err.Error())
	}

	conversation, err := h.service.SetArchived(c.Context(), conversationID, authContext.UserID, req.Archived)
	if err != nil {
		return err
	}

	return c.JSON(conversation)
}

// UnreadTotal returns the caller's inbox unread badge
// GET /api/conversations/unread
func (h *Handlers) UnreadTotal(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	total, err := h.service.UnreadTotal(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(messaging.UnreadTotalResponse{Total: total})
}

// GetAttachment downloads a message attachment
// GET /api/conversations/:id/attachments?path=...
func (h *Handlers) GetAttachment(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	conversationID := kernel.ConversationID(c.Params("id"))
	if conversationID.IsEmpty() {
		return messaging.ErrConversationNotFound().WithDetail("id", "missing or empty")
	}

	attachmentPath := c.Query("path")
	data, err := h.service.GetAttachment(c.Context(), conversationID, authContext.UserID, attachmentPath)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+path.Base(attachmentPath)+`"`)
	return c.Send(data)
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

// RegisterRoutes registers all messaging routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	conversations := app.Group("/api/conversations",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRoles(auth.RoleCandidate, auth.RoleCompany),
	)

	conversations.Post("/", handlers.StartConversation)
	conversations.Get("/", handlers.ListConversations)
	conversations.Get("/unread", handlers.UnreadTotal)
	conversations.Get("/:id", handlers.GetConversation)
	conversations.Get("/:id/messages", handlers.ListMessages)
	conversations.Post("/:id/messages", handlers.SendMessage)
	conversations.Post("/:id/read", handlers.MarkRead)
	conversations.Put("/:id/archive", handlers.SetArchived)
	conversations.Get("/:id/attachments", handlers.GetAttachment)
}
