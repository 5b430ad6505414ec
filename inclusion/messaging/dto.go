package messaging

import (
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// StartConversationRequest - DTO for opening a conversation with an
// initial message
type StartConversationRequest struct {
	RecipientID kernel.UserID `json:"recipient_id" validate:"required"`
	Subject     string        `json:"subject" validate:"required"`
	JobTitle    string        `json:"job_title,omitempty"`
	Content     string        `json:"content" validate:"required"`
}

// SendMessageRequest - DTO for sending a message. Attachments arrive as
// multipart uploads and are stored before the message is persisted.
type SendMessageRequest struct {
	Content           string `json:"content"`
	AttachmentAltText string `json:"attachment_alt_text,omitempty"`
}

// ConversationSummary - DTO of a conversation in the inbox listing
type ConversationSummary struct {
	Conversation Conversation `json:"conversation"`
	UnreadCount  int64        `json:"unread_count"`
}

// ArchiveRequest - DTO for archiving or restoring a conversation
type ArchiveRequest struct {
	Archived bool `json:"archived"`
}

// UnreadTotalResponse - DTO of the inbox unread badge
type UnreadTotalResponse struct {
	Total int64 `json:"total"`
}
