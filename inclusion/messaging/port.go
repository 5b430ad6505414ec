package messaging

import (
	"context"
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

type ConversationRepository interface {
	// Create persists a new conversation
	Create(ctx context.Context, conversation *Conversation) error

	// Update persists changes to an existing conversation
	Update(ctx context.Context, id kernel.ConversationID, conversation *Conversation) error

	// GetByID retrieves a conversation by ID
	GetByID(ctx context.Context, id kernel.ConversationID) (*Conversation, error)

	// ListByUser retrieves a user's conversations, most recent activity
	// first. Archived threads are included only when requested.
	ListByUser(ctx context.Context, userID kernel.UserID, includeArchived bool, pagination kernel.PaginationOptions) (*kernel.Paginated[Conversation], error)
}

type MessageRepository interface {
	// Create persists a new message
	Create(ctx context.Context, message *Message) error

	// ListByConversation retrieves a conversation's messages, oldest first
	ListByConversation(ctx context.Context, conversationID kernel.ConversationID, pagination kernel.PaginationOptions) (*kernel.Paginated[Message], error)

	// CountUnread counts messages sent by others after the given marker.
	// A nil marker counts every message from the other side.
	CountUnread(ctx context.Context, conversationID kernel.ConversationID, userID kernel.UserID, lastRead *time.Time) (int64, error)

	// MarkReadUpTo flags messages from the other side as read
	MarkReadUpTo(ctx context.Context, conversationID kernel.ConversationID, userID kernel.UserID, at time.Time) error
}

// Notifier pushes new-message events to connected participants. A nil
// or offline recipient is not an error.
type Notifier interface {
	NotifyNewMessage(recipientID kernel.UserID, message *Message)
}
