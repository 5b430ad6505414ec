package messagingsrv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/inclusion/messaging"
	"github.com/incluempleo/vinculo/inclusion/user"
	"github.com/incluempleo/vinculo/pkg/fsx"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

const attachmentDir = "messaging/attachments"

// Attachment is an uploaded file accompanying a message
type Attachment struct {
	Filename string
	AltText  string
	Data     []byte
}

// Service handles candidate-company conversations
type Service struct {
	conversations messaging.ConversationRepository
	messages      messaging.MessageRepository
	users         user.Repository
	files         fsx.FileSystem
	notifier      messaging.Notifier
}

// NewService creates a new messaging service
func NewService(
	conversations messaging.ConversationRepository,
	messages messaging.MessageRepository,
	users user.Repository,
	files fsx.FileSystem,
	notifier messaging.Notifier,
) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		users:         users,
		files:         files,
		notifier:      notifier,
	}
}

// StartConversation opens a thread between a candidate and a company
// with an initial message. The initiator may be either side.
func (s *Service) StartConversation(ctx context.Context, initiatorID kernel.UserID, req messaging.StartConversationRequest) (*messaging.Conversation, error) {
	initiator, err := s.users.GetByID(ctx, initiatorID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.users.GetByID(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	conversation := &messaging.Conversation{
		ID:       kernel.NewConversationID(uuid.NewString()),
		Subject:  req.Subject,
		JobTitle: req.JobTitle,
	}
	switch {
	case initiator.IsCandidate() && recipient.IsCompany():
		conversation.CandidateID = initiator.ID
		conversation.CompanyID = recipient.ID
	case initiator.IsCompany() && recipient.IsCandidate():
		conversation.CompanyID = initiator.ID
		conversation.CandidateID = recipient.ID
	default:
		return nil, messaging.ErrInvalidConversation().
			WithDetail("reason", "a conversation links one candidate and one company")
	}

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now

	if err := conversation.Validate(); err != nil {
		return nil, err
	}

	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, err
	}

	if _, err := s.deliverMessage(ctx, conversation, initiatorID, req.Content, nil); err != nil {
		return nil, err
	}

	logx.Infof("Conversation %s started by %s with %s", conversation.ID, initiatorID, req.RecipientID)
	return conversation, nil
}

// ListConversations retrieves the caller's inbox with unread counts
func (s *Service) ListConversations(ctx context.Context, userID kernel.UserID, includeArchived bool, pagination kernel.PaginationOptions) (*kernel.Paginated[messaging.ConversationSummary], error) {
	page, err := s.conversations.ListByUser(ctx, userID, includeArchived, pagination)
	if err != nil {
		return nil, err
	}

	summaries := make([]messaging.ConversationSummary, 0, len(page.Items))
	for _, conversation := range page.Items {
		unread, err := s.messages.CountUnread(ctx, conversation.ID, userID, conversation.LastReadBy(userID))
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, messaging.ConversationSummary{
			Conversation: conversation,
			UnreadCount:  unread,
		})
	}

	return &kernel.Paginated[messaging.ConversationSummary]{
		Items: summaries,
		Page:  page.Page,
		Empty: len(summaries) == 0,
	}, nil
}

// GetConversation retrieves a thread the caller participates in
func (s *Service) GetConversation(ctx context.Context, conversationID kernel.ConversationID, userID kernel.UserID) (*messaging.Conversation, error) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.IsParticipant(userID) {
		return nil, messaging.ErrNotParticipant()
	}
	return conversation, nil
}

// ListMessages retrieves a conversation's messages, oldest first
func (s *Service) ListMessages(ctx context.Context, conversationID kernel.ConversationID, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[messaging.Message], error) {
	if _, err := s.GetConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.messages.ListByConversation(ctx, conversationID, pagination)
}

// SendMessage appends a message to a conversation the caller belongs to
func (s *Service) SendMessage(ctx context.Context, conversationID kernel.ConversationID, senderID kernel.UserID, req messaging.SendMessageRequest, attachment *Attachment) (*messaging.Message, error) {
	conversation, err := s.GetConversation(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	if attachment != nil {
		attachment.AltText = req.AttachmentAltText
	}
	return s.deliverMessage(ctx, conversation, senderID, req.Content, attachment)
}

// MarkRead stamps the caller's last-read marker and flags the other
// side's messages as read
func (s *Service) MarkRead(ctx context.Context, conversationID kernel.ConversationID, userID kernel.UserID) (*messaging.Conversation, error) {
	conversation, err := s.GetConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	conversation.MarkReadBy(userID, now)
	if err := s.conversations.Update(ctx, conversationID, conversation); err != nil {
		return nil, err
	}
	if err := s.messages.MarkReadUpTo(ctx, conversationID, userID, now); err != nil {
		return nil, err
	}
	return conversation, nil
}

// SetArchived toggles the caller's archive flag on a conversation
func (s *Service) SetArchived(ctx context.Context, conversationID kernel.ConversationID, userID kernel.UserID, archived bool) (*messaging.Conversation, error) {
	conversation, err := s.GetConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	conversation.SetArchivedBy(userID, archived)
	conversation.UpdatedAt = time.Now()
	if err := s.conversations.Update(ctx, conversationID, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// UnreadTotal sums unread messages across the caller's inbox
func (s *Service) UnreadTotal(ctx context.Context, userID kernel.UserID) (int64, error) {
	pagination := kernel.PaginationOptions{Page: 1, PageSize: 100}
	var total int64
	for {
		page, err := s.conversations.ListByUser(ctx, userID, false, pagination)
		if err != nil {
			return 0, err
		}
		for _, conversation := range page.Items {
			unread, err := s.messages.CountUnread(ctx, conversation.ID, userID, conversation.LastReadBy(userID))
			if err != nil {
				return 0, err
			}
			total += unread
		}
		if pagination.Page >= page.Page.Pages {
			break
		}
		pagination.Page++
	}
	return total, nil
}

// GetAttachment streams a message attachment to a participant
func (s *Service) GetAttachment(ctx context.Context, conversationID kernel.ConversationID, userID kernel.UserID, attachmentPath string) ([]byte, error) {
	if _, err := s.GetConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(attachmentPath, attachmentDir) {
		return nil, messaging.ErrMessageNotFound().WithDetail("attachment", attachmentPath)
	}

	data, err := s.files.ReadFile(ctx, attachmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	return data, nil
}

// deliverMessage stores the attachment, persists the message, bumps the
// conversation and pushes the event to the recipient
func (s *Service) deliverMessage(ctx context.Context, conversation *messaging.Conversation, senderID kernel.UserID, content string, attachment *Attachment) (*messaging.Message, error) {
	message := &messaging.Message{
		ID:             kernel.NewMessageID(uuid.NewString()),
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}

	if attachment != nil {
		path := s.files.Join(attachmentDir, conversation.ID.String(), uuid.NewString()+strings.ToLower(filepath.Ext(attachment.Filename)))
		if err := s.files.WriteFile(ctx, path, attachment.Data); err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		message.AttachmentPath = path
		message.AttachmentAltText = attachment.AltText
		message.AttachmentSize = int64(len(attachment.Data))
	}

	if err := message.Validate(); err != nil {
		return nil, err
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	conversation.UpdatedAt = message.CreatedAt
	if err := s.conversations.Update(ctx, conversation.ID, conversation); err != nil {
		logx.Errorf("Failed to bump conversation %s: %v", conversation.ID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(conversation.OtherParticipant(senderID), message)
	}

	return message, nil
}
