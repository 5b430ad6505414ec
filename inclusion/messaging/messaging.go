package messaging

import (
	"strings"
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Conversation is a thread between one candidate and one company. Each
// side tracks its own last-read marker and archive flag.
type Conversation struct {
	ID          kernel.ConversationID `db:"id" json:"id"`
	CandidateID kernel.UserID         `db:"candidate_id" json:"candidate_id"`
	CompanyID   kernel.UserID         `db:"company_id" json:"company_id"`

	Subject  string `db:"subject" json:"subject"`
	JobTitle string `db:"job_title" json:"job_title,omitempty"`

	CandidateLastRead *time.Time `db:"candidate_last_read" json:"candidate_last_read,omitempty"`
	CompanyLastRead   *time.Time `db:"company_last_read" json:"company_last_read,omitempty"`

	ArchivedByCandidate bool `db:"archived_by_candidate" json:"archived_by_candidate"`
	ArchivedByCompany   bool `db:"archived_by_company" json:"archived_by_company"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Message is one entry in a conversation. Attachments carry an
// accessible alt text for screen readers.
type Message struct {
	ID             kernel.MessageID      `db:"id" json:"id"`
	ConversationID kernel.ConversationID `db:"conversation_id" json:"conversation_id"`
	SenderID       kernel.UserID         `db:"sender_id" json:"sender_id"`

	Content string `db:"content" json:"content"`

	AttachmentPath    string `db:"attachment_path" json:"attachment_path,omitempty"`
	AttachmentAltText string `db:"attachment_alt_text" json:"attachment_alt_text,omitempty"`
	AttachmentSize    int64  `db:"attachment_size" json:"attachment_size,omitempty"`

	IsRead bool       `db:"is_read" json:"is_read"`
	ReadAt *time.Time `db:"read_at" json:"read_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsParticipant checks whether a user belongs to the conversation
func (c *Conversation) IsParticipant(userID kernel.UserID) bool {
	return c.CandidateID == userID || c.CompanyID == userID
}

// OtherParticipant returns the conversation partner of a user
func (c *Conversation) OtherParticipant(userID kernel.UserID) kernel.UserID {
	if c.CandidateID == userID {
		return c.CompanyID
	}
	return c.CandidateID
}

// MarkReadBy stamps the caller's last-read marker
func (c *Conversation) MarkReadBy(userID kernel.UserID, at time.Time) {
	if c.CandidateID == userID {
		c.CandidateLastRead = &at
	} else if c.CompanyID == userID {
		c.CompanyLastRead = &at
	}
}

// LastReadBy returns the caller's last-read marker
func (c *Conversation) LastReadBy(userID kernel.UserID) *time.Time {
	if c.CandidateID == userID {
		return c.CandidateLastRead
	}
	return c.CompanyLastRead
}

// SetArchivedBy toggles the caller's archive flag
func (c *Conversation) SetArchivedBy(userID kernel.UserID, archived bool) {
	if c.CandidateID == userID {
		c.ArchivedByCandidate = archived
	} else if c.CompanyID == userID {
		c.ArchivedByCompany = archived
	}
}

// IsArchivedBy reports the caller's archive flag
func (c *Conversation) IsArchivedBy(userID kernel.UserID) bool {
	if c.CandidateID == userID {
		return c.ArchivedByCandidate
	}
	return c.ArchivedByCompany
}

// Validate checks the conversation fields before persistence
func (c *Conversation) Validate() error {
	if c.CandidateID.IsEmpty() || c.CompanyID.IsEmpty() {
		return ErrInvalidConversation().WithDetail("field", "participants")
	}
	if c.CandidateID == c.CompanyID {
		return ErrInvalidConversation().WithDetail("reason", "participants must differ")
	}
	if strings.TrimSpace(c.Subject) == "" {
		return ErrInvalidConversation().WithDetail("field", "subject")
	}
	return nil
}

// MarkRead stamps the message as read
func (m *Message) MarkRead(at time.Time) {
	if m.IsRead {
		return
	}
	m.IsRead = true
	m.ReadAt = &at
}

// HasAttachment reports whether the message carries a file
func (m *Message) HasAttachment() bool {
	return m.AttachmentPath != ""
}

// Validate checks the message fields before persistence
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Content) == "" && !m.HasAttachment() {
		return ErrInvalidMessage().WithDetail("reason", "content or attachment required")
	}
	if m.HasAttachment() && strings.TrimSpace(m.AttachmentAltText) == "" {
		return ErrInvalidMessage().
			WithDetail("field", "attachment_alt_text").
			WithDetail("reason", "attachments need an accessible description")
	}
	return nil
}
