package messaginginfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/incluempleo/vinculo/inclusion/messaging"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PostgresConversationRepository implements messaging.ConversationRepository
type PostgresConversationRepository struct {
	db *sqlx.DB
}

// NewPostgresConversationRepository creates a new conversation repository
func NewPostgresConversationRepository(db *sqlx.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{
		db: db,
	}
}

const conversationColumns = `
	id, candidate_id, company_id, subject, job_title, candidate_last_read,
	company_last_read, archived_by_candidate, archived_by_company,
	created_at, updated_at
`

// Create persists a new conversation
func (r *PostgresConversationRepository) Create(ctx context.Context, conversation *messaging.Conversation) error {
	query := `
		INSERT INTO conversations (
			id, candidate_id, company_id, subject, job_title,
			candidate_last_read, company_last_read, archived_by_candidate,
			archived_by_company, created_at, updated_at
		) VALUES (
			:id, :candidate_id, :company_id, :subject, :job_title,
			:candidate_last_read, :company_last_read, :archived_by_candidate,
			:archived_by_company, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, conversation); err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	return nil
}

// Update persists changes to an existing conversation
func (r *PostgresConversationRepository) Update(ctx context.Context, id kernel.ConversationID, conversation *messaging.Conversation) error {
	conversation.ID = id

	query := `
		UPDATE conversations SET
			candidate_last_read = :candidate_last_read,
			company_last_read = :company_last_read,
			archived_by_candidate = :archived_by_candidate,
			archived_by_company = :archived_by_company,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, conversation)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return messaging.ErrConversationNotFound()
	}

	return nil
}

// GetByID retrieves a conversation by ID
func (r *PostgresConversationRepository) GetByID(ctx context.Context, id kernel.ConversationID) (*messaging.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	var conversation messaging.Conversation
	err := r.db.GetContext(ctx, &conversation, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, messaging.ErrConversationNotFound()
		}
		return nil, fmt.Errorf("failed to get conversation by id: %w", err)
	}

	return &conversation, nil
}

// ListByUser retrieves a user's conversations, most recent activity first
func (r *PostgresConversationRepository) ListByUser(ctx context.Context, userID kernel.UserID, includeArchived bool, pagination kernel.PaginationOptions) (*kernel.Paginated[messaging.Conversation], error) {
	where := ` WHERE (candidate_id = $1 OR company_id = $1)`
	if !includeArchived {
		where += `
			AND NOT (candidate_id = $1 AND archived_by_candidate)
			AND NOT (company_id = $1 AND archived_by_company)`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM conversations` + where
	if err := r.db.GetContext(ctx, &total, countQuery, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to count conversations: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := `
		SELECT ` + conversationColumns + ` FROM conversations` + where + `
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`

	var conversations []messaging.Conversation
	if err := r.db.SelectContext(ctx, &conversations, query, userID.String(), pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	return &kernel.Paginated[messaging.Conversation]{
		Items: conversations,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(conversations) == 0,
	}, nil
}

// ============================================================================
// Message Repository
// ============================================================================

// PostgresMessageRepository implements messaging.MessageRepository
type PostgresMessageRepository struct {
	db *sqlx.DB
}

// NewPostgresMessageRepository creates a new message repository
func NewPostgresMessageRepository(db *sqlx.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{
		db: db,
	}
}

const messageColumns = `
	id, conversation_id, sender_id, content, attachment_path,
	attachment_alt_text, attachment_size, is_read, read_at, created_at
`

// Create persists a new message
func (r *PostgresMessageRepository) Create(ctx context.Context, message *messaging.Message) error {
	query := `
		INSERT INTO messages (
			id, conversation_id, sender_id, content, attachment_path,
			attachment_alt_text, attachment_size, is_read, read_at, created_at
		) VALUES (
			:id, :conversation_id, :sender_id, :content, :attachment_path,
			:attachment_alt_text, :attachment_size, :is_read, :read_at, :created_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// ListByConversation retrieves a conversation's messages, oldest first
func (r *PostgresMessageRepository) ListByConversation(ctx context.Context, conversationID kernel.ConversationID, pagination kernel.PaginationOptions) (*kernel.Paginated[messaging.Message], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(conversationID)); err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := `
		SELECT ` + messageColumns + ` FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	var messages []messaging.Message
	if err := r.db.SelectContext(ctx, &messages, query, string(conversationID), pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return &kernel.Paginated[messaging.Message]{
		Items: messages,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(messages) == 0,
	}, nil
}

// CountUnread counts messages sent by others after the given marker
func (r *PostgresMessageRepository) CountUnread(ctx context.Context, conversationID kernel.ConversationID, userID kernel.UserID, lastRead *time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM messages
		WHERE conversation_id = $1 AND sender_id != $2
	`
	args := []any{string(conversationID), userID.String()}
	if lastRead != nil {
		query += ` AND created_at > $3`
		args = append(args, *lastRead)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// MarkReadUpTo flags messages from the other side as read
func (r *PostgresMessageRepository) MarkReadUpTo(ctx context.Context, conversationID kernel.ConversationID, userID kernel.UserID, at time.Time) error {
	query := `
		UPDATE messages SET is_read = TRUE, read_at = $3
		WHERE conversation_id = $1 AND sender_id != $2 AND NOT is_read
	`

	if _, err := r.db.ExecContext(ctx, query, string(conversationID), userID.String(), at); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}
