package jobinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/incluempleo/vinculo/inclusion/job"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PostgresAuditRepository implements job.AuditRepository using PostgreSQL.
// The table is insert-only; no update or delete statements exist here.
type PostgresAuditRepository struct {
	db *sqlx.DB
}

// NewPostgresAuditRepository creates a new PostgreSQL audit repository
func NewPostgresAuditRepository(db *sqlx.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{
		db: db,
	}
}

type auditModel struct {
	ID        string          `db:"id"`
	JobID     string          `db:"job_id"`
	ActorID   string          `db:"actor_id"`
	Action    string          `db:"action"`
	IPAddress string          `db:"ip_address"`
	Details   json.RawMessage `db:"details"`
	Notes     string          `db:"notes"`
	CreatedAt time.Time       `db:"created_at"`
}

func (m *auditModel) toEntity() (*job.AuditLog, error) {
	var details map[string]any
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit details: %w", err)
		}
	}

	return &job.AuditLog{
		ID:        kernel.AuditLogID(m.ID),
		JobID:     kernel.JobID(m.JobID),
		ActorID:   kernel.UserID(m.ActorID),
		Action:    job.AuditAction(m.Action),
		IPAddress: m.IPAddress,
		Details:   details,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}, nil
}

// Append writes an audit entry
func (r *PostgresAuditRepository) Append(ctx context.Context, entry *job.AuditLog) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	model := &auditModel{
		ID:        entry.ID.String(),
		JobID:     string(entry.JobID),
		ActorID:   entry.ActorID.String(),
		Action:    string(entry.Action),
		IPAddress: entry.IPAddress,
		Details:   details,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
	}

	query := `
		INSERT INTO job_audit_logs (
			id, job_id, actor_id, action, ip_address, details, notes, created_at
		) VALUES (
			:id, :job_id, :actor_id, :action, :ip_address, :details, :notes, :created_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}

	return nil
}

// ListByJob retrieves the audit trail of a posting, newest first
func (r *PostgresAuditRepository) ListByJob(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.AuditLog], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM job_audit_logs WHERE job_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(jobID)); err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := `
		SELECT id, job_id, actor_id, action, ip_address, details, notes, created_at
		FROM job_audit_logs
		WHERE job_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []auditModel
	if err := r.db.SelectContext(ctx, &models, query, string(jobID), pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	entities := make([]job.AuditLog, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return &kernel.Paginated[job.AuditLog]{
		Items: entities,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(entities) == 0,
	}, nil
}
