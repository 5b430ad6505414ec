package complaintinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/incluempleo/vinculo/inclusion/complaint"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PostgresComplaintRepository implements complaint.Repository using PostgreSQL
type PostgresComplaintRepository struct {
	db *sqlx.DB
}

// NewPostgresComplaintRepository creates a new PostgreSQL complaint repository
func NewPostgresComplaintRepository(db *sqlx.DB) *PostgresComplaintRepository {
	return &PostgresComplaintRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type complaintModel struct {
	ID               string          `db:"id"`
	TrackingCode     string          `db:"tracking_code"`
	ComplaintType    string          `db:"complaint_type"`
	Subject          string          `db:"subject"`
	Description      string          `db:"description"`
	CompanyName      string          `db:"company_name"`
	JobPostingURL    string          `db:"job_posting_url"`
	IsAnonymous      bool            `db:"is_anonymous"`
	ComplainantID    *string         `db:"complainant_id"`
	ComplainantName  string          `db:"complainant_name"`
	ComplainantEmail string          `db:"complainant_email"`
	ComplainantPhone string          `db:"complainant_phone"`
	EvidencePaths    json.RawMessage `db:"evidence_paths"`
	Status           string          `db:"status"`
	Priority         int             `db:"priority"`
	AdminResponse    string          `db:"admin_response"`
	AssignedTo       *string         `db:"assigned_to"`
	IPAddress        string          `db:"ip_address"`
	UserAgent        string          `db:"user_agent"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
	ResolvedAt       *time.Time      `db:"resolved_at"`
}

const complaintColumns = `
	id, tracking_code, complaint_type, subject, description, company_name,
	job_posting_url, is_anonymous, complainant_id, complainant_name,
	complainant_email, complainant_phone, evidence_paths, status, priority,
	admin_response, assigned_to, ip_address, user_agent, created_at,
	updated_at, resolved_at
`

func (m *complaintModel) toEntity() (*complaint.Complaint, error) {
	var evidence []string
	if len(m.EvidencePaths) > 0 {
		if err := json.Unmarshal(m.EvidencePaths, &evidence); err != nil {
			return nil, fmt.Errorf("failed to unmarshal evidence paths: %w", err)
		}
	}

	var complainantID *kernel.UserID
	if m.ComplainantID != nil {
		id := kernel.UserID(*m.ComplainantID)
		complainantID = &id
	}
	var assignedTo *kernel.UserID
	if m.AssignedTo != nil {
		id := kernel.UserID(*m.AssignedTo)
		assignedTo = &id
	}

	return &complaint.Complaint{
		ID:               kernel.ComplaintID(m.ID),
		TrackingCode:     m.TrackingCode,
		Type:             complaint.ComplaintType(m.ComplaintType),
		Subject:          m.Subject,
		Description:      m.Description,
		CompanyName:      m.CompanyName,
		JobPostingURL:    m.JobPostingURL,
		IsAnonymous:      m.IsAnonymous,
		ComplainantID:    complainantID,
		ComplainantName:  m.ComplainantName,
		ComplainantEmail: kernel.Email(m.ComplainantEmail),
		ComplainantPhone: kernel.Phone(m.ComplainantPhone),
		EvidencePaths:    evidence,
		Status:           complaint.ComplaintStatus(m.Status),
		Priority:         m.Priority,
		AdminResponse:    m.AdminResponse,
		AssignedTo:       assignedTo,
		IPAddress:        m.IPAddress,
		UserAgent:        m.UserAgent,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		ResolvedAt:       m.ResolvedAt,
	}, nil
}

func fromEntity(c *complaint.Complaint) (*complaintModel, error) {
	evidence, err := json.Marshal(c.EvidencePaths)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal evidence paths: %w", err)
	}

	var complainantID *string
	if c.ComplainantID != nil {
		id := c.ComplainantID.String()
		complainantID = &id
	}
	var assignedTo *string
	if c.AssignedTo != nil {
		id := c.AssignedTo.String()
		assignedTo = &id
	}

	return &complaintModel{
		ID:               string(c.ID),
		TrackingCode:     c.TrackingCode,
		ComplaintType:    string(c.Type),
		Subject:          c.Subject,
		Description:      c.Description,
		CompanyName:      c.CompanyName,
		JobPostingURL:    c.JobPostingURL,
		IsAnonymous:      c.IsAnonymous,
		ComplainantID:    complainantID,
		ComplainantName:  c.ComplainantName,
		ComplainantEmail: c.ComplainantEmail.String(),
		ComplainantPhone: string(c.ComplainantPhone),
		EvidencePaths:    evidence,
		Status:           string(c.Status),
		Priority:         c.Priority,
		AdminResponse:    c.AdminResponse,
		AssignedTo:       assignedTo,
		IPAddress:        c.IPAddress,
		UserAgent:        c.UserAgent,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		ResolvedAt:       c.ResolvedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create persists a new complaint
func (r *PostgresComplaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	model, err := fromEntity(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO complaints (
			id, tracking_code, complaint_type, subject, description,
			company_name, job_posting_url, is_anonymous, complainant_id,
			complainant_name, complainant_email, complainant_phone,
			evidence_paths, status, priority, admin_response, assigned_to,
			ip_address, user_agent, created_at, updated_at, resolved_at
		) VALUES (
			:id, :tracking_code, :complaint_type, :subject, :description,
			:company_name, :job_posting_url, :is_anonymous, :complainant_id,
			:complainant_name, :complainant_email, :complainant_phone,
			:evidence_paths, :status, :priority, :admin_response, :assigned_to,
			:ip_address, :user_agent, :created_at, :updated_at, :resolved_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	return nil
}

// Update persists changes to an existing complaint
func (r *PostgresComplaintRepository) Update(ctx context.Context, id kernel.ComplaintID, c *complaint.Complaint) error {
	model, err := fromEntity(c)
	if err != nil {
		return err
	}
	model.ID = string(id)

	query := `
		UPDATE complaints SET
			status = :status,
			priority = :priority,
			admin_response = :admin_response,
			assigned_to = :assigned_to,
			updated_at = :updated_at,
			resolved_at = :resolved_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return complaint.ErrComplaintNotFound()
	}

	return nil
}

// GetByID retrieves a complaint by ID
func (r *PostgresComplaintRepository) GetByID(ctx context.Context, id kernel.ComplaintID) (*complaint.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id = $1`

	var model complaintModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, complaint.ErrComplaintNotFound()
		}
		return nil, fmt.Errorf("failed to get complaint by id: %w", err)
	}

	return model.toEntity()
}

// GetByTrackingCode retrieves a complaint by its public tracking code
func (r *PostgresComplaintRepository) GetByTrackingCode(ctx context.Context, code string) (*complaint.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE tracking_code = $1`

	var model complaintModel
	err := r.db.GetContext(ctx, &model, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, complaint.ErrComplaintNotFound()
		}
		return nil, fmt.Errorf("failed to get complaint by tracking code: %w", err)
	}

	return model.toEntity()
}

// List retrieves complaints for triage, urgent first
func (r *PostgresComplaintRepository) List(ctx context.Context, filters complaint.TriageFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[complaint.Complaint], error) {
	conditions := []string{}
	args := []any{}

	if filters.Status != nil {
		args = append(args, string(*filters.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Type != nil {
		args = append(args, string(*filters.Type))
		conditions = append(conditions, fmt.Sprintf("complaint_type = $%d", len(args)))
	}
	if filters.Priority != nil {
		args = append(args, *filters.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM complaints` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := fmt.Sprintf(`
		SELECT %s FROM complaints%s
		ORDER BY priority DESC, created_at ASC
		LIMIT $%d OFFSET $%d
	`, complaintColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, offset)

	var models []complaintModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}

	entities := make([]complaint.Complaint, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return &kernel.Paginated[complaint.Complaint]{
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

// CountByStatus counts complaints per status
func (r *PostgresComplaintRepository) CountByStatus(ctx context.Context) (map[complaint.ComplaintStatus]int64, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}{}

	query := `SELECT status, COUNT(*) AS count FROM complaints GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count complaints by status: %w", err)
	}

	counts := make(map[complaint.ComplaintStatus]int64, len(rows))
	for _, row := range rows {
		counts[complaint.ComplaintStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// ============================================================================
// History Repository
// ============================================================================

// PostgresHistoryRepository implements complaint.HistoryRepository. The
// table is insert-only.
type PostgresHistoryRepository struct {
	db *sqlx.DB
}

// NewPostgresHistoryRepository creates a new history repository
func NewPostgresHistoryRepository(db *sqlx.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{
		db: db,
	}
}

type historyModel struct {
	ID             string    `db:"id"`
	ComplaintID    string    `db:"complaint_id"`
	ActorID        *string   `db:"actor_id"`
	PreviousStatus string    `db:"previous_status"`
	NewStatus      string    `db:"new_status"`
	Reason         string    `db:"reason"`
	CreatedAt      time.Time `db:"created_at"`
}

// Append writes a status history entry
func (r *PostgresHistoryRepository) Append(ctx context.Context, change *complaint.StatusChange) error {
	var actorID *string
	if change.ActorID != nil {
		id := change.ActorID.String()
		actorID = &id
	}

	model := &historyModel{
		ID:             change.ID.String(),
		ComplaintID:    string(change.ComplaintID),
		ActorID:        actorID,
		PreviousStatus: string(change.Previous),
		NewStatus:      string(change.New),
		Reason:         change.Reason,
		CreatedAt:      change.CreatedAt,
	}

	query := `
		INSERT INTO complaint_status_history (
			id, complaint_id, actor_id, previous_status, new_status, reason, created_at
		) VALUES (
			:id, :complaint_id, :actor_id, :previous_status, :new_status, :reason, :created_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}

	return nil
}

// ListByComplaint retrieves a complaint's history, oldest first
func (r *PostgresHistoryRepository) ListByComplaint(ctx context.Context, id kernel.ComplaintID) ([]complaint.StatusChange, error) {
	query := `
		SELECT id, complaint_id, actor_id, previous_status, new_status, reason, created_at
		FROM complaint_status_history
		WHERE complaint_id = $1
		ORDER BY created_at ASC
	`

	var models []historyModel
	if err := r.db.SelectContext(ctx, &models, query, string(id)); err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	changes := make([]complaint.StatusChange, 0, len(models))
	for _, model := range models {
		var actorID *kernel.UserID
		if model.ActorID != nil {
			uid := kernel.UserID(*model.ActorID)
			actorID = &uid
		}
		changes = append(changes, complaint.StatusChange{
			ID:          kernel.AuditLogID(model.ID),
			ComplaintID: kernel.ComplaintID(model.ComplaintID),
			ActorID:     actorID,
			Previous:    complaint.ComplaintStatus(model.PreviousStatus),
			New:         complaint.ComplaintStatus(model.NewStatus),
			Reason:      model.Reason,
			CreatedAt:   model.CreatedAt,
		})
	}
	return changes, nil
}
