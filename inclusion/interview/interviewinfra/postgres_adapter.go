package interviewinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/incluempleo/vinculo/inclusion/interview"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PostgresInterviewRepository implements interview.Repository using PostgreSQL
type PostgresInterviewRepository struct {
	db *sqlx.DB
}

// NewPostgresInterviewRepository creates a new PostgreSQL interview repository
func NewPostgresInterviewRepository(db *sqlx.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type interviewModel struct {
	ID          string `db:"id"`
	CompanyID   string `db:"company_id"`
	CandidateID string `db:"candidate_id"`

	Title       string `db:"title"`
	Description string `db:"description"`
	JobTitle    string `db:"job_title"`

	ScheduledAt     time.Time `db:"scheduled_at"`
	DurationMinutes int       `db:"duration_minutes"`
	InterviewType   string    `db:"interview_type"`

	Platform   string `db:"platform"`
	MeetingURL string `db:"meeting_url"`
	MeetingID  string `db:"meeting_id"`

	LocationAddress      string `db:"location_address"`
	LocationInstructions string `db:"location_instructions"`

	NeedsSignLanguageInterpreter bool   `db:"needs_sign_language_interpreter"`
	NeedsAccessibleLocation      bool   `db:"needs_accessible_location"`
	NeedsScreenReaderSupport     bool   `db:"needs_screen_reader_support"`
	NeedsCaptioning              bool   `db:"needs_captioning"`
	OtherAccessibilityNeeds      string `db:"other_accessibility_needs"`

	Status             string `db:"status"`
	CompanyConfirmed   bool   `db:"company_confirmed"`
	CandidateConfirmed bool   `db:"candidate_confirmed"`

	CancelledBy        *string `db:"cancelled_by"`
	CancellationReason string  `db:"cancellation_reason"`

	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	ConfirmedAt *time.Time `db:"confirmed_at"`
	CancelledAt *time.Time `db:"cancelled_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

const interviewColumns = `
	id, company_id, candidate_id, title, description, job_title,
	scheduled_at, duration_minutes, interview_type, platform, meeting_url,
	meeting_id, location_address, location_instructions,
	needs_sign_language_interpreter, needs_accessible_location,
	needs_screen_reader_support, needs_captioning, other_accessibility_needs,
	status, company_confirmed, candidate_confirmed, cancelled_by,
	cancellation_reason, created_at, updated_at, confirmed_at, cancelled_at,
	completed_at
`

func (m *interviewModel) toEntity() *interview.Interview {
	var cancelledBy *kernel.UserID
	if m.CancelledBy != nil {
		id := kernel.UserID(*m.CancelledBy)
		cancelledBy = &id
	}

	return &interview.Interview{
		ID:                   kernel.InterviewID(m.ID),
		CompanyID:            kernel.UserID(m.CompanyID),
		CandidateID:          kernel.UserID(m.CandidateID),
		Title:                m.Title,
		Description:          m.Description,
		JobTitle:             m.JobTitle,
		ScheduledAt:          m.ScheduledAt,
		DurationMinutes:      m.DurationMinutes,
		Type:                 interview.InterviewType(m.InterviewType),
		Platform:             m.Platform,
		MeetingURL:           m.MeetingURL,
		MeetingID:            m.MeetingID,
		LocationAddress:      m.LocationAddress,
		LocationInstructions: m.LocationInstructions,
		Accessibility: interview.AccessibilityNeeds{
			SignLanguageInterpreter: m.NeedsSignLanguageInterpreter,
			AccessibleLocation:      m.NeedsAccessibleLocation,
			ScreenReaderSupport:     m.NeedsScreenReaderSupport,
			Captioning:              m.NeedsCaptioning,
			Other:                   m.OtherAccessibilityNeeds,
		},
		Status:             interview.InterviewStatus(m.Status),
		CompanyConfirmed:   m.CompanyConfirmed,
		CandidateConfirmed: m.CandidateConfirmed,
		CancelledBy:        cancelledBy,
		CancellationReason: m.CancellationReason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		ConfirmedAt:        m.ConfirmedAt,
		CancelledAt:        m.CancelledAt,
		CompletedAt:        m.CompletedAt,
	}
}

func fromEntity(i *interview.Interview) *interviewModel {
	var cancelledBy *string
	if i.CancelledBy != nil {
		id := i.CancelledBy.String()
		cancelledBy = &id
	}

	return &interviewModel{
		ID:                           string(i.ID),
		CompanyID:                    i.CompanyID.String(),
		CandidateID:                  i.CandidateID.String(),
		Title:                        i.Title,
		Description:                  i.Description,
		JobTitle:                     i.JobTitle,
		ScheduledAt:                  i.ScheduledAt,
		DurationMinutes:              i.DurationMinutes,
		InterviewType:                string(i.Type),
		Platform:                     i.Platform,
		MeetingURL:                   i.MeetingURL,
		MeetingID:                    i.MeetingID,
		LocationAddress:              i.LocationAddress,
		LocationInstructions:         i.LocationInstructions,
		NeedsSignLanguageInterpreter: i.Accessibility.SignLanguageInterpreter,
		NeedsAccessibleLocation:      i.Accessibility.AccessibleLocation,
		NeedsScreenReaderSupport:     i.Accessibility.ScreenReaderSupport,
		NeedsCaptioning:              i.Accessibility.Captioning,
		OtherAccessibilityNeeds:      i.Accessibility.Other,
		Status:                       string(i.Status),
		CompanyConfirmed:             i.CompanyConfirmed,
		CandidateConfirmed:           i.CandidateConfirmed,
		CancelledBy:                  cancelledBy,
		CancellationReason:           i.CancellationReason,
		CreatedAt:                    i.CreatedAt,
		UpdatedAt:                    i.UpdatedAt,
		ConfirmedAt:                  i.ConfirmedAt,
		CancelledAt:                  i.CancelledAt,
		CompletedAt:                  i.CompletedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create persists a new interview
func (r *PostgresInterviewRepository) Create(ctx context.Context, i *interview.Interview) error {
	model := fromEntity(i)

	query := `
		INSERT INTO interviews (
			id, company_id, candidate_id, title, description, job_title,
			scheduled_at, duration_minutes, interview_type, platform,
			meeting_url, meeting_id, location_address, location_instructions,
			needs_sign_language_interpreter, needs_accessible_location,
			needs_screen_reader_support, needs_captioning,
			other_accessibility_needs, status, company_confirmed,
			candidate_confirmed, cancelled_by, cancellation_reason,
			created_at, updated_at, confirmed_at, cancelled_at, completed_at
		) VALUES (
			:id, :company_id, :candidate_id, :title, :description, :job_title,
			:scheduled_at, :duration_minutes, :interview_type, :platform,
			:meeting_url, :meeting_id, :location_address, :location_instructions,
			:needs_sign_language_interpreter, :needs_accessible_location,
			:needs_screen_reader_support, :needs_captioning,
			:other_accessibility_needs, :status, :company_confirmed,
			:candidate_confirmed, :cancelled_by, :cancellation_reason,
			:created_at, :updated_at, :confirmed_at, :cancelled_at, :completed_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}

	return nil
}

// Update persists changes to an existing interview
func (r *PostgresInterviewRepository) Update(ctx context.Context, id kernel.InterviewID, i *interview.Interview) error {
	model := fromEntity(i)
	model.ID = string(id)

	query := `
		UPDATE interviews SET
			title = :title,
			description = :description,
			scheduled_at = :scheduled_at,
			duration_minutes = :duration_minutes,
			interview_type = :interview_type,
			platform = :platform,
			meeting_url = :meeting_url,
			meeting_id = :meeting_id,
			location_address = :location_address,
			location_instructions = :location_instructions,
			needs_sign_language_interpreter = :needs_sign_language_interpreter,
			needs_accessible_location = :needs_accessible_location,
			needs_screen_reader_support = :needs_screen_reader_support,
			needs_captioning = :needs_captioning,
			other_accessibility_needs = :other_accessibility_needs,
			status = :status,
			company_confirmed = :company_confirmed,
			candidate_confirmed = :candidate_confirmed,
			cancelled_by = :cancelled_by,
			cancellation_reason = :cancellation_reason,
			updated_at = :updated_at,
			confirmed_at = :confirmed_at,
			cancelled_at = :cancelled_at,
			completed_at = :completed_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return interview.ErrInterviewNotFound()
	}

	return nil
}

// GetByID retrieves an interview by ID
func (r *PostgresInterviewRepository) GetByID(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`

	var model interviewModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, interview.ErrInterviewNotFound()
		}
		return nil, fmt.Errorf("failed to get interview by id: %w", err)
	}

	return model.toEntity(), nil
}

// ListByParticipant retrieves interviews where the user is either side
func (r *PostgresInterviewRepository) ListByParticipant(ctx context.Context, userID kernel.UserID, filters interview.ListFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	conditions := []string{"(company_id = $1 OR candidate_id = $1)"}
	args := []any{userID.String()}

	if filters.Status != nil {
		args = append(args, string(*filters.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.UpcomingOnly {
		conditions = append(conditions, "scheduled_at > NOW()")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM interviews` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count interviews: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := fmt.Sprintf(`
		SELECT %s FROM interviews%s
		ORDER BY scheduled_at ASC
		LIMIT $%d OFFSET $%d
	`, interviewColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, offset)

	var models []interviewModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}

	entities := make([]interview.Interview, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return &kernel.Paginated[interview.Interview]{
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
