package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/incluempleo/vinculo/inclusion/job"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID                         string          `db:"id"`
	CompanyID                  string          `db:"company_id"`
	Title                      string          `db:"title"`
	Description                string          `db:"description"`
	Responsibilities           json.RawMessage `db:"responsibilities"`
	Requirements               json.RawMessage `db:"requirements"`
	Location                   string          `db:"location"`
	RemoteAvailable            bool            `db:"remote_available"`
	JobType                    string          `db:"job_type"`
	ExperienceLevel            string          `db:"experience_level"`
	DisabilityFocus            string          `db:"disability_focus"`
	AccessibilityFeatures      json.RawMessage `db:"accessibility_features"`
	SalaryMin                  int64           `db:"salary_min"`
	SalaryMax                  int64           `db:"salary_max"`
	ApplicationDeadline        *time.Time      `db:"application_deadline"`
	ReasonableAccommodations   string          `db:"reasonable_accommodations"`
	WorkplaceAccessibility     string          `db:"workplace_accessibility"`
	NonDiscriminationStatement string          `db:"non_discrimination_statement"`
	Status                     string          `db:"status"`
	ReviewReason               string          `db:"review_reason"`
	ReviewedBy                 *string         `db:"reviewed_by"`
	ReviewedAt                 *time.Time      `db:"reviewed_at"`
	IsActive                   bool            `db:"is_active"`
	Featured                   bool            `db:"featured"`
	CreatedAt                  time.Time       `db:"created_at"`
	UpdatedAt                  time.Time       `db:"updated_at"`
}

const jobColumns = `
	id, company_id, title, description, responsibilities, requirements,
	location, remote_available, job_type, experience_level,
	disability_focus, accessibility_features, salary_min, salary_max,
	application_deadline, reasonable_accommodations, workplace_accessibility,
	non_discrimination_statement, status, review_reason, reviewed_by,
	reviewed_at, is_active, featured, created_at, updated_at
`

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() (*job.Job, error) {
	var responsibilities []string
	if len(m.Responsibilities) > 0 {
		if err := json.Unmarshal(m.Responsibilities, &responsibilities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal responsibilities: %w", err)
		}
	}

	var requirements []string
	if len(m.Requirements) > 0 {
		if err := json.Unmarshal(m.Requirements, &requirements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
		}
	}

	var features []string
	if len(m.AccessibilityFeatures) > 0 {
		if err := json.Unmarshal(m.AccessibilityFeatures, &features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal accessibility features: %w", err)
		}
	}

	var reviewedBy *kernel.UserID
	if m.ReviewedBy != nil {
		id := kernel.UserID(*m.ReviewedBy)
		reviewedBy = &id
	}

	return &job.Job{
		ID:                         kernel.JobID(m.ID),
		CompanyID:                  kernel.UserID(m.CompanyID),
		Title:                      kernel.JobTitle(m.Title),
		Description:                kernel.JobDescription(m.Description),
		Responsibilities:           responsibilities,
		Requirements:               requirements,
		Location:                   m.Location,
		RemoteAvailable:            m.RemoteAvailable,
		JobType:                    job.JobType(m.JobType),
		ExperienceLevel:            job.ExperienceLevel(m.ExperienceLevel),
		DisabilityFocus:            kernel.DisabilityCategory(m.DisabilityFocus),
		AccessibilityFeatures:      features,
		SalaryMin:                  m.SalaryMin,
		SalaryMax:                  m.SalaryMax,
		ApplicationDeadline:        m.ApplicationDeadline,
		ReasonableAccommodations:   m.ReasonableAccommodations,
		WorkplaceAccessibility:     m.WorkplaceAccessibility,
		NonDiscriminationStatement: m.NonDiscriminationStatement,
		Status:                     job.ComplianceStatus(m.Status),
		ReviewReason:               m.ReviewReason,
		ReviewedBy:                 reviewedBy,
		ReviewedAt:                 m.ReviewedAt,
		IsActive:                   m.IsActive,
		Featured:                   m.Featured,
		CreatedAt:                  m.CreatedAt,
		UpdatedAt:                  m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) (*jobModel, error) {
	responsibilities, err := json.Marshal(j.Responsibilities)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal responsibilities: %w", err)
	}

	requirements, err := json.Marshal(j.Requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}

	features, err := json.Marshal(j.AccessibilityFeatures)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal accessibility features: %w", err)
	}

	var reviewedBy *string
	if j.ReviewedBy != nil {
		id := j.ReviewedBy.String()
		reviewedBy = &id
	}

	return &jobModel{
		ID:                         string(j.ID),
		CompanyID:                  string(j.CompanyID),
		Title:                      string(j.Title),
		Description:                string(j.Description),
		Responsibilities:           responsibilities,
		Requirements:               requirements,
		Location:                   j.Location,
		RemoteAvailable:            j.RemoteAvailable,
		JobType:                    string(j.JobType),
		ExperienceLevel:            string(j.ExperienceLevel),
		DisabilityFocus:            string(j.DisabilityFocus),
		AccessibilityFeatures:      features,
		SalaryMin:                  j.SalaryMin,
		SalaryMax:                  j.SalaryMax,
		ApplicationDeadline:        j.ApplicationDeadline,
		ReasonableAccommodations:   j.ReasonableAccommodations,
		WorkplaceAccessibility:     j.WorkplaceAccessibility,
		NonDiscriminationStatement: j.NonDiscriminationStatement,
		Status:                     string(j.Status),
		ReviewReason:               j.ReviewReason,
		ReviewedBy:                 reviewedBy,
		ReviewedAt:                 j.ReviewedAt,
		IsActive:                   j.IsActive,
		Featured:                   j.Featured,
		CreatedAt:                  j.CreatedAt,
		UpdatedAt:                  j.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create persists a new job posting
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO jobs (
			id, company_id, title, description, responsibilities, requirements,
			location, remote_available, job_type, experience_level,
			disability_focus, accessibility_features, salary_min, salary_max,
			application_deadline, reasonable_accommodations,
			workplace_accessibility, non_discrimination_statement, status,
			review_reason, reviewed_by, reviewed_at, is_active, featured,
			created_at, updated_at
		) VALUES (
			:id, :company_id, :title, :description, :responsibilities,
			:requirements, :location, :remote_available, :job_type,
			:experience_level, :disability_focus, :accessibility_features,
			:salary_min, :salary_max, :application_deadline,
			:reasonable_accommodations, :workplace_accessibility,
			:non_discrimination_statement, :status, :review_reason,
			:reviewed_by, :reviewed_at, :is_active, :featured,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// Update persists changes to an existing job posting
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}
	model.ID = string(id)

	query := `
		UPDATE jobs SET
			title = :title,
			description = :description,
			responsibilities = :responsibilities,
			requirements = :requirements,
			location = :location,
			remote_available = :remote_available,
			job_type = :job_type,
			experience_level = :experience_level,
			disability_focus = :disability_focus,
			accessibility_features = :accessibility_features,
			salary_min = :salary_min,
			salary_max = :salary_max,
			application_deadline = :application_deadline,
			reasonable_accommodations = :reasonable_accommodations,
			workplace_accessibility = :workplace_accessibility,
			non_discrimination_statement = :non_discrimination_statement,
			status = :status,
			review_reason = :review_reason,
			reviewed_by = :reviewed_by,
			reviewed_at = :reviewed_at,
			is_active = :is_active,
			featured = :featured,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// GetByID retrieves a job posting by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity()
}

// ListPublic retrieves approved, active, non-expired postings
func (r *PostgresJobRepository) ListPublic(ctx context.Context, filters job.PublicFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	conditions := []string{
		"status = $1",
		"is_active = TRUE",
		"(application_deadline IS NULL OR application_deadline > NOW())",
	}
	args := []any{string(job.StatusApproved)}

	if filters.JobType != nil {
		args = append(args, string(*filters.JobType))
		conditions = append(conditions, fmt.Sprintf("job_type = $%d", len(args)))
	}
	if filters.DisabilityFocus != nil {
		args = append(args, string(*filters.DisabilityFocus))
		conditions = append(conditions, fmt.Sprintf("disability_focus = $%d", len(args)))
	}
	if filters.RemoteOnly {
		conditions = append(conditions, "remote_available = TRUE")
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")
	return r.list(ctx, where, "ORDER BY featured DESC, created_at DESC", args, pagination)
}

// ListByCompany retrieves all postings owned by a company
func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return r.list(ctx, " WHERE company_id = $1", "ORDER BY created_at DESC", []any{string(companyID)}, pagination)
}

// ListByStatus retrieves postings in a review status, oldest first
func (r *PostgresJobRepository) ListByStatus(ctx context.Context, status job.ComplianceStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return r.list(ctx, " WHERE status = $1", "ORDER BY updated_at ASC", []any{string(status)}, pagination)
}

// CountByStatus counts postings per review status
func (r *PostgresJobRepository) CountByStatus(ctx context.Context) (map[job.ComplianceStatus]int64, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}{}

	query := `SELECT status, COUNT(*) AS count FROM jobs GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count jobs by status: %w", err)
	}

	counts := make(map[job.ComplianceStatus]int64, len(rows))
	for _, row := range rows {
		counts[job.ComplianceStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *PostgresJobRepository) list(ctx context.Context, where, orderBy string, args []any, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM jobs` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := fmt.Sprintf(`
		SELECT %s FROM jobs%s
		%s
		LIMIT $%d OFFSET $%d
	`, jobColumns, where, orderBy, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, offset)

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	entities := make([]job.Job, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return &kernel.Paginated[job.Job]{
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
