package quotainfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/incluempleo/vinculo/inclusion/quota"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PostgresQuotaRepository implements quota.Repository using PostgreSQL
type PostgresQuotaRepository struct {
	db *sqlx.DB
}

// NewPostgresQuotaRepository creates a new PostgreSQL quota repository
func NewPostgresQuotaRepository(db *sqlx.DB) *PostgresQuotaRepository {
	return &PostgresQuotaRepository{
		db: db,
	}
}

type quotaModel struct {
	ID                      string    `db:"id"`
	CompanyID               string    `db:"company_id"`
	TotalEmployees          int       `db:"total_employees"`
	EmployeesWithDisability int       `db:"employees_with_disability"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

func (m *quotaModel) toEntity() *quota.EmploymentQuota {
	return &quota.EmploymentQuota{
		ID:                      kernel.QuotaID(m.ID),
		CompanyID:               kernel.UserID(m.CompanyID),
		TotalEmployees:          m.TotalEmployees,
		EmployeesWithDisability: m.EmployeesWithDisability,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

// Upsert creates or replaces a company's quota row
func (r *PostgresQuotaRepository) Upsert(ctx context.Context, q *quota.EmploymentQuota) error {
	model := &quotaModel{
		ID:                      string(q.ID),
		CompanyID:               q.CompanyID.String(),
		TotalEmployees:          q.TotalEmployees,
		EmployeesWithDisability: q.EmployeesWithDisability,
		CreatedAt:               q.CreatedAt,
		UpdatedAt:               q.UpdatedAt,
	}

	query := `
		INSERT INTO employment_quotas (
			id, company_id, total_employees, employees_with_disability,
			created_at, updated_at
		) VALUES (
			:id, :company_id, :total_employees, :employees_with_disability,
			:created_at, :updated_at
		)
		ON CONFLICT (company_id) DO UPDATE SET
			total_employees = EXCLUDED.total_employees,
			employees_with_disability = EXCLUDED.employees_with_disability,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to upsert employment quota: %w", err)
	}

	return nil
}

// GetByCompany retrieves a company's quota row
func (r *PostgresQuotaRepository) GetByCompany(ctx context.Context, companyID kernel.UserID) (*quota.EmploymentQuota, error) {
	query := `
		SELECT id, company_id, total_employees, employees_with_disability,
		       created_at, updated_at
		FROM employment_quotas
		WHERE company_id = $1
	`

	var model quotaModel
	err := r.db.GetContext(ctx, &model, query, companyID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, quota.ErrQuotaNotFound()
		}
		return nil, fmt.Errorf("failed to get employment quota: %w", err)
	}

	return model.toEntity(), nil
}

// ListAll retrieves every company's quota row
func (r *PostgresQuotaRepository) ListAll(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[quota.EmploymentQuota], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM employment_quotas`); err != nil {
		return nil, fmt.Errorf("failed to count employment quotas: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := `
		SELECT id, company_id, total_employees, employees_with_disability,
		       created_at, updated_at
		FROM employment_quotas
		ORDER BY total_employees DESC
		LIMIT $1 OFFSET $2
	`

	var models []quotaModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list employment quotas: %w", err)
	}

	entities := make([]quota.EmploymentQuota, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return &kernel.Paginated[quota.EmploymentQuota]{
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

// ============================================================================
// Snapshot Repository
// ============================================================================

// PostgresSnapshotRepository implements quota.SnapshotRepository. Rows are
// insert-only.
type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

// NewPostgresSnapshotRepository creates a new snapshot repository
func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{
		db: db,
	}
}

type snapshotModel struct {
	ID                      string    `db:"id"`
	CompanyID               string    `db:"company_id"`
	Year                    int       `db:"year"`
	Month                   int       `db:"month"`
	TotalEmployees          int       `db:"total_employees"`
	EmployeesWithDisability int       `db:"employees_with_disability"`
	RequiredEmployees       int       `db:"required_employees"`
	CompliancePercentage    float64   `db:"compliance_percentage"`
	CreatedAt               time.Time `db:"created_at"`
}

func (m *snapshotModel) toEntity() *quota.QuotaSnapshot {
	return &quota.QuotaSnapshot{
		ID:                      kernel.QuotaID(m.ID),
		CompanyID:               kernel.UserID(m.CompanyID),
		Year:                    m.Year,
		Month:                   m.Month,
		TotalEmployees:          m.TotalEmployees,
		EmployeesWithDisability: m.EmployeesWithDisability,
		RequiredEmployees:       m.RequiredEmployees,
		CompliancePercentage:    m.CompliancePercentage,
		CreatedAt:               m.CreatedAt,
	}
}

// Create persists a snapshot
func (r *PostgresSnapshotRepository) Create(ctx context.Context, s *quota.QuotaSnapshot) error {
	model := &snapshotModel{
		ID:                      string(s.ID),
		CompanyID:               s.CompanyID.String(),
		Year:                    s.Year,
		Month:                   s.Month,
		TotalEmployees:          s.TotalEmployees,
		EmployeesWithDisability: s.EmployeesWithDisability,
		RequiredEmployees:       s.RequiredEmployees,
		CompliancePercentage:    s.CompliancePercentage,
		CreatedAt:               s.CreatedAt,
	}

	query := `
		INSERT INTO quota_snapshots (
			id, company_id, year, month, total_employees,
			employees_with_disability, required_employees,
			compliance_percentage, created_at
		) VALUES (
			:id, :company_id, :year, :month, :total_employees,
			:employees_with_disability, :required_employees,
			:compliance_percentage, :created_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return quota.ErrSnapshotExists()
		}
		return fmt.Errorf("failed to create quota snapshot: %w", err)
	}

	return nil
}

// ExistsForMonth checks if a snapshot was already taken
func (r *PostgresSnapshotRepository) ExistsForMonth(ctx context.Context, companyID kernel.UserID, year, month int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM quota_snapshots WHERE company_id = $1 AND year = $2 AND month = $3)`
	if err := r.db.GetContext(ctx, &exists, query, companyID.String(), year, month); err != nil {
		return false, fmt.Errorf("failed to check snapshot existence: %w", err)
	}
	return exists, nil
}

// ListByCompany retrieves a company's snapshots, newest first
func (r *PostgresSnapshotRepository) ListByCompany(ctx context.Context, companyID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[quota.QuotaSnapshot], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM quota_snapshots WHERE company_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, companyID.String()); err != nil {
		return nil, fmt.Errorf("failed to count quota snapshots: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := `
		SELECT id, company_id, year, month, total_employees,
		       employees_with_disability, required_employees,
		       compliance_percentage, created_at
		FROM quota_snapshots
		WHERE company_id = $1
		ORDER BY year DESC, month DESC
		LIMIT $2 OFFSET $3
	`

	var models []snapshotModel
	if err := r.db.SelectContext(ctx, &models, query, companyID.String(), pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list quota snapshots: %w", err)
	}

	entities := make([]quota.QuotaSnapshot, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return &kernel.Paginated[quota.QuotaSnapshot]{
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
