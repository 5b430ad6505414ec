package reportinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PostgresReportRepository implements report.Repository using PostgreSQL
type PostgresReportRepository struct {
	db *sqlx.DB
}

// NewPostgresReportRepository creates a new PostgreSQL report repository
func NewPostgresReportRepository(db *sqlx.DB) *PostgresReportRepository {
	return &PostgresReportRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type reportModel struct {
	ID                    string          `db:"id"`
	CompanyID             string          `db:"company_id"`
	JobID                 *string         `db:"job_id"`
	CompanyName           string          `db:"company_name"`
	CompanyNIT            string          `db:"company_nit"`
	ContractNumber        string          `db:"contract_number"`
	ContractDate          time.Time       `db:"contract_date"`
	PositionTitle         string          `db:"position_title"`
	DisabilityType        string          `db:"disability_type"`
	DisabilityPercentage  int             `db:"disability_percentage"`
	Notes                 string          `db:"notes"`
	Status                string          `db:"status"`
	RetryCount            int             `db:"retry_count"`
	LastRetryAt           *time.Time      `db:"last_retry_at"`
	MinistryReceiptNumber string          `db:"ministry_receipt_number"`
	MinistryResponse      json.RawMessage `db:"ministry_response"`
	DigitalSignature      string          `db:"digital_signature"`
	PDFPath               string          `db:"pdf_path"`
	XMLPath               string          `db:"xml_path"`
	ErrorLog              string          `db:"error_log"`
	SentAt                *time.Time      `db:"sent_at"`
	ConfirmedAt           *time.Time      `db:"confirmed_at"`
	CreatedAt             time.Time       `db:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at"`
}

const reportColumns = `
	id, company_id, job_id, company_name, company_nit, contract_number,
	contract_date, position_title, disability_type, disability_percentage,
	notes, status, retry_count, last_retry_at, ministry_receipt_number,
	ministry_response, digital_signature, pdf_path, xml_path, error_log,
	sent_at, confirmed_at, created_at, updated_at
`

// toEntity converts database model to domain entity
func (m *reportModel) toEntity() (*report.HiringReport, error) {
	var response map[string]any
	if len(m.MinistryResponse) > 0 {
		if err := json.Unmarshal(m.MinistryResponse, &response); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ministry response: %w", err)
		}
	}

	var jobID *kernel.JobID
	if m.JobID != nil {
		id := kernel.JobID(*m.JobID)
		jobID = &id
	}

	return &report.HiringReport{
		ID:                    kernel.ReportID(m.ID),
		CompanyID:             kernel.UserID(m.CompanyID),
		JobID:                 jobID,
		CompanyName:           m.CompanyName,
		CompanyNIT:            kernel.NIT(m.CompanyNIT),
		ContractNumber:        m.ContractNumber,
		ContractDate:          m.ContractDate,
		PositionTitle:         m.PositionTitle,
		DisabilityType:        kernel.DisabilityCode(m.DisabilityType),
		DisabilityPercentage:  m.DisabilityPercentage,
		Notes:                 m.Notes,
		Status:                report.ReportStatus(m.Status),
		RetryCount:            m.RetryCount,
		LastRetry:             m.LastRetryAt,
		MinistryReceiptNumber: m.MinistryReceiptNumber,
		MinistryResponse:      response,
		DigitalSignature:      m.DigitalSignature,
		PDFPath:               m.PDFPath,
		XMLPath:               m.XMLPath,
		ErrorLog:              m.ErrorLog,
		SentAt:                m.SentAt,
		ConfirmedAt:           m.ConfirmedAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(r *report.HiringReport) (*reportModel, error) {
	response, err := json.Marshal(r.MinistryResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ministry response: %w", err)
	}

	var jobID *string
	if r.JobID != nil {
		id := r.JobID.String()
		jobID = &id
	}

	return &reportModel{
		ID:                    string(r.ID),
		CompanyID:             string(r.CompanyID),
		JobID:                 jobID,
		CompanyName:           r.CompanyName,
		CompanyNIT:            r.CompanyNIT.String(),
		ContractNumber:        r.ContractNumber,
		ContractDate:          r.ContractDate,
		PositionTitle:         r.PositionTitle,
		DisabilityType:        string(r.DisabilityType),
		DisabilityPercentage:  r.DisabilityPercentage,
		Notes:                 r.Notes,
		Status:                string(r.Status),
		RetryCount:            r.RetryCount,
		LastRetryAt:           r.LastRetry,
		MinistryReceiptNumber: r.MinistryReceiptNumber,
		MinistryResponse:      response,
		DigitalSignature:      r.DigitalSignature,
		PDFPath:               r.PDFPath,
		XMLPath:               r.XMLPath,
		ErrorLog:              r.ErrorLog,
		SentAt:                r.SentAt,
		ConfirmedAt:           r.ConfirmedAt,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create persists a new hiring report
func (r *PostgresReportRepository) Create(ctx context.Context, reportEntity *report.HiringReport) error {
	model, err := fromEntity(reportEntity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO hiring_reports (
			id, company_id, job_id, company_name, company_nit, contract_number,
			contract_date, position_title, disability_type,
			disability_percentage, notes, status, retry_count, last_retry_at,
			ministry_receipt_number, ministry_response, digital_signature,
			pdf_path, xml_path, error_log, sent_at, confirmed_at,
			created_at, updated_at
		) VALUES (
			:id, :company_id, :job_id, :company_name, :company_nit,
			:contract_number, :contract_date, :position_title,
			:disability_type, :disability_percentage, :notes, :status,
			:retry_count, :last_retry_at, :ministry_receipt_number,
			:ministry_response, :digital_signature, :pdf_path, :xml_path,
			:error_log, :sent_at, :confirmed_at, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return report.ErrDuplicateContract()
		}
		return fmt.Errorf("failed to create hiring report: %w", err)
	}

	return nil
}

// Update persists changes to an existing hiring report
func (r *PostgresReportRepository) Update(ctx context.Context, id kernel.ReportID, reportEntity *report.HiringReport) error {
	model, err := fromEntity(reportEntity)
	if err != nil {
		return err
	}
	model.ID = string(id)

	query := `
		UPDATE hiring_reports SET
			contract_number = :contract_number,
			contract_date = :contract_date,
			position_title = :position_title,
			disability_type = :disability_type,
			disability_percentage = :disability_percentage,
			notes = :notes,
			status = :status,
			retry_count = :retry_count,
			last_retry_at = :last_retry_at,
			ministry_receipt_number = :ministry_receipt_number,
			ministry_response = :ministry_response,
			digital_signature = :digital_signature,
			pdf_path = :pdf_path,
			xml_path = :xml_path,
			error_log = :error_log,
			sent_at = :sent_at,
			confirmed_at = :confirmed_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update hiring report: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return report.ErrReportNotFound()
	}

	return nil
}

// GetByID retrieves a hiring report by ID
func (r *PostgresReportRepository) GetByID(ctx context.Context, id kernel.ReportID) (*report.HiringReport, error) {
	query := `SELECT ` + reportColumns + ` FROM hiring_reports WHERE id = $1`

	var model reportModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, report.ErrReportNotFound()
		}
		return nil, fmt.Errorf("failed to get hiring report by id: %w", err)
	}

	return model.toEntity()
}

// ListByCompany retrieves a company's reports, newest first
func (r *PostgresReportRepository) ListByCompany(ctx context.Context, companyID kernel.UserID, filter report.StatusFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[report.HiringReport], error) {
	conditions := []string{"company_id = $1"}
	args := []any{string(companyID)}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")
	return r.list(ctx, where, args, pagination)
}

// ListAll retrieves reports across companies
func (r *PostgresReportRepository) ListAll(ctx context.Context, filter report.StatusFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[report.HiringReport], error) {
	where := ""
	args := []any{}

	if filter.Status != nil {
		where = " WHERE status = $1"
		args = append(args, string(*filter.Status))
	}

	return r.list(ctx, where, args, pagination)
}

// ListRetryable retrieves FAILED and RETRY reports with attempts left
func (r *PostgresReportRepository) ListRetryable(ctx context.Context) ([]report.HiringReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM hiring_reports
		WHERE status IN ($1, $2) AND retry_count < $3
		ORDER BY updated_at ASC
	`

	var models []reportModel
	if err := r.db.SelectContext(ctx, &models, query, string(report.StatusFailed), string(report.StatusRetry), report.MaxRetries); err != nil {
		return nil, fmt.Errorf("failed to list retryable reports: %w", err)
	}

	entities := make([]report.HiringReport, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}

// ExistsByContract checks contract number uniqueness within a company
func (r *PostgresReportRepository) ExistsByContract(ctx context.Context, companyID kernel.UserID, contractNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM hiring_reports WHERE company_id = $1 AND contract_number = $2)`
	if err := r.db.GetContext(ctx, &exists, query, string(companyID), contractNumber); err != nil {
		return false, fmt.Errorf("failed to check contract existence: %w", err)
	}
	return exists, nil
}

// CountConfirmedByCompany counts a company's CONFIRMED reports
func (r *PostgresReportRepository) CountConfirmedByCompany(ctx context.Context, companyID kernel.UserID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM hiring_reports WHERE company_id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &count, query, string(companyID), string(report.StatusConfirmed)); err != nil {
		return 0, fmt.Errorf("failed to count confirmed reports: %w", err)
	}
	return count, nil
}

// CountByStatus counts reports per status
func (r *PostgresReportRepository) CountByStatus(ctx context.Context) (map[report.ReportStatus]int64, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}{}

	query := `SELECT status, COUNT(*) AS count FROM hiring_reports GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count reports by status: %w", err)
	}

	counts := make(map[report.ReportStatus]int64, len(rows))
	for _, row := range rows {
		counts[report.ReportStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// CountByDisabilityType counts CONFIRMED reports per coded type
func (r *PostgresReportRepository) CountByDisabilityType(ctx context.Context) (map[kernel.DisabilityCode]int64, error) {
	rows := []struct {
		DisabilityType string `db:"disability_type"`
		Count          int64  `db:"count"`
	}{}

	query := `
		SELECT disability_type, COUNT(*) AS count
		FROM hiring_reports
		WHERE status = $1
		GROUP BY disability_type
	`
	if err := r.db.SelectContext(ctx, &rows, query, string(report.StatusConfirmed)); err != nil {
		return nil, fmt.Errorf("failed to count reports by disability type: %w", err)
	}

	counts := make(map[kernel.DisabilityCode]int64, len(rows))
	for _, row := range rows {
		counts[kernel.DisabilityCode(row.DisabilityType)] = row.Count
	}
	return counts, nil
}

func (r *PostgresReportRepository) list(ctx context.Context, where string, args []any, pagination kernel.PaginationOptions) (*kernel.Paginated[report.HiringReport], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM hiring_reports` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count hiring reports: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := fmt.Sprintf(`
		SELECT %s FROM hiring_reports%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, reportColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, offset)

	var models []reportModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list hiring reports: %w", err)
	}

	entities := make([]report.HiringReport, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return &kernel.Paginated[report.HiringReport]{
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
