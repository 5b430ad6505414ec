package dashboardinfra

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/incluempleo/vinculo/inclusion/dashboard"
	"github.com/incluempleo/vinculo/inclusion/report"
)

// PostgresStatsRepository implements dashboard.StatsRepository with
// read-only aggregate queries
type PostgresStatsRepository struct {
	db *sqlx.DB
}

// NewPostgresStatsRepository creates a new stats repository
func NewPostgresStatsRepository(db *sqlx.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{
		db: db,
	}
}

// TopHiringCompanies ranks companies by CONFIRMED hiring reports
func (r *PostgresStatsRepository) TopHiringCompanies(ctx context.Context, limit int) ([]dashboard.TopCompany, error) {
	query := `
		SELECT company_id, company_name, COUNT(*) AS confirmed_hires
		FROM hiring_reports
		WHERE status = $1
		GROUP BY company_id, company_name
		ORDER BY confirmed_hires DESC
		LIMIT $2
	`

	var rows []dashboard.TopCompany
	if err := r.db.SelectContext(ctx, &rows, query, string(report.StatusConfirmed), limit); err != nil {
		return nil, fmt.Errorf("failed to rank hiring companies: %w", err)
	}
	return rows, nil
}

// MonthlyHiringSeries counts CONFIRMED reports per month, oldest first
func (r *PostgresStatsRepository) MonthlyHiringSeries(ctx context.Context, months int) ([]dashboard.MonthlyHires, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM confirmed_at)::int AS year,
			EXTRACT(MONTH FROM confirmed_at)::int AS month,
			COUNT(*) AS count
		FROM hiring_reports
		WHERE status = $1
			AND confirmed_at >= date_trunc('month', NOW()) - ($2 || ' months')::interval
		GROUP BY year, month
		ORDER BY year ASC, month ASC
	`

	var rows []dashboard.MonthlyHires
	if err := r.db.SelectContext(ctx, &rows, query, string(report.StatusConfirmed), months); err != nil {
		return nil, fmt.Errorf("failed to build hiring series: %w", err)
	}
	return rows, nil
}

// ComplianceRows joins quota rows with company names for the export
func (r *PostgresStatsRepository) ComplianceRows(ctx context.Context) ([]dashboard.ComplianceRow, error) {
	query := `
		SELECT q.company_id, u.company_name, q.total_employees, q.employees_with_disability
		FROM employment_quotas q
		JOIN users u ON u.id = q.company_id
		ORDER BY u.company_name ASC
	`

	var rows []dashboard.ComplianceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list compliance rows: %w", err)
	}
	return rows, nil
}
