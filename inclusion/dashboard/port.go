package dashboard

import (
	"context"
)

// StatsRepository runs the aggregate queries that cut across domains
type StatsRepository interface {
	// TopHiringCompanies ranks companies by CONFIRMED hiring reports
	TopHiringCompanies(ctx context.Context, limit int) ([]TopCompany, error)

	// MonthlyHiringSeries counts CONFIRMED reports per month over the
	// trailing window, oldest month first
	MonthlyHiringSeries(ctx context.Context, months int) ([]MonthlyHires, error)

	// ComplianceRows retrieves every tracked company's quota standing
	// with its legal name, ordered by name
	ComplianceRows(ctx context.Context) ([]ComplianceRow, error)
}
