package quota

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// Employment quota parameters under Ley 1618: companies with fewer than
// MinEmployeesForQuota employees are exempt; above that, QuotaRate of the
// workforce, rounded up.
const (
	MinEmployeesForQuota = 50
	QuotaRate            = 0.02
)

// EmploymentQuota is a company's standing against the inclusion quota.
// One row per company; employees_with_disability mirrors the company's
// CONFIRMED hiring reports.
type EmploymentQuota struct {
	ID                      kernel.QuotaID `db:"id" json:"id"`
	CompanyID               kernel.UserID  `db:"company_id" json:"company_id"`
	TotalEmployees          int            `db:"total_employees" json:"total_employees"`
	EmployeesWithDisability int            `db:"employees_with_disability" json:"employees_with_disability"`
	CreatedAt               time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time      `db:"updated_at" json:"updated_at"`
}

// QuotaSnapshot is an immutable monthly record of a company's standing.
// One snapshot per company and month; snapshots are never rewritten.
type QuotaSnapshot struct {
	ID                      kernel.QuotaID `db:"id" json:"id"`
	CompanyID               kernel.UserID  `db:"company_id" json:"company_id"`
	Year                    int            `db:"year" json:"year"`
	Month                   int            `db:"month" json:"month"`
	TotalEmployees          int            `db:"total_employees" json:"total_employees"`
	EmployeesWithDisability int            `db:"employees_with_disability" json:"employees_with_disability"`
	RequiredEmployees       int            `db:"required_employees" json:"required_employees"`
	CompliancePercentage    float64        `db:"compliance_percentage" json:"compliance_percentage"`
	CreatedAt               time.Time      `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// RequiredEmployeesWithDisability computes the quota: exempt below the
// threshold, otherwise 2% of the workforce rounded up.
func (q *EmploymentQuota) RequiredEmployeesWithDisability() int {
	return RequiredFor(q.TotalEmployees)
}

// RequiredFor computes the quota for an arbitrary headcount
func RequiredFor(totalEmployees int) int {
	if totalEmployees < MinEmployeesForQuota {
		return 0
	}
	return int(math.Ceil(float64(totalEmployees) * QuotaRate))
}

// CompliancePercentage returns confirmed hires over the quota as a
// percentage. Not clamped; exceeding the quota reads above 100. Exempt
// companies always read 100.
func (q *EmploymentQuota) CompliancePercentage() float64 {
	required := q.RequiredEmployeesWithDisability()
	if required == 0 {
		return 100
	}
	return float64(q.EmployeesWithDisability) / float64(required) * 100
}

// IsCompliant checks whether the company meets its quota
func (q *EmploymentQuota) IsCompliant() bool {
	return q.CompliancePercentage() >= 100
}

// UpdateEmployeeCount sets the self-reported workforce size
func (q *EmploymentQuota) UpdateEmployeeCount(total int) error {
	if total < 0 {
		return ErrInvalidEmployeeCount().WithDetail("total_employees", total)
	}
	q.TotalEmployees = total
	q.UpdatedAt = time.Now()
	return nil
}

// SyncConfirmedHires sets the confirmed-report mirror
func (q *EmploymentQuota) SyncConfirmedHires(count int) {
	q.EmployeesWithDisability = count
	q.UpdatedAt = time.Now()
}

// Snapshot freezes the current standing for a given month
func (q *EmploymentQuota) Snapshot(year, month int) *QuotaSnapshot {
	return &QuotaSnapshot{
		ID:                      kernel.NewQuotaID(uuid.NewString()),
		CompanyID:               q.CompanyID,
		Year:                    year,
		Month:                   month,
		TotalEmployees:          q.TotalEmployees,
		EmployeesWithDisability: q.EmployeesWithDisability,
		RequiredEmployees:       q.RequiredEmployeesWithDisability(),
		CompliancePercentage:    q.CompliancePercentage(),
		CreatedAt:               time.Now(),
	}
}
