package dashboard

import (
	"github.com/incluempleo/vinculo/inclusion/complaint"
	"github.com/incluempleo/vinculo/inclusion/job"
	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// TopCompany is one row of the hiring leaderboard
type TopCompany struct {
	CompanyID      kernel.UserID `db:"company_id" json:"company_id"`
	CompanyName    string        `db:"company_name" json:"company_name"`
	ConfirmedHires int64         `db:"confirmed_hires" json:"confirmed_hires"`
}

// MonthlyHires is one point of the confirmed-hire time series
type MonthlyHires struct {
	Year  int   `db:"year" json:"year"`
	Month int   `db:"month" json:"month"`
	Count int64 `db:"count" json:"count"`
}

// ComplianceRow is one company's quota standing joined with its name,
// the unit of the compliance export
type ComplianceRow struct {
	CompanyID               kernel.UserID `db:"company_id" json:"company_id"`
	CompanyName             string        `db:"company_name" json:"company_name"`
	TotalEmployees          int           `db:"total_employees" json:"total_employees"`
	EmployeesWithDisability int           `db:"employees_with_disability" json:"employees_with_disability"`
}

// QuotaOverview summarizes quota standing across companies
type QuotaOverview struct {
	TrackedCompanies  int     `json:"tracked_companies"`
	Compliant         int     `json:"compliant"`
	NonCompliant      int     `json:"non_compliant"`
	Exempt            int     `json:"exempt"`
	AverageCompliance float64 `json:"average_compliance"`
}

// Overview is the admin dashboard payload
type Overview struct {
	Jobs       map[job.ComplianceStatus]int64      `json:"jobs"`
	Reports    map[report.ReportStatus]int64       `json:"reports"`
	Disability map[kernel.DisabilityCode]int64     `json:"confirmed_by_disability_type"`
	Complaints map[complaint.ComplaintStatus]int64 `json:"complaints"`
	Quota      QuotaOverview                       `json:"quota"`

	TopCompanies  []TopCompany   `json:"top_companies"`
	MonthlyHiring []MonthlyHires `json:"monthly_hiring"`
}
