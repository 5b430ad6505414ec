package quota_test

import (
	"math"
	"testing"

	"github.com/incluempleo/vinculo/inclusion/quota"
)

func TestRequiredFor(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{0, 0},
		{1, 0},
		{49, 0},
		{50, 1},
		{51, 2},
		{100, 2},
		{101, 3},
		{250, 5},
		{1000, 20},
	}
	for _, c := range cases {
		if got := quota.RequiredFor(c.total); got != c.want {
			t.Errorf("RequiredFor(%d) = %d, want %d", c.total, got, c.want)
		}
	}
}

func TestCompliancePercentage_Exempt(t *testing.T) {
	q := &quota.EmploymentQuota{TotalEmployees: 49, EmployeesWithDisability: 0}
	if got := q.CompliancePercentage(); got != 100 {
		t.Errorf("exempt company percentage = %v, want 100", got)
	}
	if !q.IsCompliant() {
		t.Error("exempt company must read compliant")
	}
}

func TestCompliancePercentage(t *testing.T) {
	cases := []struct {
		total int
		hired int
		want  float64
	}{
		{100, 1, 50},
		{100, 2, 100},
		{100, 4, 200},
		{250, 5, 100},
		{50, 0, 0},
	}
	for _, c := range cases {
		q := &quota.EmploymentQuota{TotalEmployees: c.total, EmployeesWithDisability: c.hired}
		if got := q.CompliancePercentage(); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("CompliancePercentage(%d/%d) = %v, want %v", c.hired, c.total, got, c.want)
		}
	}
}

func TestIsCompliant(t *testing.T) {
	q := &quota.EmploymentQuota{TotalEmployees: 100, EmployeesWithDisability: 1}
	if q.IsCompliant() {
		t.Error("1 of 2 required must not be compliant")
	}
	q.EmployeesWithDisability = 2
	if !q.IsCompliant() {
		t.Error("2 of 2 required must be compliant")
	}
}

func TestUpdateEmployeeCount(t *testing.T) {
	q := &quota.EmploymentQuota{TotalEmployees: 10}
	if err := q.UpdateEmployeeCount(-1); err == nil {
		t.Error("negative headcount must be rejected")
	}
	if q.TotalEmployees != 10 {
		t.Error("rejected update must not change the row")
	}
	if err := q.UpdateEmployeeCount(75); err != nil {
		t.Fatalf("UpdateEmployeeCount(75) returned error: %v", err)
	}
	if q.TotalEmployees != 75 {
		t.Errorf("total = %d, want 75", q.TotalEmployees)
	}
}

func TestSnapshot(t *testing.T) {
	q := &quota.EmploymentQuota{
		CompanyID:               "com-1",
		TotalEmployees:          250,
		EmployeesWithDisability: 4,
	}
	s := q.Snapshot(2026, 7)

	if s.Year != 2026 || s.Month != 7 {
		t.Errorf("snapshot period = %d-%d", s.Year, s.Month)
	}
	if s.RequiredEmployees != 5 {
		t.Errorf("required = %d, want 5", s.RequiredEmployees)
	}
	if math.Abs(s.CompliancePercentage-80) > 1e-9 {
		t.Errorf("percentage = %v, want 80", s.CompliancePercentage)
	}
	if s.ID.IsEmpty() {
		t.Error("snapshot must get its own id")
	}
}
