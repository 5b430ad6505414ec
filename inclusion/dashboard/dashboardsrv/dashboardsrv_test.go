package dashboardsrv

import (
	"bytes"
	"math"
	"testing"

	"github.com/incluempleo/vinculo/inclusion/dashboard"
)

func TestSummarizeQuota_Empty(t *testing.T) {
	got := summarizeQuota(nil)
	if got.TrackedCompanies != 0 || got.AverageCompliance != 0 {
		t.Errorf("empty summary = %+v", got)
	}
}

func TestSummarizeQuota(t *testing.T) {
	rows := []dashboard.ComplianceRow{
		{CompanyName: "Exenta SAS", TotalEmployees: 30, EmployeesWithDisability: 0},
		{CompanyName: "Cumple SAS", TotalEmployees: 100, EmployeesWithDisability: 2},
		{CompanyName: "Incumple SAS", TotalEmployees: 100, EmployeesWithDisability: 1},
	}
	got := summarizeQuota(rows)

	if got.TrackedCompanies != 3 {
		t.Errorf("tracked = %d, want 3", got.TrackedCompanies)
	}
	if got.Exempt != 1 || got.Compliant != 1 || got.NonCompliant != 1 {
		t.Errorf("buckets = %+v", got)
	}
	// (100 + 100 + 50) / 3
	if math.Abs(got.AverageCompliance-83.33) > 1e-9 {
		t.Errorf("average = %v, want 83.33", got.AverageCompliance)
	}
}

func TestWriteSheets(t *testing.T) {
	rows := []dashboard.ComplianceRow{
		{CompanyName: "Cumple SAS", TotalEmployees: 100, EmployeesWithDisability: 2},
		{CompanyName: "Incumple SAS", TotalEmployees: 250, EmployeesWithDisability: 1},
	}

	f, err := buildWorkbook(rows)
	if err != nil {
		t.Fatalf("workbook build failed: %v", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("workbook write failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty workbook output")
	}

	status, err := f.GetCellValue("Cumplimiento", "F2")
	if err != nil {
		t.Fatal(err)
	}
	if status != "En cumplimiento" {
		t.Errorf("F2 = %q, want En cumplimiento", status)
	}
	status, err = f.GetCellValue("Cumplimiento", "F3")
	if err != nil {
		t.Fatal(err)
	}
	if status != "En incumplimiento" {
		t.Errorf("F3 = %q, want En incumplimiento", status)
	}
}
