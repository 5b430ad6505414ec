package dashboardsrv

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/incluempleo/vinculo/inclusion/complaint"
	"github.com/incluempleo/vinculo/inclusion/dashboard"
	"github.com/incluempleo/vinculo/inclusion/job"
	"github.com/incluempleo/vinculo/inclusion/quota"
	"github.com/incluempleo/vinculo/inclusion/report"
)

const (
	topCompaniesLimit  = 10
	hiringSeriesMonths = 12
)

// Service assembles the admin dashboard from the per-domain counters
type Service struct {
	jobs       job.Repository
	reports    report.Repository
	complaints complaint.Repository
	stats      dashboard.StatsRepository
}

// NewService creates a new dashboard service
func NewService(
	jobs job.Repository,
	reports report.Repository,
	complaints complaint.Repository,
	stats dashboard.StatsRepository,
) *Service {
	return &Service{
		jobs:       jobs,
		reports:    reports,
		complaints: complaints,
		stats:      stats,
	}
}

// Overview builds the admin dashboard payload
func (s *Service) Overview(ctx context.Context) (*dashboard.Overview, error) {
	jobCounts, err := s.jobs.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	reportCounts, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	disabilityCounts, err := s.reports.CountByDisabilityType(ctx)
	if err != nil {
		return nil, err
	}

	complaintCounts, err := s.complaints.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.stats.ComplianceRows(ctx)
	if err != nil {
		return nil, err
	}

	topCompanies, err := s.stats.TopHiringCompanies(ctx, topCompaniesLimit)
	if err != nil {
		return nil, err
	}

	series, err := s.stats.MonthlyHiringSeries(ctx, hiringSeriesMonths)
	if err != nil {
		return nil, err
	}

	return &dashboard.Overview{
		Jobs:          jobCounts,
		Reports:       reportCounts,
		Disability:    disabilityCounts,
		Complaints:    complaintCounts,
		Quota:         summarizeQuota(rows),
		TopCompanies:  topCompanies,
		MonthlyHiring: series,
	}, nil
}

// summarizeQuota folds the per-company rows into the overview block
func summarizeQuota(rows []dashboard.ComplianceRow) dashboard.QuotaOverview {
	overview := dashboard.QuotaOverview{TrackedCompanies: len(rows)}
	if len(rows) == 0 {
		return overview
	}

	var totalPct float64
	for _, row := range rows {
		required := quota.RequiredFor(row.TotalEmployees)
		pct := compliancePercentage(row.EmployeesWithDisability, required)
		totalPct += pct

		switch {
		case required == 0:
			overview.Exempt++
		case pct >= 100:
			overview.Compliant++
		default:
			overview.NonCompliant++
		}
	}

	overview.AverageCompliance = math.Round(totalPct/float64(len(rows))*100) / 100
	return overview
}

func compliancePercentage(hired, required int) float64 {
	if required == 0 {
		return 100
	}
	return float64(hired) / float64(required) * 100
}

// ============================================================================
// Compliance Export
// ============================================================================

// ExportCompliance renders the quota standing of every tracked company
// as an XLSX workbook
func (s *Service) ExportCompliance(ctx context.Context) ([]byte, error) {
	rows, err := s.stats.ComplianceRows(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildWorkbook(rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func buildWorkbook(rows []dashboard.ComplianceRow) (*excelize.File, error) {
	f := excelize.NewFile()

	summarySheet := "Resumen"
	detailSheet := "Cumplimiento"

	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(detailSheet)

	if err := writeSummarySheet(f, summarySheet, rows); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to build summary sheet: %w", err)
	}
	if err := writeDetailSheet(f, detailSheet, rows); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to build detail sheet: %w", err)
	}
	return f, nil
}

func writeSummarySheet(f *excelize.File, sheetName string, rows []dashboard.ComplianceRow) error {
	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "B", 20)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	overview := summarizeQuota(rows)

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Cuota de Empleo Inclusivo - Ley 1618")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Generado:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), time.Now().Format("2006-01-02 15:04:05"))
	row++

	entries := []struct {
		label string
		value interface{}
	}{
		{"Empresas registradas:", overview.TrackedCompanies},
		{"En cumplimiento:", overview.Compliant},
		{"En incumplimiento:", overview.NonCompliant},
		{"Exentas (menos de 50 empleados):", overview.Exempt},
		{"Cumplimiento promedio:", fmt.Sprintf("%.2f%%", overview.AverageCompliance)},
	}
	for _, entry := range entries {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), entry.label)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), entry.value)
		row++
	}

	return nil
}

func writeDetailSheet(f *excelize.File, sheetName string, rows []dashboard.ComplianceRow) error {
	f.SetColWidth(sheetName, "A", "A", 40)
	f.SetColWidth(sheetName, "B", "E", 18)
	f.SetColWidth(sheetName, "F", "F", 16)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	compliantStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	nonCompliantStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})

	headers := []string{"Empresa", "Total empleados", "Contratados", "Cuota requerida", "Cumplimiento", "Estado"}
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, entry := range rows {
		row := i + 2
		required := quota.RequiredFor(entry.TotalEmployees)
		pct := compliancePercentage(entry.EmployeesWithDisability, required)

		status := "En cumplimiento"
		style := compliantStyle
		switch {
		case required == 0:
			status = "Exenta"
		case pct < 100:
			status = "En incumplimiento"
			style = nonCompliantStyle
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), entry.CompanyName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), entry.TotalEmployees)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), entry.EmployeesWithDisability)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), required)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("%.2f%%", pct))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), status)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), style)
	}

	if len(rows) > 0 {
		f.AutoFilter(sheetName, fmt.Sprintf("A1:F%d", len(rows)+1), []excelize.AutoFilterOptions{})
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}
