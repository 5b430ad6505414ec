package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/incluempleo/vinculo/inclusion/report"
)

// HiringReportData bundles a report with the company display fields the
// documents need but the report row does not carry.
type HiringReportData struct {
	Report             *report.HiringReport
	RepresentativeName string
	CompanyEmail       string
	JobTitle           string
}

// statusDisplay maps report statuses to the Spanish labels the documents use
func statusDisplay(s report.ReportStatus) string {
	switch s {
	case report.StatusPending:
		return "Pendiente de envío"
	case report.StatusSent:
		return "Enviado"
	case report.StatusConfirmed:
		return "Confirmado por el Ministerio"
	case report.StatusFailed:
		return "Fallido"
	case report.StatusRetry:
		return "En reintento"
	}
	return string(s)
}

// BuildHiringReportPDF renders the letter-format report document: ministry
// header, company section, contract section, coded disability section,
// optional notes and the signature block.
func BuildHiringReportPDF(data HiringReportData) ([]byte, error) {
	r := data.Report

	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	title := func(text string) {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.SetTextColor(26, 84, 144)
		pdf.CellFormat(0, 10, tr(text), "", 1, "C", false, 0, "")
	}
	heading := func(text string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(26, 84, 144)
		pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	row := func(label, value string, fillR, fillG, fillB int) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(fillR, fillG, fillB)
		pdf.SetDrawColor(128, 128, 128)
		pdf.CellFormat(55, 8, tr(label), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 8, tr(value), "1", 1, "L", false, 0, "")
	}

	now := time.Now()

	title("REPÚBLICA DE COLOMBIA")
	title("MINISTERIO DE TRABAJO")
	pdf.Ln(6)

	heading("INFORME DE CONTRATACIÓN")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, tr("Ley 2466 de 2025 - Inclusión Laboral de Personas con Discapacidad"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	receipt := r.MinistryReceiptNumber
	if receipt == "" {
		receipt = "Pendiente de asignación"
	}
	row("Número de Radicado:", receipt, 232, 244, 248)
	row("Fecha de Generación:", now.Format("02/01/2006 15:04:05"), 232, 244, 248)
	row("Estado:", statusDisplay(r.Status), 232, 244, 248)

	heading("1. INFORMACIÓN DE LA EMPRESA")
	row("Razón Social:", r.CompanyName, 240, 240, 240)
	row("NIT:", r.CompanyNIT.String(), 240, 240, 240)
	row("Representante Legal:", data.RepresentativeName, 240, 240, 240)
	row("Correo Electrónico:", data.CompanyEmail, 240, 240, 240)

	heading("2. INFORMACIÓN DEL CONTRATO")
	jobTitle := data.JobTitle
	if jobTitle == "" {
		jobTitle = "No especificada"
	}
	row("Número de Contrato:", r.ContractNumber, 240, 240, 240)
	row("Fecha de Contrato:", r.ContractDate.Format("02/01/2006"), 240, 240, 240)
	row("Cargo:", r.PositionTitle, 240, 240, 240)
	row("Oferta Relacionada:", jobTitle, 240, 240, 240)

	heading("3. INFORMACIÓN DE DISCAPACIDAD (CODIFICADA)")
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(0, 4, tr("Nota: La información de discapacidad ha sido codificada para proteger la privacidad del empleado según la Ley 1581 de 2012 (Protección de Datos Personales)."), "", "L", false)
	pdf.Ln(2)

	percentage := "No especificado"
	if r.DisabilityPercentage > 0 {
		percentage = fmt.Sprintf("%d%%", r.DisabilityPercentage)
	}
	row("Tipo de Discapacidad (Codificado):", r.DisabilityType.GetDisplayName(), 255, 249, 230)
	row("Código de Tipo:", string(r.DisabilityType), 255, 249, 230)
	row("Porcentaje de Discapacidad:", percentage, 255, 249, 230)

	if r.Notes != "" {
		heading("4. NOTAS ADICIONALES")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 5, tr(r.Notes), "", "L", false)
	}

	heading("CERTIFICACIÓN DIGITAL")
	signature := r.DigitalSignature
	if len(signature) > 64 {
		signature = signature[:64] + "..."
	}
	row("Algoritmo:", "SHA-256", 232, 248, 232)
	row("Firma Digital:", signature, 232, 248, 232)
	row("Fecha de Firma:", now.Format("02/01/2006 15:04:05"), 232, 248, 232)

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 4, tr("Este documento ha sido generado electrónicamente y cuenta con firma digital."), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, tr("Ministerio de Trabajo - República de Colombia | Carrera 14 No. 99-33 Bogotá D.C. | www.mintrabajo.gov.co"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}
