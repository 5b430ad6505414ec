package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// CertificateData describes a completed course certificate
type CertificateData struct {
	CertificateNumber string
	StudentName       string
	CourseTitle       string
	DurationHours     int
	CompletedAt       time.Time
}

// BuildCertificatePDF renders a landscape course completion certificate
func BuildCertificatePDF(data CertificateData) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetDrawColor(26, 84, 144)
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, 259, 196, "D")

	pdf.SetY(40)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(26, 84, 144)
	pdf.CellFormat(0, 14, tr("CERTIFICADO DE FINALIZACIÓN"), "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, tr("Se certifica que"), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(data.StudentName), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr("completó satisfactoriamente el curso"), "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(data.CourseTitle), "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Duración: %d horas", data.DurationHours)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Fecha de finalización: %s", data.CompletedAt.Format("02/01/2006"))), "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Certificado No. %s", data.CertificateNumber)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr("Plataforma de Inclusión Laboral - Ley 1618 de 2013"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate pdf: %w", err)
	}
	return buf.Bytes(), nil
}
