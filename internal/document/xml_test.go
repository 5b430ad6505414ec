package document

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

func sampleData() HiringReportData {
	jobID := kernel.JobID("job-1")
	r := &report.HiringReport{
		ID:                   kernel.ReportID("rep-1"),
		CompanyName:          "Inclusiva SAS",
		CompanyNIT:           kernel.NIT("900123456-7"),
		JobID:                &jobID,
		ContractNumber:       "CT-2026-001",
		ContractDate:         time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		PositionTitle:        "Analista de datos",
		DisabilityType:       kernel.DisabilityCodeTD01,
		DisabilityPercentage: 40,
	}
	r.GenerateSignature()
	return HiringReportData{
		Report:             r,
		RepresentativeName: "María Pérez",
		CompanyEmail:       "rrhh@inclusiva.co",
	}
}

func TestBuildHiringReportXML(t *testing.T) {
	data := sampleData()
	out, err := BuildHiringReportXML(data)
	if err != nil {
		t.Fatalf("BuildHiringReportXML() returned error: %v", err)
	}

	body := string(out)
	if !strings.HasPrefix(body, xml.Header) {
		t.Error("output must start with the XML declaration")
	}
	if !strings.Contains(body, SchemaNamespace) {
		t.Error("schema namespace missing")
	}

	var parsed struct {
		XMLName  xml.Name `xml:"InformeContratacion"`
		Version  string   `xml:"version,attr"`
		Empresa  struct {
			NIT string `xml:"NIT"`
		} `xml:"Empresa"`
		Contrato struct {
			NumeroContrato string `xml:"NumeroContrato"`
			FechaContrato  string `xml:"FechaContrato"`
		} `xml:"Contrato"`
		Discapacidad struct {
			TipoCodificado string `xml:"TipoCodificado"`
			Porcentaje     string `xml:"Porcentaje"`
		} `xml:"Discapacidad"`
		Seguridad struct {
			FirmaDigital string `xml:"FirmaDigital"`
			Algoritmo    string `xml:"Algoritmo"`
		} `xml:"Seguridad"`
	}
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}

	if parsed.Version != SchemaVersion {
		t.Errorf("version = %s, want %s", parsed.Version, SchemaVersion)
	}
	if parsed.Empresa.NIT != "900123456-7" {
		t.Errorf("NIT = %s", parsed.Empresa.NIT)
	}
	if parsed.Contrato.NumeroContrato != "CT-2026-001" {
		t.Errorf("contract = %s", parsed.Contrato.NumeroContrato)
	}
	if parsed.Contrato.FechaContrato != "2026-01-15" {
		t.Errorf("contract date = %s, want 2026-01-15", parsed.Contrato.FechaContrato)
	}
	if parsed.Discapacidad.TipoCodificado != "TD-01" {
		t.Errorf("disability code = %s, want TD-01", parsed.Discapacidad.TipoCodificado)
	}
	if parsed.Discapacidad.Porcentaje != "40" {
		t.Errorf("percentage = %s, want 40", parsed.Discapacidad.Porcentaje)
	}
	if parsed.Seguridad.Algoritmo != "SHA-256" {
		t.Errorf("algorithm = %s", parsed.Seguridad.Algoritmo)
	}
	if parsed.Seguridad.FirmaDigital != data.Report.DigitalSignature {
		t.Error("signature in XML does not match the report signature")
	}
}

func TestBuildHiringReportXML_Placeholders(t *testing.T) {
	data := sampleData()
	data.Report.JobID = nil
	data.Report.DisabilityPercentage = 0
	data.Report.Notes = ""

	out, err := BuildHiringReportXML(data)
	if err != nil {
		t.Fatalf("BuildHiringReportXML() returned error: %v", err)
	}

	body := string(out)
	if !strings.Contains(body, "<OfertaRelacionada>N/A</OfertaRelacionada>") {
		t.Error("missing job must render as N/A")
	}
	if !strings.Contains(body, "<Porcentaje>N/A</Porcentaje>") {
		t.Error("missing percentage must render as N/A")
	}
	if !strings.Contains(body, "Sin notas adicionales") {
		t.Error("empty notes must render the placeholder text")
	}
}

func TestBuildHiringReportPDF(t *testing.T) {
	out, err := BuildHiringReportPDF(sampleData())
	if err != nil {
		t.Fatalf("BuildHiringReportPDF() returned error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty PDF output")
	}
	if !strings.HasPrefix(string(out[:5]), "%PDF-") {
		t.Error("output does not look like a PDF")
	}
}
