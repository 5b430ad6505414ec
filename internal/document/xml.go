package document

import (
	"encoding/xml"
	"fmt"
	"time"
)

// Namespace and version of the ministry submission schema
const (
	SchemaNamespace = "http://www.mintrabajo.gov.co/schemas/contratacion"
	SchemaVersion   = "1.0"
	documentType    = "INFORME_CONTRATACION_DISCAPACIDAD"
)

// cdataValue wraps free text so it is emitted inside a CDATA section
type cdataValue struct {
	Value string `xml:",cdata"`
}

type xmlMetadatos struct {
	FechaGeneracion string `xml:"FechaGeneracion"`
	Version         string `xml:"Version"`
	TipoDocumento   string `xml:"TipoDocumento"`
}

type xmlEmpresa struct {
	RazonSocial        cdataValue `xml:"RazonSocial"`
	NIT                string     `xml:"NIT"`
	RepresentanteLegal cdataValue `xml:"RepresentanteLegal"`
	CorreoElectronico  string     `xml:"CorreoElectronico"`
}

type xmlContrato struct {
	NumeroContrato    string     `xml:"NumeroContrato"`
	FechaContrato     string     `xml:"FechaContrato"`
	CargoEmpleado     cdataValue `xml:"CargoEmpleado"`
	OfertaRelacionada string     `xml:"OfertaRelacionada"`
}

type xmlDiscapacidad struct {
	TipoCodificado  string     `xml:"TipoCodificado"`
	DescripcionTipo cdataValue `xml:"DescripcionTipo"`
	Porcentaje      string     `xml:"Porcentaje"`
}

type xmlSeguridad struct {
	FirmaDigital string `xml:"FirmaDigital"`
	Algoritmo    string `xml:"Algoritmo"`
	FechaFirma   string `xml:"FechaFirma"`
}

type xmlInforme struct {
	XMLName          xml.Name        `xml:"InformeContratacion"`
	Namespace        string          `xml:"xmlns,attr"`
	Version          string          `xml:"version,attr"`
	Metadatos        xmlMetadatos    `xml:"Metadatos"`
	Empresa          xmlEmpresa      `xml:"Empresa"`
	Contrato         xmlContrato     `xml:"Contrato"`
	Discapacidad     xmlDiscapacidad `xml:"Discapacidad"`
	Seguridad        xmlSeguridad    `xml:"Seguridad"`
	NotasAdicionales cdataValue      `xml:"NotasAdicionales"`
}

// BuildHiringReportXML renders the standardized ministry submission XML
func BuildHiringReportXML(data HiringReportData) ([]byte, error) {
	r := data.Report
	now := time.Now()

	relatedJob := "N/A"
	if r.JobID != nil {
		relatedJob = r.JobID.String()
	}

	percentage := "N/A"
	if r.DisabilityPercentage > 0 {
		percentage = fmt.Sprintf("%d", r.DisabilityPercentage)
	}

	notes := r.Notes
	if notes == "" {
		notes = "Sin notas adicionales"
	}

	informe := xmlInforme{
		Namespace: SchemaNamespace,
		Version:   SchemaVersion,
		Metadatos: xmlMetadatos{
			FechaGeneracion: now.Format(time.RFC3339),
			Version:         SchemaVersion,
			TipoDocumento:   documentType,
		},
		Empresa: xmlEmpresa{
			RazonSocial:        cdataValue{Value: r.CompanyName},
			NIT:                r.CompanyNIT.String(),
			RepresentanteLegal: cdataValue{Value: data.RepresentativeName},
			CorreoElectronico:  data.CompanyEmail,
		},
		Contrato: xmlContrato{
			NumeroContrato:    r.ContractNumber,
			FechaContrato:     r.ContractDate.Format("2006-01-02"),
			CargoEmpleado:     cdataValue{Value: r.PositionTitle},
			OfertaRelacionada: relatedJob,
		},
		Discapacidad: xmlDiscapacidad{
			TipoCodificado:  string(r.DisabilityType),
			DescripcionTipo: cdataValue{Value: r.DisabilityType.GetDisplayName()},
			Porcentaje:      percentage,
		},
		Seguridad: xmlSeguridad{
			FirmaDigital: r.DigitalSignature,
			Algoritmo:    "SHA-256",
			FechaFirma:   now.Format(time.RFC3339),
		},
		NotasAdicionales: cdataValue{Value: notes},
	}

	body, err := xml.MarshalIndent(informe, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report xml: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}
