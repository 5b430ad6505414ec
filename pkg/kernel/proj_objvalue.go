package kernel

import "strings"

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1 && strings.IndexByte(s[at+1:], '.') > 0
}

type Phone string

func (p Phone) String() string { return string(p) }

type FirstName string

type LastName string

type JobTitle string

type JobDescription string

type BucketURL string

// NIT es el Número de Identificación Tributaria colombiano. El formato se
// valida de forma laxa: 8 a 10 dígitos con dígito de verificación opcional
// separado por guion (p. ej. "900123456-7").
type NIT string

func (n NIT) String() string { return string(n) }

// IsValid acepta "123456789", "900123456-7" y variantes con puntos de miles.
func (n NIT) IsValid() bool {
	s := strings.NewReplacer(".", "", " ", "").Replace(string(n))
	base := s
	if i := strings.IndexByte(s, '-'); i >= 0 {
		base = s[:i]
		check := s[i+1:]
		if len(check) != 1 || !isNumeric(check) {
			return false
		}
	}
	return len(base) >= 8 && len(base) <= 10 && isNumeric(base)
}

// DisabilityCode es el tipo de discapacidad codificado que viaja en los
// informes al Ministerio. Son códigos opacos, deliberadamente desacoplados
// de la taxonomía pública de discapacidad usada en perfiles y ofertas, para
// proteger datos sensibles del empleado (Ley 1581 de 2012).
type DisabilityCode string

const (
	DisabilityCodeTD01 DisabilityCode = "TD-01"
	DisabilityCodeTD02 DisabilityCode = "TD-02"
	DisabilityCodeTD03 DisabilityCode = "TD-03"
	DisabilityCodeTD04 DisabilityCode = "TD-04"
	DisabilityCodeTD05 DisabilityCode = "TD-05"
	DisabilityCodeTD06 DisabilityCode = "TD-06"
	DisabilityCodeTD07 DisabilityCode = "TD-07"
)

// AllDisabilityCodes lists every accepted code, in declaration order.
var AllDisabilityCodes = []DisabilityCode{
	DisabilityCodeTD01,
	DisabilityCodeTD02,
	DisabilityCodeTD03,
	DisabilityCodeTD04,
	DisabilityCodeTD05,
	DisabilityCodeTD06,
	DisabilityCodeTD07,
}

// IsValid reports whether the code is one of the seven accepted values.
func (d DisabilityCode) IsValid() bool {
	for _, c := range AllDisabilityCodes {
		if c == d {
			return true
		}
	}
	return false
}

// GetDisplayName retorna la descripción oficial del código.
func (d DisabilityCode) GetDisplayName() string {
	switch d {
	case DisabilityCodeTD01:
		return "Tipo codificado 01 - Sensorial visual"
	case DisabilityCodeTD02:
		return "Tipo codificado 02 - Sensorial auditiva"
	case DisabilityCodeTD03:
		return "Tipo codificado 03 - Física o motriz"
	case DisabilityCodeTD04:
		return "Tipo codificado 04 - Cognitiva"
	case DisabilityCodeTD05:
		return "Tipo codificado 05 - Intelectual"
	case DisabilityCodeTD06:
		return "Tipo codificado 06 - Psicosocial"
	case DisabilityCodeTD07:
		return "Tipo codificado 07 - Múltiple"
	default:
		return "Desconocido"
	}
}

// Helper function
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
