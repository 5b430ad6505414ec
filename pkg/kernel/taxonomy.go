package kernel

// DisabilityCategory is the public taxonomy used in candidate profiles and
// job postings. It is intentionally separate from DisabilityCode, which is
// what leaves the platform in ministry reports.
type DisabilityCategory string

const (
	DisabilityVisual       DisabilityCategory = "visual"
	DisabilityHearing      DisabilityCategory = "hearing"
	DisabilityPhysical     DisabilityCategory = "physical"
	DisabilityCognitive    DisabilityCategory = "cognitive"
	DisabilityIntellectual DisabilityCategory = "intellectual"
	DisabilityPsychosocial DisabilityCategory = "psychosocial"
	DisabilityMultiple     DisabilityCategory = "multiple"
	DisabilityAll          DisabilityCategory = "all"
)

// IsValid reports whether the category is part of the public taxonomy.
func (d DisabilityCategory) IsValid() bool {
	switch d {
	case DisabilityVisual, DisabilityHearing, DisabilityPhysical,
		DisabilityCognitive, DisabilityIntellectual, DisabilityPsychosocial,
		DisabilityMultiple, DisabilityAll:
		return true
	}
	return false
}

// GetDisplayName retorna la descripción en español usada en la interfaz.
func (d DisabilityCategory) GetDisplayName() string {
	switch d {
	case DisabilityVisual:
		return "Discapacidad visual"
	case DisabilityHearing:
		return "Discapacidad auditiva"
	case DisabilityPhysical:
		return "Discapacidad física/motriz"
	case DisabilityCognitive:
		return "Discapacidad cognitiva"
	case DisabilityIntellectual:
		return "Discapacidad intelectual"
	case DisabilityPsychosocial:
		return "Discapacidad psicosocial"
	case DisabilityMultiple:
		return "Discapacidad múltiple"
	case DisabilityAll:
		return "Todas las discapacidades"
	default:
		return "Desconocido"
	}
}
