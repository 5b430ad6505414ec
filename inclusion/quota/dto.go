package quota

// UpdateEmployeeCountRequest - DTO for the self-reported workforce size
type UpdateEmployeeCountRequest struct {
	TotalEmployees int `json:"total_employees" validate:"required"`
}

// QuotaStatusResponse - DTO pairing the quota row with derived figures
type QuotaStatusResponse struct {
	Quota                *EmploymentQuota `json:"quota"`
	RequiredEmployees    int              `json:"required_employees"`
	CompliancePercentage float64          `json:"compliance_percentage"`
	Compliant            bool             `json:"compliant"`
	Exempt               bool             `json:"exempt"`
}

// ToStatusResponse derives the reported figures from a quota row
func ToStatusResponse(q *EmploymentQuota) *QuotaStatusResponse {
	return &QuotaStatusResponse{
		Quota:                q,
		RequiredEmployees:    q.RequiredEmployeesWithDisability(),
		CompliancePercentage: q.CompliancePercentage(),
		Compliant:            q.IsCompliant(),
		Exempt:               q.TotalEmployees < MinEmployeesForQuota,
	}
}

// Envelope is the JSON wrapper of the employee-count endpoint
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
