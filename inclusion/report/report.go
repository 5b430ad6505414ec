package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// ReportStatus represents the lifecycle state of a hiring report
type ReportStatus string

const (
	StatusPending   ReportStatus = "PENDING"   // Created, never delivered
	StatusSent      ReportStatus = "SENT"      // Delivery in flight
	StatusConfirmed ReportStatus = "CONFIRMED" // Accepted by the ministry, terminal
	StatusFailed    ReportStatus = "FAILED"    // Out of attempts, terminal until manual retry
	StatusRetry     ReportStatus = "RETRY"     // Failed delivery with attempts left
)

// MaxRetries is the delivery attempt cap mandated by the reporting procedure
const MaxRetries = 3

// HiringReport is one hire of a person with a disability, reported to the
// Ministerio de Trabajo under Ley 2466. Disability data is carried only as
// the coded type, never free text, per Ley 1581 data protection.
type HiringReport struct {
	ID        kernel.ReportID `db:"id" json:"id"`
	CompanyID kernel.UserID   `db:"company_id" json:"company_id"`
	JobID     *kernel.JobID   `db:"job_id" json:"job_id,omitempty"`

	// Company identity frozen at report time
	CompanyName string     `db:"company_name" json:"company_name"`
	CompanyNIT  kernel.NIT `db:"company_nit" json:"company_nit"`

	ContractNumber string    `db:"contract_number" json:"contract_number"`
	ContractDate   time.Time `db:"contract_date" json:"contract_date"`
	PositionTitle  string    `db:"position_title" json:"position_title"`

	DisabilityType       kernel.DisabilityCode `db:"disability_type" json:"disability_type"`
	DisabilityPercentage int                   `db:"disability_percentage" json:"disability_percentage,omitempty"`
	Notes                string                `db:"notes" json:"notes,omitempty"`

	Status     ReportStatus `db:"status" json:"status"`
	RetryCount int          `db:"retry_count" json:"retry_count"`
	LastRetry  *time.Time   `db:"last_retry_at" json:"last_retry_at,omitempty"`

	MinistryReceiptNumber string `db:"ministry_receipt_number" json:"ministry_receipt_number,omitempty"`
	// Opaque ministry payload, stored as delivered
	MinistryResponse map[string]any `db:"ministry_response" json:"ministry_response,omitempty"`

	DigitalSignature string `db:"digital_signature" json:"digital_signature,omitempty"`

	PDFPath string `db:"pdf_path" json:"pdf_path,omitempty"`
	XMLPath string `db:"xml_path" json:"xml_path,omitempty"`

	// Append-only; entries are never rewritten
	ErrorLog string `db:"error_log" json:"error_log,omitempty"`

	SentAt      *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	ConfirmedAt *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsConfirmed checks if the report reached its terminal accepted state
func (r *HiringReport) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// CanSend checks if the delivery pipeline may run for this report
func (r *HiringReport) CanSend() bool {
	switch r.Status {
	case StatusPending, StatusFailed, StatusRetry:
		return true
	}
	return false
}

// CanRetry checks if another delivery attempt is allowed
func (r *HiringReport) CanRetry() bool {
	return r.RetryCount < MaxRetries
}

// GenerateSignature computes and stores the report signature. It is the hex
// SHA-256 of nit + contract number + contract date (YYYY-MM-DD) + coded
// disability type. Simulated signing, not real cryptographic identity.
func (r *HiringReport) GenerateSignature() string {
	payload := fmt.Sprintf("%s%s%s%s",
		r.CompanyNIT.String(),
		r.ContractNumber,
		r.ContractDate.Format("2006-01-02"),
		r.DisabilityType,
	)
	sum := sha256.Sum256([]byte(payload))
	r.DigitalSignature = hex.EncodeToString(sum[:])
	return r.DigitalSignature
}

// MarkSent records that delivery started
func (r *HiringReport) MarkSent() {
	now := time.Now()
	r.Status = StatusSent
	r.SentAt = &now
	r.UpdatedAt = now
}

// MarkConfirmed records ministry acceptance. Terminal; receipt data is
// never overwritten afterwards.
func (r *HiringReport) MarkConfirmed(receiptNumber string, response map[string]any) error {
	if r.IsConfirmed() {
		return ErrAlreadyConfirmed().WithDetail("receipt_number", r.MinistryReceiptNumber)
	}

	now := time.Now()
	r.Status = StatusConfirmed
	r.MinistryReceiptNumber = receiptNumber
	r.MinistryResponse = response
	r.ConfirmedAt = &now
	r.UpdatedAt = now
	return nil
}

// IncrementRetry records a failed attempt. The report stays in RETRY while
// attempts remain; the attempt that reaches the cap lands it in FAILED.
func (r *HiringReport) IncrementRetry() error {
	if !r.CanRetry() {
		return ErrRetriesExhausted().WithDetail("retry_count", r.RetryCount)
	}

	now := time.Now()
	r.RetryCount++
	if r.RetryCount >= MaxRetries {
		r.Status = StatusFailed
	} else {
		r.Status = StatusRetry
	}
	r.LastRetry = &now
	r.UpdatedAt = now
	return nil
}

// MarkFailed records a terminal failure and appends to the error log
func (r *HiringReport) MarkFailed(reason string) {
	r.Status = StatusFailed
	r.AppendError(reason)
	r.UpdatedAt = time.Now()
}

// AppendError appends a timestamped line to the error log. Existing lines
// are kept untouched.
func (r *HiringReport) AppendError(message string) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format(time.RFC3339), message)
	if r.ErrorLog == "" {
		r.ErrorLog = line
		return
	}
	r.ErrorLog = r.ErrorLog + "\n" + line
}

// Validate checks the report fields before persistence
func (r *HiringReport) Validate() error {
	if strings.TrimSpace(r.ContractNumber) == "" {
		return ErrInvalidReport().WithDetail("field", "contract_number")
	}
	if r.ContractDate.IsZero() {
		return ErrInvalidReport().WithDetail("field", "contract_date")
	}
	if r.ContractDate.After(time.Now()) {
		return ErrContractDateInFuture().WithDetail("contract_date", r.ContractDate.Format("2006-01-02"))
	}
	if strings.TrimSpace(r.PositionTitle) == "" {
		return ErrInvalidReport().WithDetail("field", "position_title")
	}
	if !r.DisabilityType.IsValid() {
		return ErrInvalidDisabilityType().WithDetail("disability_type", string(r.DisabilityType))
	}
	if r.DisabilityPercentage != 0 && (r.DisabilityPercentage < 1 || r.DisabilityPercentage > 100) {
		return ErrInvalidReport().WithDetail("field", "disability_percentage")
	}
	if !r.CompanyNIT.IsValid() {
		return ErrInvalidReport().WithDetail("field", "company_nit")
	}
	return nil
}
