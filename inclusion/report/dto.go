package report

import (
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// CreateReportRequest - DTO for registering a hire
type CreateReportRequest struct {
	JobID                *kernel.JobID         `json:"job_id,omitempty"`
	ContractNumber       string                `json:"contract_number" validate:"required"`
	ContractDate         time.Time             `json:"contract_date" validate:"required"`
	PositionTitle        string                `json:"position_title" validate:"required"`
	DisabilityType       kernel.DisabilityCode `json:"disability_type" validate:"required"`
	DisabilityPercentage int                   `json:"disability_percentage,omitempty"`
	Notes                string                `json:"notes,omitempty"`

	// Async=true enqueues delivery instead of running it inline
	Async bool `json:"async,omitempty"`
}

// UpdateReportRequest - DTO for editing an unsent report
type UpdateReportRequest struct {
	ContractNumber       *string                `json:"contract_number,omitempty"`
	ContractDate         *time.Time             `json:"contract_date,omitempty"`
	PositionTitle        *string                `json:"position_title,omitempty"`
	DisabilityType       *kernel.DisabilityCode `json:"disability_type,omitempty"`
	DisabilityPercentage *int                   `json:"disability_percentage,omitempty"`
	Notes                *string                `json:"notes,omitempty"`
}

// SendResult is the outcome of running the delivery pipeline once
type SendResult struct {
	Success       bool   `json:"success"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
	WillRetry     bool   `json:"will_retry"`
}

// RetryOutcome is one entry of a batch retry run
type RetryOutcome struct {
	ReportID       kernel.ReportID `json:"report_id"`
	ContractNumber string          `json:"contract_number"`
	Result         *SendResult     `json:"result"`
}

// Envelope is the JSON wrapper of the send and retry endpoints
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
