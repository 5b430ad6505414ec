package job

import (
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// AuditAction identifies what happened to a posting
type AuditAction string

const (
	AuditCreated          AuditAction = "created"
	AuditSubmitted        AuditAction = "submitted"
	AuditUpdated          AuditAction = "updated"
	AuditResubmitted      AuditAction = "resubmitted"
	AuditApproved         AuditAction = "approved"
	AuditRejected         AuditAction = "rejected"
	AuditChangesRequested AuditAction = "changes_requested"
	AuditDeactivated      AuditAction = "deactivated"
)

// AuditLog is an append-only record of a posting transition. Rows are never
// updated or deleted.
type AuditLog struct {
	ID        kernel.AuditLogID `db:"id" json:"id"`
	JobID     kernel.JobID      `db:"job_id" json:"job_id"`
	ActorID   kernel.UserID     `db:"actor_id" json:"actor_id"`
	Action    AuditAction       `db:"action" json:"action"`
	IPAddress string            `db:"ip_address" json:"ip_address"`
	Details   map[string]any    `db:"details" json:"details,omitempty"`
	Notes     string            `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// NewAuditLog builds an audit entry for a posting transition
func NewAuditLog(jobID kernel.JobID, actor kernel.UserID, action AuditAction, ip string, notes string, details map[string]any) *AuditLog {
	return &AuditLog{
		ID:        kernel.NewAuditLogID(uuid.NewString()),
		JobID:     jobID,
		ActorID:   actor,
		Action:    action,
		IPAddress: ip,
		Details:   details,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
}
