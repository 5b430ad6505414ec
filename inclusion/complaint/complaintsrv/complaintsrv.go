package complaintsrv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/inclusion/complaint"
	"github.com/incluempleo/vinculo/pkg/fsx"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

const evidenceDir = "complaints/evidence"

// Evidence is an uploaded attachment supporting a complaint
type Evidence struct {
	Filename string
	Data     []byte
}

// Service handles complaint intake and triage
type Service struct {
	repo    complaint.Repository
	history complaint.HistoryRepository
	files   fsx.FileSystem
}

// NewService creates a new complaint service
func NewService(repo complaint.Repository, history complaint.HistoryRepository, files fsx.FileSystem) *Service {
	return &Service{
		repo:    repo,
		history: history,
		files:   files,
	}
}

// FileComplaint registers a new complaint. It needs no authenticated
// user; complainantID is set when the filer happens to be logged in and
// did not ask for anonymity.
func (s *Service) FileComplaint(ctx context.Context, req complaint.FileComplaintRequest, complainantID *kernel.UserID, evidence []Evidence, ipAddress, userAgent string) (*complaint.FiledResponse, error) {
	if len(evidence) > complaint.MaxEvidenceFiles {
		return nil, complaint.ErrTooMuchEvidence().
			WithDetail("max", complaint.MaxEvidenceFiles).
			WithDetail("got", len(evidence))
	}

	now := time.Now()
	c := &complaint.Complaint{
		ID:            kernel.NewComplaintID(uuid.NewString()),
		TrackingCode:  complaint.NewTrackingCode(now),
		Type:          req.Type,
		Subject:       req.Subject,
		Description:   req.Description,
		CompanyName:   req.CompanyName,
		JobPostingURL: req.JobPostingURL,
		IsAnonymous:   req.IsAnonymous,
		Status:        complaint.StatusReceived,
		Priority:      req.Priority,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if c.Priority == 0 {
		c.Priority = complaint.PriorityMedium
	}
	if !req.IsAnonymous {
		c.ComplainantID = complainantID
		c.ComplainantName = req.ComplainantName
		c.ComplainantEmail = req.ComplainantEmail
		c.ComplainantPhone = req.ComplainantPhone
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	for i, ev := range evidence {
		path := s.files.Join(evidenceDir, string(c.ID), fmt.Sprintf("%d%s", i+1, sanitizeExt(ev.Filename)))
		if err := s.files.WriteFile(ctx, path, ev.Data); err != nil {
			return nil, fmt.Errorf("failed to store evidence file: %w", err)
		}
		c.EvidencePaths = append(c.EvidencePaths, path)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, c, "", complaint.StatusReceived, nil, "Queja radicada")

	logx.Infof("Complaint filed: %s (%s, priority %d)", c.TrackingCode, c.Type, c.Priority)

	return &complaint.FiledResponse{
		TrackingCode: c.TrackingCode,
		Status:       string(c.Status),
		FiledAt:      c.CreatedAt,
		Message:      "Su queja ha sido radicada. Conserve el código de seguimiento para consultar su estado.",
	}, nil
}

// CheckStatus is the public tracking-code lookup. It never exposes the
// complainant identity or the filing audit fields.
func (s *Service) CheckStatus(ctx context.Context, trackingCode string) (*complaint.StatusCheckResponse, error) {
	c, err := s.repo.GetByTrackingCode(ctx, strings.ToUpper(strings.TrimSpace(trackingCode)))
	if err != nil {
		return nil, err
	}

	history, err := s.history.ListByComplaint(ctx, c.ID)
	if err != nil {
		logx.Errorf("Failed to load history for complaint %s: %v", c.ID, err)
		history = nil
	}
	// The public view carries status transitions only, not who made them
	for i := range history {
		history[i].ActorID = nil
	}

	return &complaint.StatusCheckResponse{
		TrackingCode:  c.TrackingCode,
		Type:          c.Type,
		Subject:       c.Subject,
		Status:        c.Status,
		AdminResponse: c.AdminResponse,
		FiledAt:       c.CreatedAt,
		ResolvedAt:    c.ResolvedAt,
		History:       history,
	}, nil
}

// GetComplaint retrieves a complaint with full detail for admins
func (s *Service) GetComplaint(ctx context.Context, id kernel.ComplaintID) (*complaint.Complaint, error) {
	return s.repo.GetByID(ctx, id)
}

// ListComplaints lists complaints for triage, urgent first
func (s *Service) ListComplaints(ctx context.Context, filters complaint.TriageFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[complaint.Complaint], error) {
	return s.repo.List(ctx, filters, pagination)
}

// GetHistory retrieves the status history of a complaint
func (s *Service) GetHistory(ctx context.Context, id kernel.ComplaintID) ([]complaint.StatusChange, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.history.ListByComplaint(ctx, id)
}

// ChangeStatus moves a complaint through its status machine. Dismissing
// requires a reason.
func (s *Service) ChangeStatus(ctx context.Context, id kernel.ComplaintID, adminID kernel.UserID, req complaint.ChangeStatusRequest) (*complaint.Complaint, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status == complaint.StatusDismissed && strings.TrimSpace(req.Reason) == "" {
		return nil, complaint.ErrReasonRequired()
	}

	previous := c.Status
	if err := c.TransitionTo(req.Status); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, c); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, c, previous, c.Status, &adminID, req.Reason)

	logx.Infof("Complaint %s moved %s -> %s by %s", c.TrackingCode, previous, c.Status, adminID)
	return c, nil
}

// Assign hands a complaint to an admin, moving it into review when it
// is still freshly received
func (s *Service) Assign(ctx context.Context, id kernel.ComplaintID, actorID kernel.UserID, req complaint.AssignRequest) (*complaint.Complaint, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := c.Status
	if err := c.Assign(req.AdminID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, c); err != nil {
		return nil, err
	}

	if c.Status != previous {
		s.appendHistory(ctx, c, previous, c.Status, &actorID, "Asignada para revisión")
	}

	return c, nil
}

// Respond records the admin response shown on the public status lookup
func (s *Service) Respond(ctx context.Context, id kernel.ComplaintID, adminID kernel.UserID, req complaint.RespondRequest) (*complaint.Complaint, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Response) == "" {
		return nil, complaint.ErrInvalidComplaint().WithDetail("field", "response")
	}

	c.AdminResponse = req.Response
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, c); err != nil {
		return nil, err
	}

	logx.Infof("Complaint %s responded by %s", c.TrackingCode, adminID)
	return c, nil
}

// GetEvidence streams one evidence file of a complaint
func (s *Service) GetEvidence(ctx context.Context, id kernel.ComplaintID, index int) ([]byte, string, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if index < 0 || index >= len(c.EvidencePaths) {
		return nil, "", complaint.ErrComplaintNotFound().WithDetail("evidence_index", index)
	}

	path := c.EvidencePaths[index]
	data, err := s.files.ReadFile(ctx, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read evidence file: %w", err)
	}
	return data, path, nil
}

// Stats counts complaints per status for the admin dashboard
func (s *Service) Stats(ctx context.Context) (map[complaint.ComplaintStatus]int64, error) {
	return s.repo.CountByStatus(ctx)
}

// appendHistory records a status transition. The transition itself is
// already committed, so a history failure is logged and swallowed.
func (s *Service) appendHistory(ctx context.Context, c *complaint.Complaint, previous, next complaint.ComplaintStatus, actorID *kernel.UserID, reason string) {
	change := &complaint.StatusChange{
		ID:          kernel.NewAuditLogID(uuid.NewString()),
		ComplaintID: c.ID,
		ActorID:     actorID,
		Previous:    previous,
		New:         next,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
	if err := s.history.Append(ctx, change); err != nil {
		logx.Errorf("Failed to append history for complaint %s: %v", c.ID, err)
	}
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf", ".png", ".jpg", ".jpeg", ".doc", ".docx":
		return ext
	default:
		return ".bin"
	}
}
