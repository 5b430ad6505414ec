package interviewsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/inclusion/interview"
	"github.com/incluempleo/vinculo/inclusion/user"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

const defaultDurationMinutes = 60

// Service handles interview scheduling between companies and candidates
type Service struct {
	repo  interview.Repository
	users user.Repository
}

// NewService creates a new interview service
func NewService(repo interview.Repository, users user.Repository) *Service {
	return &Service{
		repo:  repo,
		users: users,
	}
}

// ProposeInterview creates a PROPOSED interview. Only companies
// propose; the proposal counts as the company's confirmation.
func (s *Service) ProposeInterview(ctx context.Context, companyID kernel.UserID, req interview.ProposeInterviewRequest) (*interview.Interview, error) {
	company, err := s.users.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !company.IsCompany() {
		return nil, interview.ErrInvalidInterview().WithDetail("reason", "only companies propose interviews")
	}

	candidate, err := s.users.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if !candidate.IsCandidate() {
		return nil, interview.ErrInvalidInterview().WithDetail("reason", "recipient is not a candidate")
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = defaultDurationMinutes
	}

	now := time.Now()
	i := &interview.Interview{
		ID:                   kernel.NewInterviewID(uuid.NewString()),
		CompanyID:            companyID,
		CandidateID:          req.CandidateID,
		Title:                req.Title,
		Description:          req.Description,
		JobTitle:             req.JobTitle,
		ScheduledAt:          req.ScheduledAt,
		DurationMinutes:      duration,
		Type:                 req.Type,
		Platform:             req.Platform,
		MeetingURL:           req.MeetingURL,
		MeetingID:            req.MeetingID,
		LocationAddress:      req.LocationAddress,
		LocationInstructions: req.LocationInstructions,
		Accessibility:        req.Accessibility,
		Status:               interview.StatusProposed,
		CompanyConfirmed:     true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := i.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	logx.Infof("Interview %s proposed by %s to %s for %s", i.ID, companyID, req.CandidateID, i.ScheduledAt.Format(time.RFC3339))
	return i, nil
}

// GetInterview retrieves an interview the caller participates in
func (s *Service) GetInterview(ctx context.Context, id kernel.InterviewID, userID kernel.UserID) (*interview.Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !i.IsParticipant(userID) {
		return nil, interview.ErrNotParticipant()
	}
	return i, nil
}

// ListInterviews retrieves the caller's interviews, soonest first
func (s *Service) ListInterviews(ctx context.Context, userID kernel.UserID, filters interview.ListFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	return s.repo.ListByParticipant(ctx, userID, filters, pagination)
}

// ConfirmInterview records the caller's confirmation
func (s *Service) ConfirmInterview(ctx context.Context, id kernel.InterviewID, userID kernel.UserID) (*interview.Interview, error) {
	i, err := s.GetInterview(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := i.ConfirmBy(userID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, i); err != nil {
		return nil, err
	}

	if i.Status == interview.StatusConfirmed {
		logx.Infof("Interview %s confirmed by both sides", i.ID)
	}
	return i, nil
}

// CancelInterview calls an interview off; either participant may
func (s *Service) CancelInterview(ctx context.Context, id kernel.InterviewID, userID kernel.UserID, req interview.CancelRequest) (*interview.Interview, error) {
	i, err := s.GetInterview(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := i.Cancel(userID, req.Reason); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, i); err != nil {
		return nil, err
	}

	logx.Infof("Interview %s cancelled by %s", i.ID, userID)
	return i, nil
}

// RescheduleInterview moves the interview to a new slot. Only the
// company reschedules; the candidate must confirm again.
func (s *Service) RescheduleInterview(ctx context.Context, id kernel.InterviewID, userID kernel.UserID, req interview.RescheduleRequest) (*interview.Interview, error) {
	i, err := s.GetInterview(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if i.CompanyID != userID {
		return nil, interview.ErrNotParticipant().WithDetail("reason", "only the company reschedules")
	}

	if err := i.Reschedule(req.ScheduledAt); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, i); err != nil {
		return nil, err
	}

	logx.Infof("Interview %s rescheduled to %s", i.ID, i.ScheduledAt.Format(time.RFC3339))
	return i, nil
}

// CompleteInterview closes a confirmed interview after it took place
func (s *Service) CompleteInterview(ctx context.Context, id kernel.InterviewID, userID kernel.UserID) (*interview.Interview, error) {
	i, err := s.GetInterview(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := i.Complete(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, i); err != nil {
		return nil, err
	}
	return i, nil
}
