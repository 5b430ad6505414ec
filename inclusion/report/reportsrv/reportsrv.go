package reportsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/inclusion/job"
	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/inclusion/user"
	"github.com/incluempleo/vinculo/internal/document"
	"github.com/incluempleo/vinculo/pkg/fsx"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

const artifactDir = "reports"

// Service runs the hiring-report pipeline: artifact generation, signing,
// delivery to the ministry and the retry bookkeeping around it.
type Service struct {
	repo     report.Repository
	users    user.Repository
	jobs     job.Repository
	ministry report.MinistryClient
	files    fsx.FileSystem
	queue    report.Queue
}

// NewService creates a new report service
func NewService(
	repo report.Repository,
	users user.Repository,
	jobs job.Repository,
	ministry report.MinistryClient,
	files fsx.FileSystem,
	queue report.Queue,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		jobs:     jobs,
		ministry: ministry,
		files:    files,
		queue:    queue,
	}
}

// CreateReport registers a hire for the company. Company identity is frozen
// onto the row at creation time. With Async set the delivery is enqueued;
// otherwise the report stays PENDING until sent explicitly.
func (s *Service) CreateReport(ctx context.Context, req report.CreateReportRequest, companyID kernel.UserID) (*report.HiringReport, error) {
	company, err := s.users.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !company.IsCompany() {
		return nil, user.ErrNotACompany()
	}

	now := time.Now()
	r := &report.HiringReport{
		ID:                   kernel.NewReportID(uuid.NewString()),
		CompanyID:            companyID,
		JobID:                req.JobID,
		CompanyName:          company.CompanyName,
		CompanyNIT:           company.CompanyNIT,
		ContractNumber:       req.ContractNumber,
		ContractDate:         req.ContractDate,
		PositionTitle:        req.PositionTitle,
		DisabilityType:       req.DisabilityType,
		DisabilityPercentage: req.DisabilityPercentage,
		Notes:                req.Notes,
		Status:               report.StatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByContract(ctx, companyID, r.ContractNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, report.ErrDuplicateContract().WithDetail("contract_number", r.ContractNumber)
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	if req.Async && s.queue != nil {
		if err := s.queue.Enqueue(ctx, r.ID); err != nil {
			logx.Errorf("Failed to enqueue report %s: %v", r.ID.String(), err)
		}
	}

	return r, nil
}

// UpdateReport edits a report that has not been confirmed. Confirmed
// reports are immutable through the service.
func (s *Service) UpdateReport(ctx context.Context, id kernel.ReportID, companyID kernel.UserID, req report.UpdateReportRequest) (*report.HiringReport, error) {
	r, err := s.getOwned(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if r.IsConfirmed() {
		return nil, report.ErrAlreadyConfirmed()
	}

	if req.ContractNumber != nil && *req.ContractNumber != r.ContractNumber {
		exists, err := s.repo.ExistsByContract(ctx, companyID, *req.ContractNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, report.ErrDuplicateContract().WithDetail("contract_number", *req.ContractNumber)
		}
		r.ContractNumber = *req.ContractNumber
	}
	if req.ContractDate != nil {
		r.ContractDate = *req.ContractDate
	}
	if req.PositionTitle != nil {
		r.PositionTitle = *req.PositionTitle
	}
	if req.DisabilityType != nil {
		r.DisabilityType = *req.DisabilityType
	}
	if req.DisabilityPercentage != nil {
		r.DisabilityPercentage = *req.DisabilityPercentage
	}
	if req.Notes != nil {
		r.Notes = *req.Notes
	}
	r.UpdatedAt = time.Now()

	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetReport retrieves a report owned by the company
func (s *Service) GetReport(ctx context.Context, id kernel.ReportID, companyID kernel.UserID) (*report.HiringReport, error) {
	return s.getOwned(ctx, id, companyID)
}

// GetReportAdmin retrieves any report. Admin operation.
func (s *Service) GetReportAdmin(ctx context.Context, id kernel.ReportID) (*report.HiringReport, error) {
	return s.repo.GetByID(ctx, id)
}

// ListReports retrieves a company's reports
func (s *Service) ListReports(ctx context.Context, companyID kernel.UserID, filter report.StatusFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[report.HiringReport], error) {
	return s.repo.ListByCompany(ctx, companyID, filter, pagination)
}

// ListAllReports retrieves reports across companies. Admin operation.
func (s *Service) ListAllReports(ctx context.Context, filter report.StatusFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[report.HiringReport], error) {
	return s.repo.ListAll(ctx, filter, pagination)
}

// GenerateAndSendReport runs the full pipeline for one report: render PDF
// and XML, store them, sign, deliver and record the outcome. Any panic or
// unexpected error marks the report FAILED and surfaces a generic error;
// files already written are deliberately left in place.
func (s *Service) GenerateAndSendReport(ctx context.Context, id kernel.ReportID) (result *report.SendResult, err error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.IsConfirmed() {
		return nil, report.ErrAlreadyConfirmed().WithDetail("receipt_number", r.MinistryReceiptNumber)
	}
	if !r.CanSend() {
		return nil, report.ErrNotSendable().WithDetail("status", string(r.Status))
	}

	defer func() {
		if rec := recover(); rec != nil {
			msg := fmt.Sprintf("panic while processing report: %v", rec)
			logx.Errorf("Report %s: %s", id.String(), msg)
			s.failReport(ctx, r, msg)
			result = nil
			err = report.ErrSubmissionFailed()
		}
	}()

	data, err := s.documentData(ctx, r)
	if err != nil {
		s.failReport(ctx, r, fmt.Sprintf("failed to resolve document data: %v", err))
		return nil, report.ErrSubmissionFailed().WithCause(err)
	}

	pdfBytes, err := document.BuildHiringReportPDF(data)
	if err != nil {
		s.failReport(ctx, r, fmt.Sprintf("failed to render pdf: %v", err))
		return nil, report.ErrSubmissionFailed().WithCause(err)
	}

	xmlBytes, err := document.BuildHiringReportXML(data)
	if err != nil {
		s.failReport(ctx, r, fmt.Sprintf("failed to render xml: %v", err))
		return nil, report.ErrSubmissionFailed().WithCause(err)
	}

	stamp := time.Now().Format("20060102_150405")
	pdfPath := s.files.Join(artifactDir, fmt.Sprintf("informe_%s_%s.pdf", r.ContractNumber, stamp))
	xmlPath := s.files.Join(artifactDir, fmt.Sprintf("informe_%s_%s.xml", r.ContractNumber, stamp))

	if err := s.files.WriteFile(ctx, pdfPath, pdfBytes); err != nil {
		s.failReport(ctx, r, fmt.Sprintf("failed to store pdf: %v", err))
		return nil, report.ErrSubmissionFailed().WithCause(err)
	}
	if err := s.files.WriteFile(ctx, xmlPath, xmlBytes); err != nil {
		s.failReport(ctx, r, fmt.Sprintf("failed to store xml: %v", err))
		return nil, report.ErrSubmissionFailed().WithCause(err)
	}

	r.PDFPath = pdfPath
	r.XMLPath = xmlPath
	r.GenerateSignature()
	r.MarkSent()

	ministryResult, err := s.ministry.Submit(ctx, r)
	if err != nil {
		s.failReport(ctx, r, fmt.Sprintf("ministry submission error: %v", err))
		return nil, report.ErrSubmissionFailed().WithCause(err)
	}

	if ministryResult.Success {
		if err := r.MarkConfirmed(ministryResult.ReceiptNumber, ministryResult.Response); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, r.ID, r); err != nil {
			return nil, err
		}

		logx.Infof("Report %s confirmed with receipt %s", r.ID.String(), ministryResult.ReceiptNumber)
		return &report.SendResult{
			Success:       true,
			ReceiptNumber: ministryResult.ReceiptNumber,
			Message:       "Informe enviado y confirmado exitosamente",
		}, nil
	}

	// Delivery refused
	if r.CanRetry() {
		if err := r.IncrementRetry(); err != nil {
			return nil, err
		}
		if r.Status == report.StatusRetry {
			if err := s.repo.Update(ctx, r.ID, r); err != nil {
				return nil, err
			}

			return &report.SendResult{
				Success:   false,
				Error:     fmt.Sprintf("Fallo en el envío. Intento %d de %d. Se reintentará automáticamente.", r.RetryCount, report.MaxRetries),
				WillRetry: true,
			}, nil
		}
		// This attempt reached the cap; fall through to the terminal path.
	}

	s.failReport(ctx, r, ministryResult.Error)
	return &report.SendResult{
		Success:   false,
		Error:     "Se agotaron los intentos de envío. Contacte al administrador.",
		WillRetry: false,
	}, nil
}

// SendReport runs the pipeline for a report owned by the company
func (s *Service) SendReport(ctx context.Context, id kernel.ReportID, companyID kernel.UserID) (*report.SendResult, error) {
	if _, err := s.getOwned(ctx, id, companyID); err != nil {
		return nil, err
	}
	return s.GenerateAndSendReport(ctx, id)
}

// RetryFailedReports runs the pipeline over every FAILED or RETRY report
// with attempts left and collects per-report outcomes. Scheduling lives in
// the cron layer; this method only executes one batch.
func (s *Service) RetryFailedReports(ctx context.Context) ([]report.RetryOutcome, error) {
	retryable, err := s.repo.ListRetryable(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make([]report.RetryOutcome, 0, len(retryable))
	for i := range retryable {
		r := &retryable[i]
		if !r.CanRetry() {
			continue
		}

		result, err := s.GenerateAndSendReport(ctx, r.ID)
		if err != nil {
			result = &report.SendResult{Success: false, Error: err.Error()}
		}
		outcomes = append(outcomes, report.RetryOutcome{
			ReportID:       r.ID,
			ContractNumber: r.ContractNumber,
			Result:         result,
		})
	}

	logx.Infof("Retry batch finished: %d reports processed", len(outcomes))
	return outcomes, nil
}

// GetArtifact streams a stored report artifact
func (s *Service) GetArtifact(ctx context.Context, id kernel.ReportID, companyID *kernel.UserID, kind string) ([]byte, string, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if companyID != nil && r.CompanyID != *companyID {
		return nil, "", report.ErrNotOwner()
	}

	var path string
	switch kind {
	case "pdf":
		path = r.PDFPath
	case "xml":
		path = r.XMLPath
	default:
		return nil, "", report.ErrArtifactNotFound().WithDetail("kind", kind)
	}
	if path == "" {
		return nil, "", report.ErrArtifactNotFound().WithDetail("kind", kind)
	}

	data, err := s.files.ReadFile(ctx, path)
	if err != nil {
		return nil, "", report.ErrArtifactNotFound().WithCause(err)
	}
	return data, path, nil
}

// CountByStatus counts reports per status
func (s *Service) CountByStatus(ctx context.Context) (map[report.ReportStatus]int64, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *Service) getOwned(ctx context.Context, id kernel.ReportID, companyID kernel.UserID) (*report.HiringReport, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.CompanyID != companyID {
		return nil, report.ErrNotOwner()
	}
	return r, nil
}

// failReport marks the report FAILED and persists it. Persistence errors
// here are logged only; the caller already has a failure to report.
func (s *Service) failReport(ctx context.Context, r *report.HiringReport, reason string) {
	r.MarkFailed(reason)
	if err := s.repo.Update(ctx, r.ID, r); err != nil {
		logx.Errorf("Failed to persist FAILED status for report %s: %v", r.ID.String(), err)
	}
}

// documentData resolves the company and job display fields the documents
// embed alongside the report row.
func (s *Service) documentData(ctx context.Context, r *report.HiringReport) (document.HiringReportData, error) {
	company, err := s.users.GetByID(ctx, r.CompanyID)
	if err != nil {
		return document.HiringReportData{}, err
	}

	jobTitle := ""
	if r.JobID != nil {
		if j, err := s.jobs.GetByID(ctx, *r.JobID); err == nil {
			jobTitle = string(j.Title)
		}
	}

	return document.HiringReportData{
		Report:             r,
		RepresentativeName: company.GetFullName(),
		CompanyEmail:       company.Email.String(),
		JobTitle:           jobTitle,
	}, nil
}
