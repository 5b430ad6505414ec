package jobsrv_test

import (
	"context"
	"testing"

	"github.com/incluempleo/vinculo/inclusion/job"
	"github.com/incluempleo/vinculo/inclusion/job/jobsrv"
	"github.com/incluempleo/vinculo/pkg/errx"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// ============================================================================
// Mocks
// ============================================================================

type mockJobRepo struct {
	jobs    map[kernel.JobID]*job.Job
	updated int
}

func newMockJobRepo(jobs ...*job.Job) *mockJobRepo {
	m := &mockJobRepo{jobs: map[kernel.JobID]*job.Job{}}
	for _, j := range jobs {
		m.jobs[j.ID] = j
	}
	return m
}

func (m *mockJobRepo) Create(_ context.Context, j *job.Job) error {
	m.jobs[j.ID] = j
	return nil
}

func (m *mockJobRepo) Update(_ context.Context, id kernel.JobID, j *job.Job) error {
	m.jobs[id] = j
	m.updated++
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return j, nil
}

func (m *mockJobRepo) ListPublic(context.Context, job.PublicFilters, kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return nil, nil
}

func (m *mockJobRepo) ListByCompany(context.Context, kernel.UserID, kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return nil, nil
}

func (m *mockJobRepo) ListByStatus(context.Context, job.ComplianceStatus, kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return nil, nil
}

func (m *mockJobRepo) CountByStatus(context.Context) (map[job.ComplianceStatus]int64, error) {
	return nil, nil
}

type mockAuditRepo struct {
	entries []*job.AuditLog
}

func (m *mockAuditRepo) Append(_ context.Context, entry *job.AuditLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) ListByJob(context.Context, kernel.JobID, kernel.PaginationOptions) (*kernel.Paginated[job.AuditLog], error) {
	return nil, nil
}

// ============================================================================
// Fixtures
// ============================================================================

func pendingJob() *job.Job {
	return &job.Job{
		ID:                         kernel.JobID("job-1"),
		CompanyID:                  kernel.UserID("com-1"),
		Title:                      "Analista de datos",
		Description:                "Análisis de indicadores de inclusión",
		ReasonableAccommodations:   "Horario flexible y software lector de pantalla",
		WorkplaceAccessibility:     "Sede con rampas y ascensores",
		NonDiscriminationStatement: "Proceso de selección sin discriminación",
		Status:                     job.StatusPendingReview,
	}
}

func errCode(t *testing.T, err error) errx.Code {
	t.Helper()
	e, ok := err.(*errx.Error)
	if !ok {
		t.Fatalf("expected *errx.Error, got %T: %v", err, err)
	}
	return e.Code
}

// ============================================================================
// Tests
// ============================================================================

func TestApproveJob(t *testing.T) {
	j := pendingJob()
	repo := newMockJobRepo(j)
	audit := &mockAuditRepo{}
	svc := jobsrv.NewJobService(repo, audit)

	admin := kernel.UserID("adm-1")
	approved, err := svc.ApproveJob(context.Background(), j.ID, admin, "10.0.0.1")
	if err != nil {
		t.Fatalf("ApproveJob() returned error: %v", err)
	}

	if approved.Status != job.StatusApproved {
		t.Errorf("status = %s, want APPROVED", approved.Status)
	}
	if !approved.IsActive {
		t.Error("approved posting must become active")
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != job.AuditApproved {
		t.Errorf("audit trail = %+v, want one approved entry", audit.entries)
	}
}

func TestApproveJob_BlankAccommodationsRejected(t *testing.T) {
	j := pendingJob()
	j.ReasonableAccommodations = "   "
	repo := newMockJobRepo(j)
	audit := &mockAuditRepo{}
	svc := jobsrv.NewJobService(repo, audit)

	_, err := svc.ApproveJob(context.Background(), j.ID, kernel.UserID("adm-1"), "10.0.0.1")
	if err == nil {
		t.Fatal("approval with blank reasonable accommodations must be refused")
	}

	e, ok := err.(*errx.Error)
	if !ok {
		t.Fatalf("expected *errx.Error, got %T", err)
	}
	if e.Code != job.CodeNonCompliant {
		t.Errorf("code = %s, want %s", e.Code, job.CodeNonCompliant)
	}

	missing, ok := e.Details["missing_fields"].([]string)
	if !ok {
		t.Fatalf("missing_fields detail absent or wrong type: %+v", e.Details)
	}
	if len(missing) != 1 || missing[0] != job.FieldReasonableAccommodations {
		t.Errorf("missing_fields = %v, want [%s]", missing, job.FieldReasonableAccommodations)
	}

	if j.Status != job.StatusPendingReview {
		t.Errorf("refused posting moved to %s, must stay PENDING_REVIEW", j.Status)
	}
	if repo.updated != 0 {
		t.Error("refused approval must not persist anything")
	}
	if len(audit.entries) != 0 {
		t.Error("refused approval must not leave an audit entry")
	}
}

func TestApproveJob_ReportsAllMissingFieldsInOrder(t *testing.T) {
	j := pendingJob()
	j.ReasonableAccommodations = ""
	j.WorkplaceAccessibility = " "
	j.NonDiscriminationStatement = ""
	repo := newMockJobRepo(j)
	svc := jobsrv.NewJobService(repo, &mockAuditRepo{})

	_, err := svc.ApproveJob(context.Background(), j.ID, kernel.UserID("adm-1"), "10.0.0.1")
	if err == nil {
		t.Fatal("approval must be refused")
	}

	e := err.(*errx.Error)
	missing, _ := e.Details["missing_fields"].([]string)
	want := []string{
		job.FieldReasonableAccommodations,
		job.FieldWorkplaceAccessibility,
		job.FieldNonDiscriminationStatement,
	}
	if len(missing) != len(want) {
		t.Fatalf("missing_fields = %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("missing_fields[%d] = %s, want %s", i, missing[i], want[i])
		}
	}
}

func TestRejectJob_RequiresReason(t *testing.T) {
	j := pendingJob()
	repo := newMockJobRepo(j)
	svc := jobsrv.NewJobService(repo, &mockAuditRepo{})

	_, err := svc.RejectJob(context.Background(), j.ID, kernel.UserID("adm-1"), "  ", "10.0.0.1")
	if err == nil {
		t.Fatal("rejection without a reason must be refused")
	}
	if code := errCode(t, err); code != job.CodeReasonRequired {
		t.Errorf("code = %s, want %s", code, job.CodeReasonRequired)
	}
}

func TestRequestChanges_DeactivatesAndRecordsReason(t *testing.T) {
	j := pendingJob()
	j.IsActive = true
	repo := newMockJobRepo(j)
	audit := &mockAuditRepo{}
	svc := jobsrv.NewJobService(repo, audit)

	changed, err := svc.RequestChanges(context.Background(), j.ID, kernel.UserID("adm-1"), "Falta detalle de accesibilidad", "10.0.0.1")
	if err != nil {
		t.Fatalf("RequestChanges() returned error: %v", err)
	}

	if changed.Status != job.StatusChangesRequested {
		t.Errorf("status = %s, want CHANGES_REQUESTED", changed.Status)
	}
	if changed.IsActive {
		t.Error("posting sent back for edits must be deactivated")
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != job.AuditChangesRequested {
		t.Errorf("audit trail = %+v, want one changes_requested entry", audit.entries)
	}
}

func TestCreateJob_AlwaysLandsInReview(t *testing.T) {
	repo := newMockJobRepo()
	audit := &mockAuditRepo{}
	svc := jobsrv.NewJobService(repo, audit)

	created, err := svc.CreateJob(context.Background(), job.CreateJobRequest{
		Title:       "Desarrollador backend",
		Description: "Equipo de plataforma",
	}, kernel.UserID("com-1"), "10.0.0.2")
	if err != nil {
		t.Fatalf("CreateJob() returned error: %v", err)
	}

	if created.Job.Status != job.StatusPendingReview {
		t.Errorf("status = %s, want PENDING_REVIEW", created.Job.Status)
	}
	if created.Job.IsActive {
		t.Error("new posting must not be active before approval")
	}
	if created.Compliance.Compliant {
		t.Error("posting without legal texts must report non-compliance")
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != job.AuditCreated {
		t.Errorf("audit trail = %+v, want one created entry", audit.entries)
	}
}

func TestUpdateJob_OnlyOwnerEdits(t *testing.T) {
	j := pendingJob()
	repo := newMockJobRepo(j)
	svc := jobsrv.NewJobService(repo, &mockAuditRepo{})

	_, err := svc.UpdateJob(context.Background(), j.ID, kernel.UserID("com-2"), job.UpdateJobRequest{}, "10.0.0.3")
	if err == nil {
		t.Fatal("another company editing the posting must be refused")
	}
	if code := errCode(t, err); code != job.CodeNotOwner {
		t.Errorf("code = %s, want %s", code, job.CodeNotOwner)
	}
}
