package reportsrv_test

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/inclusion/report/reportsrv"
	"github.com/incluempleo/vinculo/inclusion/user"
	"github.com/incluempleo/vinculo/pkg/errx"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// ============================================================================
// Mocks
// ============================================================================

type mockReportRepo struct {
	reports   map[kernel.ReportID]*report.HiringReport
	contracts map[string]bool
}

func newMockReportRepo(reports ...*report.HiringReport) *mockReportRepo {
	m := &mockReportRepo{
		reports:   map[kernel.ReportID]*report.HiringReport{},
		contracts: map[string]bool{},
	}
	for _, r := range reports {
		m.reports[r.ID] = r
		m.contracts[r.ContractNumber] = true
	}
	return m
}

func (m *mockReportRepo) Create(_ context.Context, r *report.HiringReport) error {
	m.reports[r.ID] = r
	m.contracts[r.ContractNumber] = true
	return nil
}

func (m *mockReportRepo) Update(_ context.Context, id kernel.ReportID, r *report.HiringReport) error {
	m.reports[id] = r
	return nil
}

func (m *mockReportRepo) GetByID(_ context.Context, id kernel.ReportID) (*report.HiringReport, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, report.ErrReportNotFound()
	}
	return r, nil
}

func (m *mockReportRepo) ListByCompany(context.Context, kernel.UserID, report.StatusFilter, kernel.PaginationOptions) (*kernel.Paginated[report.HiringReport], error) {
	return nil, nil
}

func (m *mockReportRepo) ListAll(context.Context, report.StatusFilter, kernel.PaginationOptions) (*kernel.Paginated[report.HiringReport], error) {
	return nil, nil
}

func (m *mockReportRepo) ListRetryable(context.Context) ([]report.HiringReport, error) {
	var out []report.HiringReport
	for _, r := range m.reports {
		if (r.Status == report.StatusFailed || r.Status == report.StatusRetry) && r.CanRetry() {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockReportRepo) ExistsByContract(_ context.Context, _ kernel.UserID, contractNumber string) (bool, error) {
	return m.contracts[contractNumber], nil
}

func (m *mockReportRepo) CountConfirmedByCompany(context.Context, kernel.UserID) (int64, error) {
	return 0, nil
}

func (m *mockReportRepo) CountByStatus(context.Context) (map[report.ReportStatus]int64, error) {
	return nil, nil
}

func (m *mockReportRepo) CountByDisabilityType(context.Context) (map[kernel.DisabilityCode]int64, error) {
	return nil, nil
}

type mockUserRepo struct {
	users map[kernel.UserID]*user.User
}

func (m *mockUserRepo) Create(_ context.Context, u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, id kernel.UserID, u *user.User) error {
	m.users[id] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id kernel.UserID) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(context.Context, kernel.Email) (*user.User, error) {
	return nil, user.ErrUserNotFound()
}

func (m *mockUserRepo) ExistsByEmail(context.Context, kernel.Email) (bool, error) {
	return false, nil
}

func (m *mockUserRepo) List(context.Context, *auth.Role, kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	return nil, nil
}

func (m *mockUserRepo) CountByRole(context.Context, auth.Role) (int64, error) {
	return 0, nil
}

type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: map[string][]byte{}}
}

func (f *memFS) ReadFile(_ context.Context, p string) ([]byte, error) {
	data, ok := f.files[p]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

func (f *memFS) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	data, err := f.ReadFile(ctx, p)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *memFS) WriteFile(_ context.Context, p string, data []byte) error {
	f.files[p] = data
	return nil
}

func (f *memFS) DeleteFile(_ context.Context, p string) error {
	delete(f.files, p)
	return nil
}

func (f *memFS) Exists(_ context.Context, p string) (bool, error) {
	_, ok := f.files[p]
	return ok, nil
}

func (f *memFS) Join(segments ...string) string {
	return path.Join(segments...)
}

// scriptedMinistry returns its results in order, one per Submit call
type scriptedMinistry struct {
	results []*report.MinistryResult
	calls   int
}

func (m *scriptedMinistry) Submit(context.Context, *report.HiringReport) (*report.MinistryResult, error) {
	if m.calls >= len(m.results) {
		return nil, io.ErrUnexpectedEOF
	}
	res := m.results[m.calls]
	m.calls++
	return res, nil
}

type recordingQueue struct {
	enqueued []kernel.ReportID
}

func (q *recordingQueue) Enqueue(_ context.Context, id kernel.ReportID) error {
	q.enqueued = append(q.enqueued, id)
	return nil
}

func (q *recordingQueue) Dequeue(context.Context) (*kernel.ReportID, error) {
	return nil, nil
}

// ============================================================================
// Fixtures
// ============================================================================

func companyUser() *user.User {
	return &user.User{
		ID:          kernel.UserID("com-1"),
		Email:       kernel.Email("rrhh@empresa.co"),
		Role:        auth.RoleCompany,
		CompanyName: "Empresa Inclusiva SAS",
		CompanyNIT:  kernel.NIT("900123456-7"),
		Status:      user.UserStatusActive,
	}
}

func pendingReport() *report.HiringReport {
	return &report.HiringReport{
		ID:             kernel.ReportID("rep-1"),
		CompanyID:      kernel.UserID("com-1"),
		CompanyName:    "Empresa Inclusiva SAS",
		CompanyNIT:     kernel.NIT("900123456-7"),
		ContractNumber: "CT-2026-001",
		ContractDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		PositionTitle:  "Analista de datos",
		DisabilityType: kernel.DisabilityCodeTD01,
		Status:         report.StatusPending,
	}
}

func newPipeline(r *report.HiringReport, ministry *scriptedMinistry) (*reportsrv.Service, *mockReportRepo, *memFS) {
	repo := newMockReportRepo(r)
	users := &mockUserRepo{users: map[kernel.UserID]*user.User{
		kernel.UserID("com-1"): companyUser(),
	}}
	fs := newMemFS()
	svc := reportsrv.NewService(repo, users, nil, ministry, fs, &recordingQueue{})
	return svc, repo, fs
}

// ============================================================================
// Tests
// ============================================================================

func TestGenerateAndSendReport_Confirmed(t *testing.T) {
	r := pendingReport()
	ministry := &scriptedMinistry{results: []*report.MinistryResult{
		{Success: true, ReceiptNumber: "MT-2026-0001", Response: map[string]any{"estado": "RECIBIDO"}},
	}}
	svc, repo, fs := newPipeline(r, ministry)

	result, err := svc.GenerateAndSendReport(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("GenerateAndSendReport() returned error: %v", err)
	}

	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.ReceiptNumber != "MT-2026-0001" {
		t.Errorf("receipt = %s, want MT-2026-0001", result.ReceiptNumber)
	}
	if result.Message != "Informe enviado y confirmado exitosamente" {
		t.Errorf("message = %q", result.Message)
	}

	stored := repo.reports[r.ID]
	if stored.Status != report.StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", stored.Status)
	}
	if stored.MinistryReceiptNumber != "MT-2026-0001" {
		t.Errorf("stored receipt = %s", stored.MinistryReceiptNumber)
	}
	if stored.DigitalSignature == "" {
		t.Error("confirmed report must carry a signature")
	}
	if stored.ConfirmedAt == nil || stored.SentAt == nil {
		t.Error("confirmed report must record sent_at and confirmed_at")
	}

	if len(fs.files) != 2 {
		t.Fatalf("stored %d artifacts, want pdf and xml", len(fs.files))
	}
	if _, err := fs.ReadFile(context.Background(), stored.PDFPath); err != nil {
		t.Errorf("pdf artifact missing at %s", stored.PDFPath)
	}
	if _, err := fs.ReadFile(context.Background(), stored.XMLPath); err != nil {
		t.Errorf("xml artifact missing at %s", stored.XMLPath)
	}
}

func TestGenerateAndSendReport_RefusalSchedulesRetry(t *testing.T) {
	r := pendingReport()
	ministry := &scriptedMinistry{results: []*report.MinistryResult{
		{Success: false, Error: "Servicio no disponible"},
	}}
	svc, repo, _ := newPipeline(r, ministry)

	result, err := svc.GenerateAndSendReport(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("GenerateAndSendReport() returned error: %v", err)
	}

	if result.Success {
		t.Fatal("refused delivery must not report success")
	}
	if !result.WillRetry {
		t.Error("first refusal must schedule a retry")
	}
	if !strings.Contains(result.Error, "Se reintentará automáticamente") {
		t.Errorf("error = %q, want the retry notice", result.Error)
	}
	if !strings.Contains(result.Error, "Intento 1 de 3") {
		t.Errorf("error = %q, want attempt 1 of 3", result.Error)
	}

	stored := repo.reports[r.ID]
	if stored.Status != report.StatusRetry {
		t.Errorf("status = %s, want RETRY", stored.Status)
	}
	if stored.RetryCount != 1 {
		t.Errorf("retry_count = %d, want 1", stored.RetryCount)
	}
	if stored.LastRetry == nil {
		t.Error("refused delivery must record last_retry_at")
	}
}

func TestGenerateAndSendReport_CapLandsFailed(t *testing.T) {
	r := pendingReport()
	r.Status = report.StatusRetry
	r.RetryCount = report.MaxRetries - 1
	ministry := &scriptedMinistry{results: []*report.MinistryResult{
		{Success: false, Error: "Documento rechazado"},
	}}
	svc, repo, _ := newPipeline(r, ministry)

	result, err := svc.GenerateAndSendReport(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("GenerateAndSendReport() returned error: %v", err)
	}

	if result.Success || result.WillRetry {
		t.Fatalf("result = %+v, want terminal failure", result)
	}
	if result.Error != "Se agotaron los intentos de envío. Contacte al administrador." {
		t.Errorf("error = %q", result.Error)
	}

	stored := repo.reports[r.ID]
	if stored.Status != report.StatusFailed {
		t.Errorf("status = %s, want FAILED", stored.Status)
	}
	if stored.RetryCount != report.MaxRetries {
		t.Errorf("retry_count = %d, want %d", stored.RetryCount, report.MaxRetries)
	}
	if !strings.Contains(stored.ErrorLog, "Documento rechazado") {
		t.Errorf("error log = %q, want the ministry refusal recorded", stored.ErrorLog)
	}
}

func TestGenerateAndSendReport_ConfirmedIsImmutable(t *testing.T) {
	r := pendingReport()
	r.Status = report.StatusConfirmed
	r.MinistryReceiptNumber = "MT-2025-9999"
	svc, _, _ := newPipeline(r, &scriptedMinistry{})

	_, err := svc.GenerateAndSendReport(context.Background(), r.ID)
	if err == nil {
		t.Fatal("resending a confirmed report must be refused")
	}
	e, ok := err.(*errx.Error)
	if !ok {
		t.Fatalf("expected *errx.Error, got %T", err)
	}
	if e.Code != report.CodeAlreadyConfirmed {
		t.Errorf("code = %s, want %s", e.Code, report.CodeAlreadyConfirmed)
	}
}

func TestCreateReport_DuplicateContractRejected(t *testing.T) {
	existing := pendingReport()
	svc, _, _ := newPipeline(existing, &scriptedMinistry{})

	_, err := svc.CreateReport(context.Background(), report.CreateReportRequest{
		ContractNumber: existing.ContractNumber,
		ContractDate:   existing.ContractDate,
		PositionTitle:  "Auxiliar administrativo",
		DisabilityType: kernel.DisabilityCodeTD01,
	}, existing.CompanyID)
	if err == nil {
		t.Fatal("second report for the same contract must be refused")
	}
	e, ok := err.(*errx.Error)
	if !ok {
		t.Fatalf("expected *errx.Error, got %T", err)
	}
	if e.Code != report.CodeDuplicateContract {
		t.Errorf("code = %s, want %s", e.Code, report.CodeDuplicateContract)
	}
}
