package job_test

import (
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/job"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

func compliantJob() *job.Job {
	return &job.Job{
		ID:                         kernel.JobID("job-1"),
		CompanyID:                  kernel.UserID("com-1"),
		Title:                      kernel.JobTitle("Desarrollador backend"),
		Status:                     job.StatusDraft,
		ReasonableAccommodations:   "Horario flexible y software lector de pantalla",
		WorkplaceAccessibility:     "Oficina con rampas y ascensores",
		NonDiscriminationStatement: "Proceso de selección sin discriminación",
	}
}

func TestValidateLegalCompliance_AllPresent(t *testing.T) {
	ok, missing := compliantJob().ValidateLegalCompliance()
	if !ok {
		t.Errorf("compliant posting flagged, missing = %v", missing)
	}
	if len(missing) != 0 {
		t.Errorf("missing = %v, want empty", missing)
	}
}

func TestValidateLegalCompliance_MissingFields(t *testing.T) {
	j := compliantJob()
	j.ReasonableAccommodations = "   "
	j.NonDiscriminationStatement = ""

	ok, missing := j.ValidateLegalCompliance()
	if ok {
		t.Fatal("posting with blank legal texts must fail compliance")
	}
	want := []string{job.FieldReasonableAccommodations, job.FieldNonDiscriminationStatement}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("missing[%d] = %s, want %s (declared order)", i, missing[i], want[i])
		}
	}
}

func TestSubmitForReview_ClearsPriorDecision(t *testing.T) {
	j := compliantJob()
	j.SubmitForReview()
	admin := kernel.UserID("adm-1")
	if err := j.Reject(admin, "falta texto legal"); err != nil {
		t.Fatalf("Reject() returned error: %v", err)
	}

	j.SubmitForReview()
	if j.Status != job.StatusPendingReview {
		t.Errorf("status = %s, want PENDING_REVIEW", j.Status)
	}
	if j.ReviewReason != "" || j.ReviewedBy != nil || j.ReviewedAt != nil {
		t.Error("resubmission must clear the previous review decision")
	}
}

func TestApprove(t *testing.T) {
	j := compliantJob()
	j.SubmitForReview()
	admin := kernel.UserID("adm-1")

	if err := j.Approve(admin); err != nil {
		t.Fatalf("Approve() returned error: %v", err)
	}
	if !j.IsApproved() || !j.IsActive {
		t.Error("approved posting must be active")
	}
	if j.ReviewedBy == nil || *j.ReviewedBy != admin {
		t.Error("reviewer identity was not recorded")
	}
}

func TestApprove_OnlyFromPendingReview(t *testing.T) {
	admin := kernel.UserID("adm-1")
	for _, status := range []job.ComplianceStatus{
		job.StatusDraft,
		job.StatusApproved,
		job.StatusRejected,
		job.StatusChangesRequested,
	} {
		j := compliantJob()
		j.Status = status
		if err := j.Approve(admin); err == nil {
			t.Errorf("Approve() from %s must fail", status)
		}
	}
}

func TestReject_RequiresReason(t *testing.T) {
	j := compliantJob()
	j.SubmitForReview()
	if err := j.Reject(kernel.UserID("adm-1"), "  "); err == nil {
		t.Error("Reject() with a blank reason must fail")
	}
	if j.Status != job.StatusPendingReview {
		t.Error("failed rejection must not change the status")
	}
}

func TestRequestChanges(t *testing.T) {
	j := compliantJob()
	j.SubmitForReview()
	if err := j.RequestChanges(kernel.UserID("adm-1"), "ajustar descripción"); err != nil {
		t.Fatalf("RequestChanges() returned error: %v", err)
	}
	if j.Status != job.StatusChangesRequested {
		t.Errorf("status = %s, want CHANGES_REQUESTED", j.Status)
	}
	if j.IsActive {
		t.Error("posting sent back for edits must not stay active")
	}
}

func TestIsPubliclyVisible(t *testing.T) {
	j := compliantJob()
	j.SubmitForReview()
	if err := j.Approve(kernel.UserID("adm-1")); err != nil {
		t.Fatal(err)
	}
	if !j.IsPubliclyVisible() {
		t.Error("approved active posting must be visible")
	}

	past := time.Now().Add(-time.Hour)
	j.ApplicationDeadline = &past
	if j.IsPubliclyVisible() {
		t.Error("expired posting must not be visible")
	}

	j.ApplicationDeadline = nil
	j.Deactivate()
	if j.IsPubliclyVisible() {
		t.Error("deactivated posting must not be visible")
	}
	if j.Status != job.StatusApproved {
		t.Error("Deactivate must not touch the review status")
	}
}
