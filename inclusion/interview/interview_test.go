package interview_test

import (
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/interview"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

var (
	companyID   = kernel.UserID("com-1")
	candidateID = kernel.UserID("cand-1")
)

func proposed() *interview.Interview {
	return &interview.Interview{
		ID:               kernel.InterviewID("int-1"),
		CompanyID:        companyID,
		CandidateID:      candidateID,
		Title:            "Entrevista técnica",
		Type:             interview.TypeVideo,
		MeetingURL:       "https://meet.example.com/abc",
		ScheduledAt:      time.Now().Add(72 * time.Hour),
		DurationMinutes:  60,
		Status:           interview.StatusProposed,
		CompanyConfirmed: true,
	}
}

func TestConfirmBy_BothSides(t *testing.T) {
	i := proposed()

	if err := i.ConfirmBy(candidateID); err != nil {
		t.Fatalf("ConfirmBy(candidate) returned error: %v", err)
	}
	if i.Status != interview.StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED once both sides agreed", i.Status)
	}
	if i.ConfirmedAt == nil {
		t.Error("ConfirmedAt was not stamped")
	}
}

func TestConfirmBy_OneSideOnly(t *testing.T) {
	i := proposed()
	i.CompanyConfirmed = false

	if err := i.ConfirmBy(candidateID); err != nil {
		t.Fatalf("ConfirmBy(candidate) returned error: %v", err)
	}
	if i.Status != interview.StatusProposed {
		t.Errorf("status = %s, must stay PROPOSED until the company confirms", i.Status)
	}
}

func TestConfirmBy_Outsider(t *testing.T) {
	i := proposed()
	if err := i.ConfirmBy(kernel.UserID("otro")); err == nil {
		t.Error("outsiders must not confirm")
	}
}

func TestConfirmBy_OnlyFromProposed(t *testing.T) {
	for _, status := range []interview.InterviewStatus{
		interview.StatusConfirmed,
		interview.StatusCompleted,
		interview.StatusCancelled,
	} {
		i := proposed()
		i.Status = status
		if err := i.ConfirmBy(candidateID); err == nil {
			t.Errorf("ConfirmBy from %s must fail", status)
		}
	}
}

func TestCancel(t *testing.T) {
	i := proposed()
	if err := i.Cancel(candidateID, "conflicto de agenda"); err != nil {
		t.Fatalf("Cancel() returned error: %v", err)
	}
	if i.Status != interview.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", i.Status)
	}
	if i.CancelledBy == nil || *i.CancelledBy != candidateID {
		t.Error("cancelling side was not recorded")
	}
}

func TestCancel_RequiresReason(t *testing.T) {
	i := proposed()
	if err := i.Cancel(companyID, "  "); err == nil {
		t.Error("cancellation without a reason must fail")
	}
}

func TestCancel_AfterHeld(t *testing.T) {
	i := proposed()
	i.ScheduledAt = time.Now().Add(-time.Hour)
	if err := i.Cancel(companyID, "ya no aplica"); err == nil {
		t.Error("a past interview cannot be cancelled")
	}
}

func TestComplete(t *testing.T) {
	i := proposed()
	i.Status = interview.StatusConfirmed

	if err := i.Complete(); err == nil {
		t.Error("Complete() before the scheduled moment must fail")
	}

	i.ScheduledAt = time.Now().Add(-2 * time.Hour)
	if err := i.Complete(); err != nil {
		t.Fatalf("Complete() returned error: %v", err)
	}
	if i.Status != interview.StatusCompleted || i.CompletedAt == nil {
		t.Error("completion was not recorded")
	}
}

func TestReschedule_ResetsCandidateConfirmation(t *testing.T) {
	i := proposed()
	i.Status = interview.StatusConfirmed
	i.CandidateConfirmed = true
	at := time.Now()
	i.ConfirmedAt = &at

	newSlot := time.Now().Add(96 * time.Hour)
	if err := i.Reschedule(newSlot); err != nil {
		t.Fatalf("Reschedule() returned error: %v", err)
	}
	if i.Status != interview.StatusProposed {
		t.Errorf("status = %s, want PROPOSED", i.Status)
	}
	if i.CandidateConfirmed {
		t.Error("candidate must confirm the new slot again")
	}
	if !i.CompanyConfirmed || i.ConfirmedAt != nil {
		t.Error("reschedule must keep company confirmation and clear ConfirmedAt")
	}
	if !i.ScheduledAt.Equal(newSlot) {
		t.Error("new slot was not stored")
	}
}

func TestReschedule_PastSlot(t *testing.T) {
	i := proposed()
	if err := i.Reschedule(time.Now().Add(-time.Hour)); err == nil {
		t.Error("rescheduling into the past must fail")
	}
}

func TestValidate_TypeRequirements(t *testing.T) {
	i := proposed()
	if err := i.Validate(); err != nil {
		t.Fatalf("valid interview rejected: %v", err)
	}

	video := proposed()
	video.MeetingURL = ""
	if err := video.Validate(); err == nil {
		t.Error("video interview without meeting URL must be rejected")
	}

	inPerson := proposed()
	inPerson.Type = interview.TypeInPerson
	inPerson.MeetingURL = ""
	if err := inPerson.Validate(); err == nil {
		t.Error("in-person interview without address must be rejected")
	}
	inPerson.LocationAddress = "Calle 26 # 13-19, Bogotá"
	if err := inPerson.Validate(); err != nil {
		t.Errorf("in-person interview with address rejected: %v", err)
	}
}

func TestAccessibilityNeedsList(t *testing.T) {
	needs := interview.AccessibilityNeeds{
		SignLanguageInterpreter: true,
		Captioning:              true,
	}
	list := needs.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(list))
	}
}
