package complaint_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/complaint"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

func TestNewTrackingCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^QJ-2026-[A-Z0-9]{6}$`)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := complaint.NewTrackingCode(now)
		if !pattern.MatchString(code) {
			t.Fatalf("tracking code %q does not match QJ-YYYY-XXXXXX", code)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("tracking codes look constant across calls")
	}
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from complaint.ComplaintStatus
		to   complaint.ComplaintStatus
		want bool
	}{
		{complaint.StatusReceived, complaint.StatusInReview, true},
		{complaint.StatusReceived, complaint.StatusResolved, true},
		{complaint.StatusReceived, complaint.StatusDismissed, true},
		{complaint.StatusInReview, complaint.StatusResolved, true},
		{complaint.StatusInReview, complaint.StatusDismissed, true},
		{complaint.StatusInReview, complaint.StatusReceived, false},
		{complaint.StatusResolved, complaint.StatusInReview, false},
		{complaint.StatusResolved, complaint.StatusDismissed, false},
		{complaint.StatusDismissed, complaint.StatusResolved, false},
	}
	for _, c := range cases {
		q := &complaint.Complaint{Status: c.from}
		if got := q.CanTransitionTo(c.to); got != c.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTransitionTo_StampsResolution(t *testing.T) {
	q := &complaint.Complaint{Status: complaint.StatusInReview}
	if err := q.TransitionTo(complaint.StatusResolved); err != nil {
		t.Fatalf("TransitionTo(RESOLVED) returned error: %v", err)
	}
	if q.ResolvedAt == nil {
		t.Error("ResolvedAt must be stamped on closure")
	}
	if q.IsOpen() {
		t.Error("resolved complaint must not be open")
	}
}

func TestTransitionTo_Invalid(t *testing.T) {
	q := &complaint.Complaint{Status: complaint.StatusResolved}
	if err := q.TransitionTo(complaint.StatusInReview); err == nil {
		t.Error("reopening a resolved complaint must fail")
	}
}

func TestAssign_MovesReceivedToInReview(t *testing.T) {
	q := &complaint.Complaint{Status: complaint.StatusReceived}
	admin := kernel.UserID("adm-1")

	if err := q.Assign(admin); err != nil {
		t.Fatalf("Assign() returned error: %v", err)
	}
	if q.Status != complaint.StatusInReview {
		t.Errorf("status = %s, want IN_REVIEW", q.Status)
	}
	if q.AssignedTo == nil || *q.AssignedTo != admin {
		t.Error("assignee was not recorded")
	}
}

func TestAssign_KeepsInReviewStatus(t *testing.T) {
	q := &complaint.Complaint{Status: complaint.StatusInReview}
	if err := q.Assign(kernel.UserID("adm-2")); err != nil {
		t.Fatalf("reassignment returned error: %v", err)
	}
	if q.Status != complaint.StatusInReview {
		t.Errorf("status = %s, reassignment must not change it", q.Status)
	}
}
