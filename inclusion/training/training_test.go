package training_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/training"
)

func TestNewCertificateNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^CERT-2026-\d{6}$`)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		got := training.NewCertificateNumber(now)
		if !pattern.MatchString(got) {
			t.Fatalf("certificate number %q does not match CERT-YYYY-NNNNNN", got)
		}
	}
}

func TestRecomputeProgress(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name       string
		total      int
		completed  int
		wantPct    float64
		wantStatus training.EnrollmentStatus
	}{
		{"nothing done", 4, 0, 0, training.StatusEnrolled},
		{"one of four", 4, 1, 25, training.StatusInProgress},
		{"one of three rounds", 3, 1, 33.33, training.StatusInProgress},
		{"all done", 4, 4, 100, training.StatusCompleted},
		{"no mandatory lessons", 0, 0, 100, training.StatusCompleted},
	}
	for _, c := range cases {
		e := &training.Enrollment{Status: training.StatusEnrolled}
		e.RecomputeProgress(c.total, c.completed, now)

		if e.ProgressPercentage != c.wantPct {
			t.Errorf("%s: progress = %v, want %v", c.name, e.ProgressPercentage, c.wantPct)
		}
		if e.Status != c.wantStatus {
			t.Errorf("%s: status = %s, want %s", c.name, e.Status, c.wantStatus)
		}
	}
}

func TestRecomputeProgress_StampsTimestampsOnce(t *testing.T) {
	now := time.Now()
	e := &training.Enrollment{Status: training.StatusEnrolled}

	e.RecomputeProgress(4, 1, now)
	if e.StartedAt == nil {
		t.Fatal("StartedAt was not stamped on first progress")
	}
	started := *e.StartedAt

	later := now.Add(time.Hour)
	e.RecomputeProgress(4, 4, later)
	if !e.StartedAt.Equal(started) {
		t.Error("StartedAt must not move on later recomputes")
	}
	if e.CompletedAt == nil || !e.CompletedAt.Equal(later) {
		t.Error("CompletedAt must be stamped at completion")
	}

	e.RecomputeProgress(4, 4, later.Add(time.Hour))
	if !e.CompletedAt.Equal(later) {
		t.Error("CompletedAt must not move once set")
	}
}

func TestRecomputeProgress_SkipsDropped(t *testing.T) {
	e := &training.Enrollment{Status: training.StatusDropped}
	e.RecomputeProgress(4, 4, time.Now())
	if e.Status != training.StatusDropped || e.ProgressPercentage != 0 {
		t.Error("dropped enrollments must be left alone")
	}
}

func TestIssueCertificate(t *testing.T) {
	now := time.Now()
	e := &training.Enrollment{Status: training.StatusInProgress}

	if e.IssueCertificate(now) {
		t.Error("certificate must not issue before completion")
	}

	e.Status = training.StatusCompleted
	if !e.IssueCertificate(now) {
		t.Fatal("certificate should issue on completion")
	}
	first := e.CertificateNumber
	if first == "" {
		t.Fatal("certificate number is empty")
	}

	if e.IssueCertificate(now) {
		t.Error("certificate must issue only once")
	}
	if e.CertificateNumber != first {
		t.Error("second issue attempt must not replace the number")
	}
}

func TestLessonValidate_VideoNeedsTranscript(t *testing.T) {
	l := &training.Lesson{
		Title: "Comunicación asertiva",
		Type:  training.ContentVideo,
	}
	if err := l.Validate(); err == nil {
		t.Error("video lesson without transcript must be rejected")
	}

	l.Transcript = "Transcripción completa de la lección"
	if err := l.Validate(); err != nil {
		t.Errorf("video lesson with transcript rejected: %v", err)
	}
}

func TestLessonProgress_MarkCompletedOnce(t *testing.T) {
	p := &training.LessonProgress{}
	at := time.Now()
	p.MarkCompleted(at)
	if !p.Completed || p.CompletedAt == nil {
		t.Fatal("MarkCompleted did not stamp the progress")
	}

	p.MarkCompleted(at.Add(time.Hour))
	if !p.CompletedAt.Equal(at) {
		t.Error("a second MarkCompleted must not move the timestamp")
	}
}
