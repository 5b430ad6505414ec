package report_test

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

func validReport() *report.HiringReport {
	return &report.HiringReport{
		ID:             kernel.ReportID("rep-1"),
		CompanyID:      kernel.UserID("com-1"),
		CompanyName:    "Inclusiva SAS",
		CompanyNIT:     kernel.NIT("900123456-7"),
		ContractNumber: "CT-2026-001",
		ContractDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		PositionTitle:  "Analista de datos",
		DisabilityType: kernel.DisabilityCodeTD01,
		Status:         report.StatusPending,
	}
}

func TestGenerateSignature(t *testing.T) {
	r := validReport()
	got := r.GenerateSignature()

	payload := "900123456-7" + "CT-2026-001" + "2026-01-15" + "TD-01"
	sum := sha256.Sum256([]byte(payload))
	want := hex.EncodeToString(sum[:])

	if got != want {
		t.Errorf("GenerateSignature() = %s, want %s", got, want)
	}
	if r.DigitalSignature != want {
		t.Error("signature was not stored on the report")
	}
}

func TestGenerateSignature_Deterministic(t *testing.T) {
	a := validReport()
	b := validReport()
	if a.GenerateSignature() != b.GenerateSignature() {
		t.Error("identical reports must produce identical signatures")
	}

	b.ContractNumber = "CT-2026-002"
	if a.GenerateSignature() == b.GenerateSignature() {
		t.Error("different contract numbers must change the signature")
	}
}

func TestCanSend(t *testing.T) {
	cases := []struct {
		status report.ReportStatus
		want   bool
	}{
		{report.StatusPending, true},
		{report.StatusFailed, true},
		{report.StatusRetry, true},
		{report.StatusSent, false},
		{report.StatusConfirmed, false},
	}
	for _, c := range cases {
		r := validReport()
		r.Status = c.status
		if got := r.CanSend(); got != c.want {
			t.Errorf("CanSend() with status %s = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestMarkConfirmed(t *testing.T) {
	r := validReport()
	r.MarkSent()
	if r.Status != report.StatusSent || r.SentAt == nil {
		t.Fatal("MarkSent did not record delivery start")
	}

	err := r.MarkConfirmed("MIN-20260115-12345", map[string]any{"status": "received"})
	if err != nil {
		t.Fatalf("MarkConfirmed() returned error: %v", err)
	}
	if !r.IsConfirmed() {
		t.Error("report should be CONFIRMED")
	}
	if r.MinistryReceiptNumber != "MIN-20260115-12345" {
		t.Errorf("receipt number = %s", r.MinistryReceiptNumber)
	}
	if r.ConfirmedAt == nil {
		t.Error("ConfirmedAt was not stamped")
	}
}

func TestMarkConfirmed_Twice(t *testing.T) {
	r := validReport()
	if err := r.MarkConfirmed("MIN-20260115-00001", nil); err != nil {
		t.Fatalf("first confirmation failed: %v", err)
	}

	if err := r.MarkConfirmed("MIN-20260115-99999", nil); err == nil {
		t.Fatal("second confirmation must be refused")
	}
	if r.MinistryReceiptNumber != "MIN-20260115-00001" {
		t.Error("original receipt number must survive a second confirmation attempt")
	}
}

func TestRetryCap(t *testing.T) {
	r := validReport()

	for i := 1; i < report.MaxRetries; i++ {
		if !r.CanRetry() {
			t.Fatalf("CanRetry() = false at retry_count %d", r.RetryCount)
		}
		if err := r.IncrementRetry(); err != nil {
			t.Fatalf("IncrementRetry() %d returned error: %v", i, err)
		}
		if r.Status != report.StatusRetry {
			t.Errorf("status after retry %d = %s, want RETRY", i, r.Status)
		}
	}

	// The attempt that reaches the cap is terminal, not another RETRY.
	if err := r.IncrementRetry(); err != nil {
		t.Fatalf("final IncrementRetry() returned error: %v", err)
	}
	if r.Status != report.StatusFailed {
		t.Errorf("status at the cap = %s, want FAILED", r.Status)
	}
	if r.RetryCount != report.MaxRetries {
		t.Errorf("retry_count = %d, want %d", r.RetryCount, report.MaxRetries)
	}
	if r.CanRetry() {
		t.Error("CanRetry() must be false once the cap is reached")
	}
	if err := r.IncrementRetry(); err == nil {
		t.Error("IncrementRetry() past the cap must fail")
	}
}

func TestMarkFailed_AppendsErrorLog(t *testing.T) {
	r := validReport()
	r.MarkFailed("primer intento")
	r.MarkFailed("segundo intento")

	if r.Status != report.StatusFailed {
		t.Errorf("status = %s, want FAILED", r.Status)
	}
	lines := strings.Split(r.ErrorLog, "\n")
	if len(lines) != 2 {
		t.Fatalf("error log has %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "primer intento") || !strings.Contains(lines[1], "segundo intento") {
		t.Errorf("error log lost entries: %q", r.ErrorLog)
	}
}

func TestValidate(t *testing.T) {
	if err := validReport().Validate(); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*report.HiringReport)
	}{
		{"blank contract number", func(r *report.HiringReport) { r.ContractNumber = "  " }},
		{"zero contract date", func(r *report.HiringReport) { r.ContractDate = time.Time{} }},
		{"future contract date", func(r *report.HiringReport) { r.ContractDate = time.Now().Add(48 * time.Hour) }},
		{"blank position", func(r *report.HiringReport) { r.PositionTitle = "" }},
		{"unknown disability code", func(r *report.HiringReport) { r.DisabilityType = "TD-99" }},
		{"percentage out of range", func(r *report.HiringReport) { r.DisabilityPercentage = 150 }},
		{"bad nit", func(r *report.HiringReport) { r.CompanyNIT = "abc" }},
	}
	for _, c := range cases {
		r := validReport()
		c.mutate(r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: Validate() accepted an invalid report", c.name)
		}
	}
}
