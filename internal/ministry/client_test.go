package ministry

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

func testReport() *report.HiringReport {
	return &report.HiringReport{
		ID:             kernel.ReportID("rep-1"),
		CompanyNIT:     kernel.NIT("900123456-7"),
		ContractNumber: "CT-2026-001",
		ContractDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DisabilityType: kernel.DisabilityCodeTD01,
	}
}

func TestSubmit_AlwaysSucceeds(t *testing.T) {
	c := NewSimulatedClient(time.Millisecond, 1.0)

	result, err := c.Submit(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Submit() returned error: %v", err)
	}
	if !result.Success {
		t.Fatal("success rate 1.0 must always accept")
	}

	pattern := regexp.MustCompile(`^MIN-\d{8}-\d{5}$`)
	if !pattern.MatchString(result.ReceiptNumber) {
		t.Errorf("receipt %q does not match MIN-YYYYMMDD-NNNNN", result.ReceiptNumber)
	}

	code, ok := result.Response["validation_code"].(string)
	if !ok || len(code) != 16 {
		t.Errorf("validation_code = %v, want a 16-char string", result.Response["validation_code"])
	}
	if result.Response["ministry_id"] != result.ReceiptNumber {
		t.Error("ministry_id must echo the receipt number")
	}
}

func TestSubmit_AlwaysRefusesAtZeroRate(t *testing.T) {
	// Constructor treats 0 as unset, so use a rate below any drawn value
	c := NewSimulatedClient(time.Millisecond, 0.0000001)

	refused := false
	for i := 0; i < 20 && !refused; i++ {
		result, err := c.Submit(context.Background(), testReport())
		if err != nil {
			t.Fatalf("Submit() returned error: %v", err)
		}
		if !result.Success {
			refused = true
			if result.Error == "" {
				t.Error("refusal must carry an error message")
			}
			if result.ReceiptNumber != "" {
				t.Error("refusal must not carry a receipt")
			}
		}
	}
	if !refused {
		t.Error("a near-zero success rate never refused in 20 attempts")
	}
}

func TestSubmit_ContextCancelled(t *testing.T) {
	c := NewSimulatedClient(5*time.Second, 1.0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Submit(ctx, testReport()); err == nil {
		t.Error("cancelled context must abort the submission")
	}
}
