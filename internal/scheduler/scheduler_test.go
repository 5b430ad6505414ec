package scheduler

import (
	"context"
	"testing"

	"github.com/robfig/cron/v3"
)

func TestNew_BlankSpecsFallBackToDefaults(t *testing.T) {
	s := New(nil, nil, "", "")
	if s.retrySpec != DefaultRetrySpec {
		t.Errorf("retrySpec = %q, want %q", s.retrySpec, DefaultRetrySpec)
	}
	if s.snapshotSpec != DefaultSnapshotSpec {
		t.Errorf("snapshotSpec = %q, want %q", s.snapshotSpec, DefaultSnapshotSpec)
	}
}

func TestNew_KeepsConfiguredSpecs(t *testing.T) {
	s := New(nil, nil, "*/30 * * * *", "0 3 1 * *")
	if s.retrySpec != "*/30 * * * *" {
		t.Errorf("retrySpec = %q", s.retrySpec)
	}
	if s.snapshotSpec != "0 3 1 * *" {
		t.Errorf("snapshotSpec = %q", s.snapshotSpec)
	}
}

func TestStart_RejectsInvalidSpec(t *testing.T) {
	s := New(nil, nil, "not a cron spec", "")
	if err := s.Start(context.Background()); err == nil {
		s.Stop()
		t.Fatal("Start() must refuse an invalid retry spec")
	}
}

func TestDefaultSpecsParse(t *testing.T) {
	for _, spec := range []string{DefaultRetrySpec, DefaultSnapshotSpec} {
		if _, err := cron.ParseStandard(spec); err != nil {
			t.Errorf("spec %q does not parse: %v", spec, err)
		}
	}
}
