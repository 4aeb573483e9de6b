package scheduler

import (
	"context"
	"errors"
	"testing"
)

func TestStart_WithoutReportFunc(t *testing.T) {
	s := New("")
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsRunning() {
		t.Fatalf("no job must be registered without a report func")
	}
	s.Stop()
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := New("not a cron line")
	s.SetReportFunction(func(context.Context) error { return nil })
	if err := s.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStart_RegistersJob(t *testing.T) {
	s := New("*/5 * * * *")
	s.SetReportFunction(func(context.Context) error { return nil })
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()
	if !s.IsRunning() {
		t.Fatalf("job not registered")
	}
}

func TestRunReport_UsesSchedulerContext(t *testing.T) {
	s := New("")
	var got context.Context
	s.SetReportFunction(func(ctx context.Context) error {
		got = ctx
		return errors.New("logged, not returned")
	})
	s.runReport()
	if got == nil || got.Err() != nil {
		t.Fatalf("report must receive the live scheduler context")
	}
	s.Stop()
	if got.Err() == nil {
		t.Fatalf("context must be cancelled after Stop")
	}
}
