package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the report daily at 21:00 UTC.
const DefaultSchedule = "0 21 * * *"

// Scheduler runs the periodic summary report.
type Scheduler struct {
	cron       *cron.Cron
	schedule   string
	ctx        context.Context
	cancel     context.CancelFunc
	reportFunc func(ctx context.Context) error
}

// New creates a scheduler for a standard 5-field cron expression evaluated in UTC.
func New(schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		schedule: schedule,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetReportFunction sets the job run on every tick.
func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.reportFunc == nil {
		log.Println("⚠️ Report function not set, scheduler will not generate reports")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, s.runReport)
	if err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.Printf("📅 Scheduler started - reports on %q (UTC)", s.schedule)
	return nil
}

func (s *Scheduler) runReport() {
	log.Println("🕘 Triggered summary report generation")
	if err := s.reportFunc(s.ctx); err != nil {
		log.Printf("❌ Report generation failed: %v", err)
	}
}

// Stop waits for a running job and cancels its context.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}

// IsRunning reports whether a job is registered.
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
