package scheduler

import (
	"context"
	"io"
	"testing"

	"github.com/ycwu/twquant/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	runs     int
}

func (j *stubJob) Name() string              { return j.name }
func (j *stubJob) Schedule() string          { return j.schedule }
func (j *stubJob) Run(context.Context) error { j.runs++; return nil }

func TestAddJobRejectsDuplicate(t *testing.T) {
	s := New(logger.NewForWriter(io.Discard, "error"))

	if err := s.AddJob(&stubJob{name: "sweep", schedule: "@every 10m"}); err != nil {
		t.Fatalf("first AddJob failed: %v", err)
	}
	if err := s.AddJob(&stubJob{name: "sweep", schedule: "@hourly"}); err == nil {
		t.Error("expected duplicate job name to be rejected")
	}
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(logger.NewForWriter(io.Discard, "error"))

	if err := s.AddJob(&stubJob{name: "sweep", schedule: "not a schedule"}); err == nil {
		t.Error("expected invalid cron expression to be rejected")
	}
}

func TestRunJobInvokesJob(t *testing.T) {
	s := New(logger.NewForWriter(io.Discard, "error"))
	job := &stubJob{name: "sweep", schedule: "@every 10m"}

	s.runJob(job)
	if job.runs != 1 {
		t.Errorf("runs = %d, want 1", job.runs)
	}
}
