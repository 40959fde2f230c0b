// Package cron runs named maintenance jobs on fixed intervals.
package cron

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrJobNotFound = errors.New("cron job not found")

type JobStatus string

const (
	StatusIdle    JobStatus = "idle"
	StatusRunning JobStatus = "running"
	StatusOK      JobStatus = "ok"
	StatusFailed  JobStatus = "failed"
)

// Job is a task executed every Interval after Start.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

type jobState struct {
	Job
	mu        sync.Mutex
	status    JobStatus
	message   string
	lastRunAt *time.Time
}

// Snapshot is the reported state of a job.
type Snapshot struct {
	Name      string     `json:"name"`
	Status    JobStatus  `json:"status"`
	Message   string     `json:"message,omitempty"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
}

type Scheduler struct {
	mu   sync.RWMutex
	jobs map[string]*jobState
	log  *zap.Logger
}

func New(log *zap.Logger) *Scheduler {
	return &Scheduler{jobs: make(map[string]*jobState), log: log}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.Name] = &jobState{Job: job, status: StatusIdle}
}

// Start launches one goroutine per job; they stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, js := range s.jobs {
		go s.loop(ctx, js)
	}
}

func (s *Scheduler) loop(ctx context.Context, js *jobState) {
	ticker := time.NewTicker(js.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.execute(ctx, js)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, js *jobState) {
	js.mu.Lock()
	if js.status == StatusRunning {
		js.mu.Unlock()
		return
	}
	js.status = StatusRunning
	js.mu.Unlock()

	now := time.Now()
	err := js.Fn(ctx)

	js.mu.Lock()
	js.lastRunAt = &now
	if err != nil {
		js.status, js.message = StatusFailed, err.Error()
		s.log.Warn("cron job failed", zap.String("job", js.Name), zap.Error(err))
	} else {
		js.status, js.message = StatusOK, ""
	}
	js.mu.Unlock()
}

// Run executes the named job synchronously and returns its state afterwards.
func (s *Scheduler) Run(ctx context.Context, name string) (Snapshot, error) {
	s.mu.RLock()
	js, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return Snapshot{}, ErrJobNotFound
	}
	s.execute(ctx, js)
	return js.snapshot(), nil
}

func (js *jobState) snapshot() Snapshot {
	js.mu.Lock()
	defer js.mu.Unlock()
	return Snapshot{Name: js.Name, Status: js.status, Message: js.message, LastRunAt: js.lastRunAt}
}

// List returns every job sorted by name.
func (s *Scheduler) List() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Snapshot, 0, len(s.jobs))
	for _, js := range s.jobs {
		out = append(out, js.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
