// pkg/job/summary.go
package job

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// PhaseTiming records one pipeline phase's wall clock time
type PhaseTiming struct {
	Name     string
	Duration time.Duration
}

// RunSummary accumulates per-run statistics across the pipeline phases.
// It is safe for concurrent use, although the current pipeline updates
// it from a single goroutine.
type RunSummary struct {
	mu           sync.Mutex
	StartTime    time.Time
	EndTime      time.Time
	Phases       []PhaseTiming
	ObjectIssues map[string]int
	FlushedFiles int
	DeletedOld   bool
}

// NewRunSummary starts a summary clock for one run
func NewRunSummary() *RunSummary {
	return &RunSummary{
		StartTime:    time.Now(),
		Phases:       make([]PhaseTiming, 0),
		ObjectIssues: make(map[string]int),
	}
}

// TrackPhase times fn and records it under name, error or not
func (s *RunSummary) TrackPhase(name string, fn func() error) error {
	start := time.Now()
	err := fn()

	s.mu.Lock()
	s.Phases = append(s.Phases, PhaseTiming{Name: name, Duration: time.Since(start)})
	s.mu.Unlock()

	return err
}

// AddObjectIssues counts issues against the object that produced them
func (s *RunSummary) AddObjectIssues(object string, count int) {
	if count == 0 {
		return
	}
	s.mu.Lock()
	s.ObjectIssues[object] += count
	s.mu.Unlock()
}

// SetFlushedFiles records how many repaired files were written back
func (s *RunSummary) SetFlushedFiles(n int) {
	s.mu.Lock()
	s.FlushedFiles = n
	s.mu.Unlock()
}

// SetDeletedOld records whether the delete phase removed anything
func (s *RunSummary) SetDeletedOld(deleted bool) {
	s.mu.Lock()
	s.DeletedOld = deleted
	s.mu.Unlock()
}

// Finish stops the summary clock
func (s *RunSummary) Finish() {
	s.mu.Lock()
	s.EndTime = time.Now()
	s.mu.Unlock()
}

// Duration returns the elapsed run time so far, or the final duration
// once Finish has been called
func (s *RunSummary) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// TotalIssues sums the per-object issue counts
func (s *RunSummary) TotalIssues() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.ObjectIssues {
		total += n
	}
	return total
}

// Log writes the whole summary through the logger
func (s *RunSummary) Log(logger *zap.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := []zap.Field{
		zap.Time("startTime", s.StartTime),
		zap.Duration("duration", s.durationLocked()),
		zap.Int("flushedFiles", s.FlushedFiles),
		zap.Bool("deletedOldRecords", s.DeletedOld),
	}
	for _, p := range s.Phases {
		fields = append(fields, zap.Duration("phase."+p.Name, p.Duration))
	}
	for object, count := range s.ObjectIssues {
		fields = append(fields, zap.Int("issues."+object, count))
	}

	logger.Info("Run summary", fields...)
}

func (s *RunSummary) durationLocked() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
