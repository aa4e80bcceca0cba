package job

import (
	"errors"
	"testing"
	"time"
)

func TestRunSummaryTracksPhases(t *testing.T) {
	s := NewRunSummary()

	if err := s.TrackPhase("prepare", func() error {
		time.Sleep(time.Millisecond)
		return nil
	}); err != nil {
		t.Fatalf("TrackPhase failed: %v", err)
	}

	wantErr := errors.New("boom")
	if err := s.TrackPhase("count", func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("TrackPhase err = %v, want %v", err, wantErr)
	}

	// Failed phases are still timed.
	if len(s.Phases) != 2 {
		t.Fatalf("recorded %d phases, want 2", len(s.Phases))
	}
	if s.Phases[0].Name != "prepare" || s.Phases[1].Name != "count" {
		t.Errorf("phase order = %v", s.Phases)
	}
	if s.Phases[0].Duration <= 0 {
		t.Error("prepare phase has no duration")
	}
}

func TestRunSummaryIssueCounts(t *testing.T) {
	s := NewRunSummary()
	s.AddObjectIssues("User", 2)
	s.AddObjectIssues("Group", 1)
	s.AddObjectIssues("User", 3)
	s.AddObjectIssues("Account", 0)

	if got := s.TotalIssues(); got != 6 {
		t.Errorf("TotalIssues = %d, want 6", got)
	}
	if s.ObjectIssues["User"] != 5 {
		t.Errorf("User issues = %d, want 5", s.ObjectIssues["User"])
	}
	if _, ok := s.ObjectIssues["Account"]; ok {
		t.Error("zero-count object recorded")
	}
}

func TestRunSummaryDuration(t *testing.T) {
	s := NewRunSummary()
	if s.Duration() < 0 {
		t.Error("running duration is negative")
	}
	s.Finish()
	final := s.Duration()
	time.Sleep(time.Millisecond)
	if s.Duration() != final {
		t.Error("duration kept growing after Finish")
	}
}
