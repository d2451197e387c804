package game

import (
	"testing"
	"time"
)

func TestScorerCounts(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewScorer(start)

	if s.Started() {
		t.Error("should not be started initially")
	}

	s.Record([]Event{
		{Type: EventStart},
		{Type: EventTarget},
		{Type: EventCorrect, Reaction: 400 * time.Millisecond},
		{Type: EventTarget},
		{Type: EventCorrect, Reaction: 300 * time.Millisecond},
		{Type: EventTarget},
		{Type: EventIncorrect},
		{Type: EventCorrect, Reaction: 500 * time.Millisecond},
		{Type: EventTarget},
	})

	if !s.Started() {
		t.Error("should be started after START")
	}

	got := s.Score()
	want := Counts{Rounds: 4, Correct: 3, Incorrect: 1}
	if got.Counts != want {
		t.Errorf("counts: got %+v, want %+v", got.Counts, want)
	}
	if got.Streak != 1 {
		t.Errorf("streak: got %d, want 1", got.Streak)
	}
	if got.BestStreak != 2 {
		t.Errorf("best streak: got %d, want 2", got.BestStreak)
	}
	if got.LastReaction != 500*time.Millisecond {
		t.Errorf("last reaction: got %v, want 500ms", got.LastReaction)
	}
	if got.BestReaction != 300*time.Millisecond {
		t.Errorf("best reaction: got %v, want 300ms", got.BestReaction)
	}
}

func TestCheckHeartbeatDisabledWithZeroInterval(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewScorer(start)

	if hb := s.CheckHeartbeat(start.Add(15*time.Minute), 0); hb != nil {
		t.Error("expected nil heartbeat with zero interval")
	}
	if hb := s.CheckHeartbeat(start.Add(15*time.Minute), -time.Minute); hb != nil {
		t.Error("expected nil heartbeat with negative interval")
	}
}

func TestCheckHeartbeatBeforeInterval(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewScorer(start)

	if hb := s.CheckHeartbeat(start.Add(14*time.Minute), 15*time.Minute); hb != nil {
		t.Error("expected nil heartbeat before interval")
	}
}

func TestCheckHeartbeatAtInterval(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewScorer(start)
	s.Record([]Event{{Type: EventStart}, {Type: EventTarget}, {Type: EventIncorrect}})

	check := start.Add(15 * time.Minute)
	hb := s.CheckHeartbeat(check, 15*time.Minute)
	if hb == nil {
		t.Fatal("expected heartbeat at interval")
	}
	if !hb.Timestamp.Equal(check) {
		t.Errorf("timestamp: got %v, want %v", hb.Timestamp, check)
	}
	if hb.Uptime != 15*time.Minute {
		t.Errorf("uptime: got %v, want 15m", hb.Uptime)
	}
	if hb.Score.Counts.Incorrect != 1 || hb.Score.Counts.Rounds != 1 {
		t.Errorf("score: got %+v", hb.Score.Counts)
	}
}

func TestCheckHeartbeatUpdatesLastTime(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewScorer(start)

	t1 := start.Add(15 * time.Minute)
	if hb := s.CheckHeartbeat(t1, 15*time.Minute); hb == nil {
		t.Fatal("expected first heartbeat")
	}
	if hb := s.CheckHeartbeat(t1.Add(time.Second), 15*time.Minute); hb != nil {
		t.Error("expected nil right after heartbeat")
	}
	if hb := s.CheckHeartbeat(t1.Add(15*time.Minute), 15*time.Minute); hb == nil {
		t.Error("expected second heartbeat")
	}
}
