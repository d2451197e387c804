package game

import "time"

// Scorer keeps play statistics from the event stream and decides when a
// heartbeat is due.
type Scorer struct {
	score         Score
	startTime     time.Time
	lastHeartbeat time.Time
	started       bool
}

// NewScorer creates a Scorer. The startTime is used for calculating uptime in
// heartbeat events.
func NewScorer(startTime time.Time) *Scorer {
	return &Scorer{
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Record folds events into the score.
func (s *Scorer) Record(events []Event) {
	for _, e := range events {
		switch e.Type {
		case EventStart:
			s.started = true
		case EventTarget:
			s.score.Counts.Rounds++
		case EventCorrect:
			s.score.Counts.Correct++
			s.score.Streak++
			if s.score.Streak > s.score.BestStreak {
				s.score.BestStreak = s.score.Streak
			}
			s.score.LastReaction = e.Reaction
			if s.score.BestReaction == 0 || e.Reaction < s.score.BestReaction {
				s.score.BestReaction = e.Reaction
			}
		case EventIncorrect:
			s.score.Counts.Incorrect++
			s.score.Streak = 0
		}
	}
}

// Started reports whether the start press has been seen.
func (s *Scorer) Started() bool {
	return s.started
}

// Score returns a copy of the current statistics.
func (s *Scorer) Score() Score {
	return s.score
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed or
// if interval is <= 0 (disabled). Heartbeats are sent while idle too.
func (s *Scorer) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(s.lastHeartbeat) < interval {
		return nil
	}

	s.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(s.startTime),
		Score:     s.score,
	}
}
