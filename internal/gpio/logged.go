package gpio

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Logged adapts a Board to the game's error-free line interface.
// A failed read is logged and reported as high (released); a failed write is
// logged and dropped. Each failing line is logged once until it recovers.
type Logged struct {
	board   Board
	logger  zerolog.Logger
	failing map[string]bool
}

// NewLogged wraps board.
func NewLogged(board Board, logger zerolog.Logger) *Logged {
	return &Logged{
		board:   board,
		logger:  logger,
		failing: map[string]bool{},
	}
}

// Level returns the electrical level of line.
func (l *Logged) Level(line int) bool {
	v, err := l.board.Read(line)
	l.track("read", line, err)
	if err != nil {
		return true
	}
	return v
}

// Set drives line high or low.
func (l *Logged) Set(line int, high bool) {
	l.track("write", line, l.board.Write(line, high))
}

func (l *Logged) track(op string, line int, err error) {
	key := fmt.Sprintf("%s:%d", op, line)
	if err == nil {
		if l.failing[key] {
			delete(l.failing, key)
			l.logger.Info().Str("op", op).Int("line", line).Msg("gpio recovered")
		}
		return
	}
	if l.failing[key] {
		return
	}
	l.failing[key] = true
	l.logger.Error().Err(err).Str("op", op).Int("line", line).Msg("gpio error")
}
