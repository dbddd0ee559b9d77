package player

import (
	"time"

	"github.com/pkg/errors"
)

type State uint8

const (
	StateUnstarted State = iota
	StatePlaying
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "ended"
}

// ErrLoadTimeout means the backend did not become ready within the
// bounded wait; the run aborts instead of hanging.
var ErrLoadTimeout = errors.New("player: load timed out")

// Player is the external playback source. CurrentTime is the laggy,
// quantized position the clock interpolator smooths over; the rest is
// transport control. State callbacks fire from the playback goroutine,
// so owners must funnel them onto their own loop.
type Player interface {
	CurrentTime() (time.Duration, error)
	Duration() time.Duration
	Play() error
	Pause() error
	Stop() error
	OnStateChange(func(State))
}
