package score

import (
	"time"

	"git.lost.host/meutraa/vbeat/internal/game"
)

type Judgment uint8

const (
	Perfect Judgment = iota
	Good
	Miss
)

func (j Judgment) String() string {
	switch j {
	case Perfect:
		return "perfect"
	case Good:
		return "good"
	}
	return "miss"
}

func (j Judgment) Result() game.HitResult {
	switch j {
	case Perfect:
		return game.ResultPerfect
	case Good:
		return game.ResultGood
	}
	return game.ResultNone
}

// Windows are the symmetric timing thresholds per judgment tier; a
// press is judged on |intended − actual| alone, early and late alike.
type Windows struct {
	Perfect time.Duration
	Good    time.Duration
}

var DefaultWindows = Windows{
	Perfect: 50 * time.Millisecond,
	Good:    100 * time.Millisecond,
}

// Gate is the widest delta a press may claim a note at. It equals the
// good window so a gated press can never judge as a miss.
func (w Windows) Gate() time.Duration {
	return w.Good
}

// Judge maps an absolute timing delta to a tier. Boundaries are
// inclusive.
func (w Windows) Judge(delta time.Duration) Judgment {
	if delta < 0 {
		delta = -delta
	}
	if delta <= w.Perfect {
		return Perfect
	}
	if delta <= w.Good {
		return Good
	}
	return Miss
}
