package game

import (
	"time"
)

// Lane is one input channel. It carries only transient visual state;
// notes are owned by the engine's arena and tagged with a lane index.
type Lane struct {
	Index   int
	Pressed bool

	flashUntil time.Duration
}

// Flash lights the lane's hit field briefly after a judged hit.
func (l *Lane) Flash(now time.Duration) {
	l.flashUntil = now + 120*time.Millisecond
}

func (l *Lane) Flashing(now time.Duration) bool {
	return now < l.flashUntil
}

func (l *Lane) Reset() {
	l.Pressed = false
	l.flashUntil = 0
}

func NewLanes(n int) []*Lane {
	lanes := make([]*Lane, n)
	for i := range lanes {
		lanes[i] = &Lane{Index: i}
	}
	return lanes
}
