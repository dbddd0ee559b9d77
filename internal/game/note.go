package game

import (
	"time"
)

type Status uint8

const (
	StatusActive Status = iota
	StatusHit
	StatusMissed
	StatusRemoved
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusHit:
		return "hit"
	case StatusMissed:
		return "missed"
	}
	return "removed"
}

type HitResult uint8

const (
	ResultNone HitResult = iota
	ResultPerfect
	ResultGood
)

const (
	// TravelTime is how long a note takes from spawn to the hit line,
	// and therefore also the spawn lead time.
	TravelTime = 2 * time.Second

	// MissTolerance is how far past its hit time an active note may
	// drift before it is declared missed.
	MissTolerance = 150 * time.Millisecond

	// FadeDuration is how long a hit or missed note lingers for its
	// fade-out before removal.
	FadeDuration = 300 * time.Millisecond

	// HardCutoff bounds note lifetime past the hit time even if the
	// fade never runs (stalled renderer). Removal is unconditional
	// beyond it.
	HardCutoff = 500 * time.Millisecond
)

// Note is one hittable entity. Its position carries no state: it is
// recomputed from the clock every frame, so a pause resumes without
// drift. Status only ever moves forward.
type Note struct {
	Lane      int
	HitTime   time.Duration // when the note should be hit
	Intensity float64

	Status Status
	Result HitResult
	Scored bool // exactly one scoring update per note

	statusTime time.Duration // song time of the hit/missed transition
}

func NewNote(lane int, hitTime time.Duration, intensity float64) *Note {
	return &Note{Lane: lane, HitTime: hitTime, Intensity: intensity}
}

// Progress is 0 at spawn and 1 at the hit line, clamped below, open
// above so late notes keep sliding past the line.
func (n *Note) Progress(now time.Duration) float64 {
	p := 1 - float64(n.HitTime-now)/float64(TravelTime)
	if p < 0 {
		return 0
	}
	return p
}

// Fade is 1 while active and decays to 0 over FadeDuration after a
// hit or missed transition.
func (n *Note) Fade(now time.Duration) float64 {
	if n.Status != StatusHit && n.Status != StatusMissed {
		if n.Status == StatusRemoved {
			return 0
		}
		return 1
	}
	f := 1 - float64(now-n.statusTime)/float64(FadeDuration)
	if f < 0 {
		return 0
	}
	return f
}

// RecordHit moves an active note to hit. Reports whether the
// transition happened; repeated calls are no-ops.
func (n *Note) RecordHit(result HitResult, now time.Duration) bool {
	if n.Status != StatusActive {
		return false
	}
	n.Status = StatusHit
	n.Result = result
	n.statusTime = now
	return true
}

// Update advances the time-driven transitions. It reports a miss
// transition exactly once so the caller can route it to scoring.
func (n *Note) Update(now time.Duration) (missed bool) {
	switch n.Status {
	case StatusActive:
		if now-n.HitTime > MissTolerance {
			n.Status = StatusMissed
			n.statusTime = now
			missed = true
		}
	case StatusHit, StatusMissed:
		if now-n.statusTime > FadeDuration {
			n.Status = StatusRemoved
		}
	}
	if n.Status != StatusRemoved && now-n.HitTime > HardCutoff {
		n.Status = StatusRemoved
	}
	return missed
}
