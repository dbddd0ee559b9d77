package engine

import (
	"time"

	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/score"
)

// NoteView is the read-only render state of one live note.
type NoteView struct {
	Lane      int
	Progress  float64 // 0 at spawn, 1 at the hit line
	Fade      float64 // 1 live, decaying to 0 after hit/miss
	Status    game.Status
	Result    game.HitResult
	Intensity float64
}

type LaneView struct {
	Pressed  bool
	Flashing bool
}

// Snapshot is what the renderer consumes each frame. It carries no
// references into engine state; the renderer can never mutate a run.
type Snapshot struct {
	Phase         Phase
	SongTime      time.Duration
	CountdownLeft time.Duration
	Notes         []NoteView
	Lanes         []LaneView
	Stats         score.Stats
	Progress      float64
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:    e.phase,
		SongTime: e.songTime,
		Stats:    e.Stats(),
		Progress: e.Progress(),
		Lanes:    make([]LaneView, len(e.lanes)),
		Notes:    make([]NoteView, 0, len(e.notes)),
	}
	if e.phase == PhaseCountdown {
		s.CountdownLeft = e.countdownLeft
	}
	for i, l := range e.lanes {
		s.Lanes[i] = LaneView{Pressed: l.Pressed, Flashing: l.Flashing(e.songTime)}
	}
	for _, n := range e.notes {
		s.Notes = append(s.Notes, NoteView{
			Lane:      n.Lane,
			Progress:  n.Progress(e.songTime),
			Fade:      n.Fade(e.songTime),
			Status:    n.Status,
			Result:    n.Result,
			Intensity: n.Intensity,
		})
	}
	return s
}
