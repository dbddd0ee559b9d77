package engine

import (
	"time"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/vbeat/internal/beat"
	"git.lost.host/meutraa/vbeat/internal/clock"
	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/player"
	"git.lost.host/meutraa/vbeat/internal/score"
)

type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseCountdown
	PhasePlaying
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	}
	return "ended"
}

type Config struct {
	Lanes       int
	Windows     score.Windows
	Countdown   time.Duration // lead-in before playback starts
	EndGrace    time.Duration // quiet period before the run ends
	Calibration time.Duration // user latency compensation
}

func DefaultConfig() Config {
	return Config{
		Lanes:     4,
		Windows:   score.DefaultWindows,
		Countdown: 1500 * time.Millisecond,
		EndGrace:  2 * time.Second,
	}
}

// Engine owns the run: the interpolated clock, the spawner cursor, the
// live-note arena and the scorer. Everything is driven from a single
// goroutine; Frame, HandlePress and the phase controls must all be
// called from the same loop. Deadlines (countdown, end grace) are data
// checked each frame, never scheduled callbacks, so pausing or
// restarting cannot leave a stale timer behind.
type Engine struct {
	cfg Config

	p     player.Player
	clk   *clock.Interpolated
	spawn *game.Spawner
	sc    *score.Scorer
	lanes []*game.Lane

	notes []*game.Note // live arena, ordered by hit time

	phase    Phase
	songTime time.Duration

	countdownLeft time.Duration
	lastFrame     time.Time

	graceActive bool
	graceStart  time.Duration
	songOver    bool

	lastErr error
}

func New(cfg Config) *Engine {
	if cfg.Lanes <= 0 {
		cfg.Lanes = 4
	}
	return &Engine{cfg: cfg, lanes: game.NewLanes(cfg.Lanes)}
}

func (e *Engine) Phase() Phase { return e.phase }

func (e *Engine) LastError() error { return e.lastErr }

// BeginLoad enters the loading phase while the caller brings up the
// external player. No game state exists yet.
func (e *Engine) BeginLoad() error {
	if e.phase != PhaseIdle && e.phase != PhaseEnded {
		return errors.Errorf("cannot load from phase %v", e.phase)
	}
	e.phase = PhaseLoading
	e.lastErr = nil
	return nil
}

// AbortLoad reverts a failed load to idle, keeping the reason for the
// UI. No partial run state is left behind.
func (e *Engine) AbortLoad(err error) {
	e.lastErr = err
	e.phase = PhaseIdle
}

// Start arms a fresh run over the schedule. The player must be loaded;
// playback begins once the countdown elapses inside Frame.
func (e *Engine) Start(p player.Player, schedule []beat.Event, now time.Time) error {
	if nil == p {
		return errors.New("engine: no player")
	}
	if e.phase != PhaseLoading && e.phase != PhaseIdle && e.phase != PhaseEnded {
		return errors.Errorf("cannot start from phase %v", e.phase)
	}
	e.p = p
	e.clk = clock.NewInterpolated(p, e.cfg.Calibration)
	e.spawn = game.NewSpawner(schedule)
	e.sc = score.NewScorer(len(schedule))
	e.notes = e.notes[:0]
	for _, l := range e.lanes {
		l.Reset()
	}
	e.songTime = 0
	e.graceActive = false
	e.songOver = false
	e.countdownLeft = e.cfg.Countdown
	e.lastFrame = now
	e.phase = PhaseCountdown
	return nil
}

// Frame advances one tick of the run. Call at render cadence.
func (e *Engine) Frame(now time.Time) error {
	dt := now.Sub(e.lastFrame)
	e.lastFrame = now

	switch e.phase {
	case PhaseCountdown:
		e.countdownLeft -= dt
		if e.countdownLeft > 0 {
			return nil
		}
		if err := e.p.Play(); nil != err {
			e.lastErr = err
			e.phase = PhaseIdle
			return err
		}
		e.clk.Anchor()
		e.phase = PhasePlaying
		fallthrough
	case PhasePlaying:
		e.step(now)
	}
	return nil
}

// step is the per-frame update while playing: clock, spawn, note
// transitions, miss scoring, arena compaction, end-of-run detection.
func (e *Engine) step(now time.Time) {
	e.songTime = e.clk.Sample(now)

	e.notes = append(e.notes, e.spawn.Advance(e.songTime)...)

	// Transition pass. The arena is never filtered while iterating;
	// removals are compacted afterwards.
	live := false
	for _, n := range e.notes {
		if n.Update(e.songTime) && !n.Scored {
			n.Scored = true
			e.sc.ProcessHit(score.Miss)
		}
		if n.Status != game.StatusRemoved {
			live = true
		}
	}
	e.compact()

	if (e.spawn.Exhausted() || e.songOver) && !live {
		if !e.graceActive {
			e.graceActive = true
			e.graceStart = e.songTime
		} else if e.songTime-e.graceStart >= e.cfg.EndGrace {
			e.finish()
		}
	} else {
		e.graceActive = false
	}
}

func (e *Engine) compact() {
	kept := e.notes[:0]
	for _, n := range e.notes {
		if n.Status != game.StatusRemoved {
			kept = append(kept, n)
		}
	}
	for i := len(kept); i < len(e.notes); i++ {
		e.notes[i] = nil
	}
	e.notes = kept
}

// HandlePress resolves a key press against the nearest active note in
// the lane. Presses with no note inside the gate are a defined no-op;
// nothing is consumed and nothing is scored.
func (e *Engine) HandlePress(lane int, now time.Time) {
	if e.phase != PhasePlaying || lane < 0 || lane >= len(e.lanes) {
		return
	}
	e.lanes[lane].Pressed = true
	t := e.clk.Sample(now)

	// The arena is in hit-time order, so the deltas are unimodal and
	// the scan can stop once they grow again.
	var closest *game.Note
	best := time.Duration(1<<63 - 1)
	signed := best
	for _, n := range e.notes {
		if n.Status != game.StatusActive || n.Lane != lane {
			continue
		}
		dd := t - n.HitTime
		d := dd
		if d < 0 {
			d = -d
		}
		if d < best {
			best = d
			signed = dd
			closest = n
		} else if nil != closest {
			break
		}
	}
	if nil == closest || best > e.cfg.Windows.Gate() {
		return
	}

	j := e.cfg.Windows.Judge(best)
	if j == score.Miss {
		// Only reachable with a gate wider than the good window.
		return
	}
	if !closest.RecordHit(j.Result(), e.songTime) {
		return
	}
	if !closest.Scored {
		closest.Scored = true
		e.sc.ProcessHit(j)
		e.sc.RecordError(signed)
	}
	e.lanes[lane].Flash(e.songTime)
}

// HandleRelease clears the lane's pressed flag.
func (e *Engine) HandleRelease(lane int) {
	if lane < 0 || lane >= len(e.lanes) {
		return
	}
	e.lanes[lane].Pressed = false
}

// Pause freezes the run: playback stops, the clock stops being
// sampled, judging suspends and any armed end grace is discarded.
func (e *Engine) Pause() error {
	if e.phase != PhasePlaying {
		return errors.Errorf("cannot pause from phase %v", e.phase)
	}
	if err := e.p.Pause(); nil != err {
		return err
	}
	e.graceActive = false
	e.phase = PhasePaused
	return nil
}

// Resume re-anchors the clock before play continues so the paused wall
// time never replays as song time.
func (e *Engine) Resume(now time.Time) error {
	if e.phase != PhasePaused {
		return errors.Errorf("cannot resume from phase %v", e.phase)
	}
	if err := e.p.Play(); nil != err {
		return err
	}
	e.clk.Anchor()
	e.lastFrame = now
	e.phase = PhasePlaying
	return nil
}

// NotifySongEnded is called (from the owning loop) when the player
// reports natural end of playback. Remaining live notes still run out
// their windows; the end grace takes over from there.
func (e *Engine) NotifySongEnded() {
	if e.phase == PhasePlaying {
		e.songOver = true
	}
}

func (e *Engine) finish() {
	if nil != e.p {
		if err := e.p.Stop(); nil != err {
			e.lastErr = err
		}
	}
	e.phase = PhaseEnded
}

// Stats returns the scoring snapshot for the current or finished run.
func (e *Engine) Stats() score.Stats {
	if nil == e.sc {
		return score.Stats{Accuracy: 100, Grade: "S"}
	}
	return e.sc.Snapshot()
}

// Progress is the percentage of expected notes already resolved.
func (e *Engine) Progress() float64 {
	if nil == e.sc {
		return 0
	}
	return e.sc.Progress()
}
