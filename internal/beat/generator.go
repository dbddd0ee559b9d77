package beat

import (
	"math/rand"
	"sort"
	"time"
)

const (
	startMargin = 2 * time.Second
	endMargin   = 2 * time.Second

	// MinLaneGap is the closest two events in the same lane may sit.
	// The collision pass below reassigns violators.
	MinLaneGap = 200 * time.Millisecond

	subdivisionChance    = 0.3
	subdivisionIntensity = 0.7
	rapidChance          = 0.2
	rapidIntensity       = 0.5
)

// Generator produces a beat schedule for a song of known length. The
// random source is injected so schedules are reproducible from a seed.
type Generator struct {
	Lanes int
	rng   *rand.Rand
}

func NewGenerator(lanes int, rng *rand.Rand) *Generator {
	return &Generator{Lanes: lanes, rng: rng}
}

// Generate steps whole beats at the given tempo across the playable
// window and emits events by difficulty density, with half-beat
// subdivisions on medium and up and rapid quarter-beat pairs on hard.
// The result is sorted by time and free of same-lane collisions.
func (g *Generator) Generate(duration time.Duration, diff Difficulty, bpm float64) []Event {
	if bpm <= 0 || duration <= startMargin+endMargin {
		return nil
	}
	step := time.Duration(float64(time.Minute) / bpm)
	end := duration - endMargin

	events := []Event{}
	emit := func(t time.Duration, intensity float64) {
		if t > end {
			return
		}
		events = append(events, Event{
			Time:      t,
			Lane:      g.rng.Intn(g.Lanes),
			Intensity: intensity,
		})
	}

	for t := startMargin; t <= end; t += step {
		if g.rng.Float64() < diff.Density {
			emit(t, 0.8+0.2*g.rng.Float64())
		}
		if diff.Name != Easy.Name && g.rng.Float64() < subdivisionChance {
			emit(t+step/2, subdivisionIntensity)
		}
		if diff.Name == Hard.Name && g.rng.Float64() < rapidChance {
			emit(t+step/4, rapidIntensity)
			emit(t+3*step/4, rapidIntensity)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	g.resolveLaneCollisions(events)
	return events
}

// resolveLaneCollisions reassigns the later of two adjacent same-lane
// events closer than MinLaneGap to a random lane other than the
// earlier one. Events stay sorted because only lanes change.
func (g *Generator) resolveLaneCollisions(events []Event) {
	if g.Lanes < 2 {
		return
	}
	for i := 1; i < len(events); i++ {
		prev := &events[i-1]
		if events[i].Lane != prev.Lane || events[i].Time-prev.Time >= MinLaneGap {
			continue
		}
		lane := g.rng.Intn(g.Lanes - 1)
		if lane >= prev.Lane {
			lane++
		}
		events[i].Lane = lane
	}
}
