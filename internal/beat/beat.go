package beat

import (
	"time"
)

// Event is a single intended hit, produced by the generator and
// consumed in time order by the spawner. Immutable once generated.
type Event struct {
	Time      time.Duration // intended hit time into the song
	Lane      int
	Intensity float64 // 0..1, drives note weight in the theme
}

// Difficulty presets. Threshold and MinInterval belong to live beat
// detection and are kept for that surface; only Density matters to the
// generator.
type Difficulty struct {
	Name        string
	Threshold   float64
	MinInterval time.Duration
	Density     float64 // probability of a note on each whole beat
}

var (
	Easy   = Difficulty{Name: "easy", Threshold: 1.4, MinInterval: 400 * time.Millisecond, Density: 0.3}
	Medium = Difficulty{Name: "medium", Threshold: 1.25, MinInterval: 250 * time.Millisecond, Density: 0.6}
	Hard   = Difficulty{Name: "hard", Threshold: 1.15, MinInterval: 150 * time.Millisecond, Density: 1.0}
)

// ByName resolves a difficulty flag value, defaulting to medium.
func ByName(name string) Difficulty {
	switch name {
	case "easy":
		return Easy
	case "hard":
		return Hard
	}
	return Medium
}
