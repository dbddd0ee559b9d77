package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory   = kingpin.Arg("directory", "Song directory").Required().ExistingDir()
	Difficulty  = kingpin.Flag("difficulty", "easy, medium or hard").Default("medium").Short('d').Enum("easy", "medium", "hard")
	BPM         = kingpin.Flag("bpm", "Beat tempo for the generated schedule").Default("120").Short('b').Float64()
	Seed        = kingpin.Flag("seed", "Schedule random seed, 0 for time-based").Default("0").Int64()
	Rate        = kingpin.Flag("rate", "Playback speed").Default("1.0").Short('r').Float64()
	Calibration = kingpin.Flag("calibration", "Offset added to the playback clock (0-150ms typical)").Default("0ms").Short('c').Duration()
	Countdown   = kingpin.Flag("countdown", "Lead-in before playback").Default("1.5s").Duration()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("16ms").Short('p').Duration()
	LoadTimeout = kingpin.Flag("load-timeout", "Bounded wait for the player to come up").Default("10s").Duration()
	HistoryFile = kingpin.Flag("history", "Run history database").Default("./history.db").String()
	laneKeys    = kingpin.Flag("keys", "Lane keys, one rune per lane").Default("dfjk").Short('k').String()
)

// Parse reads the command line. Called once from main, never from
// init, so importing this package has no side effects.
func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}

// Keys returns the lane key bindings; the lane count is its length.
func Keys() []rune {
	return []rune(*laneKeys)
}
