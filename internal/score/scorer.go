package score

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	baseScorePerfect = 100
	baseScoreGood    = 50
)

// Combo thresholds and the multiplier tiers they unlock. Index 0 is
// the floor below the first threshold.
var (
	comboThresholds = []int{10, 25, 50, 100}
	multipliers     = []float64{1, 1.5, 2, 2.5, 3}
)

// Multiplier returns the scoring multiplier for a combo count.
func Multiplier(combo int) float64 {
	m := multipliers[0]
	for i, threshold := range comboThresholds {
		if combo < threshold {
			break
		}
		m = multipliers[i+1]
	}
	return m
}

// HitOutcome describes what a single judgment was worth.
type HitOutcome struct {
	ScoreEarned int
	Multiplier  float64
	Combo       int
}

// Breakdown is the per-tier judgment tally.
type Breakdown struct {
	Perfect int `json:"perfect"`
	Good    int `json:"good"`
	Miss    int `json:"miss"`
}

// Stats is a read-only snapshot for the UI and for persistence.
type Stats struct {
	Score         int
	Combo         int
	MaxCombo      int
	Accuracy      float64
	Grade         string
	TotalNotes    int
	HitNotes      int
	ExpectedNotes int
	Breakdown     Breakdown

	// Signed hit error statistics, negative meaning early.
	MeanError  time.Duration
	StdevError time.Duration
}

// Scorer accumulates score, combo and accuracy over one run. Score
// only ever grows; combo resets exactly on a miss.
type Scorer struct {
	score    int
	combo    int
	maxCombo int

	breakdown Breakdown
	hitNotes  int

	expectedNotes int

	// Signed per-hit errors in seconds, for the stats panel.
	errs []float64
}

func NewScorer(expectedNotes int) *Scorer {
	return &Scorer{expectedNotes: expectedNotes}
}

// ProcessHit applies one judgment. Misses zero the combo and earn
// nothing; hits extend the combo and earn the base score scaled by the
// combo multiplier in effect after the increment.
func (s *Scorer) ProcessHit(j Judgment) HitOutcome {
	if j == Miss {
		s.combo = 0
		s.breakdown.Miss++
		return HitOutcome{Multiplier: Multiplier(0)}
	}

	base := baseScoreGood
	if j == Perfect {
		base = baseScorePerfect
		s.breakdown.Perfect++
	} else {
		s.breakdown.Good++
	}
	s.combo++
	s.hitNotes++
	if s.combo > s.maxCombo {
		s.maxCombo = s.combo
	}
	m := Multiplier(s.combo)
	earned := int(math.Floor(float64(base) * m))
	s.score += earned
	return HitOutcome{ScoreEarned: earned, Multiplier: m, Combo: s.combo}
}

// RecordError tracks the signed timing error of a judged hit.
func (s *Scorer) RecordError(delta time.Duration) {
	s.errs = append(s.errs, delta.Seconds())
}

func (s *Scorer) totalNotes() int {
	return s.breakdown.Perfect + s.breakdown.Good + s.breakdown.Miss
}

// Accuracy weighs perfects fully and goods at half, as a percentage
// rounded to one decimal. An untouched run counts as 100.
func (s *Scorer) Accuracy() float64 {
	total := s.totalNotes()
	if total == 0 {
		return 100
	}
	acc := (float64(s.breakdown.Perfect) + 0.5*float64(s.breakdown.Good)) / float64(total) * 100
	return math.Round(acc*10) / 10
}

func Grade(accuracy float64) string {
	switch {
	case accuracy >= 95:
		return "S"
	case accuracy >= 90:
		return "A"
	case accuracy >= 80:
		return "B"
	case accuracy >= 70:
		return "C"
	case accuracy >= 60:
		return "D"
	}
	return "F"
}

// Progress is the share of the expected schedule already resolved,
// as a percentage.
func (s *Scorer) Progress() float64 {
	if s.expectedNotes == 0 {
		return 0
	}
	return float64(s.totalNotes()) / float64(s.expectedNotes) * 100
}

// Snapshot captures the full scoring state for rendering/persistence.
func (s *Scorer) Snapshot() Stats {
	st := Stats{
		Score:         s.score,
		Combo:         s.combo,
		MaxCombo:      s.maxCombo,
		Accuracy:      s.Accuracy(),
		TotalNotes:    s.totalNotes(),
		HitNotes:      s.hitNotes,
		ExpectedNotes: s.expectedNotes,
		Breakdown:     s.breakdown,
	}
	st.Grade = Grade(st.Accuracy)
	if len(s.errs) > 0 {
		mean, stdev := stat.MeanStdDev(s.errs, nil)
		st.MeanError = time.Duration(mean * float64(time.Second))
		if !math.IsNaN(stdev) {
			st.StdevError = time.Duration(stdev * float64(time.Second))
		}
	}
	return st
}

// Reset clears the run state, keeping the expected-note count.
func (s *Scorer) Reset(expectedNotes int) {
	*s = Scorer{expectedNotes: expectedNotes}
}
