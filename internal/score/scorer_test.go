package score

import (
	"testing"
	"time"
)

var multiplierTests = map[int]float64{
	0:   1,
	1:   1,
	9:   1,
	10:  1.5,
	24:  1.5,
	25:  2,
	49:  2,
	50:  2.5,
	99:  2.5,
	100: 3,
	500: 3,
}

func TestMultiplier(t *testing.T) {
	for combo, expected := range multiplierTests {
		out := Multiplier(combo)
		if out != expected {
			t.Log("combo   ", combo)
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
	// Monotonic in combo.
	prev := Multiplier(0)
	for c := 1; c <= 200; c++ {
		m := Multiplier(c)
		if m < prev {
			t.Log("multiplier decreased at combo", c)
			t.Fail()
		}
		prev = m
	}
}

func TestProcessHitScoreAndCombo(t *testing.T) {
	s := NewScorer(20)

	out := s.ProcessHit(Perfect)
	if out.ScoreEarned != 100 || out.Combo != 1 || out.Multiplier != 1 {
		t.Log("first perfect", out)
		t.Fail()
	}
	out = s.ProcessHit(Good)
	if out.ScoreEarned != 50 || out.Combo != 2 {
		t.Log("first good", out)
		t.Fail()
	}

	st := s.Snapshot()
	if st.Score != 150 || st.Combo != 2 || st.MaxCombo != 2 || st.HitNotes != 2 {
		t.Log("snapshot", st)
		t.Fail()
	}
}

func TestProcessHitMultiplierSteps(t *testing.T) {
	s := NewScorer(0)
	total := 0
	for i := 1; i <= 10; i++ {
		out := s.ProcessHit(Perfect)
		expected := 100
		if i == 10 {
			expected = 150 // combo 10 unlocks 1.5x
		}
		if out.ScoreEarned != expected {
			t.Log("hit", i, "earned", out.ScoreEarned, "expected", expected)
			t.Fail()
		}
		total += out.ScoreEarned
	}
	if st := s.Snapshot(); st.Score != total {
		t.Log("score", st.Score, "sum of outcomes", total)
		t.Fail()
	}
}

func TestTenPerfectsThenMiss(t *testing.T) {
	s := NewScorer(11)
	for i := 0; i < 10; i++ {
		s.ProcessHit(Perfect)
	}
	out := s.ProcessHit(Miss)
	if out.ScoreEarned != 0 || out.Combo != 0 {
		t.Log("miss outcome", out)
		t.Fail()
	}
	st := s.Snapshot()
	if st.Combo != 0 || st.MaxCombo != 10 || st.Breakdown.Miss != 1 {
		t.Log("snapshot", st)
		t.Fail()
	}
	if st.TotalNotes != 11 || st.HitNotes != 10 {
		t.Log("counts", st.TotalNotes, st.HitNotes)
		t.Fail()
	}
}

var accuracyTests = map[string]struct {
	hits     []Judgment
	expected float64
}{
	"empty":        {nil, 100},
	"one perfect":  {[]Judgment{Perfect}, 100.0},
	"one good":     {[]Judgment{Good}, 50.0},
	"one miss":     {[]Judgment{Miss}, 0.0},
	"mixed":        {[]Judgment{Perfect, Perfect, Good}, 83.3},
	"half perfect": {[]Judgment{Perfect, Miss}, 50.0},
}

func TestAccuracy(t *testing.T) {
	for name, test := range accuracyTests {
		s := NewScorer(0)
		for _, j := range test.hits {
			s.ProcessHit(j)
		}
		out := s.Accuracy()
		if out != test.expected {
			t.Log("case    ", name)
			t.Log("out     ", out)
			t.Log("expected", test.expected)
			t.Fail()
		}
	}
}

var gradeTests = map[float64]string{
	100:  "S",
	95:   "S",
	94.9: "A",
	90:   "A",
	85:   "B",
	80:   "B",
	75:   "C",
	65:   "D",
	59.9: "F",
	0:    "F",
}

func TestGrade(t *testing.T) {
	for accuracy, expected := range gradeTests {
		if out := Grade(accuracy); out != expected {
			t.Log("accuracy", accuracy)
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	s := NewScorer(0)
	seq := []Judgment{Perfect, Good, Miss, Good, Perfect, Miss, Miss, Perfect}
	prev := 0
	for _, j := range seq {
		s.ProcessHit(j)
		st := s.Snapshot()
		if st.Score < prev {
			t.Log("score decreased to", st.Score)
			t.Fail()
		}
		prev = st.Score
	}
}

func TestErrorStats(t *testing.T) {
	s := NewScorer(0)
	s.RecordError(-10 * time.Millisecond)
	s.RecordError(30 * time.Millisecond)
	s.RecordError(10 * time.Millisecond)

	within := func(got, expected time.Duration) bool {
		d := got - expected
		if d < 0 {
			d = -d
		}
		return d <= time.Microsecond
	}

	st := s.Snapshot()
	if !within(st.MeanError, 10*time.Millisecond) {
		t.Log("mean", st.MeanError)
		t.Fail()
	}
	if !within(st.StdevError, 20*time.Millisecond) {
		t.Log("stdev", st.StdevError)
		t.Fail()
	}
}

func TestProgress(t *testing.T) {
	s := NewScorer(4)
	s.ProcessHit(Perfect)
	s.ProcessHit(Miss)
	if out := s.Progress(); out != 50 {
		t.Log("progress", out)
		t.Fail()
	}
}
