package score

import (
	"testing"
	"time"
)

var judgeTests = map[time.Duration]Judgment{
	0:                                       Perfect,
	30 * time.Millisecond:                   Perfect,
	50 * time.Millisecond:                   Perfect, // boundary inclusive
	50*time.Millisecond + time.Microsecond:  Good,
	-40 * time.Millisecond:                  Perfect, // symmetric
	80 * time.Millisecond:                   Good,
	100 * time.Millisecond:                  Good, // boundary inclusive
	100*time.Millisecond + time.Microsecond: Miss,
	-120 * time.Millisecond:                 Miss,
	time.Second:                             Miss,
}

func TestJudge(t *testing.T) {
	for delta, expected := range judgeTests {
		out := DefaultWindows.Judge(delta)
		if out != expected {
			t.Log("delta   ", delta)
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestGateEqualsGoodWindow(t *testing.T) {
	if DefaultWindows.Gate() != DefaultWindows.Good {
		t.Fail()
	}
	// A press inside the gate can never judge as a miss.
	if DefaultWindows.Judge(DefaultWindows.Gate()) == Miss {
		t.Fail()
	}
}
