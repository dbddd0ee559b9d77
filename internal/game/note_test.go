package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteProgress(t *testing.T) {
	n := NewNote(0, 4*time.Second, 1)
	assert.Equal(t, 0.0, n.Progress(1*time.Second)) // before spawn window
	assert.Equal(t, 0.0, n.Progress(2*time.Second)) // at spawn
	assert.InDelta(t, 0.5, n.Progress(3*time.Second), 1e-9)
	assert.InDelta(t, 1.0, n.Progress(4*time.Second), 1e-9)
	assert.Greater(t, n.Progress(4*time.Second+100*time.Millisecond), 1.0)
}

func TestNoteMissTransitionOnce(t *testing.T) {
	n := NewNote(0, 2*time.Second, 1)

	assert.False(t, n.Update(2*time.Second))
	assert.False(t, n.Update(2*time.Second+MissTolerance))
	assert.Equal(t, StatusActive, n.Status)

	require.True(t, n.Update(2*time.Second+MissTolerance+time.Millisecond))
	assert.Equal(t, StatusMissed, n.Status)

	// Further updates never report the miss again.
	assert.False(t, n.Update(2*time.Second+MissTolerance+2*time.Millisecond))
}

func TestNoteHitThenFadeOut(t *testing.T) {
	n := NewNote(1, 2*time.Second, 1)
	hitAt := 2*time.Second + 30*time.Millisecond

	require.True(t, n.RecordHit(ResultPerfect, hitAt))
	assert.Equal(t, StatusHit, n.Status)
	assert.Equal(t, ResultPerfect, n.Result)

	// A second hit on the same note is rejected.
	assert.False(t, n.RecordHit(ResultGood, hitAt))
	assert.Equal(t, ResultPerfect, n.Result)

	assert.InDelta(t, 1.0, n.Fade(hitAt), 1e-9)
	assert.InDelta(t, 0.5, n.Fade(hitAt+FadeDuration/2), 1e-9)

	n.Update(hitAt + FadeDuration + time.Millisecond)
	assert.Equal(t, StatusRemoved, n.Status)
	assert.Equal(t, 0.0, n.Fade(hitAt+FadeDuration+time.Millisecond))
}

func TestNoteHitRejectedAfterMiss(t *testing.T) {
	n := NewNote(0, time.Second, 1)
	n.Update(time.Second + MissTolerance + time.Millisecond)
	require.Equal(t, StatusMissed, n.Status)
	assert.False(t, n.RecordHit(ResultGood, time.Second+200*time.Millisecond))
	assert.Equal(t, StatusMissed, n.Status)
}

func TestNoteHardCutoff(t *testing.T) {
	n := NewNote(0, time.Second, 1)
	// Simulate a long stall: the first update after it still reports
	// the miss, then the note is gone regardless of fade state.
	missed := n.Update(time.Second + HardCutoff + time.Millisecond)
	assert.True(t, missed)
	assert.Equal(t, StatusRemoved, n.Status)
}
