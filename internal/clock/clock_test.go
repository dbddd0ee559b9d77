package clock

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playbackSource simulates a player clock that advances in real time
// but only reports a quantized, possibly stale position.
type playbackSource struct {
	start   time.Time
	now     func() time.Time
	lag     time.Duration
	queries int
	err     error
}

func (s *playbackSource) CurrentTime() (time.Duration, error) {
	s.queries++
	if nil != s.err {
		return 0, s.err
	}
	return s.now().Sub(s.start) - s.lag, nil
}

func TestSampleMonotonicWithinEnvelope(t *testing.T) {
	wall := time.Unix(1000, 0)
	now := func() time.Time { return wall }
	src := &playbackSource{start: wall, now: now}
	c := NewInterpolated(src, 0)

	var prev time.Duration = -1
	for i := 0; i < 200; i++ {
		wall = wall.Add(16 * time.Millisecond)
		got := c.Sample(wall)
		require.GreaterOrEqual(t, got, prev, "sample %d decreased", i)
		elapsed := wall.Sub(time.Unix(1000, 0))
		assert.InDelta(t, float64(elapsed), float64(got), float64(20*time.Millisecond))
		prev = got
	}
	// One query per resample interval, not per frame.
	assert.Less(t, src.queries, 40)
}

func TestSampleToleratesSourceJitter(t *testing.T) {
	wall := time.Unix(1000, 0)
	start := wall
	src := &playbackSource{start: start, now: func() time.Time { return wall }}
	c := NewInterpolated(src, 0)

	var prev time.Duration
	for i := 0; i < 400; i++ {
		wall = wall.Add(16 * time.Millisecond)
		// The source flips between lagging and accurate readings.
		if i%13 == 0 {
			src.lag = 60 * time.Millisecond
		} else if i%7 == 0 {
			src.lag = 0
		}
		got := c.Sample(wall)
		require.GreaterOrEqual(t, got, prev, "sample %d decreased under jitter", i)
		prev = got
	}
}

func TestCalibrationOffsetApplied(t *testing.T) {
	wall := time.Unix(1000, 0)
	src := &playbackSource{start: wall, now: func() time.Time { return wall }}
	c := NewInterpolated(src, 80*time.Millisecond)

	wall = wall.Add(time.Second)
	got := c.Sample(wall)
	assert.InDelta(t, float64(time.Second+80*time.Millisecond), float64(got), float64(time.Millisecond))
}

func TestBackwardSeekSnaps(t *testing.T) {
	wall := time.Unix(1000, 0)
	src := &playbackSource{start: wall, now: func() time.Time { return wall }}
	c := NewInterpolated(src, 0)

	wall = wall.Add(10 * time.Second)
	require.InDelta(t, float64(10*time.Second), float64(c.Sample(wall)), float64(time.Millisecond))

	// Seek back five seconds.
	src.start = src.start.Add(5 * time.Second)
	wall = wall.Add(200 * time.Millisecond)
	got := c.Sample(wall)
	assert.InDelta(t, float64(5200*time.Millisecond), float64(got), float64(time.Millisecond))
}

func TestSourceErrorKeepsExtrapolating(t *testing.T) {
	wall := time.Unix(1000, 0)
	src := &playbackSource{start: wall, now: func() time.Time { return wall }}
	c := NewInterpolated(src, 0)
	c.Sample(wall)

	src.err = errors.New("player gone")
	wall = wall.Add(time.Second)
	got := c.Sample(wall)
	assert.InDelta(t, float64(time.Second), float64(got), float64(time.Millisecond))
}

func TestAnchorAfterPauseAvoidsTimeJump(t *testing.T) {
	wall := time.Unix(1000, 0)
	src := &playbackSource{start: wall, now: func() time.Time { return wall }}
	c := NewInterpolated(src, 0)

	wall = wall.Add(3 * time.Second)
	before := c.Sample(wall)

	// Paused for ten wall seconds: the source does not advance.
	src.start = src.start.Add(10 * time.Second)
	wall = wall.Add(10 * time.Second)
	c.Anchor()

	after := c.Sample(wall)
	assert.InDelta(t, float64(before), float64(after), float64(20*time.Millisecond))
}

func TestReset(t *testing.T) {
	wall := time.Unix(1000, 0)
	src := &playbackSource{start: wall, now: func() time.Time { return wall }}
	c := NewInterpolated(src, 0)

	wall = wall.Add(5 * time.Second)
	c.Sample(wall)
	c.Reset()

	src.start = wall
	got := c.Sample(wall)
	assert.Equal(t, time.Duration(0), got)
}
