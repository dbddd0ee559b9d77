package clock

import (
	"time"
)

// Source is the external playback clock. Querying it is slow and the
// value it returns lags real playback by an unpredictable amount, so it
// is only consulted at the resample interval.
type Source interface {
	CurrentTime() (time.Duration, error)
}

const DefaultResampleInterval = 100 * time.Millisecond

// Interpolated smooths a low-frequency Source into a per-frame song
// time. Between resamples it extrapolates linearly from the last anchor
// at a 1:1 rate, which holds for windows up to the resample interval.
type Interpolated struct {
	src         Source
	resample    time.Duration
	calibration time.Duration

	anchorSong time.Duration // last value read from src
	anchorWall time.Time     // wall time that value was read
	anchored   bool

	last time.Duration // previous Sample result, for the monotonic clamp
}

func NewInterpolated(src Source, calibration time.Duration) *Interpolated {
	return &Interpolated{
		src:         src,
		resample:    DefaultResampleInterval,
		calibration: calibration,
	}
}

// SetCalibration adjusts the constant added to every sample. It may be
// changed mid-run.
func (c *Interpolated) SetCalibration(offset time.Duration) {
	c.calibration = offset
}

func (c *Interpolated) Calibration() time.Duration {
	return c.calibration
}

// Sample returns the current song time for the given wall time. The
// result never decreases between consecutive calls except across an
// explicit Anchor or a source discontinuity (seek), which snap.
func (c *Interpolated) Sample(now time.Time) time.Duration {
	if !c.anchored || now.Sub(c.anchorWall) > c.resample {
		if t, err := c.src.CurrentTime(); nil == err {
			snapped := c.anchored && t+c.resample < c.anchorSong
			c.anchorSong = t
			c.anchorWall = now
			c.anchored = true
			if snapped {
				// A backwards jump beyond jitter is a seek; abandon
				// the clamp rather than freeze until time catches up.
				c.last = t + c.calibration
				return c.last
			}
		}
		// On a source error the stale anchor keeps extrapolating.
	}
	if !c.anchored {
		return c.last
	}

	t := c.anchorSong + now.Sub(c.anchorWall) + c.calibration
	if c.anchored && t < c.last {
		return c.last
	}
	c.last = t
	return t
}

// Anchor forces an immediate resample on the next Sample call. Used
// when resuming from a pause so the frozen anchor does not replay the
// paused wall time as song time.
func (c *Interpolated) Anchor() {
	c.anchored = false
}

// Reset clears all state for a fresh run.
func (c *Interpolated) Reset() {
	c.anchored = false
	c.anchorSong = 0
	c.anchorWall = time.Time{}
	c.last = 0
}
