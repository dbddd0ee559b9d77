package player

import (
	"context"
	"math"
	"os"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/pkg/errors"
)

// BeepPlayer plays an mp3/ogg file through the speaker package and
// reports the stream position as the playback clock. The position is
// quantized to the speaker buffer and read under the speaker lock,
// which is exactly the kind of coarse source the clock interpolator
// exists for.
type BeepPlayer struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl

	duration time.Duration
	rate     float64

	state     State
	listeners []func(State)
}

// Load decodes the file and initializes the speaker. The wait is
// bounded by the context; on expiry the player is unusable and the
// caller gets ErrLoadTimeout rather than a hang.
func Load(ctx context.Context, file string, rate float64) (*BeepPlayer, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open audio file")
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch path.Ext(file) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, errors.Errorf("unsupported audio format %q", path.Ext(file))
	}
	if nil != err {
		f.Close()
		return nil, errors.Wrap(err, "unable to decode audio file")
	}

	p := &BeepPlayer{
		streamer: streamer,
		format:   format,
		rate:     rate,
		duration: format.SampleRate.D(streamer.Len()),
	}

	// speaker.Init blocks while the audio device opens; a wedged
	// device must fail the load, not freeze the program.
	done := make(chan error, 1)
	go func() {
		sr := beep.SampleRate(math.Round(float64(format.SampleRate) * rate))
		done <- speaker.Init(sr, format.SampleRate.N(time.Second/60))
	}()
	select {
	case err := <-done:
		if nil != err {
			streamer.Close()
			return nil, errors.Wrap(err, "unable to initialize speaker")
		}
	case <-ctx.Done():
		streamer.Close()
		return nil, ErrLoadTimeout
	}
	return p, nil
}

// CurrentTime is the song position of the last mixed sample.
func (p *BeepPlayer) CurrentTime() (time.Duration, error) {
	if nil == p.streamer {
		return 0, errors.New("player: not loaded")
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos), nil
}

func (p *BeepPlayer) Duration() time.Duration {
	return p.duration
}

func (p *BeepPlayer) Play() error {
	if nil == p.streamer {
		return errors.New("player: not loaded")
	}
	if nil == p.ctrl {
		p.ctrl = &beep.Ctrl{Streamer: beep.Seq(p.streamer, beep.Callback(func() {
			p.setState(StateEnded)
		}))}
		speaker.Play(p.ctrl)
	} else {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	}
	p.setState(StatePlaying)
	return nil
}

func (p *BeepPlayer) Pause() error {
	if nil == p.ctrl {
		return errors.New("player: not playing")
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.setState(StatePaused)
	return nil
}

func (p *BeepPlayer) Stop() error {
	speaker.Clear()
	p.ctrl = nil
	if nil != p.streamer {
		if err := p.streamer.Close(); nil != err {
			return errors.Wrap(err, "unable to close streamer")
		}
		p.streamer = nil
	}
	p.setState(StateEnded)
	return nil
}

func (p *BeepPlayer) OnStateChange(fn func(State)) {
	p.listeners = append(p.listeners, fn)
}

func (p *BeepPlayer) setState(s State) {
	if p.state == s {
		return
	}
	p.state = s
	for _, fn := range p.listeners {
		fn(s)
	}
}
