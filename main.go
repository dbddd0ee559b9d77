package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/vbeat/internal/beat"
	"git.lost.host/meutraa/vbeat/internal/config"
	"git.lost.host/meutraa/vbeat/internal/engine"
	"git.lost.host/meutraa/vbeat/internal/history"
	"git.lost.host/meutraa/vbeat/internal/input"
	"git.lost.host/meutraa/vbeat/internal/player"
	"git.lost.host/meutraa/vbeat/internal/render"
	"git.lost.host/meutraa/vbeat/internal/theme"
)

func main() {
	config.Parse()
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func findSong(dir string) (string, error) {
	var audioFile string
	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".mp3", ".ogg":
			audioFile = p
		}
		return nil
	}); nil != err {
		return "", errors.Wrap(err, "unable to walk song directory")
	}
	if audioFile == "" {
		return "", errors.New("unable to find .mp3/.ogg file in given directory")
	}
	return audioFile, nil
}

func run() error {
	keys := config.Keys()
	var th theme.Theme = &theme.DefaultTheme{}

	audioFile, err := findSong(*config.Directory)
	if nil != err {
		return err
	}
	songSum := history.SongSum(path.Base(audioFile))

	store, err := history.Open(*config.HistoryFile)
	if nil != err {
		return err
	}
	defer func() {
		if err := store.Close(); nil != err {
			log.Println("unable to close history store:", err)
		}
	}()

	best, err := store.Best(songSum, *config.Difficulty)
	if nil != err {
		return err
	}
	if nil != best {
		fmt.Printf("best run: %v (%v, %.1f%%, %dx)\n", best.Score, best.Grade, best.Accuracy, best.MaxCombo)
	}

	cfg := engine.DefaultConfig()
	cfg.Lanes = len(keys)
	cfg.Countdown = *config.Countdown
	cfg.Calibration = *config.Calibration
	e := engine.New(cfg)

	if err := e.BeginLoad(); nil != err {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), *config.LoadTimeout)
	defer cancel()
	log.Printf("Opening %v\n", audioFile)
	p, err := player.Load(ctx, audioFile, *config.Rate)
	if nil != err {
		e.AbortLoad(err)
		return errors.Wrap(err, "unable to load song")
	}
	defer func() {
		if err := p.Stop(); nil != err {
			log.Println("unable to stop player:", err)
		}
	}()

	seed := *config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	diff := beat.ByName(*config.Difficulty)
	gen := beat.NewGenerator(len(keys), rand.New(rand.NewSource(seed)))
	schedule := gen.Generate(p.Duration(), diff, *config.BPM)
	if len(schedule) == 0 {
		return errors.New("song too short to generate a schedule")
	}

	// Player callbacks fire on the audio goroutine; funnel them onto
	// the frame loop.
	states := make(chan player.State, 8)
	p.OnStateChange(func(s player.State) {
		select {
		case states <- s:
		default:
		}
	})

	kb, err := input.Open(keys)
	if nil != err {
		return err
	}
	defer func() {
		if err := kb.Close(); nil != err {
			log.Println("unable to close keyboard:", err)
		}
	}()

	r, err := render.NewDefaultRenderer(th, len(keys), *config.FramePeriod)
	if nil != err {
		return err
	}
	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal:", err)
		}
	}()

	if err := e.Start(p, schedule, time.Now()); nil != err {
		return err
	}

	saved := false
	r.RenderLoop(func(now time.Time) bool {
		// The terminal never reports key releases, so pressed flags
		// last a single frame.
		for i := 0; i < len(keys); i++ {
			e.HandleRelease(i)
		}

		for {
			select {
			case s := <-states:
				if s == player.StateEnded {
					e.NotifySongEnded()
				}
				continue
			default:
			}
			break
		}

		for _, ev := range kb.Poll(now) {
			switch ev.Kind {
			case input.KindQuit:
				return false
			case input.KindPause:
				switch e.Phase() {
				case engine.PhasePlaying:
					if err := e.Pause(); nil != err {
						log.Println(err)
					}
				case engine.PhasePaused:
					if err := e.Resume(ev.Time); nil != err {
						log.Println(err)
					}
				}
			case input.KindLane:
				e.HandlePress(ev.Lane, ev.Time)
			}
		}

		if err := e.Frame(now); nil != err {
			log.Println(err)
			return false
		}

		if e.Phase() == engine.PhaseEnded && !saved {
			saved = true
			if _, err := store.Save(songSum, *config.Difficulty, e.Stats()); nil != err {
				log.Println("unable to save run:", err)
			}
		}

		r.Draw(e.Snapshot())
		return true
	})

	st := e.Stats()
	fmt.Printf("\n%v  score %v  combo %vx  accuracy %.1f%%\n",
		st.Grade, st.Score, st.MaxCombo, st.Accuracy)
	return nil
}
