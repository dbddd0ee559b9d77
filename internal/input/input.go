package input

import (
	"time"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

type Kind uint8

const (
	KindLane Kind = iota
	KindPause
	KindQuit
)

// Event is one decoded key press. Lane events carry the wall time of
// the poll so judgment uses press time, not frame time.
type Event struct {
	Kind Kind
	Lane int
	Time time.Time
}

// Keyboard maps raw key events onto lane indices. Terminal keyboards
// only report presses, never releases, so holds are not modelled.
type Keyboard struct {
	keys   []rune
	events <-chan keyboard.KeyEvent
}

func Open(keys []rune) (*Keyboard, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	return &Keyboard{keys: keys, events: events}, nil
}

func (k *Keyboard) Close() error {
	return keyboard.Close()
}

// Poll drains every key event that arrived since the last call.
func (k *Keyboard) Poll(now time.Time) []Event {
	var out []Event
	for i := 0; i < len(k.events); i++ {
		key := <-k.events
		switch {
		case key.Key == keyboard.KeyEsc:
			out = append(out, Event{Kind: KindQuit, Time: now})
		case key.Key == keyboard.KeySpace:
			out = append(out, Event{Kind: KindPause, Time: now})
		default:
			if lane := k.laneFor(key.Rune); lane >= 0 {
				out = append(out, Event{Kind: KindLane, Lane: lane, Time: now})
			}
		}
	}
	return out
}

func (k *Keyboard) laneFor(r rune) int {
	for i, c := range k.keys {
		if r == c {
			return i
		}
	}
	return -1
}
