package game

import (
	"time"

	"git.lost.host/meutraa/vbeat/internal/beat"
)

// Spawner walks a sorted beat schedule with a single forward cursor,
// materializing notes TravelTime ahead of their hit time. An event is
// consumed at most once and never out of order.
type Spawner struct {
	schedule []beat.Event
	cursor   int
}

func NewSpawner(schedule []beat.Event) *Spawner {
	return &Spawner{schedule: schedule}
}

// Advance returns the notes whose spawn time has arrived.
func (s *Spawner) Advance(now time.Duration) []*Note {
	var notes []*Note
	for s.cursor < len(s.schedule) {
		ev := s.schedule[s.cursor]
		if ev.Time-TravelTime > now {
			break
		}
		notes = append(notes, NewNote(ev.Lane, ev.Time, ev.Intensity))
		s.cursor++
	}
	return notes
}

// Exhausted reports whether every event has been consumed.
func (s *Spawner) Exhausted() bool {
	return s.cursor >= len(s.schedule)
}

// Remaining is the count of unconsumed events.
func (s *Spawner) Remaining() int {
	return len(s.schedule) - s.cursor
}

// Total is the schedule length, the expected note count for progress.
func (s *Spawner) Total() int {
	return len(s.schedule)
}
