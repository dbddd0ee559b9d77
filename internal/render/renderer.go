package render

import (
	"time"

	"git.lost.host/meutraa/vbeat/internal/engine"
)

// Renderer draws read-only frame snapshots. It never feeds state back
// into the engine.
type Renderer interface {
	Init() error
	Deinit() error
	RenderLoop(frame func(now time.Time) bool)
	Draw(snap engine.Snapshot)
}
