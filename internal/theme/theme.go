package theme

import "git.lost.host/meutraa/vbeat/internal/game"

type Theme interface {
	Note(lane int, intensity float64) string
	FadedNote(result game.HitResult) string
	HitField(lane int, pressed, flashing bool) string
	Judgment(result game.HitResult) string
}
