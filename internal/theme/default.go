package theme

import (
	"git.lost.host/meutraa/vbeat/internal/game"
)

var laneColors = []string{
	"\033[1;31m", // red
	"\033[1;33m", // yellow
	"\033[1;32m", // green
	"\033[1;36m", // cyan
}

type DefaultTheme struct{}

func (t *DefaultTheme) color(lane int) string {
	return laneColors[lane%len(laneColors)]
}

func (t *DefaultTheme) Note(lane int, intensity float64) string {
	glyph := "◯"
	if intensity >= 0.8 {
		glyph = "●"
	} else if intensity >= 0.6 {
		glyph = "◉"
	}
	return t.color(lane) + glyph + "\033[0m"
}

func (t *DefaultTheme) FadedNote(result game.HitResult) string {
	if result == game.ResultNone {
		return "\033[1;31m×\033[0m"
	}
	return "\033[2;37m·\033[0m"
}

func (t *DefaultTheme) HitField(lane int, pressed, flashing bool) string {
	switch {
	case flashing:
		return t.color(lane) + "◉\033[0m"
	case pressed:
		return t.color(lane) + "◎\033[0m"
	}
	return "\033[2;37m◎\033[0m"
}

func (t *DefaultTheme) Judgment(result game.HitResult) string {
	switch result {
	case game.ResultPerfect:
		return "\033[38;5;153mPerfect\033[0m"
	case game.ResultGood:
		return "\033[1;32mGood\033[0m"
	}
	return "\033[1;31mMiss\033[0m"
}
