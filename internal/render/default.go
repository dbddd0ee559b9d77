package render

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"git.lost.host/meutraa/vbeat/internal/engine"
	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/theme"
)

// DefaultRenderer draws snapshots into the terminal's alternate
// buffer, one buffered write per frame.
type DefaultRenderer struct {
	theme       theme.Theme
	framePeriod time.Duration

	rows, cols int
	hitRow     int
	laneCols   []int
	sideCol    int

	buffer       strings.Builder
	restoreState *term.State
}

func NewDefaultRenderer(th theme.Theme, lanes int, framePeriod time.Duration) (*DefaultRenderer, error) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return nil, fmt.Errorf("unable to get terminal size: %w", err)
	}

	r := &DefaultRenderer{
		theme:       th,
		framePeriod: framePeriod,
		rows:        rows,
		cols:        cols,
		hitRow:      rows - 4,
	}
	spacing := 6
	mc := cols / 2
	for i := 0; i < lanes; i++ {
		r.laneCols = append(r.laneCols, mc+spacing*(2*i-lanes+1))
	}
	r.sideCol = r.laneCols[0] - 30
	if r.sideCol < 2 {
		r.sideCol = 2
	}
	return r, nil
}

func (r *DefaultRenderer) Init() error {
	state, err := term.MakeRaw(int(os.Stdout.Fd()))
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Printf("%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Printf("%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), r.restoreState)
}

// RenderLoop drives the frame callback at the configured period until
// it returns false.
func (r *DefaultRenderer) RenderLoop(frame func(now time.Time) bool) {
	for {
		now := time.Now()
		deadline := now.Add(r.framePeriod)
		if !frame(now) {
			return
		}
		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) fill(row, col int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(col))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) Draw(snap engine.Snapshot) {
	r.buffer.WriteString("\033[H\033[2J")

	switch snap.Phase {
	case engine.PhaseCountdown:
		r.fill(r.rows/2, r.cols/2-2, fmt.Sprintf("%.1f", snap.CountdownLeft.Seconds()))
	case engine.PhasePaused:
		r.fill(r.rows/2, r.cols/2-3, "paused")
	case engine.PhaseEnded:
		r.drawSummary(snap)
	default:
		r.drawField(snap)
	}

	r.flush()
}

func (r *DefaultRenderer) drawField(snap engine.Snapshot) {
	for i, lane := range snap.Lanes {
		r.fill(r.hitRow, r.laneCols[i], r.theme.HitField(i, lane.Pressed, lane.Flashing))
	}

	for _, n := range snap.Notes {
		row := 1 + int(float64(r.hitRow-1)*n.Progress)
		if row < 1 || row > r.rows {
			continue
		}
		cell := r.theme.Note(n.Lane, n.Intensity)
		if n.Status != game.StatusActive {
			if n.Fade <= 0 {
				continue
			}
			cell = r.theme.FadedNote(n.Result)
		}
		r.fill(row, r.laneCols[n.Lane], cell)
	}

	st := snap.Stats
	r.fill(2, r.sideCol, fmt.Sprintf("   Score: %8d", st.Score))
	r.fill(3, r.sideCol, fmt.Sprintf("   Combo: %5dx", st.Combo))
	r.fill(4, r.sideCol, fmt.Sprintf("Accuracy: %7.1f%%", st.Accuracy))
	r.fill(6, r.sideCol, fmt.Sprintf(" Perfect: %6d", st.Breakdown.Perfect))
	r.fill(7, r.sideCol, fmt.Sprintf("    Good: %6d", st.Breakdown.Good))
	r.fill(8, r.sideCol, fmt.Sprintf("    Miss: %6d", st.Breakdown.Miss))
	r.fill(10, r.sideCol, fmt.Sprintf("    Mean: %6.1fms", float64(st.MeanError)/float64(time.Millisecond)))
	r.fill(11, r.sideCol, fmt.Sprintf("   Stdev: %6.1fms", float64(st.StdevError)/float64(time.Millisecond)))

	// Song progress along the top edge.
	width := int(float64(r.cols) * snap.Progress / 100)
	if width > 0 {
		r.fill(1, 1, strings.Repeat("─", width))
	}
}

func (r *DefaultRenderer) drawSummary(snap engine.Snapshot) {
	st := snap.Stats
	row := r.rows/2 - 4
	col := r.cols/2 - 12
	r.fill(row, col, fmt.Sprintf("    Grade: %s", st.Grade))
	r.fill(row+1, col, fmt.Sprintf("    Score: %d", st.Score))
	r.fill(row+2, col, fmt.Sprintf("Max combo: %dx", st.MaxCombo))
	r.fill(row+3, col, fmt.Sprintf(" Accuracy: %.1f%%", st.Accuracy))
	r.fill(row+5, col, fmt.Sprintf("  %s %d  %s %d  %s %d",
		r.theme.Judgment(game.ResultPerfect), st.Breakdown.Perfect,
		r.theme.Judgment(game.ResultGood), st.Breakdown.Good,
		r.theme.Judgment(game.ResultNone), st.Breakdown.Miss))
	r.fill(row+7, col, "press esc to exit")
}

func (r *DefaultRenderer) flush() {
	os.Stdout.WriteString(r.buffer.String())
	r.buffer.Reset()
}
