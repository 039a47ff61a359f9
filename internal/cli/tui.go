package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/blockfill/pkg/render/palette"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

var (
	watchEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	watchStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	watchPausedStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	watchDoneStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// =============================================================================
// WatchModel - Live view of a generation session
// =============================================================================

// stepMsg asks the model to advance the session by one block. Ticks from
// an older generation were scheduled before a pause and are dropped.
type stepMsg struct{ gen int }

// watchCounters is shared by value copies of WatchModel so the session
// listener can record diagnostics.
type watchCounters struct {
	diagnostics int
	last        string
}

// WatchModel is the bubbletea model for the live tiling view. Each step
// pulls one block from the session and paints it in its palette colour.
type WatchModel struct {
	Session *tiling.Session
	Delay   time.Duration
	Paused  bool

	palette  *palette.Palette
	colors   []lipgloss.Color
	counters *watchCounters
	gen      int
}

// NewWatchModel creates a paused or running view over a fresh session for
// cfg.
func NewWatchModel(cfg tiling.Config, delay time.Duration, paused bool) (WatchModel, error) {
	counters := &watchCounters{}
	sess, err := tiling.NewSession(cfg, tiling.WithListener(tiling.ListenerFuncs{
		OnDiagnostic: func(d tiling.Diagnostic) {
			counters.diagnostics++
			counters.last = d.String()
		},
	}))
	if err != nil {
		return WatchModel{}, err
	}
	return WatchModel{
		Session:  sess,
		Delay:    delay,
		Paused:   paused,
		palette:  palette.New(cfg.Seed),
		counters: counters,
	}, nil
}

func (m WatchModel) Init() tea.Cmd {
	if m.Paused {
		return nil
	}
	return m.tick()
}

func (m WatchModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.Delay, func(time.Time) tea.Msg { return stepMsg{gen: gen} })
}

// step places one block. It reports false when the session has finished.
func (m *WatchModel) step() bool {
	if _, ok := m.Session.Next(); !ok {
		return false
	}
	m.colors = append(m.colors, lipgloss.Color(m.palette.Next().Hex()))
	return true
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		if msg.gen != m.gen || m.Paused || !m.step() {
			return m, nil
		}
		return m, m.tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.Paused = !m.Paused
			if !m.Paused && !m.Session.State().Finished() {
				m.gen++
				return m, m.tick()
			}
		case "n", "right":
			if m.Paused {
				m.step()
			}
		case "f":
			for m.step() {
			}
		}
	}
	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	g := m.Session.Grid()
	for y := range g.Height() {
		for x := range g.Width() {
			if id, ok := g.Owner(x, y); ok {
				b.WriteString(lipgloss.NewStyle().Background(m.colors[id]).Render("  "))
			} else {
				b.WriteString(watchEmptyStyle.Render("· "))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(watchEmptyStyle.Render("space pause  n step  f finish  q quit"))
	return b.String()
}

func (m WatchModel) status() string {
	g := m.Session.Grid()
	cfg := m.Session.Config()
	line := watchStatusStyle.Render(fmt.Sprintf("%s  seed %d  %d blocks  %.1f%% covered",
		cfg.Strategy, cfg.Seed, len(m.colors), 100*float64(g.Assigned())/float64(g.Cells())))

	switch {
	case m.Session.State().Finished():
		line += "  " + watchDoneStyle.Render(string(m.Session.Reason()))
	case m.Paused:
		line += "  " + watchPausedStyle.Render("paused")
	}
	if m.counters.diagnostics > 0 {
		line += "\n" + StyleWarning.Render(fmt.Sprintf("%d clamped steps, last: %s", m.counters.diagnostics, m.counters.last))
	}
	return line
}
