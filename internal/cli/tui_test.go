package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/blockfill/pkg/tiling"
)

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m WatchModel, msg tea.Msg) (WatchModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	wm, ok := next.(WatchModel)
	if !ok {
		t.Fatalf("Update returned %T, want WatchModel", next)
	}
	return wm, cmd
}

func TestWatchModel(t *testing.T) {
	cfg := tiling.Config{Width: 6, Height: 4, MinBlock: 2, MaxBlock: 3, MaxSteps: 100, Seed: 3}
	m, err := NewWatchModel(cfg, 0, true)
	if err != nil {
		t.Fatalf("NewWatchModel: %v", err)
	}
	if m.Init() != nil {
		t.Error("paused model should not schedule a step")
	}

	m, cmd := update(t, m, stepMsg{gen: m.gen})
	if cmd != nil || len(m.colors) != 0 {
		t.Error("step while paused should do nothing")
	}

	m, _ = update(t, m, key("n"))
	if len(m.colors) != 1 || m.Session.Steps() != 1 {
		t.Fatalf("after n: %d colours, %d steps, want 1", len(m.colors), m.Session.Steps())
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("view should show paused state")
	}

	m, _ = update(t, m, key("f"))
	if !m.Session.State().Finished() {
		t.Fatal("f should finish the session")
	}
	if m.Session.Reason() != tiling.ReasonExhausted {
		t.Errorf("Reason = %q, want exhausted", m.Session.Reason())
	}
	if got := len(m.colors); got != len(m.Session.Result().Rects) {
		t.Errorf("%d colours for %d blocks", got, len(m.Session.Result().Rects))
	}

	view := m.View()
	if !strings.Contains(view, "exhausted") || strings.Contains(view, "· ") {
		t.Errorf("finished view should be fully covered and show the reason:\n%s", view)
	}

	if _, cmd := update(t, m, key(" ")); cmd != nil {
		t.Error("unpausing a finished session should not schedule steps")
	}
	if _, cmd := update(t, m, key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestWatchModelRunning(t *testing.T) {
	cfg := tiling.Config{Width: 4, Height: 4, MinBlock: 1, MaxBlock: 2, MaxSteps: 100, Seed: 1}
	m, err := NewWatchModel(cfg, 0, false)
	if err != nil {
		t.Fatalf("NewWatchModel: %v", err)
	}
	if m.Init() == nil {
		t.Fatal("running model should schedule a step")
	}
	m, cmd := update(t, m, stepMsg{gen: m.gen})
	if cmd == nil || len(m.colors) != 1 {
		t.Errorf("step should place a block and schedule the next")
	}
}

func TestWatchModelPauseDropsStaleTicks(t *testing.T) {
	cfg := tiling.Config{Width: 8, Height: 8, MinBlock: 1, MaxBlock: 2, MaxSteps: 100, Seed: 7}
	m, err := NewWatchModel(cfg, 0, false)
	if err != nil {
		t.Fatalf("NewWatchModel: %v", err)
	}
	stale := m.Init()().(stepMsg)

	// Pause and resume twice before the first tick lands.
	var resumed tea.Cmd
	for range 2 {
		m, _ = update(t, m, key(" "))
		m, resumed = update(t, m, key(" "))
		if resumed == nil {
			t.Fatal("resuming should schedule a step")
		}
	}

	m, cmd := update(t, m, stale)
	if cmd != nil || len(m.colors) != 0 {
		t.Fatalf("tick from before the pause placed a block or rescheduled")
	}

	m, cmd = update(t, m, resumed().(stepMsg))
	if cmd == nil || len(m.colors) != 1 {
		t.Errorf("current tick should place a block and schedule the next")
	}
}

func TestWatchModelInvalidConfig(t *testing.T) {
	if _, err := NewWatchModel(tiling.Config{Width: 0, Height: 4, MinBlock: 1, MaxBlock: 2}, 0, false); err == nil {
		t.Error("expected error for zero width")
	}
}
