package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/samegame/internal/storage"
)

func TestScoreboardBrowsesBoards(t *testing.T) {
	store := openTestStore(t)
	runs := []storage.Run{
		{BoardID: "intro", Variant: "samegame", Score: 4, End: "stuck"},
		{BoardID: "intro", Variant: "samegame_legacy", Score: 9, End: "stuck"},
		{BoardID: "pair", Variant: "samegame", Score: 1000, End: "cleared"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	m := NewScoreboardModel(store, []string{"intro", "pair"}, "intro", 100, 30)
	if id, _ := m.Current(); id != "intro" {
		t.Fatalf("Current() = %q, expected intro", id)
	}
	if got := m.Scores(); len(got) != 2 || got[0].Score != 9 {
		t.Errorf("intro scores = %+v", got)
	}
	if view := m.View(); !strings.Contains(view, "Runs: 2") || !strings.Contains(view, "samegame_legacy") {
		t.Errorf("view missing stats or rows:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if id, _ := m.Current(); id != "pair" {
		t.Fatalf("Current() = %q after tab, expected pair", id)
	}
	if got := m.Scores(); len(got) != 1 || got[0].Score != 1000 {
		t.Errorf("pair scores = %+v", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if id, _ := m.Current(); id != "intro" {
		t.Errorf("Current() = %q after shift+tab, expected intro", id)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("esc should go back")
	}
}

func TestScoreboardStartsOnRequestedBoard(t *testing.T) {
	m := NewScoreboardModel(nil, []string{"a", "b", "c"}, "c", 60, 20)
	if id, _ := m.Current(); id != "c" {
		t.Errorf("Current() = %q, expected c", id)
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Errorf("view = %q", m.View())
	}
}

func TestScoreboardNoBoards(t *testing.T) {
	m := NewScoreboardModel(nil, nil, "", 60, 20)
	if _, ok := m.Current(); ok {
		t.Error("Current() should fail without boards")
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if _, ok := next.(ScoreboardModel).Current(); ok {
		t.Error("tab should not invent a board")
	}
}
