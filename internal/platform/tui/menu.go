package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/samegame/internal/core"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards"
	"github.com/vovakirdan/samegame/internal/registry"
	"github.com/vovakirdan/samegame/internal/storage"
)

// MenuItem represents a selectable board in the menu.
type MenuItem struct {
	BoardID string
	Title   string
	Detail  string // Dimensions and ball count
	Best    int    // Best stored score, 0 when never played
	Board   boards.Board
}

// MenuModel is the Bubble Tea model for the board picker.
type MenuModel struct {
	items          []MenuItem
	variants       []registry.GameInfo
	cursor         int
	variant        int
	width          int
	height         int
	config         core.RuntimeConfig
	quitting       bool
	selected       *MenuItem // Set when the user picks a board
	openScoreboard bool      // True if the user pressed Tab for scores
}

// NewMenuModel creates a board picker over the given boards.
// Best scores are read from store when it is not nil.
func NewMenuModel(list []boards.Board, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.BoardStats
	if store != nil {
		// Missing stats only hide the best score column.
		stats, _ = store.GetAllBoardsStats()
	}

	items := make([]MenuItem, 0, len(list))
	for _, b := range list {
		item := MenuItem{
			BoardID: b.ID,
			Title:   b.Name,
			Detail:  fmt.Sprintf("%dx%d, %d balls", b.Rows, b.Cols, b.Balls()),
			Board:   b,
		}
		if st, ok := stats[b.ID]; ok {
			item.Best = st.HighScore
		}
		items = append(items, item)
	}

	return MenuModel{
		items:    items,
		variants: registry.List(),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		config:   cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionVariant:
		if len(m.variants) > 0 {
			m.variant = (m.variant + 1) % len(m.variants)
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S A M E G A M E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a board", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(dimStyle.Render("No boards found."), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-20s %s", cursor, item.Title, dimStyle.Render(item.Detail))
		if item.Best > 0 {
			line += dimStyle.Render(fmt.Sprintf("  best %d", item.Best))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if v, ok := m.Variant(); ok {
		b.WriteString("\n")
		b.WriteString(centerText(fmt.Sprintf("Rules: < %s >", v.Title), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(v.Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Rules  |  Enter: Watch  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Variant returns the selected rules variant.
func (m MenuModel) Variant() (registry.GameInfo, bool) {
	if len(m.variants) == 0 {
		return registry.GameInfo{}, false
	}
	return m.variants[m.variant], true
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if the user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// BoardIDs returns the IDs of every listed board.
func (m MenuModel) BoardIDs() []string {
	ids := make([]string, len(m.items))
	for i, item := range m.items {
		ids[i] = item.BoardID
	}
	return ids
}

// centerText centers text within the given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Board           boards.Board
	Variant         string
	Config          core.RuntimeConfig // Board already filled in
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the board picker and returns the selection.
func RunMenu(list []boards.Board, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(list, store, cfg)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}

	switch {
	case m.openScoreboard:
		result.WantsScoreboard = true
	case m.quitting || m.selected == nil:
		result.Quit = true
	default:
		result.Board = m.selected.Board
		result.Config.Board = m.selected.Board.Spec()
		if v, ok := m.Variant(); ok {
			result.Variant = v.ID
		}
	}
	return result
}
