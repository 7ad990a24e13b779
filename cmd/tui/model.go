package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/pairs/internal/game"
	"github.com/robalobadob/pairs/internal/settings"
)

var (
	cardStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Border(lipgloss.RoundedBorder())
	backStyle   = cardStyle.Foreground(lipgloss.Color("#5F87AF"))
	redStyle    = cardStyle.Foreground(lipgloss.Color("#D70000")).Bold(true)
	blackStyle  = cardStyle.Foreground(lipgloss.Color("#E4E4E4")).Bold(true)
	cursorColor = lipgloss.Color("#FFD700")
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	wonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// Model is the bubbletea model of one table.
type Model struct {
	table   *game.Table
	form    settings.Form
	signals <-chan tea.Msg
	keys    KeyMap

	board   game.View
	cursor  int
	elapsed int
	won     bool
	err     string

	width, height int
}

// NewModel returns a model that deals f on table and listens on signals.
func NewModel(table *game.Table, f settings.Form, signals <-chan tea.Msg) Model {
	m := Model{table: table, form: f, signals: signals, keys: Keys}
	m.deal()
	return m
}

func (m *Model) deal() {
	v, err := m.table.Start(m.form)
	if err != nil {
		// the previous board, if any, keeps running
		m.err = err.Error()
		return
	}
	m.board, m.elapsed, m.won, m.err = v, 0, false, ""
	if m.cursor >= len(v.Cards) {
		m.cursor = 0
	}
}

func (m *Model) refresh() {
	if v, err := m.table.Snapshot(); err == nil {
		m.board = v
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSignal(m.signals)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case boardChangedMsg:
		m.refresh()
	case elapsedMsg:
		m.elapsed = msg.seconds
	case wonMsg:
		m.refresh()
		m.won = true
		m.elapsed = m.board.ElapsedSeconds
	case configErrorMsg:
		m.err = msg.message
	}
	return m, waitForSignal(m.signals)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols, n := m.board.Columns, len(m.board.Cards)
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.table.Close()
		return m, tea.Quit
	case n == 0:
		if key.Matches(msg, m.keys.New) {
			m.deal()
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < n {
			m.cursor += cols
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%cols > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%cols < cols-1 && m.cursor+1 < n {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Flip):
		_, v, err := m.table.Click(m.board.SessionID, m.cursor)
		if err != nil && !errors.Is(err, game.ErrStaleSession) {
			m.err = err.Error()
			break
		}
		m.board = v
	case key.Matches(msg, m.keys.New):
		m.deal()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("pairs left: %d   time: %ds", m.board.PairsRemaining, m.elapsed)))
	b.WriteString("\n")
	if m.won {
		b.WriteString(wonStyle.Render(fmt.Sprintf("All pairs found in %ds! Press n for a new game.", m.elapsed)))
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(errStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(infoStyle.Render(m.keys.help()))

	if m.width == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m Model) renderBoard() string {
	cols := m.board.Columns
	if cols == 0 {
		return ""
	}
	var rows []string
	for start := 0; start < len(m.board.Cards); start += cols {
		end := min(start+cols, len(m.board.Cards))
		cells := make([]string, 0, cols)
		for _, c := range m.board.Cards[start:end] {
			cells = append(cells, m.renderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(c game.CardView) string {
	style, text := backStyle, "░░░"
	if c.Face == "up" {
		text = c.Label
		style = blackStyle
		if c.Color == "red" {
			style = redStyle
		}
	}
	if c.Slot == m.cursor {
		style = style.BorderForeground(cursorColor)
	}
	return style.Render(text)
}
