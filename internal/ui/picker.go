package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Candidate is one selectable match location shown by the picker.
type Candidate struct {
	StartLine int // 1-based, for display
	Score     float64
	Density   float64
	Preview   []string // a few source lines around the match
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	previewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).PaddingLeft(4)
)

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Skip   key.Binding
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Skip}
}

func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select, k.Skip}}
}

var pickerKeys = pickerKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply here")),
	Skip:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "skip hunk")),
}

type pickerModel struct {
	title      string
	candidates []Candidate
	cursor     int
	chosen     bool
	skipped    bool
	help       help.Model
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, pickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, pickerKeys.Down):
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, pickerKeys.Select):
		m.chosen = true
		return m, tea.Quit
	case key.Matches(keyMsg, pickerKeys.Skip):
		m.skipped = true
		return m, tea.Quit
	case keyMsg.Type == tea.KeyCtrlC:
		m.skipped = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.chosen || m.skipped {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, c := range m.candidates {
		label := fmt.Sprintf("line %d  (score %.2f, density %.2f)", c.StartLine, c.Score, c.Density)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + label))
		} else {
			b.WriteString(normalStyle.Render("  " + label))
		}
		b.WriteString("\n")
		if i == m.cursor {
			for _, line := range c.Preview {
				b.WriteString(previewStyle.Render(line))
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(pickerKeys))
	return b.String()
}

// PickMatch shows an interactive list of candidate locations and returns
// the index of the chosen one. ok is false when the user skipped the hunk.
func PickMatch(title string, candidates []Candidate) (choice int, ok bool, err error) {
	m := pickerModel{title: title, candidates: candidates, help: help.New()}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return 0, false, fmt.Errorf("match picker: %w", err)
	}
	result := final.(pickerModel)
	if result.skipped || !result.chosen {
		return 0, false, nil
	}
	return result.cursor, true, nil
}
