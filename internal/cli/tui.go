package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"debtop/pkg/errors"
	"debtop/pkg/mirror"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickArch shows the interactive architecture picker. Off a terminal
// there is nobody to pick, so the omission is an input error.
func pickArch() (string, error) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return "", errors.New(errors.ErrCodeInvalidArch,
			"architecture argument is required (e.g. debtop top amd64)")
	}

	m, err := tea.NewProgram(newArchListModel()).Run()
	if err != nil {
		return "", fmt.Errorf("architecture picker: %w", err)
	}
	model := m.(archListModel)
	if model.Selected == "" {
		return "", errors.New(errors.ErrCodeInvalidArch, "no architecture selected")
	}
	return model.Selected, nil
}

// archListModel is the bubbletea model for interactive architecture selection.
type archListModel struct {
	Arches   []string
	Cursor   int
	Selected string
}

func newArchListModel() archListModel {
	return archListModel{Arches: mirror.Architectures}
}

func (m archListModel) Init() tea.Cmd {
	return nil
}

func (m archListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Arches)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Arches[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m archListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Architecture"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, arch := range m.Arches {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + arch
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Arches))))

	return b.String()
}
