package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/semmy-space/lnch/internal/output"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	kindStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
	kindWidth     = len("command")
	reservedLines = 6
)

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("lnch"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(helpStyle.Render("No saved items. Add one with: lnch add <target>"))
		b.WriteString("\n")
	} else if len(m.matches) == 0 {
		b.WriteString(helpStyle.Render("No matches"))
		b.WriteString("\n")
	}

	start, end := m.window()
	for row := start; row < end; row++ {
		it := m.items[m.matches[row]]

		line := kindStyle.Render(output.PadString(it.Type.String(), kindWidth)) + "  " +
			output.TruncateString(it.Label(), 70)
		if row == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ move • enter open • esc quit"))
	return b.String()
}

// window returns the visible slice of matches, keeping the cursor in view
func (m Model) window() (int, int) {
	visible := m.height - reservedLines
	if visible < 1 {
		visible = 1
	}
	n := len(m.matches)
	if n <= visible {
		return 0, n
	}

	start := m.cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > n {
		start = n - visible
	}
	return start, start + visible
}
