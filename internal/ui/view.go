package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).MarginTop(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("238"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	linkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
)

// viewClosed renders the current selection.
func (m *Model) viewClosed() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Model") + "\n\n")
	if m.current.Model == "" {
		b.WriteString(mutedStyle.Render("(none selected)"))
	} else {
		b.WriteString(m.current.Model + mutedStyle.Render(" · "+m.current.Provider))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("\n" + warnStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("Enter choose model · q quit") + "\n")
	return b.String()
}

// viewOpen renders the picker dialog.
func (m *Model) viewOpen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select Model") + "\n\n")
	b.WriteString(m.search.View() + "\n")

	if m.picker.Loading {
		b.WriteString("\n" + m.spinner.View() + " Loading models...\n")
	} else {
		b.WriteString(m.viewList())
		b.WriteString("\n" + linkStyle.Render("Add New Models Provider...") + mutedStyle.Render(" (ctrl+s)") + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + warnStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("↑/↓ move · Enter select · Esc close · Ctrl+R refresh · Ctrl+C quit"))

	width := m.width - 2
	if width < 20 {
		width = 20
	}
	return panelStyle.Width(width).Render(b.String())
}

// viewList renders the grouped models, windowed around the cursor.
func (m *Model) viewList() string {
	groups := m.picker.Groups()
	if len(groups) == 0 {
		return "\n" + mutedStyle.Render("No models match.") + "\n"
	}

	var lines []string
	cursorLine := 0
	idx := 0
	for _, g := range groups {
		lines = append(lines, headerStyle.Render(g.Provider))
		for _, mi := range g.Models {
			prefix := "  "
			label := mi.DisplayLabel()
			if idx == m.cursor {
				prefix = cursorStyle.Render("> ")
				cursorLine = len(lines)
			}
			if m.current.Matches(mi) {
				label = selectedStyle.Render(label)
			}
			lines = append(lines, prefix+label)
			idx++
		}
	}

	return "\n" + strings.Join(window(lines, cursorLine, m.listHeight()), "\n") + "\n"
}

func (m *Model) listHeight() int {
	h := m.height - 12
	if h < 5 {
		h = 5
	}
	return h
}

// window returns at most size lines of lines, keeping focus visible.
func window(lines []string, focus, size int) []string {
	if len(lines) <= size {
		return lines
	}
	start := focus - size/2
	if start < 0 {
		start = 0
	}
	if start+size > len(lines) {
		start = len(lines) - size
	}
	return lines[start : start+size]
}
