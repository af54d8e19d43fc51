package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := titleStyle.Render("ritual")
	if m.username != "" {
		header += "  " + m.username + "  " + levelStyle.Render(fmt.Sprintf("level %d (%d XP)", m.level, m.totalXP))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if len(m.list.Items()) == 0 {
		b.WriteString(statusStyle.Render("No habits to show. Add one with: ritual habit add <name>"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		style := statusStyle
		if strings.Contains(m.status, "no active profile") {
			style = dangerStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}
