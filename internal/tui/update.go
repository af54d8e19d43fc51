package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ritual/internal/habit"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		frameW, frameH := docStyle.GetFrameSize()
		// Leave room for the header and help lines
		m.list.SetSize(msg.Width-frameW, msg.Height-frameH-4)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.refresh(time.Now())
			return m, nil

		case key.Matches(msg, m.keys.Mark):
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			if it.Done {
				m.status = fmt.Sprintf("%s is already done for this period", it.Habit.Name)
				return m, nil
			}
			_, err := m.engine.Complete(it.Habit.ID, time.Time{})
			if err != nil {
				var dup *habit.AlreadyCompletedError
				if errors.As(err, &dup) {
					m.status = fmt.Sprintf("%s is already done for %s", it.Habit.Name, dup.PeriodKey)
				} else {
					m.status = err.Error()
				}
			} else {
				m.status = fmt.Sprintf("✓ %s done (+1 XP)", it.Habit.Name)
			}
			m.refresh(time.Now())
			return m, nil

		case key.Matches(msg, m.keys.Archive):
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			if _, err := m.engine.Archive(it.Habit.ID); err != nil {
				m.status = err.Error()
			} else {
				m.status = fmt.Sprintf("Archived %s", it.Habit.Name)
			}
			m.refresh(time.Now())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
