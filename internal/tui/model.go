package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"

	"github.com/julianstephens/ritual/internal/habit"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/profile"
	"github.com/julianstephens/ritual/internal/xp"
)

type Item struct {
	Habit models.Habit
	Done  bool
}

func (i Item) Title() string {
	if i.Done {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	if i.Done {
		return fmt.Sprintf("%s, completed this period", i.Habit.Cadence)
	}
	return fmt.Sprintf("%s, due", i.Habit.Cadence)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Mark    key.Binding
	Archive key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Mark: key.NewBinding(
			key.WithKeys("m", "enter"),
			key.WithHelp("m", "mark done"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mark, k.Archive, k.Refresh, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Mark, k.Archive}, {k.Refresh, k.Quit}}
}

type Model struct {
	engine   *habit.Engine
	profiles *profile.Registry
	ledger   *xp.Ledger

	keys     KeyMap
	help     help.Model
	list     list.Model
	username string
	level    int
	totalXP  int
	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(engine *habit.Engine, profiles *profile.Registry, ledger *xp.Ledger) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	m := Model{
		engine:   engine,
		profiles: profiles,
		ledger:   ledger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		list:     l,
	}
	m.refresh(time.Now())
	return m
}

// refresh reloads habits, completion state, and XP for the active profile.
func (m *Model) refresh(when time.Time) {
	active, err := m.profiles.RequireActive()
	if err != nil {
		m.status = err.Error()
		m.list.SetItems(nil)
		return
	}
	m.username = active.Username

	habits, err := m.engine.List(habit.ListOptions{ActiveOnly: true})
	if err != nil {
		m.status = err.Error()
		return
	}
	due, err := m.engine.Due(when)
	if err != nil {
		m.status = err.Error()
		return
	}
	pending := make(map[string]bool, len(due))
	for _, h := range due {
		pending[h.ID] = true
	}

	items := make([]list.Item, 0, len(habits))
	for _, h := range habits {
		items = append(items, Item{Habit: h, Done: !pending[h.ID]})
	}
	m.list.SetItems(items)

	total, err := m.ledger.TotalXP(active.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.totalXP = total
	m.level = xp.Level(total)
}

func (m Model) selected() (Item, bool) {
	it, ok := m.list.SelectedItem().(Item)
	return it, ok
}
