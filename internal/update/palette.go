package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyquest/internal/commands"
	"github.com/sandeepkv93/studyquest/internal/model"
)

func (m Model) openPalette(prefill string) Model {
	m.Palette.Active = true
	m.Palette.Input = prefill
	m.commandInput.SetValue(prefill)
	m.commandInput.CursorEnd()
	m.commandInput.Focus()
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		run := m.Focus.Run
		m = m.executePaletteCommand()
		var tick tea.Cmd
		if m.Focus.Running && m.Focus.Run != run {
			tick = focusTickCmd(m.Focus.Run)
		}
		return m, tea.Batch(m.savingCmd(), tick)
	}
	if msg.Type == tea.KeyRunes {
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if cmd.Type != commands.TypeLogin && !m.Store.Snapshot().LoggedIn() {
		m.Status = StatusBar{Text: "sign in first", IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m
}

// paletteHandlers binds each command to the store. Handlers close over m so
// the ones that touch timer or tab state can update the model in place.
func (m *Model) paletteHandlers() commands.Handlers {
	return commands.Handlers{
		Task: func(a commands.TaskArgs) (commands.Result, error) {
			m.Store.AddTask(a.Title, a.Priority, a.DueDate)
			m.mutated()
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			task, ok := findTask(m.Store.Snapshot().Tasks, a.Target)
			if !ok {
				return commands.Result{}, notFound("task", a.Target)
			}
			m.Store.ToggleTask(task.ID)
			m.mutated()
			return commands.Result{Message: fmt.Sprintf("toggled %s", task.Title)}, nil
		},
		Habit: func(a commands.HabitArgs) (commands.Result, error) {
			m.Store.AddHabit(a.Name, a.Icon)
			m.mutated()
			return commands.Result{Message: fmt.Sprintf("added habit: %s", a.Name)}, nil
		},
		CheckIn: func(a commands.TargetArgs) (commands.Result, error) {
			habit, ok := findHabit(m.Store.Snapshot().Habits, a.Target)
			if !ok {
				return commands.Result{}, notFound("habit", a.Target)
			}
			done := m.Store.CheckInHabit(habit.ID)
			m.mutated()
			if !done {
				return commands.Result{Message: fmt.Sprintf("%s already done today", habit.Name)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("%s checked in", habit.Name)}, nil
		},
		Item: func(a commands.ItemArgs) (commands.Result, error) {
			m.Store.AddShopItem(a.Name, a.Cost, a.Icon)
			m.mutated()
			return commands.Result{Message: fmt.Sprintf("stocked %s for %d energy", a.Name, a.Cost)}, nil
		},
		Buy: func(a commands.TargetArgs) (commands.Result, error) {
			st := m.Store.Snapshot()
			item, ok := findShopItem(st.ShopItems, a.Target)
			if !ok {
				return commands.Result{}, notFound("shop item", a.Target)
			}
			bought := m.Store.PurchaseItem(item)
			m.mutated()
			if !bought {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("not enough energy for %s (%d/%d)", item.Name, st.Energy, item.Cost),
				}
			}
			return commands.Result{Message: fmt.Sprintf("bought %s", item.Name)}, nil
		},
		Use: func(a commands.TargetArgs) (commands.Result, error) {
			item, ok := findUnused(m.Store.Snapshot().Inventory, a.Target)
			if !ok {
				return commands.Result{}, notFound("unused inventory item", a.Target)
			}
			m.Store.UseInventoryItem(item.ID)
			m.mutated()
			return commands.Result{Message: fmt.Sprintf("used %s", item.Name)}, nil
		},
		Tag: func(a commands.TagArgs) (commands.Result, error) {
			m.Store.AddTag(a.Name, a.Color)
			m.mutated()
			return commands.Result{Message: fmt.Sprintf("added tag: %s", a.Name)}, nil
		},
		Focus: func(a commands.FocusArgs) (commands.Result, error) {
			if !m.Focus.Idle() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "a focus session is already running"}
			}
			if a.Tag != "" {
				tag, ok := find(m.Store.Snapshot().Tags, a.Tag, func(t model.Tag) (string, string) { return t.Name, t.Name })
				if !ok {
					return commands.Result{}, notFound("tag", a.Tag)
				}
				m.Focus.Tag = tag.Name
			}
			m.Focus.Mode = a.Mode
			if a.Minutes > 0 {
				m.Focus.TargetMinutes = a.Minutes
			}
			m.Focus.StartedAt = m.now()
			m.Focus.Elapsed = 0
			m.Focus.Running = true
			m.Focus.Run++
			*m = m.switchTab(model.TabTimer)
			if a.Mode == model.ModeStopwatch {
				return commands.Result{Message: fmt.Sprintf("stopwatch started on %s", m.Focus.Tag)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("%d minute focus started on %s", m.Focus.TargetMinutes, m.Focus.Tag)}, nil
		},
		Theme: func(a commands.ValueArgs) (commands.Result, error) {
			m.Store.SetTheme(model.Theme(a.Value))
			m.mutated()
			return commands.Result{Message: fmt.Sprintf("theme: %s", a.Value)}, nil
		},
		Go: func(a commands.ValueArgs) (commands.Result, error) {
			tab := model.Tab(a.Value)
			*m = m.switchTab(tab)
			if m.currentTab() != tab {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: fmt.Sprintf("switched to %s", tab)}, nil
		},
		Strict: func(a commands.ValueArgs) (commands.Result, error) {
			m.Store.SetStrictMode(a.On())
			m.mutated()
			if a.On() {
				return commands.Result{Message: "strict mode on: stopping a countdown early forfeits it"}, nil
			}
			return commands.Result{Message: "strict mode off"}, nil
		},
		Login: func(a commands.ValueArgs) (commands.Result, error) {
			if !m.Focus.Idle() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "stop the running session before switching user"}
			}
			m.Store.Login(context.Background(), a.Value)
			m.mutated()
			return commands.Result{Message: fmt.Sprintf("signed in as %s", a.Value)}, nil
		},
		Logout: func() (commands.Result, error) {
			m.Store.Logout()
			m.Focus = FocusState{Mode: model.ModeCountdown, TargetMinutes: m.Config.FocusMinutes, Run: m.Focus.Run}
			return commands.Result{Message: "signed out"}, nil
		},
		Reset: func() (commands.Result, error) {
			m.Store.Reset()
			m.mutated()
			m.LastArtifact = nil
			return commands.Result{Message: "progress reset"}, nil
		},
	}
}

func notFound(kind, target string) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no %s matches %q", kind, target)}
}

// The finders accept an exact id first, then a case-insensitive name.

func findTask(tasks []model.Task, target string) (model.Task, bool) {
	return find(tasks, target, func(t model.Task) (string, string) { return t.ID, t.Title })
}

func findHabit(habits []model.Habit, target string) (model.Habit, bool) {
	return find(habits, target, func(h model.Habit) (string, string) { return h.ID, h.Name })
}

func findShopItem(items []model.ShopItem, target string) (model.ShopItem, bool) {
	return find(items, target, func(i model.ShopItem) (string, string) { return i.ID, i.Name })
}

func findUnused(items []model.InventoryItem, target string) (model.InventoryItem, bool) {
	var unused []model.InventoryItem
	for _, item := range items {
		if item.Status == model.InventoryUnused {
			unused = append(unused, item)
		}
	}
	return find(unused, target, func(i model.InventoryItem) (string, string) { return i.ID, i.Name })
}

func find[T any](items []T, target string, key func(T) (string, string)) (T, bool) {
	for _, item := range items {
		if id, _ := key(item); id == target {
			return item, true
		}
	}
	for _, item := range items {
		if _, name := key(item); strings.EqualFold(name, target) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
