package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyquest/internal/model"
)

var themeOrder = []model.Theme{
	model.ThemeDefault,
	model.ThemeCyberpunk,
	model.ThemePixel,
	model.ThemeFilm,
	model.ThemeBW,
	model.ThemeForest,
}

var priorityCycle = map[model.Priority]model.Priority{
	model.PriorityLow:    model.PriorityNormal,
	model.PriorityNormal: model.PriorityHigh,
	model.PriorityHigh:   model.PriorityLow,
}

func (m Model) handleTabKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	tab := m.currentTab()
	if tab == model.TabTimer {
		return m.handleFocusKey(msg)
	}
	if tab == model.TabRank {
		var cmd tea.Cmd
		m.storyViewport, cmd = m.storyViewport.Update(msg)
		return m, cmd
	}

	st := m.Store.Snapshot()
	key := msg.String()
	switch key {
	case "j", "down":
		m.Cursors[tab] = clampCursor(m.Cursors[tab]+1, m.rowCount(st, tab))
		return m, nil
	case "k", "up":
		m.Cursors[tab] = clampCursor(m.Cursors[tab]-1, m.rowCount(st, tab))
		return m, nil
	}

	cursor := clampCursor(m.Cursors[tab], m.rowCount(st, tab))
	switch tab {
	case model.TabTasks:
		m = m.handleTasksKey(st, key, cursor)
	case model.TabHabits:
		m = m.handleHabitsKey(st, key, cursor)
	case model.TabShop:
		m = m.handleShopKey(st, key, cursor)
	case model.TabSettings:
		m = m.handleSettingsKey(st, key)
	}
	return m, m.savingCmd()
}

func (m Model) rowCount(st model.AppState, tab model.Tab) int {
	switch tab {
	case model.TabTasks:
		return len(st.Tasks)
	case model.TabHabits:
		return len(st.Habits)
	case model.TabShop:
		return len(st.ShopItems)
	case model.TabMuseum:
		return len(st.Artifacts)
	default:
		return 0
	}
}

func (m Model) handleTasksKey(st model.AppState, key string, cursor int) Model {
	if key == "a" {
		return m.openPalette("task ")
	}
	if len(st.Tasks) == 0 {
		return m
	}
	task := st.Tasks[cursor]
	switch key {
	case "x", "enter":
		m.Store.ToggleTask(task.ID)
		m.mutated()
	case "d":
		m.Store.DeleteTask(task.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("deleted %q", task.Title)}
		m.mutated()
	case "p":
		m.Store.UpdateTaskPriority(task.ID, priorityCycle[task.Priority])
		m.mutated()
	}
	return m
}

func (m Model) handleHabitsKey(st model.AppState, key string, cursor int) Model {
	if key == "a" {
		return m.openPalette("habit ")
	}
	if len(st.Habits) == 0 {
		return m
	}
	habit := st.Habits[cursor]
	switch key {
	case "c", "enter", " ":
		if m.Store.CheckInHabit(habit.ID) {
			m.Status = StatusBar{Text: fmt.Sprintf("%s %s checked in", habit.Icon, habit.Name)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("%s already done today", habit.Name)}
		}
		m.mutated()
	case "d":
		m.Store.DeleteHabit(habit.ID)
		m.mutated()
	}
	return m
}

func (m Model) handleShopKey(st model.AppState, key string, cursor int) Model {
	switch key {
	case "a":
		return m.openPalette("item ")
	case "u":
		for _, item := range st.Inventory {
			if item.Status == model.InventoryUnused {
				m.Store.UseInventoryItem(item.ID)
				m.Status = StatusBar{Text: fmt.Sprintf("enjoy your %s", item.Name)}
				m.mutated()
				return m
			}
		}
		m.Status = StatusBar{Text: "nothing unused in the inventory", IsError: true}
		return m
	}
	if len(st.ShopItems) == 0 {
		return m
	}
	item := st.ShopItems[cursor]
	switch key {
	case "b", "enter":
		if m.Store.PurchaseItem(item) {
			m.Status = StatusBar{Text: fmt.Sprintf("bought %s for %d energy", item.Name, item.Cost)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("not enough energy for %s (%d/%d)", item.Name, st.Energy, item.Cost), IsError: true}
		}
		m.mutated()
	case "d":
		m.Store.DeleteShopItem(item.ID)
		m.mutated()
	}
	return m
}

func (m Model) handleSettingsKey(st model.AppState, key string) Model {
	switch key {
	case "t":
		next := themeOrder[0]
		for i, theme := range themeOrder {
			if theme == st.Theme {
				next = themeOrder[(i+1)%len(themeOrder)]
			}
		}
		m.Store.SetTheme(next)
		m.Status = StatusBar{Text: fmt.Sprintf("theme: %s", next)}
		m.mutated()
	case "s":
		m.Store.SetStrictMode(!st.StrictMode)
		m.mutated()
	case "+", "=":
		m.Store.SetBlurLevel(st.BlurLevel + 5)
		m.mutated()
	case "-":
		m.Store.SetBlurLevel(st.BlurLevel - 5)
		m.mutated()
	case "L":
		m.Store.Logout()
		m.Focus = FocusState{Mode: model.ModeCountdown, TargetMinutes: m.Config.FocusMinutes, Run: m.Focus.Run}
		m.Status = StatusBar{Text: "signed out"}
	}
	return m
}
