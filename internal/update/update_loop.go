package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/sandeepkv93/studyquest/internal/persist"
	"github.com/sandeepkv93/studyquest/internal/rewards"
	"github.com/sandeepkv93/studyquest/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForSaveResultCmd(m.saveResults)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if !m.Store.Snapshot().LoggedIn() {
			return m.handleLoginKey(typed)
		}

		keyStr := typed.String()
		if tab, ok := m.Keys.Tabs[keyStr]; ok {
			m = m.switchTab(tab)
			return m, m.savingCmd()
		}
		switch keyStr {
		case m.Keys.Palette:
			m = m.openPalette("")
			return m, nil
		case "tab":
			m = m.switchTab(nextTab(m.currentTab()))
			return m, m.savingCmd()
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			if !m.Focus.Idle() {
				m.Status = StatusBar{Text: "a focus session is running; stop it with s first", IsError: true}
				return m, nil
			}
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleTabKey(typed)
	case spinner.TickMsg:
		if m.Saving {
			var cmd tea.Cmd
			m.saveSpinner, cmd = m.saveSpinner.Update(typed)
			return m, cmd
		}
	case SwitchTabMsg:
		m = m.switchTab(typed.Tab)
		return m, m.savingCmd()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case SaveResultMsg:
		m.Saving = false
		m.Store.ReportResult(typed.Result)
		if typed.Result.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", typed.Result.Err), IsError: true}
			m.notify("Save", m.Status.Text, "error")
		}
		return m, waitForSaveResultCmd(m.saveResults)
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.loginInput.Value())
		if name == "" {
			m.Status = StatusBar{Text: "enter a username to continue", IsError: true}
			return m, nil
		}
		m.Store.Login(context.Background(), name)
		m.loginInput.SetValue("")
		m.Status = StatusBar{Text: fmt.Sprintf("welcome, %s", name)}
		if m.Store.ReadOnly() {
			m.Status = StatusBar{Text: "this save is from a newer version; changes will not be saved", IsError: true}
		}
		return m, m.savingCmd()
	case "esc":
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.loginInput, cmd = m.loginInput.Update(msg)
	return m, cmd
}

func (m Model) currentTab() model.Tab {
	return m.Store.Snapshot().ActiveTab
}

func (m Model) museumUnlocked(xp int) bool {
	return xp >= m.Config.MuseumUnlockXP
}

func (m Model) switchTab(tab model.Tab) Model {
	st := m.Store.Snapshot()
	if tab == model.TabMuseum && !m.museumUnlocked(st.XP) {
		m.Status = StatusBar{Text: fmt.Sprintf("the museum opens at %d XP", m.Config.MuseumUnlockXP), IsError: true}
		return m
	}
	if st.ActiveTab != tab {
		m.Store.SetActiveTab(tab)
		m.mutated()
	}
	return m
}

func nextTab(cur model.Tab) model.Tab {
	for i, tab := range TabOrder {
		if tab == cur {
			return TabOrder[(i+1)%len(TabOrder)]
		}
	}
	return TabOrder[0]
}

// savingCmd starts the spinner while a save is outstanding.
func (m Model) savingCmd() tea.Cmd {
	if !m.Saving {
		return nil
	}
	return m.saveSpinner.Tick
}

// mutated marks that an action queued a save.
func (m *Model) mutated() {
	if m.saveResults != nil {
		m.Saving = true
	}
}

func (m Model) View() string {
	st := m.Store.Snapshot()
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	if !st.LoggedIn() {
		return views.RenderApp(views.AppData{
			Header:     "StudyQuest",
			LeftPane:   views.RenderLoginPanel(m.loginInput.View()),
			StatusLine: status,
			Footer:     "keys: enter sign in | esc quit",
		})
	}

	leftPane, rightPane := m.renderTab(st)
	rightPane = strings.TrimSpace(rightPane + "\n" + m.renderCommandPalette() + m.renderHelpIfVisible())

	notificationView := strings.TrimSpace(m.renderNotificationsView())
	if m.Saving {
		notificationView = strings.TrimSpace(notificationView + "\nsaving " + m.saveSpinner.View())
	}

	rank := rewards.CalculateRank(st.XP)
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("StudyQuest | %s | %s %s | %d XP | %d ⚡", st.User.Username, rank.Icon, rank.Name, st.XP, st.Energy),
		Tabs:         m.tabLabels(st),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: 1-8 tabs | tab next | %s cmd | %s help | %s quit", m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) tabLabels(st model.AppState) []views.TabLabel {
	out := make([]views.TabLabel, 0, len(TabOrder))
	for i, tab := range TabOrder {
		out = append(out, views.TabLabel{
			Key:    fmt.Sprint(i + 1),
			Name:   string(tab),
			Active: tab == st.ActiveTab,
			Locked: tab == model.TabMuseum && !m.museumUnlocked(st.XP),
		})
	}
	return out
}

func waitForSaveResultCmd(ch <-chan persist.Result) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return SaveResultMsg{Result: r}
	}
}
