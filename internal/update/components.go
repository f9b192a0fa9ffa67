package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/sandeepkv93/studyquest/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 14)
	m.taskList.Title = "Tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	m.shopTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 3},
			{Title: "Item", Width: 26},
			{Title: "Cost", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	m.inventoryTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 3},
			{Title: "Owned", Width: 26},
			{Title: "Status", Width: 8},
		}),
		table.WithHeight(6),
	)

	m.loginInput = textinput.New()
	m.loginInput.Prompt = "username> "
	m.loginInput.Placeholder = "any name works"
	m.loginInput.CharLimit = 64
	m.loginInput.Width = 32

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.focusProgress = progress.New(progress.WithDefaultGradient())
	m.rankProgress = progress.New(progress.WithSolidFill("#eab308"))

	m.saveSpinner = spinner.New()
	m.saveSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.storyViewport = viewport.New(54, 14)
}

// syncBubbleData copies store state into the bubbles components. It runs
// after every update so the components never drift from the store.
func (m *Model) syncBubbleData() {
	st := m.Store.Snapshot()

	if !st.LoggedIn() {
		m.loginInput.Focus()
	} else {
		m.loginInput.Blur()
	}
	if _, ok := st.FindTag(m.Focus.Tag); !ok && len(st.Tags) > 0 {
		m.Focus.Tag = st.Tags[0].Name
	}

	tasks := make([]list.Item, 0, len(st.Tasks))
	for _, t := range st.Tasks {
		check := "[ ]"
		if t.IsCompleted {
			check = "[x]"
		}
		desc := string(t.Priority)
		if t.DueDate != "" {
			desc += " | due " + t.DueDate
		}
		tasks = append(tasks, listItem{title: check + " " + t.Title, description: desc})
	}
	m.taskList.SetItems(tasks)
	if n := len(tasks); n > 0 {
		m.taskList.Select(clampCursor(m.Cursors[model.TabTasks], n))
	}

	shopRows := make([]table.Row, 0, len(st.ShopItems))
	for _, item := range st.ShopItems {
		shopRows = append(shopRows, table.Row{item.Icon, item.Name, fmt.Sprintf("%d ⚡", item.Cost)})
	}
	m.shopTable.SetRows(shopRows)
	if n := len(shopRows); n > 0 {
		m.shopTable.SetCursor(clampCursor(m.Cursors[model.TabShop], n))
	}

	invRows := make([]table.Row, 0, len(st.Inventory))
	for _, item := range st.Inventory {
		invRows = append(invRows, table.Row{item.Icon, item.Name, string(item.Status)})
	}
	m.inventoryTable.SetRows(invRows)

	// Rendering markdown is slow, so the story only refreshes when xp moves.
	if st.XP != m.storyXP {
		var story strings.Builder
		for _, f := range m.stories.ForXP(st.XP) {
			story.WriteString(fmt.Sprintf("### %s · %s\n\n%s\n\n", f.ID, f.Title, f.Content))
		}
		m.storyViewport.SetContent(views.RenderMarkdown(story.String()))
		m.storyXP = st.XP
	}
}

func (m Model) focusPercent() float64 {
	if m.Focus.Mode != model.ModeCountdown || m.Focus.TargetMinutes <= 0 {
		return 0
	}
	pct := m.Focus.Elapsed.Minutes() / float64(m.Focus.TargetMinutes)
	return min(max(pct, 0), 1)
}

func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(cursor, 0), n-1)
}
