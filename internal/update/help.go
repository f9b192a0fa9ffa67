package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/sandeepkv93/studyquest/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	global := toKeyBindings(m.globalBindings())
	local := toKeyBindings(m.tabBindings(m.currentTab()))
	var plain []string
	for _, kb := range m.tabBindings(m.currentTab()) {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentTab: string(m.currentTab()),
		Bindings:   plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: append(append([]key.Binding{}, global...), local...),
			full:  [][]key.Binding{global, local},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "1-8", Action: "switch tab"},
		{Key: "tab", Action: "next tab"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) tabBindings(tab model.Tab) []KeyBinding {
	switch tab {
	case model.TabTimer:
		return []KeyBinding{
			{Key: "space", Action: "start/pause"},
			{Key: "s", Action: "stop and record"},
			{Key: "m", Action: "countdown/stopwatch"},
			{Key: "t", Action: "cycle tag"},
			{Key: "+/-", Action: "target ±5 min"},
		}
	case model.TabTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move"},
			{Key: "x", Action: "toggle done"},
			{Key: "p", Action: "cycle priority"},
			{Key: "d", Action: "delete"},
			{Key: "a", Action: "add task"},
		}
	case model.TabHabits:
		return []KeyBinding{
			{Key: "j/k", Action: "move"},
			{Key: "c", Action: "check in"},
			{Key: "d", Action: "delete"},
			{Key: "a", Action: "add habit"},
		}
	case model.TabShop:
		return []KeyBinding{
			{Key: "j/k", Action: "move"},
			{Key: "b", Action: "buy"},
			{Key: "u", Action: "use newest unused"},
			{Key: "d", Action: "remove from shop"},
			{Key: "a", Action: "stock item"},
		}
	case model.TabRank:
		return []KeyBinding{{Key: "j/k", Action: "scroll archive"}}
	case model.TabSettings:
		return []KeyBinding{
			{Key: "t", Action: "cycle theme"},
			{Key: "s", Action: "toggle strict mode"},
			{Key: "+/-", Action: "blur level"},
			{Key: "L", Action: "sign out"},
		}
	case model.TabMuseum:
		return []KeyBinding{{Key: "j/k", Action: "browse artifacts"}}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
