package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TimerPanelData struct {
	Mode         string
	Tag          string
	TagColor     string
	Clock        string
	TargetMin    int
	ProgressView string
	Running      bool
	Paused       bool
	Strict       bool
	LastArtifact *ArtifactData
}

type TasksPanelData struct {
	ListView string
	Open     int
	Done     int
}

type HabitItemData struct {
	Icon        string
	Name        string
	Streak      int
	DoneToday   bool
	LastCheckIn string
}

type HabitsPanelData struct {
	Today  string
	Items  []HabitItemData
	Cursor int
}

type BarData struct {
	Label   string
	Bar     string
	Minutes int
}

type StatsPanelData struct {
	Days         []BarData
	Tags         []BarData
	Completed    int
	Abandoned    int
	FocusMinutes int
	Longest      int
}

type ShopPanelData struct {
	Energy         int
	ShopView       string
	InventoryView  string
	UnusedCount    int
	InventoryCount int
}

type RankPanelData struct {
	Icon         string
	Name         string
	Color        string
	XP           int
	NextName     string
	NextXP       int
	HasNext      bool
	ProgressView string
	Percent      int
}

type SettingsPanelData struct {
	Username  string
	Avatar    string
	JoinedAt  string
	Theme     string
	Strict    bool
	BlurLevel int
	BgImage   string
	ReadOnly  bool
}

type ArtifactData struct {
	Name        string
	Description string
	Rarity      string
	Color       string
	Depth       int
	FoundAt     string
}

type MuseumPanelData struct {
	Items  []ArtifactData
	Cursor int
}

type HelpPanelData struct {
	CurrentTab string
	Bindings   []string
	HelpView   string
}

var (
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	clockStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
)

func RenderLoginPanel(inputView string) string {
	var b strings.Builder
	b.WriteString("sign in:\n")
	b.WriteString("progress is saved per username on this machine.\n\n")
	b.WriteString(inputView + "\n")
	return strings.TrimSpace(b.String())
}

func RenderTimerPanel(data TimerPanelData) string {
	var b strings.Builder
	b.WriteString("timer:\n")
	tag := data.Tag
	if tag == "" {
		tag = "(untagged)"
	} else if data.TagColor != "" {
		tag = lipgloss.NewStyle().Foreground(lipgloss.Color(data.TagColor)).Render(tag)
	}
	b.WriteString(fmt.Sprintf("mode: %s | tag: %s\n", data.Mode, tag))
	if data.Mode == "countdown" {
		b.WriteString(fmt.Sprintf("target: %d min\n", data.TargetMin))
	}
	b.WriteString("\n" + clockStyle.Render(data.Clock) + "\n")
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView + "\n")
	}
	switch {
	case data.Running:
		b.WriteString("state: running\n")
	case data.Paused:
		b.WriteString("state: paused\n")
	default:
		b.WriteString("state: idle\n")
	}
	if data.Strict {
		b.WriteString(errorStyle.Render("strict: stopping a countdown early forfeits it") + "\n")
	}
	b.WriteString("actions: [space]start/pause [s]stop [m]mode [t]tag [+/-]target\n")
	if data.LastArtifact != nil {
		b.WriteString("\nlast find:\n")
		b.WriteString(renderArtifactLine(*data.LastArtifact, false) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks: %d open, %d done\n", data.Open, data.Done))
	b.WriteString("actions: [x]toggle [p]priority [d]delete [a]add\n")
	if data.Open+data.Done == 0 {
		b.WriteString("(no tasks yet, press a)")
		return b.String()
	}
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("habits: %s\n", data.Today))
	b.WriteString("actions: [c]check in [d]delete [a]add\n")
	if len(data.Items) == 0 {
		b.WriteString("(no habits)")
		return b.String()
	}
	for i, h := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		check := "[ ]"
		if h.DoneToday {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s  streak %d", cursor, check, h.Icon, h.Name, h.Streak))
		if h.LastCheckIn != "" && !h.DoneToday {
			b.WriteString(mutedStyle.Render(" (last " + h.LastCheckIn + ")"))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("sessions: %d completed, %d abandoned\n", data.Completed, data.Abandoned))
	b.WriteString(fmt.Sprintf("focus: %d min total, longest %d min\n", data.FocusMinutes, data.Longest))
	b.WriteString("\nlast 7 days:\n")
	for _, d := range data.Days {
		b.WriteString(fmt.Sprintf("%s %s %d\n", d.Label, d.Bar, d.Minutes))
	}
	b.WriteString("\nby tag:\n")
	if len(data.Tags) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, t := range data.Tags {
		b.WriteString(fmt.Sprintf("%-10s %s %d\n", t.Label, t.Bar, t.Minutes))
	}
	return strings.TrimSpace(b.String())
}

func RenderShopPanel(data ShopPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("shop: %d ⚡ available\n", data.Energy))
	b.WriteString("actions: [b]buy [u]use [d]remove [a]stock\n")
	b.WriteString(data.ShopView + "\n")
	b.WriteString(fmt.Sprintf("\ninventory: %d owned, %d unused\n", data.InventoryCount, data.UnusedCount))
	b.WriteString(data.InventoryView)
	return strings.TrimSpace(b.String())
}

func RenderRankPanel(data RankPanelData) string {
	var b strings.Builder
	name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(data.Color)).Render(data.Name)
	b.WriteString("rank:\n")
	b.WriteString(fmt.Sprintf("%s %s\n", data.Icon, name))
	b.WriteString(fmt.Sprintf("xp: %d\n", data.XP))
	b.WriteString(data.ProgressView + "\n")
	if data.HasNext {
		b.WriteString(fmt.Sprintf("%d%% to %s (%d XP, %d to go)\n", data.Percent, data.NextName, data.NextXP, data.NextXP-data.XP))
	} else {
		b.WriteString("top rank reached\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderArchivePanel(storyView string) string {
	return "archive: [j/k]scroll\n" + storyView
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString(fmt.Sprintf("user: %s\n", data.Username))
	b.WriteString(fmt.Sprintf("joined: %s\n", data.JoinedAt))
	b.WriteString(fmt.Sprintf("avatar: %s\n", data.Avatar))
	b.WriteString(fmt.Sprintf("theme: %s\n", data.Theme))
	b.WriteString(fmt.Sprintf("strict mode: %s\n", onOff(data.Strict)))
	b.WriteString(fmt.Sprintf("blur: %d\n", data.BlurLevel))
	if data.BgImage != "" {
		b.WriteString(fmt.Sprintf("background: %s\n", data.BgImage))
	}
	if data.ReadOnly {
		b.WriteString(errorStyle.Render("read-only: this save was written by a newer version") + "\n")
	}
	b.WriteString("actions: [t]theme [s]strict [+/-]blur [L]sign out\n")
	return strings.TrimSpace(b.String())
}

func RenderMuseumPanel(data MuseumPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("museum: %d artifact(s)\n", len(data.Items)))
	if len(data.Items) == 0 {
		b.WriteString("(nothing dug up yet, finish a focus session)")
		return b.String()
	}
	for i, a := range data.Items {
		b.WriteString(renderArtifactLine(a, i == data.Cursor) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderArtifactDetail(a ArtifactData) string {
	rarity := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Render(a.Rarity)
	return fmt.Sprintf("artifact:\n%s\nrarity: %s\nfound: %s\ndepth: %d min\n\n%s",
		a.Name, rarity, a.FoundAt, a.Depth, a.Description)
}

func renderArtifactLine(a ArtifactData, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	rarity := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Render("[" + a.Rarity + "]")
	return fmt.Sprintf("%s %s %s", cursor, rarity, a.Name)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("\nhelp:\n%s tab:\n%s\n%s",
		strings.ToLower(data.CurrentTab),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
