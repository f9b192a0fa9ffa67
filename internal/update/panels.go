package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/sandeepkv93/studyquest/internal/rewards"
	"github.com/sandeepkv93/studyquest/internal/views"
)

const statsBarWidth = 24

// renderTab returns the left and right panes for the active tab.
func (m Model) renderTab(st model.AppState) (string, string) {
	switch st.ActiveTab {
	case model.TabTasks:
		return m.renderTasks(st), m.renderTimerSummary(st)
	case model.TabHabits:
		return m.renderHabits(st), m.renderTimerSummary(st)
	case model.TabStats:
		return m.renderStats(st), m.renderRank(st)
	case model.TabShop:
		return m.renderShop(st), ""
	case model.TabRank:
		return m.renderRank(st), views.RenderArchivePanel(m.storyViewport.View())
	case model.TabSettings:
		return m.renderSettings(st), ""
	case model.TabMuseum:
		return m.renderMuseum(st)
	default:
		return m.renderTimer(st), m.renderRank(st)
	}
}

func (m Model) renderTimer(st model.AppState) string {
	clock := m.Focus.Elapsed
	progressView := ""
	if m.Focus.Mode == model.ModeCountdown {
		clock = time.Duration(m.Focus.TargetMinutes)*time.Minute - m.Focus.Elapsed
		progressView = m.focusProgress.ViewAs(m.focusPercent())
	}
	data := views.TimerPanelData{
		Mode:         string(m.Focus.Mode),
		Tag:          m.Focus.Tag,
		Clock:        formatClock(clock),
		TargetMin:    m.Focus.TargetMinutes,
		ProgressView: progressView,
		Running:      m.Focus.Running,
		Paused:       !m.Focus.Running && !m.Focus.Idle(),
		Strict:       st.StrictMode,
	}
	if tag, ok := st.FindTag(m.Focus.Tag); ok {
		data.TagColor = tag.Color
	}
	if m.LastArtifact != nil {
		a := artifactData(*m.LastArtifact)
		data.LastArtifact = &a
	}
	return views.RenderTimerPanel(data)
}

// renderTimerSummary is the compact timer shown beside list tabs.
func (m Model) renderTimerSummary(st model.AppState) string {
	if m.Focus.Idle() {
		return fmt.Sprintf("timer: idle | %d ⚡ | %d XP", st.Energy, st.XP)
	}
	return m.renderTimer(st)
}

func (m Model) renderTasks(st model.AppState) string {
	done := 0
	for _, t := range st.Tasks {
		if t.IsCompleted {
			done++
		}
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		ListView: m.taskList.View(),
		Open:     len(st.Tasks) - done,
		Done:     done,
	})
}

func (m Model) renderHabits(st model.AppState) string {
	today := model.DateOf(m.now())
	items := make([]views.HabitItemData, 0, len(st.Habits))
	for _, h := range st.Habits {
		items = append(items, views.HabitItemData{
			Icon:        h.Icon,
			Name:        h.Name,
			Streak:      h.Streak,
			DoneToday:   h.CheckedInOn(today),
			LastCheckIn: h.LastCheckIn,
		})
	}
	return views.RenderHabitsPanel(views.HabitsPanelData{
		Today:  today,
		Items:  items,
		Cursor: clampCursor(m.Cursors[model.TabHabits], len(items)),
	})
}

func (m Model) renderStats(st model.AppState) string {
	days := MinutesPerDay(st.Sessions, m.now(), 7)
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Minutes)
	}
	dayBars := make([]views.BarData, 0, len(days))
	for _, d := range days {
		label := d.Day
		if t, err := model.ParseDate(d.Day); err == nil {
			label = t.Format("Mon 01-02")
		}
		dayBars = append(dayBars, views.BarData{Label: label, Bar: textBar(d.Minutes, peak, statsBarWidth), Minutes: d.Minutes})
	}

	tags := MinutesPerTag(st.Sessions)
	tagPeak := 0
	if len(tags) > 0 {
		tagPeak = tags[0].Minutes
	}
	tagBars := make([]views.BarData, 0, len(tags))
	for _, t := range tags {
		label := t.Tag
		if label == "" {
			label = "(none)"
		}
		tagBars = append(tagBars, views.BarData{Label: label, Bar: textBar(t.Minutes, tagPeak, statsBarWidth), Minutes: t.Minutes})
	}

	totals := Totals(st.Sessions)
	return views.RenderStatsPanel(views.StatsPanelData{
		Days:         dayBars,
		Tags:         tagBars,
		Completed:    totals.Completed,
		Abandoned:    totals.Abandoned,
		FocusMinutes: totals.FocusMinutes,
		Longest:      totals.LongestMinutes,
	})
}

func (m Model) renderShop(st model.AppState) string {
	unused := 0
	for _, item := range st.Inventory {
		if item.Status == model.InventoryUnused {
			unused++
		}
	}
	return views.RenderShopPanel(views.ShopPanelData{
		Energy:         st.Energy,
		ShopView:       m.shopTable.View(),
		InventoryView:  m.inventoryTable.View(),
		UnusedCount:    unused,
		InventoryCount: len(st.Inventory),
	})
}

func (m Model) renderRank(st model.AppState) string {
	cur := rewards.CalculateRank(st.XP)
	next, hasNext := rewards.NextRank(st.XP)
	return views.RenderRankPanel(views.RankPanelData{
		Icon:         cur.Icon,
		Name:         cur.Name,
		Color:        cur.Color,
		XP:           st.XP,
		NextName:     next.Name,
		NextXP:       next.MinXP,
		HasNext:      hasNext,
		ProgressView: m.rankProgress.ViewAs(float64(rewards.RankProgress(st.XP)) / 100),
		Percent:      rewards.RankProgress(st.XP),
	})
}

func (m Model) renderSettings(st model.AppState) string {
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Username:  st.User.Username,
		Avatar:    st.User.Avatar,
		JoinedAt:  st.User.JoinedAt.Local().Format("2006-01-02 15:04"),
		Theme:     string(st.Theme),
		Strict:    st.StrictMode,
		BlurLevel: st.BlurLevel,
		BgImage:   st.BgImage,
		ReadOnly:  m.Store.ReadOnly(),
	})
}

func (m Model) renderMuseum(st model.AppState) (string, string) {
	items := make([]views.ArtifactData, 0, len(st.Artifacts))
	for _, a := range st.Artifacts {
		items = append(items, artifactData(a))
	}
	cursor := clampCursor(m.Cursors[model.TabMuseum], len(items))
	left := views.RenderMuseumPanel(views.MuseumPanelData{Items: items, Cursor: cursor})
	if len(items) == 0 {
		return left, ""
	}
	return left, views.RenderArtifactDetail(items[cursor])
}

func artifactData(a model.Artifact) views.ArtifactData {
	return views.ArtifactData{
		Name:        a.Name,
		Description: a.Description,
		Rarity:      string(a.Rarity),
		Color:       rewards.RarityColor(a.Rarity),
		Depth:       a.SourceDepth,
		FoundAt:     a.FoundAt().Local().Format("2006-01-02 15:04"),
	}
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}
