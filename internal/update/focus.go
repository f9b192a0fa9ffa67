package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/sandeepkv93/studyquest/internal/reducer"
)

// FocusRun describes a timer that has just stopped.
type FocusRun struct {
	Mode          model.SessionMode
	Tag           string
	Note          string
	TargetMinutes int
	Elapsed       time.Duration
	NaturalEnd    bool
	Strict        bool
	MinMinutes    int
	StartedAt     time.Time
	EndedAt       time.Time
}

type FocusOutcome struct {
	Minutes int
	// Record is false when the run was too short or forfeited.
	Record  bool
	Forfeit bool
	Log     model.SessionLog
}

// FinishFocus turns a stopped timer into the session to record. A countdown
// that ran to the end counts its full target; anything else counts whole
// elapsed minutes. Runs shorter than MinMinutes are dropped, and in strict
// mode a countdown stopped early is forfeited.
func FinishFocus(run FocusRun) FocusOutcome {
	minutes := int(run.Elapsed / time.Minute)
	if run.Mode == model.ModeCountdown && run.NaturalEnd {
		minutes = run.TargetMinutes
	}
	out := FocusOutcome{Minutes: minutes}
	if minutes < run.MinMinutes {
		return out
	}
	early := run.Mode == model.ModeCountdown && !run.NaturalEnd
	if early && run.Strict {
		out.Forfeit = true
		return out
	}

	status := model.SessionCompleted
	if early {
		status = model.SessionAbandoned
	}
	out.Record = true
	out.Log = model.SessionLog{
		StartTime:       run.StartedAt,
		EndTime:         run.EndedAt,
		DurationMinutes: minutes,
		Tag:             run.Tag,
		Note:            run.Note,
		Status:          status,
		Mode:            run.Mode,
	}
	return out
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Focus.Running {
			m.Focus.Running = false
			m.Status = StatusBar{Text: "focus paused"}
			return m, nil
		}
		if m.Focus.Idle() {
			m.Focus.StartedAt = m.now()
			m.Focus.Elapsed = 0
		}
		m.Focus.Running = true
		m.Focus.Run++
		m.Status = StatusBar{Text: "focus running"}
		return m, focusTickCmd(m.Focus.Run)
	case "s":
		if m.Focus.Idle() {
			return m, nil
		}
		return m.finishFocus(false), nil
	case "m":
		if m.Focus.Idle() {
			if m.Focus.Mode == model.ModeCountdown {
				m.Focus.Mode = model.ModeStopwatch
			} else {
				m.Focus.Mode = model.ModeCountdown
			}
			m.Status = StatusBar{Text: fmt.Sprintf("mode: %s", m.Focus.Mode)}
		}
		return m, nil
	case "t":
		m.cycleFocusTag()
		return m, nil
	case "+", "=":
		if m.Focus.Idle() {
			m.Focus.TargetMinutes = min(m.Focus.TargetMinutes+5, 180)
		}
		return m, nil
	case "-":
		if m.Focus.Idle() {
			m.Focus.TargetMinutes = max(m.Focus.TargetMinutes-5, 5)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) onFocusTick(msg FocusTickMsg) (Model, tea.Cmd) {
	if !m.Focus.Running || msg.Run != m.Focus.Run {
		return m, nil
	}
	m.Focus.Elapsed += time.Second
	if m.Focus.Mode == model.ModeCountdown && m.Focus.Elapsed >= time.Duration(m.Focus.TargetMinutes)*time.Minute {
		return m.finishFocus(true), nil
	}
	return m, focusTickCmd(m.Focus.Run)
}

func (m *Model) cycleFocusTag() {
	tags := m.Store.Snapshot().Tags
	if len(tags) == 0 {
		m.Focus.Tag = ""
		return
	}
	next := 0
	for i, t := range tags {
		if t.Name == m.Focus.Tag {
			next = (i + 1) % len(tags)
		}
	}
	m.Focus.Tag = tags[next].Name
	m.Status = StatusBar{Text: fmt.Sprintf("tag: %s", m.Focus.Tag)}
}

func (m Model) finishFocus(natural bool) Model {
	st := m.Store.Snapshot()
	out := FinishFocus(FocusRun{
		Mode:          m.Focus.Mode,
		Tag:           m.Focus.Tag,
		TargetMinutes: m.Focus.TargetMinutes,
		Elapsed:       m.Focus.Elapsed,
		NaturalEnd:    natural,
		Strict:        st.StrictMode,
		MinMinutes:    m.Config.MinSessionMinutes,
		StartedAt:     m.Focus.StartedAt,
		EndedAt:       m.now(),
	})
	m.Focus.Running = false
	m.Focus.StartedAt = time.Time{}
	m.Focus.Elapsed = 0

	switch {
	case out.Forfeit:
		m.Status = StatusBar{Text: "strict mode: session forfeited", IsError: true}
	case !out.Record:
		m.Status = StatusBar{Text: fmt.Sprintf("under %d minute(s), not recorded", m.Config.MinSessionMinutes), IsError: true}
	default:
		a, dug := m.Store.RecordSession(out.Log)
		m.mutated()
		if out.Log.Status == model.SessionCompleted {
			m.Status = StatusBar{Text: fmt.Sprintf("+%d XP, +%d energy", out.Minutes*reducer.XPPerFocusMinute, out.Minutes*reducer.EnergyPerFocusMinute)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("stopped early: %d min logged as abandoned", out.Minutes)}
		}
		if dug {
			m.LastArtifact = &a
			m.notify("Artifact", fmt.Sprintf("dug up %s [%s]", a.Name, a.Rarity), "info")
		}
	}
	return m
}

func focusTickCmd(run int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{Run: run} })
}
