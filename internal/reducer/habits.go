package reducer

import (
	"strings"

	"github.com/sandeepkv93/studyquest/internal/model"
)

const (
	CheckInEnergy = 20
	CheckInXP     = 50
)

func habitID(h model.Habit) string { return h.ID }

func AddHabit(s model.AppState, env Env, name, icon string) model.AppState {
	name = strings.TrimSpace(name)
	if name == "" {
		return s
	}
	if strings.TrimSpace(icon) == "" {
		icon = model.DefaultHabitIcon
	}
	habit := model.Habit{
		ID:      env.uniqueID(hasID(s.Habits, habitID)),
		Name:    name,
		Icon:    icon,
		History: []string{},
	}
	s.Habits = append(append([]model.Habit(nil), s.Habits...), habit)
	return s
}

func DeleteHabit(s model.AppState, id string) model.AppState {
	i := indexOf(s.Habits, habitID, id)
	if i < 0 {
		return s
	}
	s.Habits = without(s.Habits, i)
	return s
}

// CheckInHabit marks the habit done for today's calendar day. A second
// check-in on the same day changes nothing. The streak continues only when
// the previous check-in was yesterday. The bool reports whether anything was
// credited.
func CheckInHabit(s model.AppState, env Env, id string) (model.AppState, bool) {
	i := indexOf(s.Habits, habitID, id)
	if i < 0 {
		return s, false
	}
	now := env.now()
	today := model.DateOf(now)
	habit := s.Habits[i]
	if habit.CheckedInOn(today) {
		return s, false
	}
	if habit.LastCheckIn == model.Yesterday(now) {
		habit.Streak++
	} else {
		habit.Streak = 1
	}
	habit.LastCheckIn = today
	habit.History = append(append([]string{}, habit.History...), today)

	s.Habits = replaced(s.Habits, i, habit)
	s.Energy += CheckInEnergy
	s.XP += CheckInXP
	return s, true
}
