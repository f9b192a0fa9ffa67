package update

import (
	"sort"
	"time"

	"github.com/sandeepkv93/studyquest/internal/model"
)

type DayMinutes struct {
	Day     string
	Minutes int
}

type TagMinutes struct {
	Tag     string
	Minutes int
}

type SessionTotals struct {
	Completed      int
	Abandoned      int
	FocusMinutes   int
	LongestMinutes int
}

// MinutesPerDay sums completed focus minutes for each of the last days
// calendar days ending at now, oldest first.
func MinutesPerDay(sessions []model.SessionLog, now time.Time, days int) []DayMinutes {
	if days <= 0 {
		return nil
	}
	byDay := make(map[string]int)
	for _, s := range completedOnly(sessions) {
		byDay[model.DateOf(s.StartTime.In(now.Location()))] += s.DurationMinutes
	}
	out := make([]DayMinutes, days)
	for i := 0; i < days; i++ {
		day := model.DateOf(now.AddDate(0, 0, i-days+1))
		out[i] = DayMinutes{Day: day, Minutes: byDay[day]}
	}
	return out
}

// MinutesPerMonth sums completed focus minutes per month of year, January
// first.
func MinutesPerMonth(sessions []model.SessionLog, year int, loc *time.Location) [12]int {
	var out [12]int
	for _, s := range completedOnly(sessions) {
		t := s.StartTime.In(loc)
		if t.Year() == year {
			out[t.Month()-1] += s.DurationMinutes
		}
	}
	return out
}

// MinutesPerTag sums completed focus minutes per tag, largest first and by
// name on ties.
func MinutesPerTag(sessions []model.SessionLog) []TagMinutes {
	byTag := make(map[string]int)
	for _, s := range completedOnly(sessions) {
		byTag[s.Tag] += s.DurationMinutes
	}
	out := make([]TagMinutes, 0, len(byTag))
	for tag, mins := range byTag {
		out = append(out, TagMinutes{Tag: tag, Minutes: mins})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

func Totals(sessions []model.SessionLog) SessionTotals {
	var t SessionTotals
	for _, s := range sessions {
		if s.Status != model.SessionCompleted {
			t.Abandoned++
			continue
		}
		t.Completed++
		t.FocusMinutes += s.DurationMinutes
		t.LongestMinutes = max(t.LongestMinutes, s.DurationMinutes)
	}
	return t
}

func completedOnly(sessions []model.SessionLog) []model.SessionLog {
	out := make([]model.SessionLog, 0, len(sessions))
	for _, s := range sessions {
		if s.Status == model.SessionCompleted {
			out = append(out, s)
		}
	}
	return out
}
