package model

import "time"

// DateLayout is the calendar-day format used for check-ins and due dates.
const DateLayout = "2006-01-02"

func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// Yesterday returns the calendar day before t in t's location.
func Yesterday(t time.Time) string {
	return DateOf(t.AddDate(0, 0, -1))
}
