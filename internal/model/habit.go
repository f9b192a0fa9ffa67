package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Habit struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Streak      int      `json:"streak"`
	LastCheckIn string   `json:"lastCheckIn"`
	History     []string `json:"history"`
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("model: habit name is required")
	}
	if h.Streak < 0 {
		return errors.New("model: habit streak must not be negative")
	}
	if h.LastCheckIn != "" && !IsValidDate(h.LastCheckIn) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, h.LastCheckIn)
	}
	for _, day := range h.History {
		if !IsValidDate(day) {
			return fmt.Errorf("%w: %q", ErrInvalidDate, day)
		}
	}
	return nil
}

func (h Habit) CheckedInOn(day string) bool {
	return h.LastCheckIn == day
}

// SortedHistory returns the check-in days in chronological order.
func (h Habit) SortedHistory() []string {
	out := append([]string(nil), h.History...)
	sort.Strings(out)
	return out
}
