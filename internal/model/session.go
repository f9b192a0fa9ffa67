package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidSessionStatus = errors.New("model: invalid session status")
	ErrInvalidSessionMode   = errors.New("model: invalid session mode")
)

type SessionStatus string

const (
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionCompleted, SessionAbandoned:
		return true
	default:
		return false
	}
}

type SessionMode string

const (
	ModeCountdown SessionMode = "countdown"
	ModeStopwatch SessionMode = "stopwatch"
)

func (m SessionMode) IsValid() bool {
	switch m {
	case ModeCountdown, ModeStopwatch:
		return true
	default:
		return false
	}
}

// SessionLog is one finished focus session. Logs are never edited after they
// are appended.
type SessionLog struct {
	ID              string        `json:"id"`
	StartTime       time.Time     `json:"startTime"`
	EndTime         time.Time     `json:"endTime"`
	DurationMinutes int           `json:"durationMinutes"`
	Tag             string        `json:"tag"`
	Note            string        `json:"note,omitempty"`
	Status          SessionStatus `json:"status"`
	Mode            SessionMode   `json:"mode"`
}

func (s SessionLog) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: session id is required")
	}
	if s.DurationMinutes < 0 {
		return errors.New("model: session duration must not be negative")
	}
	if !s.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSessionStatus, s.Status)
	}
	if !s.Mode.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSessionMode, s.Mode)
	}
	if !s.StartTime.IsZero() && !s.EndTime.IsZero() && s.EndTime.Before(s.StartTime) {
		return errors.New("model: session end_time is before start_time")
	}
	return nil
}
