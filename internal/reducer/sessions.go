package reducer

import "github.com/sandeepkv93/studyquest/internal/model"

const (
	XPPerFocusMinute     = 10
	EnergyPerFocusMinute = 1
)

// AddSession records a finished session, newest first. Completed sessions
// credit xp and energy per minute; abandoned ones credit nothing. Logs with
// an unknown status or mode are ignored.
func AddSession(s model.AppState, env Env, log model.SessionLog) model.AppState {
	if !log.Status.IsValid() || !log.Mode.IsValid() {
		return s
	}
	if log.DurationMinutes < 0 {
		log.DurationMinutes = 0
	}
	if log.ID == "" || hasID(s.Sessions, sessionID)(log.ID) {
		log.ID = env.uniqueID(hasID(s.Sessions, sessionID))
	}
	if log.EndTime.IsZero() {
		log.EndTime = env.now()
	}
	if log.StartTime.IsZero() || log.EndTime.Before(log.StartTime) {
		log.StartTime = log.EndTime
	}
	s.Sessions = prepend(s.Sessions, log)
	if log.Status == model.SessionCompleted {
		s.XP += log.DurationMinutes * XPPerFocusMinute
		s.Energy += log.DurationMinutes * EnergyPerFocusMinute
	}
	return s
}

func sessionID(l model.SessionLog) string { return l.ID }
