package update

import (
	"fmt"
	"strings"
	"time"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

// formatClock renders a duration as MM:SS, or H:MM:SS past an hour.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, mins, sec := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, sec)
	}
	return fmt.Sprintf("%02d:%02d", mins, sec)
}

// textBar scales value against peak into a fixed-width bar of block runes.
func textBar(value, peak, width int) string {
	if peak <= 0 || value <= 0 {
		return strings.Repeat("·", width)
	}
	filled := value * width / peak
	if filled == 0 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("·", width-filled)
}
