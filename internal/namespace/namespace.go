// Package namespace maps display names to per-user save file identifiers.
package namespace

import "strings"

const (
	FilePrefix = "StudyQuest_"
	FileSuffix = ".json"
)

// Sanitize replaces every rune that is not an ASCII letter, digit, underscore
// or CJK unified ideograph (U+4E00..U+9FA5) with an underscore.
func Sanitize(username string) string {
	var b strings.Builder
	b.Grow(len(username))
	for _, r := range username {
		if keep(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ResolveFileID returns the save file name for username.
func ResolveFileID(username string) string {
	return FilePrefix + Sanitize(username) + FileSuffix
}

func keep(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case r >= 0x4e00 && r <= 0x9fa5:
		return true
	default:
		return false
	}
}
