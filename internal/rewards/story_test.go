package rewards

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragmentIDs(fs []Fragment) []string {
	ids := make([]string, 0, len(fs))
	for _, f := range fs {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestEmbeddedFragmentsAreWellFormed(t *testing.T) {
	fs := DefaultLibrary().Fragments()
	require.NotEmpty(t, fs)
	assert.Equal(t, 0, fs[0].MinXP)

	seen := map[string]bool{}
	for _, f := range fs {
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
		assert.NotEmpty(t, f.Content, f.ID)
		assert.NotEqual(t, FragmentSystemNoise, f.Type, f.ID)
		assert.False(t, f.Procedural, f.ID)
	}
}

func TestGetFragmentsForXPAtZero(t *testing.T) {
	got := GetFragmentsForXP(0)
	assert.Equal(t, []string{"LOG-000"}, fragmentIDs(got))
}

func TestGetFragmentsForXPAddsFillerBetweenEntries(t *testing.T) {
	got := GetFragmentsForXP(260)
	require.Equal(t, []string{"LOG-000", "LOG-001", "SYS-250"}, fragmentIDs(got))

	filler := got[2]
	assert.True(t, filler.Procedural)
	assert.Equal(t, FragmentSystemNoise, filler.Type)
	assert.Equal(t, 250, filler.MinXP)
	assert.Equal(t, "> Operator presence confirmed. Attention buffer 50% full.", filler.Content)
}

func TestFillerSkippedNearHandcraftedEntry(t *testing.T) {
	lib := NewLibrary([]Fragment{
		{ID: "A", MinXP: 0, Type: FragmentLog, Content: "a"},
		{ID: "B", MinXP: 200, Type: FragmentLog, Content: "b"},
	}, []string{"noise {pct} {sector}"})

	assert.Equal(t, []string{"A", "B"}, fragmentIDs(lib.ForXP(260)))

	got := lib.ForXP(1000)
	assert.Equal(t, []string{"A", "B", "SYS-500", "SYS-750", "SYS-1000"}, fragmentIDs(got))
	assert.Equal(t, "> noise 0 1", got[4].Content)
}

func TestGetFragmentsForXPIsSortedAndMonotonic(t *testing.T) {
	prev := map[string]bool{}
	for xp := 0; xp <= 21000; xp += 137 {
		got := GetFragmentsForXP(xp)
		assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].MinXP < got[j].MinXP }), "xp=%d", xp)

		cur := map[string]bool{}
		for _, f := range got {
			assert.LessOrEqual(t, f.MinXP, xp)
			cur[f.ID] = true
		}
		for id := range prev {
			require.True(t, cur[id], "fragment %s vanished at xp=%d", id, xp)
		}
		prev = cur
	}
}

func TestFillerContentHasNoPlaceholders(t *testing.T) {
	for _, f := range GetFragmentsForXP(20000) {
		if f.Procedural {
			assert.True(t, strings.HasPrefix(f.Content, "> "), f.ID)
			assert.NotContains(t, f.Content, "{", f.ID)
		}
	}
}
