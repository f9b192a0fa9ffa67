package store

import (
	"errors"
	"math"
	"testing"

	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWritesVersionedEnvelope(t *testing.T) {
	data, err := Encode(model.DefaultState())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":1`)
	assert.Contains(t, string(data), `"customTags":[`)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want error
	}{
		{name: "not json", blob: "{", want: ErrMalformedSave},
		{name: "array", blob: "[1,2]", want: ErrMalformedSave},
		{name: "missing state", blob: `{"version":1}`, want: ErrMalformedSave},
		{name: "state is a string", blob: `{"state":"x"}`, want: ErrMalformedSave},
		{name: "version is text", blob: `{"state":{},"version":"one"}`, want: ErrMalformedSave},
		{name: "newer version", blob: `{"state":{},"version":2}`, want: ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.blob))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecodeAcceptsLegacyEnvelope(t *testing.T) {
	for _, blob := range []string{`{"state":{"xp":5}}`, `{"state":{"xp":5},"version":0}`, `{"state":{"xp":5},"version":null}`} {
		st, err := Decode([]byte(blob))
		require.NoError(t, err, blob)
		assert.Equal(t, 5, st.XP)
	}
}

func TestDecodeKeepsLargeCounts(t *testing.T) {
	st, err := Decode([]byte(`{"version":1,"state":{"xp":5000000000,"energy":1e30}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000_000), int64(st.XP))
	assert.Equal(t, math.MaxInt, st.Energy)
}

func TestDecodeFallsBackPerField(t *testing.T) {
	blob := `{"version":1,"state":{
		"energy": -4,
		"xp": 12.9,
		"theme": "vaporwave",
		"activeTab": "shop",
		"blurLevel": 300,
		"strictMode": "yes",
		"tasks": [
			{"id":"t1","title":"ok","priority":"high","createdAt":"2024-01-01T10:00:00.000Z"},
			{"id":"t1","title":"duplicate","priority":"low","createdAt":"2024-01-01T10:00:00.000Z"},
			{"id":"t2","title":"","priority":"high","createdAt":"2024-01-01T10:00:00.000Z"},
			{"id":"t3","title":"bad priority","priority":"urgent","createdAt":"2024-01-01T10:00:00.000Z"},
			"garbage"
		],
		"sessions": {"not":"a list"},
		"habits": null,
		"customTags": [{"name":"Deep","color":"#123456"},{"name":"NoColor","color":"blue"}]
	}}`
	st, err := Decode([]byte(blob))
	require.NoError(t, err)

	assert.Equal(t, 0, st.Energy)
	assert.Equal(t, 12, st.XP)
	assert.Equal(t, model.ThemeDefault, st.Theme)
	assert.Equal(t, model.TabShop, st.ActiveTab)
	assert.Equal(t, model.MaxBlurLevel, st.BlurLevel)
	assert.False(t, st.StrictMode)

	require.Len(t, st.Tasks, 1)
	assert.Equal(t, "ok", st.Tasks[0].Title)
	assert.Empty(t, st.Sessions)
	assert.Equal(t, model.DefaultHabits(), st.Habits)
	assert.Equal(t, []model.Tag{{Name: "Deep", Color: "#123456"}}, st.Tags)
	require.NoError(t, st.Validate())
}

func TestDecodeReadsOriginalTimestamps(t *testing.T) {
	blob := `{"version":1,"state":{
		"user":{"username":"Alice","avatar":"","isLoggedIn":true,"joinedAt":"2024-01-01T08:30:00.000Z"},
		"sessions":[{"id":"1704100000000","startTime":"2024-01-01T09:00:00.000Z","endTime":"2024-01-01T09:25:00.000Z","durationMinutes":25,"tag":"Work","status":"completed","mode":"countdown"}],
		"habits":[{"id":"1","name":"Early rise","icon":"🌅","streak":2,"lastCheckIn":"2024-01-01","history":["2023-12-31","2024-01-01"]}]
	}}`
	st, err := Decode([]byte(blob))
	require.NoError(t, err)
	assert.Equal(t, "Alice", st.User.Username)
	assert.Equal(t, 2024, st.User.JoinedAt.Year())
	require.Len(t, st.Sessions, 1)
	assert.Equal(t, 25, st.Sessions[0].DurationMinutes)
	require.Len(t, st.Habits, 1)
	assert.Equal(t, 2, st.Habits[0].Streak)
}
