package rewards

import (
	"testing"
	"time"

	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays a fixed sequence of draws.
type scripted struct {
	vals []float64
	i    int
}

func (s *scripted) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func fixedDigger(draws ...float64) *Digger {
	return NewDigger(&scripted{vals: draws},
		WithClock(func() time.Time { return time.UnixMilli(1_700_000_000_000) }),
		WithIDs(func() string { return "ART-test" }),
	)
}

func TestDropTableV1IsValid(t *testing.T) {
	require.NoError(t, DropTableV1.Validate())
	assert.Equal(t, 1, DropTableV1.Version)
}

func TestDropTableValidateRejectsBadTables(t *testing.T) {
	bad := DropTable{Tiers: []Tier{{MinMinutes: 5}}}
	assert.Error(t, bad.Validate())

	unordered := DropTable{Tiers: []Tier{{MinMinutes: 0, Cuts: []Cut{{0.5, model.RarityRare}, {0.9, model.RarityEpic}}}}}
	assert.Error(t, unordered.Validate())
}

func TestRollRarityUsesTierForMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		roll    float64
		want    model.Rarity
	}{
		{minutes: 10, roll: 0.99, want: model.RarityLegendary},
		{minutes: 10, roll: 0.95, want: model.RarityEpic},
		{minutes: 10, roll: 0.70, want: model.RarityCommon},
		{minutes: 30, roll: 0.95, want: model.RarityEpic},
		{minutes: 30, roll: 0.61, want: model.RarityRare},
		{minutes: 45, roll: 0.95, want: model.RarityLegendary},
		{minutes: 67, roll: 0.41, want: model.RarityRare},
		{minutes: 67, roll: 0.40, want: model.RarityCommon},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DropTableV1.RollRarity(tt.minutes, tt.roll), "minutes=%d roll=%v", tt.minutes, tt.roll)
	}
}

func TestDropChanceClamps(t *testing.T) {
	assert.Equal(t, 0.0, DropTableV1.DropChance(0))
	assert.Equal(t, 0.0, DropTableV1.DropChance(-5))
	assert.InDelta(t, 0.375, DropTableV1.DropChance(25), 1e-9)
	assert.Equal(t, 1.0, DropTableV1.DropChance(67))
}

func TestDigLongSessionAlwaysDrops(t *testing.T) {
	d := fixedDigger(0.5, 0.95, 0.5, 0, 0, 0)
	a, ok := d.Dig(67)
	require.True(t, ok)
	assert.Equal(t, model.RarityLegendary, a.Rarity)
	assert.Equal(t, "Forgotten Coffee Mug", a.Name)
	assert.Equal(t, DefaultWords.Descriptions[0], a.Description)
	assert.Equal(t, 67, a.SourceDepth)
	assert.Equal(t, int64(1_700_000_000_000), a.Timestamp)
	assert.Equal(t, "ART-test", a.ID)
	require.NoError(t, a.Validate())
}

func TestDigGlitchOverridesRarity(t *testing.T) {
	d := fixedDigger(0.1, 0.99, 0.005, 0.999, 0.999, 0.999)
	a, ok := d.Dig(60)
	require.True(t, ok)
	assert.Equal(t, model.RarityGlitched, a.Rarity)
	assert.Equal(t, "Low-Poly LED", a.Name)
}

func TestDigMissesWhenDrawExceedsChance(t *testing.T) {
	d := fixedDigger(0.2)
	_, ok := d.Dig(10) // chance 0.15
	assert.False(t, ok)
}

func TestDigZeroMinutesNeverDrops(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		_, ok := NewSeededDigger(seed).Dig(0)
		require.False(t, ok, "seed %d", seed)
	}
	_, ok := DigForArtifact(0)
	assert.False(t, ok)
}

func TestSeededDiggerIsDeterministic(t *testing.T) {
	ids := func() string { return "x" }
	a := NewSeededDigger(42, WithIDs(ids))
	b := NewSeededDigger(42, WithIDs(ids))
	for i := 0; i < 50; i++ {
		x, okX := a.Dig(30)
		y, okY := b.Dig(30)
		require.Equal(t, okX, okY)
		require.Equal(t, x.Name, y.Name)
		require.Equal(t, x.Rarity, y.Rarity)
	}
}

func TestRarityColor(t *testing.T) {
	assert.Equal(t, "#eab308", RarityColor(model.RarityLegendary))
	assert.Equal(t, "#94a3b8", RarityColor(model.Rarity("Mythic")))
}
