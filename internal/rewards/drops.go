package rewards

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/studyquest/internal/model"
)

// Cut promotes a rarity roll strictly above Above to Rarity.
type Cut struct {
	Above  float64
	Rarity model.Rarity
}

// Tier applies to sessions of at least MinMinutes. Cuts are checked in order,
// so they must be sorted by Above, highest first. Rolls below every cut are
// Common.
type Tier struct {
	MinMinutes int
	Cuts       []Cut
}

type DropTable struct {
	Version         int
	ChancePerMinute float64
	GlitchChance    float64
	// Tiers is sorted by MinMinutes; the first tier starts at zero.
	Tiers []Tier
}

var DropTableV1 = DropTable{
	Version:         1,
	ChancePerMinute: 0.015,
	GlitchChance:    0.01,
	Tiers: []Tier{
		{MinMinutes: 0, Cuts: []Cut{{0.98, model.RarityLegendary}, {0.90, model.RarityEpic}, {0.70, model.RarityRare}}},
		{MinMinutes: 25, Cuts: []Cut{{0.95, model.RarityLegendary}, {0.85, model.RarityEpic}, {0.60, model.RarityRare}}},
		{MinMinutes: 45, Cuts: []Cut{{0.90, model.RarityLegendary}, {0.70, model.RarityEpic}, {0.40, model.RarityRare}}},
	},
}

func (t DropTable) Validate() error {
	if len(t.Tiers) == 0 || t.Tiers[0].MinMinutes != 0 {
		return errors.New("rewards: first drop tier must start at zero minutes")
	}
	for i, tier := range t.Tiers {
		if i > 0 && tier.MinMinutes <= t.Tiers[i-1].MinMinutes {
			return fmt.Errorf("rewards: drop tiers out of order at %d minutes", tier.MinMinutes)
		}
		for j, cut := range tier.Cuts {
			if !cut.Rarity.IsValid() {
				return fmt.Errorf("%w: %q", model.ErrInvalidRarity, cut.Rarity)
			}
			if j > 0 && cut.Above >= tier.Cuts[j-1].Above {
				return fmt.Errorf("rewards: cuts of tier %d are not descending", tier.MinMinutes)
			}
		}
	}
	if t.ChancePerMinute < 0 || t.GlitchChance < 0 || t.GlitchChance > 1 {
		return errors.New("rewards: drop chances out of range")
	}
	return nil
}

// DropChance is the probability that a session of the given length drops
// anything at all.
func (t DropTable) DropChance(minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	p := float64(minutes) * t.ChancePerMinute
	if p > 1 {
		return 1
	}
	return p
}

func (t DropTable) TierFor(minutes int) Tier {
	tier := t.Tiers[0]
	for _, candidate := range t.Tiers[1:] {
		if minutes < candidate.MinMinutes {
			break
		}
		tier = candidate
	}
	return tier
}

// RollRarity maps a uniform draw r in [0,1) to a rarity for the tier that
// covers minutes. The glitch override is applied separately.
func (t DropTable) RollRarity(minutes int, r float64) model.Rarity {
	for _, cut := range t.TierFor(minutes).Cuts {
		if r > cut.Above {
			return cut.Rarity
		}
	}
	return model.RarityCommon
}

// Rand is the part of *rand.Rand the digger draws from.
type Rand interface {
	Float64() float64
}

type Digger struct {
	mu    sync.Mutex
	rng   Rand
	table DropTable
	words WordLists
	now   func() time.Time
	newID func() string
}

type DiggerOption func(*Digger)

func WithDropTable(t DropTable) DiggerOption {
	return func(d *Digger) { d.table = t }
}

func WithWords(w WordLists) DiggerOption {
	return func(d *Digger) { d.words = w }
}

func WithClock(now func() time.Time) DiggerOption {
	return func(d *Digger) { d.now = now }
}

func WithIDs(newID func() string) DiggerOption {
	return func(d *Digger) { d.newID = newID }
}

func NewDigger(rng Rand, opts ...DiggerOption) *Digger {
	d := &Digger{
		rng:   rng,
		table: DropTableV1,
		words: DefaultWords,
		now:   time.Now,
		newID: func() string { return "ART-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewSeededDigger uses math/rand seeded with seed, or the clock when seed is 0.
func NewSeededDigger(seed int64, opts ...DiggerOption) *Digger {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewDigger(rand.New(rand.NewSource(seed)), opts...)
}

func (d *Digger) Table() DropTable {
	return d.table
}

// Dig rolls for an artifact from a session of focusMinutes. The second return
// value is false when nothing dropped.
func (d *Digger) Dig(focusMinutes int) (model.Artifact, bool) {
	if focusMinutes < 0 {
		focusMinutes = 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rng.Float64() >= d.table.DropChance(focusMinutes) {
		return model.Artifact{}, false
	}
	rarity := d.table.RollRarity(focusMinutes, d.rng.Float64())
	if d.rng.Float64() < d.table.GlitchChance {
		rarity = model.RarityGlitched
	}

	prefix := pick(d.rng, d.words.Prefixes)
	noun := pick(d.rng, d.words.Nouns)
	desc := pick(d.rng, d.words.Descriptions)
	return model.Artifact{
		ID:          d.newID(),
		Name:        prefix + " " + noun,
		Description: desc,
		Rarity:      rarity,
		Timestamp:   d.now().UnixMilli(),
		SourceDepth: focusMinutes,
	}, true
}

func pick(rng Rand, list []string) string {
	if len(list) == 0 {
		return ""
	}
	i := int(rng.Float64() * float64(len(list)))
	if i >= len(list) {
		i = len(list) - 1
	}
	return list[i]
}

var (
	defaultDiggerOnce sync.Once
	defaultDigger     *Digger
)

// DigForArtifact rolls with a process-wide digger seeded from the clock.
func DigForArtifact(focusMinutes int) (model.Artifact, bool) {
	defaultDiggerOnce.Do(func() { defaultDigger = NewSeededDigger(0) })
	return defaultDigger.Dig(focusMinutes)
}
