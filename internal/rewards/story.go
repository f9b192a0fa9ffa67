package rewards

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type FragmentType string

const (
	FragmentLog         FragmentType = "log"
	FragmentChat        FragmentType = "chat"
	FragmentImageDesc   FragmentType = "image_desc"
	FragmentAudioLog    FragmentType = "audio_log"
	FragmentCode        FragmentType = "code"
	FragmentSecret      FragmentType = "secret"
	FragmentGlitch      FragmentType = "glitch"
	FragmentSystemNoise FragmentType = "system_noise"
)

type Fragment struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	MinXP      int          `json:"minXP"`
	Type       FragmentType `json:"type"`
	Content    string       `json:"content"`
	Procedural bool         `json:"isProcedural,omitempty"`
}

const (
	FillerInterval  = 250
	fillerProximity = 100
)

var fillerMessages = []string{
	"Background scan {pct}% complete. Nothing unusual in sector {sector}.",
	"Cooling fans spun up in sector {sector}. Load at {pct}%.",
	"Packet loss on the archive bus: {pct}%. Retrying.",
	"Routine defragmentation of sector {sector}.",
	"Heartbeat received. Sector {sector} reports {pct}% integrity.",
	"Dust filter in sector {sector} replaced. Airflow at {pct}%.",
	"Index rebuild paused at {pct}%.",
	"A door closed somewhere in sector {sector}.",
	"Signal-to-noise ratio holding at {pct}%.",
	"Clock drift corrected. Sector {sector} is back in sync.",
	"Operator presence confirmed. Attention buffer {pct}% full.",
	"No new messages. Sector {sector} is quiet.",
}

//go:embed data/fragments.json
var fragmentsJSON []byte

// Library holds the handcrafted fragments sorted by MinXP and the templates
// used for procedural filler between them.
type Library struct {
	fragments []Fragment
	fillers   []string
}

func NewLibrary(fragments []Fragment, fillers []string) *Library {
	sorted := append([]Fragment(nil), fragments...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinXP < sorted[j].MinXP })
	return &Library{fragments: sorted, fillers: append([]string(nil), fillers...)}
}

var defaultLibrary = mustLoadLibrary(fragmentsJSON)

func mustLoadLibrary(raw []byte) *Library {
	var fragments []Fragment
	if err := json.Unmarshal(raw, &fragments); err != nil {
		panic(fmt.Sprintf("rewards: embedded fragments: %v", err))
	}
	return NewLibrary(fragments, fillerMessages)
}

func DefaultLibrary() *Library {
	return defaultLibrary
}

func (l *Library) Fragments() []Fragment {
	return append([]Fragment(nil), l.fragments...)
}

// ForXP returns every fragment unlocked at xp: handcrafted entries with a
// threshold at or below xp, plus filler at each FillerInterval checkpoint up
// to xp that has no handcrafted entry within 100 XP. Filler is a pure
// function of its checkpoint, so results only grow as xp grows.
func (l *Library) ForXP(xp int) []Fragment {
	var out []Fragment
	for _, f := range l.fragments {
		if f.MinXP <= xp {
			out = append(out, f)
		}
	}
	if len(l.fillers) > 0 {
		for cp := FillerInterval; cp <= xp; cp += FillerInterval {
			if l.nearHandcrafted(cp) {
				continue
			}
			out = append(out, l.filler(cp))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MinXP < out[j].MinXP })
	return out
}

// nearHandcrafted checks every handcrafted fragment, locked or not, rather
// than only the unlocked ones, so a checkpoint's filler never disappears once
// a nearby fragment unlocks.
func (l *Library) nearHandcrafted(checkpoint int) bool {
	for _, f := range l.fragments {
		d := f.MinXP - checkpoint
		if d < 0 {
			d = -d
		}
		if d < fillerProximity {
			return true
		}
	}
	return false
}

func (l *Library) filler(checkpoint int) Fragment {
	text := l.fillers[checkpoint%len(l.fillers)]
	text = strings.NewReplacer(
		"{pct}", strconv.Itoa(checkpoint%100),
		"{sector}", strconv.Itoa(checkpoint/1000),
	).Replace(text)
	return Fragment{
		ID:         "SYS-" + strconv.Itoa(checkpoint),
		Title:      "System noise",
		MinXP:      checkpoint,
		Type:       FragmentSystemNoise,
		Content:    "> " + text,
		Procedural: true,
	}
}

// GetFragmentsForXP reads from the built-in library.
func GetFragmentsForXP(xp int) []Fragment {
	return defaultLibrary.ForXP(xp)
}
