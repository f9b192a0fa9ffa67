package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidRarity = errors.New("model: invalid artifact rarity")

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityGlitched  Rarity = "Glitched"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityGlitched:
		return true
	default:
		return false
	}
}

// Artifact is a collectible rolled from a focus session. Timestamp is unix
// milliseconds; SourceDepth is the session length in minutes.
type Artifact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
	Timestamp   int64  `json:"timestamp"`
	SourceDepth int    `json:"sourceDepth"`
}

func (a Artifact) FoundAt() time.Time {
	return time.UnixMilli(a.Timestamp)
}

func (a Artifact) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: artifact id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("model: artifact name is required")
	}
	if !a.Rarity.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRarity, a.Rarity)
	}
	if a.SourceDepth < 0 {
		return errors.New("model: artifact source depth must not be negative")
	}
	return nil
}
