package rewards

import "github.com/sandeepkv93/studyquest/internal/model"

var rarityColors = map[model.Rarity]string{
	model.RarityCommon:    "#94a3b8",
	model.RarityRare:      "#3b82f6",
	model.RarityEpic:      "#a855f7",
	model.RarityLegendary: "#eab308",
	model.RarityGlitched:  "#ef4444",
}

// RarityColor returns the display colour for r, Common's for unknown values.
func RarityColor(r model.Rarity) string {
	if c, ok := rarityColors[r]; ok {
		return c
	}
	return rarityColors[model.RarityCommon]
}
