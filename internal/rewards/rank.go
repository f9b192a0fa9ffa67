package rewards

import "sort"

type Rank struct {
	MinXP int
	Name  string
	Icon  string
	Color string
}

// Ranks is ordered by MinXP and starts at zero.
var Ranks = []Rank{
	{MinXP: 0, Name: "Iron Initiate", Icon: "⛓️", Color: "8"},
	{MinXP: 500, Name: "Bronze Scholar", Icon: "🥉", Color: "130"},
	{MinXP: 1500, Name: "Silver Seeker", Icon: "🥈", Color: "250"},
	{MinXP: 3500, Name: "Gold Adept", Icon: "🥇", Color: "220"},
	{MinXP: 7000, Name: "Platinum Sage", Icon: "💠", Color: "45"},
	{MinXP: 12000, Name: "Diamond Mind", Icon: "💎", Color: "39"},
	{MinXP: 20000, Name: "Master of Focus", Icon: "👑", Color: "171"},
	{MinXP: 35000, Name: "Icebreaker", Icon: "🏆", Color: "196"},
}

func rankIndex(xp int) int {
	// First rank whose threshold is above xp, minus one.
	i := sort.Search(len(Ranks), func(i int) bool { return Ranks[i].MinXP > xp })
	if i == 0 {
		return 0
	}
	return i - 1
}

// CalculateRank returns the highest rank whose threshold is at most xp.
func CalculateRank(xp int) Rank {
	return Ranks[rankIndex(xp)]
}

func NextRank(xp int) (Rank, bool) {
	i := rankIndex(xp) + 1
	if i >= len(Ranks) {
		return Rank{}, false
	}
	return Ranks[i], true
}

// RankProgress is the percentage of the way from the current rank to the next
// one, 100 at the top rank.
func RankProgress(xp int) int {
	cur := CalculateRank(xp)
	next, ok := NextRank(xp)
	if !ok {
		return 100
	}
	span := next.MinXP - cur.MinXP
	done := xp - cur.MinXP
	if done < 0 {
		done = 0
	}
	pct := done * 100 / span
	if pct > 100 {
		pct = 100
	}
	return pct
}
