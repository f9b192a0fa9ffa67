package rewards

type WordLists struct {
	Prefixes     []string
	Nouns        []string
	Descriptions []string
}

var DefaultWords = WordLists{
	Prefixes: []string{
		"Forgotten", "Translucent", "Encrypted", "Flickering", "Badly Corrupted",
		"Year-2077", "Quantum-Entangled", "Half", "Unrenderable",
		"Noisy", "Binary", "Read-Only", "Overheated", "Collisionless",
		"Infinitely Recursive", "Cursed", "Holographic", "Low-Poly",
	},
	Nouns: []string{
		"Coffee Mug", "Mechanical Keycap", "Love Letter", "Subway Ticket", "Cat Collar",
		"Floppy Disk", "Robot Model", "Guitar Pick", "Instant Photo", "Compute Core",
		"Retina Panel", "Noodle Fork", "Expired Pill Bottle", "MP3 Player", "VR Lens Shard",
		"Old Diary", "Staff Badge", "Hard Drive", "Gamepad", "LED",
	},
	Descriptions: []string{
		"A thick layer of digital dust covers its surface.",
		"It hums with a faint electric buzz when touched.",
		"A name is engraved on it, too worn to read.",
		"It keeps drifting towards the ceiling as if gravity forgot it.",
		"System notice: texture file missing.",
		"Holding it brings an unexplained sadness.",
		"It smells like asphalt just before rain.",
		"It seems to hold a clip of audio that refuses to play.",
		"It flips between 0 and 1 without warning.",
		"Old humans used this to store their memories.",
		"Looking at it recalls a memory that never happened.",
		"It sometimes vanishes and reappears a few seconds later.",
		"The label says: do not use after midnight.",
		"It is still faintly warm, as if someone just put it down.",
		"A logical paradox given physical form.",
	},
}
