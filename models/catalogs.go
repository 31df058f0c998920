package models

// TraitCatalog and ItemCatalog are the fixed pools onboarding draws from.
// Three distinct entries of each are assigned per student, so both catalogs
// must stay larger than three.

var TraitCatalog = []string{
	"Brave",
	"Curious",
	"Logical",
	"Patient",
	"Creative",
	"Focused",
	"Helpful",
	"Persistent",
	"Quick-Witted",
	"Observant",
}

var ItemCatalog = []string{
	"Wooden Sword",
	"Scroll of Wisdom",
	"Magic Compass",
	"Old Lantern",
	"Shield of Focus",
	"Potion of Clarity",
	"Ancient Key",
	"Rune Stone",
	"Feather Quill",
	"Crystal Dice",
}
