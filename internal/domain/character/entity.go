// Package character contains the user's avatar and the leveling rules
// applied when experience points are earned.
package character

// Starting values for a fresh character.
const (
	StartingLevel = 1
	StartingXP    = 0

	// XPPerLevel multiplied by the current level gives the XP needed to advance.
	XPPerLevel = 100
)

// Appearance keys recognised by presenters. Values are free-form.
const (
	AppearanceHairStyle    = "hair_style"
	AppearanceHairColor    = "hair_color"
	AppearanceEyes         = "eyes"
	AppearanceSkinTone     = "skin_tone"
	AppearanceBodyType     = "body_type"
	AppearanceClothing     = "clothing"
	AppearanceColorPalette = "color_palette"
	AppearanceVibe         = "vibe"
)

// Character is the gamified avatar of a user. There is exactly one per user.
type Character struct {
	UserID        string
	Level         int
	XP            int // progress within the current level
	XPToNextLevel int
	Appearance    map[string]string
}

// New returns a level 1 character with an empty appearance.
func New(userID string) *Character {
	return &Character{
		UserID:        userID,
		Level:         StartingLevel,
		XP:            StartingXP,
		XPToNextLevel: StartingLevel * XPPerLevel,
		Appearance:    make(map[string]string),
	}
}

// ApplyXP adds gained XP to the character, rolling over as many levels as
// the total allows. After each level-up the threshold becomes level*100.
// The character is mutated and returned.
func ApplyXP(c *Character, gained int) *Character {
	xp := c.XP + gained
	for xp >= c.XPToNextLevel {
		xp -= c.XPToNextLevel
		c.Level++
		c.XPToNextLevel = c.Level * XPPerLevel
	}
	c.XP = xp
	return c
}

// ProgressPercent returns progress toward the next level (0-100).
func (c *Character) ProgressPercent() int {
	if c.XPToNextLevel <= 0 {
		return 100
	}
	return c.XP * 100 / c.XPToNextLevel
}
