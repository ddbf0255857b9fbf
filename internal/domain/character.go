package domain

import "time"

// Character is the user's avatar. Level is a cache of the level derived from
// TotalXP and must be recomputed whenever TotalXP changes.
type Character struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Name           string      `json:"name"`
	Title          string      `json:"title"`
	Level          int         `json:"level"`
	CurrentXP      int64       `json:"currentXP"`
	TotalXP        int64       `json:"totalXP"`
	Gold           int         `json:"gold"`
	Gems           int         `json:"gems"`
	HP             int         `json:"hp"`
	MaxHP          int         `json:"maxHp"`
	Mana           int         `json:"mana"`
	MaxMana        int         `json:"maxMana"`
	CurrentStreak  int         `json:"currentStreak"`
	LongestStreak  int         `json:"longestStreak"`
	LastActiveDate time.Time   `json:"lastActiveDate"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Attributes     []Attribute `json:"attributes,omitempty"`
}

// Attribute is a per-character skill track.
type Attribute struct {
	ID          string `json:"id"`
	CharacterID string `json:"characterId"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Level       int    `json:"level"`
	CurrentXP   int64  `json:"currentXP"`
}

// AttributeDefinition seeds a new character's attributes.
type AttributeDefinition struct {
	Name        string
	DisplayName string
	Color       string
	Icon        string
}

// Attribute names
const (
	AttributeCreativity    = "creativity"
	AttributeLogic         = "logic"
	AttributeFocus         = "focus"
	AttributeCommunication = "communication"
)

// DefaultAttributes are created alongside every new character.
var DefaultAttributes = []AttributeDefinition{
	{Name: AttributeCreativity, DisplayName: "Creatividad", Color: "#FF6B6B", Icon: "Palette"},
	{Name: AttributeLogic, DisplayName: "Lógica", Color: "#4ECDC4", Icon: "Code"},
	{Name: AttributeFocus, DisplayName: "Enfoque", Color: "#45B7D1", Icon: "Target"},
	{Name: AttributeCommunication, DisplayName: "Comunicación", Color: "#96CEB4", Icon: "MessageCircle"},
}

// IsValidAttribute reports whether name is one of the default attributes.
func IsValidAttribute(name string) bool {
	for _, def := range DefaultAttributes {
		if def.Name == name {
			return true
		}
	}
	return false
}

// Character defaults
const (
	DefaultCharacterName = "Hero Developer"
	DefaultMaxHP         = 100
	DefaultMaxMana       = 50
	DefaultStartingGold  = 100
	DefaultStartingGems  = 5
)

// CharacterUpdate is a partial update. XP, Gold and Gems are deltas; HP and
// Mana are absolute values; Streak sets the current streak.
type CharacterUpdate struct {
	XP     *int64 `json:"xp,omitempty"`
	Gold   *int   `json:"gold,omitempty"`
	Gems   *int   `json:"gems,omitempty"`
	HP     *int   `json:"hp,omitempty"`
	Mana   *int   `json:"mana,omitempty"`
	Streak *int   `json:"streak,omitempty"`
}

// CharacterUpdateResult is the character after an update. LevelUp is set
// only when the update raised the level.
type CharacterUpdateResult struct {
	Character *Character `json:"character"`
	LevelUp   *LevelUp   `json:"levelUp,omitempty"`
}

// AttributeProgress is an attribute with its position on the skill curve.
type AttributeProgress struct {
	Attribute
	Progress       int   `json:"progress"`
	XPForNextLevel int64 `json:"xpForNextLevel"`
}

// CharacterSnapshot is a character with the values derived from its state.
type CharacterSnapshot struct {
	Character        *Character          `json:"character"`
	LevelProgress    int                 `json:"levelProgress"`
	XPForNextLevel   int64               `json:"xpForNextLevel"`
	StreakMultiplier float64             `json:"streakMultiplier"`
	Attributes       []AttributeProgress `json:"attributes"`
}
