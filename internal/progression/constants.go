package progression

// Character track
const (
	BaseXP       = 100.0
	GrowthFactor = 1.5
)

// Attribute track. Skills level faster than the character.
const (
	AttributeBaseXP = 50.0
	AttributeGrowth = 1.3
)

// MaxLevel bounds level searches so LevelFromXP terminates for any int64.
const MaxLevel = 1 << 30

// levelAdjustSteps is how far LevelFromXP walks from its closed-form estimate.
const levelAdjustSteps = 4

// DefaultMultiplier applies to difficulties missing from the table.
const DefaultMultiplier = 1.0

// Difficulty tiers
const (
	DifficultyTrivial   Difficulty = "TRIVIAL"
	DifficultyEasy      Difficulty = "EASY"
	DifficultyNormal    Difficulty = "NORMAL"
	DifficultyHard      Difficulty = "HARD"
	DifficultyEpic      Difficulty = "EPIC"
	DifficultyLegendary Difficulty = "LEGENDARY"
)

// Title names
const (
	TitleNovice     = "Novato Digital"
	TitleApprentice = "Aprendiz del Código"
	TitleEmerging   = "Desarrollador Emergente"
	TitleCraftsman  = "Craftsman del Pixel"
	TitleArchitect  = "Arquitecto de Interfaces"
	TitleUXMaster   = "Maestro UX"
	TitleGuru       = "Gurú del Frontend"
	TitleLegend     = "Leyenda Digital"
	TitleGod        = "Dios del Diseño"
)
