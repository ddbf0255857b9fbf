package progression

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	errInvalidCurveBase   = errors.New("curve base must be at least 1")
	errInvalidCurveGrowth = errors.New("curve growth must be at least 1")

	// ErrInvalidRules is returned when a balance table fails validation.
	ErrInvalidRules = errors.New("invalid progression rules")
)

// Difficulty is a quest or task difficulty tier.
type Difficulty string

// Normalize upper-cases and trims a difficulty name.
func (d Difficulty) Normalize() Difficulty {
	return Difficulty(strings.ToUpper(strings.TrimSpace(string(d))))
}

// StreakBonus grants Multiplier once a streak reaches MinDays.
type StreakBonus struct {
	MinDays    int     `yaml:"min_days" json:"min_days"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// Title is awarded from MinLevel upward.
type Title struct {
	MinLevel int    `yaml:"min_level" json:"min_level"`
	Name     string `yaml:"name" json:"name"`
}

// Rules is the full balance table. Streaks and Titles are kept sorted by
// threshold so lookups can binary search.
type Rules struct {
	Character    Curve                  `yaml:"character" json:"character"`
	Attribute    Curve                  `yaml:"attribute" json:"attribute"`
	Difficulties map[Difficulty]float64 `yaml:"difficulties" json:"difficulties"`
	Streaks      []StreakBonus          `yaml:"streaks" json:"streaks"`
	Titles       []Title                `yaml:"titles" json:"titles"`
}

// DefaultRules returns the stock balance table.
func DefaultRules() *Rules {
	return &Rules{
		Character: Curve{Base: BaseXP, Growth: GrowthFactor},
		Attribute: Curve{Base: AttributeBaseXP, Growth: AttributeGrowth},
		Difficulties: map[Difficulty]float64{
			DifficultyTrivial:   0.5,
			DifficultyEasy:      0.75,
			DifficultyNormal:    1.0,
			DifficultyHard:      1.5,
			DifficultyEpic:      2.0,
			DifficultyLegendary: 3.0,
		},
		Streaks: []StreakBonus{
			{MinDays: 0, Multiplier: 1.0},
			{MinDays: 3, Multiplier: 1.1},
			{MinDays: 7, Multiplier: 1.25},
			{MinDays: 14, Multiplier: 1.5},
			{MinDays: 30, Multiplier: 2.0},
		},
		Titles: []Title{
			{MinLevel: 1, Name: TitleNovice},
			{MinLevel: 5, Name: TitleApprentice},
			{MinLevel: 10, Name: TitleEmerging},
			{MinLevel: 15, Name: TitleCraftsman},
			{MinLevel: 20, Name: TitleArchitect},
			{MinLevel: 25, Name: TitleUXMaster},
			{MinLevel: 30, Name: TitleGuru},
			{MinLevel: 40, Name: TitleLegend},
			{MinLevel: 50, Name: TitleGod},
		},
	}
}

// DifficultyMultiplier returns the reward scale for d, or 1.0 when unknown.
func (r *Rules) DifficultyMultiplier(d Difficulty) float64 {
	if m, ok := r.Difficulties[d.Normalize()]; ok {
		return m
	}
	return DefaultMultiplier
}

// StreakMultiplier returns the bonus of the highest threshold <= days.
func (r *Rules) StreakMultiplier(days int) float64 {
	i := sort.Search(len(r.Streaks), func(i int) bool {
		return r.Streaks[i].MinDays > days
	})
	if i == 0 {
		return DefaultMultiplier
	}
	return r.Streaks[i-1].Multiplier
}

// TitleForLevel returns the title of the highest threshold <= level,
// falling back to the first title.
func (r *Rules) TitleForLevel(level int) string {
	if len(r.Titles) == 0 {
		return ""
	}
	i := sort.Search(len(r.Titles), func(i int) bool {
		return r.Titles[i].MinLevel > level
	})
	if i == 0 {
		return r.Titles[0].Name
	}
	return r.Titles[i-1].Name
}

// FinalReward scales base by difficulty and streak, rounding down.
func (r *Rules) FinalReward(base int, difficulty Difficulty, streakDays int) int {
	scaled := float64(base) * r.DifficultyMultiplier(difficulty) * r.StreakMultiplier(streakDays)
	if scaled <= 0 {
		return 0
	}
	if scaled >= math.MaxInt {
		return math.MaxInt
	}
	return int(math.Floor(scaled))
}

// Validate checks the table is usable. Threshold lists must be strictly
// increasing.
func (r *Rules) Validate() error {
	if err := r.Character.validate(); err != nil {
		return fmt.Errorf("%w: character: %w", ErrInvalidRules, err)
	}
	if err := r.Attribute.validate(); err != nil {
		return fmt.Errorf("%w: attribute: %w", ErrInvalidRules, err)
	}

	for d, m := range r.Difficulties {
		if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return fmt.Errorf("%w: difficulty %s has multiplier %v", ErrInvalidRules, d, m)
		}
	}

	if len(r.Streaks) == 0 {
		return fmt.Errorf("%w: streak table is empty", ErrInvalidRules)
	}
	for i, s := range r.Streaks {
		if s.Multiplier < 0 || math.IsNaN(s.Multiplier) || math.IsInf(s.Multiplier, 0) {
			return fmt.Errorf("%w: streak %d days has multiplier %v", ErrInvalidRules, s.MinDays, s.Multiplier)
		}
		if i > 0 && s.MinDays <= r.Streaks[i-1].MinDays {
			return fmt.Errorf("%w: streak thresholds must be strictly increasing", ErrInvalidRules)
		}
	}

	if len(r.Titles) == 0 {
		return fmt.Errorf("%w: title table is empty", ErrInvalidRules)
	}
	for i, t := range r.Titles {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: title at level %d has no name", ErrInvalidRules, t.MinLevel)
		}
		if i > 0 && t.MinLevel <= r.Titles[i-1].MinLevel {
			return fmt.Errorf("%w: title thresholds must be strictly increasing", ErrInvalidRules)
		}
	}
	return nil
}

// balanceFile mirrors Rules with optional sections.
type balanceFile struct {
	Character    *Curve                 `yaml:"character"`
	Attribute    *Curve                 `yaml:"attribute"`
	Difficulties map[Difficulty]float64 `yaml:"difficulties"`
	Streaks      []StreakBonus          `yaml:"streaks"`
	Titles       []Title                `yaml:"titles"`
}

// ParseRules overlays a YAML balance document on the defaults. Sections the
// document omits keep their default values; difficulty entries are merged.
func ParseRules(data []byte) (*Rules, error) {
	var file balanceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse balance file: %w", err)
	}

	rules := DefaultRules()
	if file.Character != nil {
		rules.Character = *file.Character
	}
	if file.Attribute != nil {
		rules.Attribute = *file.Attribute
	}
	for d, m := range file.Difficulties {
		rules.Difficulties[d.Normalize()] = m
	}
	if file.Streaks != nil {
		rules.Streaks = append([]StreakBonus(nil), file.Streaks...)
		sort.SliceStable(rules.Streaks, func(i, j int) bool {
			return rules.Streaks[i].MinDays < rules.Streaks[j].MinDays
		})
	}
	if file.Titles != nil {
		rules.Titles = append([]Title(nil), file.Titles...)
		sort.SliceStable(rules.Titles, func(i, j int) bool {
			return rules.Titles[i].MinLevel < rules.Titles[j].MinLevel
		})
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadRules reads a balance file from disk. An empty path yields the defaults.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance file %s: %w", path, err)
	}
	return ParseRules(data)
}
