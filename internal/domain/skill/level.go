package skill

import "strings"

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
	LevelUnknown      Level = ""
)

// Stored validation records use French labels.
var aliases = map[string]Level{
	"beginner":      LevelBeginner,
	"débutant":      LevelBeginner,
	"debutant":      LevelBeginner,
	"intermediate":  LevelIntermediate,
	"intermédiaire": LevelIntermediate,
	"intermediaire": LevelIntermediate,
	"advanced":      LevelAdvanced,
	"avancé":        LevelAdvanced,
	"avance":        LevelAdvanced,
	"expert":        LevelExpert,
}

var weights = map[Level]float64{
	LevelBeginner:     0.25,
	LevelIntermediate: 0.5,
	LevelAdvanced:     0.75,
	LevelExpert:       1.0,
}

// ParseLevel never fails: anything outside the vocabulary is LevelUnknown.
func ParseLevel(raw string) Level {
	k := strings.ToLower(strings.TrimSpace(raw))
	if k == "" {
		return LevelUnknown
	}
	if lvl, ok := aliases[k]; ok {
		return lvl
	}
	return LevelUnknown
}

func (l Level) Weight() float64 {
	return weights[l]
}

func (l Level) Rank() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	default:
		return 0
	}
}

func (l Level) Valid() bool {
	return l.Rank() > 0
}

func Weight(raw string) float64 {
	return ParseLevel(raw).Weight()
}
