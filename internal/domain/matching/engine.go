package matching

import (
	"skill-match/internal/domain/skill"
)

type MatchedSkill struct {
	SkillName string
	Level     skill.Level
	Weight    float64
}

type Result struct {
	Score         float64
	MatchedSkills []MatchedSkill
	MissingSkills []string
}

// Score is the sum of the validated weights of the required skills divided by
// the number of requirements. A skill listed twice is counted once in the sum
// but twice in the denominator.
func Score(validated map[string]string, required []string) float64 {
	return Calculate(validated, required).Score
}

func Calculate(validated map[string]string, required []string) Result {
	res := Result{
		MatchedSkills: make([]MatchedSkill, 0, len(required)),
		MissingSkills: make([]string, 0),
	}
	if len(required) == 0 {
		return res
	}

	seen := make(map[string]struct{}, len(required))
	var total float64
	for _, name := range required {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		raw, ok := validated[name]
		if !ok {
			res.MissingSkills = append(res.MissingSkills, name)
			continue
		}

		lvl := skill.ParseLevel(raw)
		w := lvl.Weight()
		total += w
		res.MatchedSkills = append(res.MatchedSkills, MatchedSkill{SkillName: name, Level: lvl, Weight: w})
	}

	res.Score = clamp01(total / float64(len(required)))
	return res
}

// Overlaps reports whether any required skill is a validated skill, whatever
// its level.
func Overlaps(validated map[string]string, required []string) bool {
	if len(validated) == 0 {
		return false
	}
	for _, name := range required {
		if _, ok := validated[name]; ok {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
