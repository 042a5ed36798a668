package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_EmptyRequirementsIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Score(map[string]string{"python": "expert"}, nil))
	assert.Equal(t, 0.0, Score(map[string]string{"python": "expert"}, []string{}))
}

func TestScore_SingleSkill(t *testing.T) {
	assert.Equal(t, 1.0, Score(map[string]string{"python": "expert"}, []string{"python"}))
	assert.Equal(t, 0.25, Score(map[string]string{"python": "débutant"}, []string{"python"}))
	assert.Equal(t, 0.25, Score(map[string]string{"python": "beginner"}, []string{"python"}))
}

func TestScore_IsWeightedNotFractionMatched(t *testing.T) {
	assert.Equal(t, 0.25, Score(map[string]string{"go": "intermédiaire"}, []string{"go", "sql"}))
	assert.Equal(t, 0.5, Score(map[string]string{"python": "expert"}, []string{"python", "sql"}))
	assert.Equal(t, 0.25, Score(map[string]string{"go": "beginner", "sql": "débutant"}, []string{"go", "sql"}))
	assert.Equal(t, 0.125, Score(map[string]string{"python": "débutant"}, []string{"python", "sql"}))
}

func TestScore_UnknownLevelContributesZero(t *testing.T) {
	assert.Equal(t, 0.0, Score(map[string]string{"go": "wizard"}, []string{"go"}))
	assert.Equal(t, 0.5, Score(map[string]string{"go": "???", "sql": "expert"}, []string{"go", "sql"}))
}

func TestScore_SkillNamesAreCaseSensitive(t *testing.T) {
	assert.Equal(t, 0.0, Score(map[string]string{"Python": "expert"}, []string{"python"}))
}

func TestScore_DuplicatesIgnoredBeyondFirstMatch(t *testing.T) {
	assert.Equal(t, 0.5, Score(map[string]string{"go": "expert"}, []string{"go", "go"}))
}

func TestScore_AlwaysWithinUnitInterval(t *testing.T) {
	validated := map[string]string{"a": "expert", "b": "advanced", "c": "beginner", "d": "bogus"}
	reqs := [][]string{
		{"a"}, {"a", "a", "a"}, {"a", "b", "c", "d"}, {"x", "y"}, {"a", "b", "c", "d", "e", "f"},
	}
	for _, r := range reqs {
		s := Score(validated, r)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestCalculate_Breakdown(t *testing.T) {
	res := Calculate(map[string]string{"go": "advanced"}, []string{"go", "docker"})
	assert.InDelta(t, 0.375, res.Score, 1e-9)
	assert.Len(t, res.MatchedSkills, 1)
	assert.Equal(t, "go", res.MatchedSkills[0].SkillName)
	assert.Equal(t, 0.75, res.MatchedSkills[0].Weight)
	assert.Equal(t, []string{"docker"}, res.MissingSkills)
}

func TestOverlaps_PresenceOnly(t *testing.T) {
	assert.True(t, Overlaps(map[string]string{"go": "bogus"}, []string{"sql", "go"}))
	assert.False(t, Overlaps(map[string]string{"go": "expert"}, []string{"sql"}))
	assert.False(t, Overlaps(nil, []string{"sql"}))
	assert.False(t, Overlaps(map[string]string{"go": "expert"}, nil))
}
