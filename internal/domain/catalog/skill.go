package catalog

// SkillID identifies an unlockable skill
type SkillID string

// SkillEffect selects which multiplier a skill feeds
type SkillEffect string

const (
	SkillEffectClick   SkillEffect = "CLICK"
	SkillEffectPassive SkillEffect = "PASSIVE"
)

// Skill is unlocked once per run with currency, optionally after a prerequisite skill
type Skill struct {
	ID          SkillID
	Name        string
	Description string
	Effect      SkillEffect
	Multiplier  float64
	Cost        float64
	Requires    SkillID
}

var defaultSkills = []Skill{
	{ID: "touch_typing", Name: "Touch Typing", Description: "Manual input yields 50% more code.", Effect: SkillEffectClick, Multiplier: 1.5, Cost: 25000},
	{ID: "code_review", Name: "Code Review", Description: "Fewer regressions, 25% more passive output.", Effect: SkillEffectPassive, Multiplier: 1.25, Cost: 100000},
	{ID: "ci_pipeline", Name: "CI Pipeline", Description: "Ship on green, 50% more passive output.", Effect: SkillEffectPassive, Multiplier: 1.5, Cost: 1000000, Requires: "code_review"},
}
