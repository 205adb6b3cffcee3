package game

import "github.com/andrescamacho/devempire-go/internal/domain/catalog"

// SetSpecialization switches career path. Switching is free.
func (e *Engine) SetSpecialization(st *State, spec Specialization) bool {
	if st.Specialization == spec {
		return false
	}
	st.Specialization = spec
	e.recompute(st)
	return true
}

// UnlockSkill buys a skill once its prerequisite is unlocked
func (e *Engine) UnlockSkill(st *State, id catalog.SkillID) (bool, error) {
	s, err := e.catalog.Skill(id)
	if err != nil {
		return false, err
	}
	if st.Skills.Has(id) || st.Currency < s.Cost {
		return false, nil
	}
	if s.Requires != "" && !st.Skills.Has(s.Requires) {
		return false, nil
	}

	st.Currency -= s.Cost
	st.Skills.Add(id)
	e.recompute(st)
	return true, nil
}

// UpgradeOffice relocates to the next office tier
func (e *Engine) UpgradeOffice(st *State) bool {
	if st.OfficeLevel >= e.catalog.TopOfficeLevel() {
		return false
	}
	cost := e.catalog.Office(st.OfficeLevel).RelocationCost
	if st.Currency < cost {
		return false
	}

	st.Currency -= cost
	st.OfficeLevel++
	return true
}

// ToggleIllegalAI switches the black-market AI. Turning it on needs the dark web.
func (e *Engine) ToggleIllegalAI(st *State, on bool) bool {
	if st.IllegalAIActive == on || (on && !st.DarkWebUnlocked) {
		return false
	}
	st.IllegalAIActive = on
	e.recompute(st)
	return true
}

// MarkIntroSeen records that the intro has been shown
func (e *Engine) MarkIntroSeen(st *State) bool {
	if st.HasSeenIntro {
		return false
	}
	st.HasSeenIntro = true
	return true
}
