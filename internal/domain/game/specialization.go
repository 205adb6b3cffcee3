package game

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// Specialization is the player's career path
type Specialization string

const (
	SpecializationNone      Specialization = ""
	SpecializationFrontend  Specialization = "frontend"
	SpecializationBackend   Specialization = "backend"
	SpecializationDevOps    Specialization = "devops"
	SpecializationFullStack Specialization = "fullstack"
)

// ParseSpecialization accepts the canonical names, case-insensitively; "none" clears it
func ParseSpecialization(s string) (Specialization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SpecializationNone, nil
	case "frontend":
		return SpecializationFrontend, nil
	case "backend":
		return SpecializationBackend, nil
	case "devops":
		return SpecializationDevOps, nil
	case "fullstack", "full_stack", "full-stack":
		return SpecializationFullStack, nil
	default:
		return SpecializationNone, shared.NewValidationError("specialization", fmt.Sprintf("unknown specialization %q", s))
	}
}

func (s Specialization) String() string {
	if s == SpecializationNone {
		return "none"
	}
	return string(s)
}

// BoostsManualInput is true for the paths that double typed output
func (s Specialization) BoostsManualInput() bool {
	return s == SpecializationFrontend || s == SpecializationFullStack
}

// BoostsProduction is true for the paths that speed up passive production
func (s Specialization) BoostsProduction() bool {
	return s == SpecializationBackend || s == SpecializationFullStack
}

// EasesBurnout is true for the path that halves burnout strain
func (s Specialization) EasesBurnout() bool {
	return s == SpecializationDevOps
}
