package burnout

import (
	"math"
	"time"
)

const (
	// MaxLevel is the saturation point that overloads the gauge
	MaxLevel = 100.0

	// BaseStrain is added per manual input before modifiers
	BaseStrain = 2.0

	// RelaxStep is removed per passive recovery interval
	RelaxStep = 1.0

	// RecoveryCooldown is how long an overloaded gauge stays locked
	RecoveryCooldown = 10 * time.Second
)

// Status is the state of the burnout state machine
type Status string

const (
	StatusNormal     Status = "NORMAL"
	StatusOverloaded Status = "OVERLOADED"
)

// Gauge tracks developer stress.
//
// Invariants:
//   - level stays within [0, MaxLevel]
//   - while overloaded, level is MaxLevel and recoverAt holds the unlock deadline
//   - NORMAL → OVERLOADED only through Strain, OVERLOADED → NORMAL only through Recover
type Gauge struct {
	level      float64
	overloaded bool
	recoverAt  time.Time
}

// NewGauge returns a relaxed gauge
func NewGauge() Gauge {
	return Gauge{}
}

// Reconstruct rebuilds a gauge from persisted values, repairing anything out of range.
// An overloaded gauge without a deadline unlocks one cooldown after now.
func Reconstruct(level float64, overloaded bool, recoverAt time.Time, now time.Time) Gauge {
	if math.IsNaN(level) || level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	if !overloaded {
		return Gauge{level: level}
	}
	if recoverAt.IsZero() {
		recoverAt = now.Add(RecoveryCooldown)
	}
	return Gauge{level: MaxLevel, overloaded: true, recoverAt: recoverAt}
}

func (g Gauge) Level() float64       { return g.level }
func (g Gauge) Overloaded() bool     { return g.overloaded }
func (g Gauge) RecoverAt() time.Time { return g.recoverAt }

func (g Gauge) Status() Status {
	if g.overloaded {
		return StatusOverloaded
	}
	return StatusNormal
}

// Strain adds stress and reports whether this call overloaded the gauge.
// An overloaded gauge ignores further strain.
func (g *Gauge) Strain(amount float64, now time.Time) bool {
	if g.overloaded || amount <= 0 {
		return false
	}
	g.level = math.Min(MaxLevel, g.level+amount)
	if g.level < MaxLevel {
		return false
	}
	g.overloaded = true
	g.recoverAt = now.Add(RecoveryCooldown)
	return true
}

// Relax lowers the level by step. Suspended while overloaded.
func (g *Gauge) Relax(step float64) bool {
	if g.overloaded || g.level == 0 || step <= 0 {
		return false
	}
	g.level = math.Max(0, g.level-step)
	return true
}

// Recover unlocks an overloaded gauge once its deadline has passed
func (g *Gauge) Recover(now time.Time) bool {
	if !g.overloaded || now.Before(g.recoverAt) {
		return false
	}
	*g = Gauge{}
	return true
}
