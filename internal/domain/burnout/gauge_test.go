package burnout_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/devempire-go/internal/domain/burnout"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestGauge_StrainAccumulates(t *testing.T) {
	g := burnout.NewGauge()

	tripped := g.Strain(burnout.BaseStrain, epoch)

	assert.False(t, tripped)
	assert.Equal(t, 2.0, g.Level())
	assert.Equal(t, burnout.StatusNormal, g.Status())
}

func TestGauge_OverloadClampsAndSetsDeadline(t *testing.T) {
	g := burnout.Reconstruct(99, false, time.Time{}, epoch)

	tripped := g.Strain(5, epoch)

	assert.True(t, tripped)
	assert.Equal(t, burnout.MaxLevel, g.Level())
	assert.True(t, g.Overloaded())
	assert.Equal(t, epoch.Add(burnout.RecoveryCooldown), g.RecoverAt())
}

func TestGauge_OverloadIsEdgeTriggered(t *testing.T) {
	g := burnout.Reconstruct(99, false, time.Time{}, epoch)
	g.Strain(5, epoch)

	tripped := g.Strain(5, epoch.Add(time.Second))

	assert.False(t, tripped)
	assert.Equal(t, epoch.Add(burnout.RecoveryCooldown), g.RecoverAt())
}

func TestGauge_RelaxSuspendedWhileOverloaded(t *testing.T) {
	g := burnout.Reconstruct(100, true, epoch.Add(burnout.RecoveryCooldown), epoch)

	assert.False(t, g.Relax(burnout.RelaxStep))
	assert.Equal(t, burnout.MaxLevel, g.Level())
}

func TestGauge_RelaxNeverGoesNegative(t *testing.T) {
	g := burnout.Reconstruct(0.5, false, time.Time{}, epoch)

	assert.True(t, g.Relax(burnout.RelaxStep))
	assert.Equal(t, 0.0, g.Level())
	assert.False(t, g.Relax(burnout.RelaxStep))
}

func TestGauge_RecoverWaitsForDeadline(t *testing.T) {
	g := burnout.Reconstruct(99, false, time.Time{}, epoch)
	g.Strain(5, epoch)

	assert.False(t, g.Recover(epoch.Add(9*time.Second)))
	assert.True(t, g.Overloaded())

	assert.True(t, g.Recover(epoch.Add(10*time.Second)))
	assert.False(t, g.Overloaded())
	assert.Equal(t, 0.0, g.Level())
	assert.True(t, g.RecoverAt().IsZero())
}

func TestGauge_RecoverOnRelaxedGaugeIsHarmless(t *testing.T) {
	g := burnout.NewGauge()

	assert.False(t, g.Recover(epoch))
	assert.Equal(t, burnout.NewGauge(), g)
}

func TestReconstruct_RepairsOutOfRangeValues(t *testing.T) {
	assert.Equal(t, 0.0, burnout.Reconstruct(-3, false, time.Time{}, epoch).Level())
	assert.Equal(t, 100.0, burnout.Reconstruct(180, false, time.Time{}, epoch).Level())

	legacy := burnout.Reconstruct(40, true, time.Time{}, epoch)
	assert.Equal(t, 100.0, legacy.Level())
	assert.Equal(t, epoch.Add(burnout.RecoveryCooldown), legacy.RecoverAt())
}
