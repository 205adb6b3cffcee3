package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

func TestBuildingCostAt_FollowsExponentialScaling(t *testing.T) {
	intern, err := catalog.Default().Building(catalog.BuildingIntern)
	require.NoError(t, err)

	assert.Equal(t, 15.0, intern.CostAt(0))
	assert.Equal(t, 17.0, intern.CostAt(1))
	assert.Equal(t, 19.0, intern.CostAt(2))
}

func TestBuildingCostAt_StrictlyIncreasing(t *testing.T) {
	for _, b := range catalog.Default().Buildings() {
		prev := b.CostAt(0)
		for n := 1; n < 200; n++ {
			next := b.CostAt(n)
			assert.Greater(t, next, prev, "building %s at count %d", b.ID, n)
			prev = next
		}
	}
}

func TestLookup_UnknownIDReturnsNotFound(t *testing.T) {
	cat := catalog.Default()

	_, err := cat.Building("quantum_computer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	var nf *shared.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "building", nf.Kind)
	assert.Equal(t, "quantum_computer", nf.ID)

	_, err = cat.Upgrade("nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = cat.Hardware("nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = cat.Stock("nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = cat.Skill("nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOffice_CapacityLadder(t *testing.T) {
	cat := catalog.Default()

	assert.True(t, cat.Office(0).Admits(19))
	assert.False(t, cat.Office(0).Admits(20))
	assert.False(t, cat.Office(1).Admits(50))
	assert.False(t, cat.Office(2).Admits(150))
	assert.True(t, cat.Office(3).Admits(1_000_000))
	assert.Equal(t, 3, cat.TopOfficeLevel())
	assert.Equal(t, 50000.0, cat.Office(0).RelocationCost)
	assert.Equal(t, cat.Office(3), cat.Office(42))
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := catalog.New(catalog.Tables{
		Buildings: []catalog.Building{{ID: "a"}, {ID: "a"}},
		Offices:   []catalog.OfficeTier{{Level: 0, Capacity: catalog.UnlimitedCapacity}},
	})

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "buildings", verr.Field)
}

func TestNew_RejectsUnknownSkillPrerequisite(t *testing.T) {
	_, err := catalog.New(catalog.Tables{
		Skills:  []catalog.Skill{{ID: "b", Requires: "a"}},
		Offices: []catalog.OfficeTier{{Level: 0, Capacity: catalog.UnlimitedCapacity}},
	})

	assert.Error(t, err)
}
