package game_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// newEngine scripts the engine's own draws (hack rolls, market, bug schedule).
// Contracts come from a separate source: every roll 0.5 gives a Medium/Common
// offer of 1.75x the baseline with sequential ids.
func newEngine(t *testing.T, draws ...float64) *game.Engine {
	t.Helper()
	seq := 0
	gen, err := contract.NewGenerator(shared.NewFixedRandom(0.5), catalog.Default(),
		contract.WithIDFunc(func() string {
			seq++
			return fmt.Sprintf("contract-%d", seq)
		}))
	require.NoError(t, err)

	e, err := game.NewEngine(catalog.Default(), shared.NewFixedRandom(draws...), game.WithContractGenerator(gen))
	require.NoError(t, err)
	return e
}

func newState(t *testing.T, e *game.Engine) *game.State {
	t.Helper()
	return e.NewState(epoch)
}

func contractIDs(st *game.State) []string {
	ids := make([]string, 0, len(st.AvailableContracts))
	for _, c := range st.AvailableContracts {
		ids = append(ids, c.ID())
	}
	return ids
}
