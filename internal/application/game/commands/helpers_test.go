package commands_test

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	ledgerCommands "github.com/andrescamacho/devempire-go/internal/application/ledger/commands"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// journal captures the ledger commands sent by action handlers
type journal struct {
	mu   sync.Mutex
	sent []*ledgerCommands.RecordTransactionCommand
	fail bool
}

func (j *journal) Send(_ context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ledgerCommands.RecordTransactionCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request %T", request)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sent = append(j.sent, cmd)
	if j.fail {
		return nil, fmt.Errorf("ledger unavailable")
	}
	return &ledgerCommands.RecordTransactionResponse{TransactionID: "tx"}, nil
}

func (j *journal) Register(reflect.Type, mediator.RequestHandler) error { return nil }

func (j *journal) Use(mediator.Middleware) {}

func (j *journal) entries() []*ledgerCommands.RecordTransactionCommand {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]*ledgerCommands.RecordTransactionCommand(nil), j.sent...)
}

type fixture struct {
	session *gameApp.Session
	clock   *shared.MockClock
	journal *journal
}

// newFixture builds a session whose engine replays draws and whose contract
// pool is contract-1..3, each needing 175 LOC for a 262 LOC reward.
func newFixture(t *testing.T, draws ...float64) *fixture {
	t.Helper()
	seq := 0
	gen, err := contract.NewGenerator(shared.NewFixedRandom(0.5), catalog.Default(),
		contract.WithIDFunc(func() string {
			seq++
			return fmt.Sprintf("contract-%d", seq)
		}))
	require.NoError(t, err)

	engine, err := game.NewEngine(catalog.Default(), shared.NewFixedRandom(draws...), game.WithContractGenerator(gen))
	require.NoError(t, err)

	clock := shared.NewMockClock(epoch)
	return &fixture{
		session: gameApp.NewSession(engine, engine.NewState(epoch), clock, nil),
		clock:   clock,
		journal: &journal{},
	}
}

// seed mutates the live state directly, bypassing the rules
func (f *fixture) seed(t *testing.T, fn func(st *game.State)) {
	t.Helper()
	_, err := f.session.Apply(context.Background(), func(st *game.State, _ time.Time) (bool, error) {
		fn(st)
		return true, nil
	})
	require.NoError(t, err)
}

func send(t *testing.T, h mediator.RequestHandler, request mediator.Request) mediator.Response {
	t.Helper()
	resp, err := h.Handle(context.Background(), request)
	require.NoError(t, err)
	return resp
}
