package scheduler_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/adapters/scheduler"
	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type recordingMediator struct {
	mu       sync.Mutex
	requests []mediator.Request
	fail     bool
}

func (m *recordingMediator) Send(_ context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, request)
	if m.fail {
		return nil, errors.New("handler exploded")
	}
	return nil, nil
}

func (m *recordingMediator) Register(reflect.Type, mediator.RequestHandler) error {
	return nil
}

func (m *recordingMediator) Use(mediator.Middleware) {}

func (m *recordingMediator) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.requests))
	for i, r := range m.requests {
		out[i] = logging.RequestName(r)
	}
	return out
}

func (m *recordingMediator) count(name string) int {
	n := 0
	for _, got := range m.names() {
		if got == name {
			n++
		}
	}
	return n
}

func (m *recordingMediator) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}

type countingSaver struct {
	mu    sync.Mutex
	saves int
}

func (s *countingSaver) Save(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	return nil
}

func (s *countingSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func newDriver(m *recordingMediator, saver scheduler.Saver, clock shared.Clock) *scheduler.TickDriver {
	return scheduler.NewTickDriver(m, saver, clock, scheduler.DefaultConfig())
}

func TestTickDriver_StartReconcilesOffline(t *testing.T) {
	// Arrange
	m := &recordingMediator{}
	d := newDriver(m, nil, shared.NewMockClock(epoch))

	// Act
	d.Start(context.Background())

	// Assert
	assert.Equal(t, []string{"ReconcileOfflineCommand"}, m.names())
}

func TestTickDriver_StepSendsElapsedTime(t *testing.T) {
	// Arrange
	m := &recordingMediator{}
	clock := shared.NewMockClock(epoch)
	d := newDriver(m, nil, clock)
	d.Start(context.Background())
	m.reset()
	clock.Advance(100 * time.Millisecond)

	// Act
	d.Step(context.Background())

	// Assert
	assert.Equal(t, []string{"AdvanceTimeCommand", "RecoverBurnoutCommand", "SpawnBugCommand"}, m.names())
	advance, ok := m.requests[0].(*gameCommands.AdvanceTimeCommand)
	require.True(t, ok)
	assert.Equal(t, 100*time.Millisecond, advance.Elapsed)
}

func TestTickDriver_RelaxEveryTwoHundredMillis(t *testing.T) {
	// Arrange
	m := &recordingMediator{}
	clock := shared.NewMockClock(epoch)
	d := newDriver(m, nil, clock)
	d.Start(context.Background())

	// Act
	for i := 0; i < 10; i++ {
		clock.Advance(100 * time.Millisecond)
		d.Step(context.Background())
	}

	// Assert
	assert.Equal(t, 5, m.count("RelaxBurnoutCommand"))
	assert.Equal(t, 0, m.count("UpdateMarketCommand"))
	assert.Equal(t, 10, m.count("SpawnBugCommand"))
}

func TestTickDriver_MarketEveryThreeSeconds(t *testing.T) {
	// Arrange
	m := &recordingMediator{}
	clock := shared.NewMockClock(epoch)
	d := newDriver(m, nil, clock)
	d.Start(context.Background())

	// Act: one long stall covers two market periods
	clock.Advance(6500 * time.Millisecond)
	d.Step(context.Background())

	// Assert
	assert.Equal(t, 2, m.count("UpdateMarketCommand"))
	assert.Equal(t, 32, m.count("RelaxBurnoutCommand"))
}

func TestTickDriver_AutosaveIsThrottled(t *testing.T) {
	// Arrange
	m := &recordingMediator{}
	saver := &countingSaver{}
	clock := shared.NewMockClock(epoch)
	d := newDriver(m, saver, clock)
	d.Start(context.Background())

	// Act
	for i := 0; i < 49; i++ {
		clock.Advance(100 * time.Millisecond)
		d.Step(context.Background())
	}
	d.Wait()
	before := saver.count()

	clock.Advance(100 * time.Millisecond)
	d.Step(context.Background())
	d.Wait()

	// Assert
	assert.Equal(t, 0, before, "no save before the first interval has passed")
	assert.Equal(t, 1, saver.count())
}

func TestTickDriver_StepErrorsDoNotStopTheTick(t *testing.T) {
	// Arrange
	m := &recordingMediator{fail: true}
	clock := shared.NewMockClock(epoch)
	d := newDriver(m, nil, clock)
	d.Start(context.Background())
	m.reset()
	clock.Advance(100 * time.Millisecond)

	// Act
	d.Step(context.Background())

	// Assert
	assert.Len(t, m.names(), 3)
}

func TestTickDriver_RunSavesOnShutdown(t *testing.T) {
	// Arrange
	m := &recordingMediator{}
	saver := &countingSaver{}
	d := newDriver(m, saver, shared.NewMockClock(epoch))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	err := d.Run(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, saver.count())
	assert.Equal(t, 1, m.count("ReconcileOfflineCommand"))
}
