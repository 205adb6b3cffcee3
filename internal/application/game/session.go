package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// Outcome is what one mutation did: whether it applied, the achievements it
// unlocked and a private copy of the resulting state.
type Outcome struct {
	Applied  bool
	State    *game.State
	Unlocked []catalog.AchievementID
}

// WasApplied reports whether the mutation changed the game. Nil means no.
func (o *Outcome) WasApplied() bool {
	return o != nil && o.Applied
}

// Mutation runs against the live state under the session lock
type Mutation func(st *game.State, now time.Time) (bool, error)

// Observer is notified after every mutation, outside the lock
type Observer func(Outcome)

// Session is the single writer of the game state. Every mutation runs to
// completion under one lock, achievements are evaluated after it and callers
// only ever see clones.
type Session struct {
	mu     sync.Mutex
	engine *game.Engine
	state  *game.State
	clock  shared.Clock
	repo   game.SnapshotRepository

	obsMu     sync.RWMutex
	observers []Observer
}

// NewSession wraps an already loaded state. repo may be nil for in-memory play.
func NewSession(engine *game.Engine, st *game.State, clock shared.Clock, repo game.SnapshotRepository) *Session {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Session{engine: engine, state: st, clock: clock, repo: repo}
}

// LoadSession restores the saved game, or starts a new one when nothing is
// saved. The loaded state is repaired against the current catalog.
func LoadSession(ctx context.Context, engine *game.Engine, repo game.SnapshotRepository, clock shared.Clock) (*Session, error) {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	st, err := repo.Load(ctx)
	switch {
	case errors.Is(err, game.ErrNoSnapshot):
		logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "No saved game found, starting fresh", nil)
		st = engine.NewState(clock.Now())
	case err != nil:
		return nil, fmt.Errorf("failed to load saved game: %w", err)
	default:
		engine.Repair(st)
	}

	return NewSession(engine, st, clock, repo), nil
}

func (s *Session) Engine() *game.Engine { return s.engine }

func (s *Session) Catalog() *catalog.Catalog { return s.engine.Catalog() }

func (s *Session) Now() time.Time { return s.clock.Now() }

// Apply runs fn against the live state. A NotFoundError or any other error
// from fn is returned as is; fn must leave the state untouched when it fails.
func (s *Session) Apply(ctx context.Context, fn Mutation) (*Outcome, error) {
	s.mu.Lock()
	now := s.clock.Now()
	applied, err := fn(s.state, now)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	unlocked := s.engine.EvaluateAchievements(s.state)
	s.state.LastUpdate = now
	out := Outcome{Applied: applied, State: s.state.Clone(), Unlocked: unlocked}
	s.mu.Unlock()

	if len(unlocked) > 0 {
		logger := logging.LoggerFromContext(ctx)
		for _, id := range unlocked {
			logger.Log(logging.LevelInfo, "Achievement unlocked", map[string]interface{}{
				"achievement": string(id),
			})
		}
	}
	s.notify(out)
	return &out, nil
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() *game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Save writes the current state through the snapshot repository
func (s *Session) Save(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, s.Snapshot()); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// Subscribe registers an observer for every future outcome
func (s *Session) Subscribe(o Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Session) notify(out Outcome) {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	for _, o := range s.observers {
		o(out)
	}
}
