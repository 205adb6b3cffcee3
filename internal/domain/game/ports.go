package game

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by a SnapshotRepository with nothing saved yet
var ErrNoSnapshot = errors.New("no saved game")

// SnapshotRepository persists the single game save
type SnapshotRepository interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, st *State) error
}
