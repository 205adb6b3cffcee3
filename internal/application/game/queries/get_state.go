package queries

import (
	"context"
	"fmt"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
)

// GetStateQuery asks for the current game state
type GetStateQuery struct{}

// GetStateResponse carries a private copy of the state and its display projection
type GetStateResponse struct {
	State *game.State
	View  *gameApp.StateView
}

// GetStateHandler handles the GetState query
type GetStateHandler struct {
	session *gameApp.Session
}

// NewGetStateHandler creates a new GetStateHandler
func NewGetStateHandler(session *gameApp.Session) *GetStateHandler {
	return &GetStateHandler{session: session}
}

// Handle executes the GetState query
func (h *GetStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetStateQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStateQuery")
	}

	st := h.session.Snapshot()
	return &GetStateResponse{
		State: st,
		View:  gameApp.NewStateView(st, h.session.Catalog()),
	}, nil
}
