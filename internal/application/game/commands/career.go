package commands

import (
	"context"
	"fmt"
	"time"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
)

// SetSpecializationCommand switches career path. An empty value or "none" clears it.
type SetSpecializationCommand struct {
	Specialization string
}

// SetSpecializationHandler handles SetSpecializationCommand
type SetSpecializationHandler struct {
	actionRunner
}

// NewSetSpecializationHandler creates a new SetSpecializationHandler
func NewSetSpecializationHandler(session *gameApp.Session, m mediator.Mediator) *SetSpecializationHandler {
	return &SetSpecializationHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the SetSpecialization command
func (h *SetSpecializationHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetSpecializationCommand)
	if !ok {
		return nil, invalidRequest("SetSpecializationCommand")
	}
	spec, err := game.ParseSpecialization(cmd.Specialization)
	if err != nil {
		return nil, err
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, _ time.Time) (bool, error) {
		return engine.SetSpecialization(st, spec), nil
	}, nil)
}

// UnlockSkillCommand buys a skill from the tree
type UnlockSkillCommand struct {
	SkillID string
}

// UnlockSkillHandler handles UnlockSkillCommand
type UnlockSkillHandler struct {
	actionRunner
}

// NewUnlockSkillHandler creates a new UnlockSkillHandler
func NewUnlockSkillHandler(session *gameApp.Session, m mediator.Mediator) *UnlockSkillHandler {
	return &UnlockSkillHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the UnlockSkill command
func (h *UnlockSkillHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UnlockSkillCommand)
	if !ok {
		return nil, invalidRequest("UnlockSkillCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			return engine.UnlockSkill(st, catalog.SkillID(cmd.SkillID))
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{locEntry(ledger.TransactionTypeUnlockSkill, before, after,
				fmt.Sprintf("Learned %s", cmd.SkillID), "skill", cmd.SkillID)}
		})
}

// UpgradeOfficeCommand relocates to the next office tier
type UpgradeOfficeCommand struct{}

// UpgradeOfficeHandler handles UpgradeOfficeCommand
type UpgradeOfficeHandler struct {
	actionRunner
}

// NewUpgradeOfficeHandler creates a new UpgradeOfficeHandler
func NewUpgradeOfficeHandler(session *gameApp.Session, m mediator.Mediator) *UpgradeOfficeHandler {
	return &UpgradeOfficeHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the UpgradeOffice command
func (h *UpgradeOfficeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*UpgradeOfficeCommand); !ok {
		return nil, invalidRequest("UpgradeOfficeCommand")
	}
	engine := h.session.Engine()

	var office string
	return h.apply(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			applied := engine.UpgradeOffice(st)
			office = engine.Catalog().Office(st.OfficeLevel).Name
			return applied, nil
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{locEntry(ledger.TransactionTypeUpgradeOffice, before, after,
				fmt.Sprintf("Moved into %s", office), "office", office)}
		})
}

// ToggleIllegalAICommand switches the black-market AI on or off
type ToggleIllegalAICommand struct {
	Enabled bool
}

// ToggleIllegalAIHandler handles ToggleIllegalAICommand
type ToggleIllegalAIHandler struct {
	actionRunner
}

// NewToggleIllegalAIHandler creates a new ToggleIllegalAIHandler
func NewToggleIllegalAIHandler(session *gameApp.Session, m mediator.Mediator) *ToggleIllegalAIHandler {
	return &ToggleIllegalAIHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the ToggleIllegalAI command
func (h *ToggleIllegalAIHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ToggleIllegalAICommand)
	if !ok {
		return nil, invalidRequest("ToggleIllegalAICommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, _ time.Time) (bool, error) {
		return engine.ToggleIllegalAI(st, cmd.Enabled), nil
	}, nil)
}

// MarkIntroSeenCommand records that the intro has been shown
type MarkIntroSeenCommand struct{}

// MarkIntroSeenHandler handles MarkIntroSeenCommand
type MarkIntroSeenHandler struct {
	actionRunner
}

// NewMarkIntroSeenHandler creates a new MarkIntroSeenHandler
func NewMarkIntroSeenHandler(session *gameApp.Session, m mediator.Mediator) *MarkIntroSeenHandler {
	return &MarkIntroSeenHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the MarkIntroSeen command
func (h *MarkIntroSeenHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*MarkIntroSeenCommand); !ok {
		return nil, invalidRequest("MarkIntroSeenCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, _ time.Time) (bool, error) {
		return engine.MarkIntroSeen(st), nil
	}, nil)
}
