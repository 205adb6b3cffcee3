package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

func TestSetSpecializationHandler(t *testing.T) {
	f := newFixture(t)
	handler := commands.NewSetSpecializationHandler(f.session, f.journal)

	t.Run("switches path", func(t *testing.T) {
		out := send(t, handler, &commands.SetSpecializationCommand{Specialization: "Backend"}).(*commands.ActionResponse)

		assert.True(t, out.Applied)
		assert.Equal(t, game.SpecializationBackend, out.State.Specialization)
	})

	t.Run("same path is a no-op", func(t *testing.T) {
		out := send(t, handler, &commands.SetSpecializationCommand{Specialization: "backend"}).(*commands.ActionResponse)

		assert.False(t, out.Applied)
	})

	t.Run("unknown path", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), &commands.SetSpecializationCommand{Specialization: "wizard"})

		var validation *shared.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestUnlockSkillHandler(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.seed(t, func(st *game.State) { st.Currency = 30000 })
	handler := commands.NewUnlockSkillHandler(f.session, f.journal)

	// Act
	out := send(t, handler, &commands.UnlockSkillCommand{SkillID: "touch_typing"}).(*commands.ActionResponse)
	gated := send(t, handler, &commands.UnlockSkillCommand{SkillID: "ci_pipeline"}).(*commands.ActionResponse)
	_, err := handler.Handle(context.Background(), &commands.UnlockSkillCommand{SkillID: "telepathy"})

	// Assert
	assert.True(t, out.Applied)
	assert.True(t, out.State.Skills.Has("touch_typing"))
	assert.False(t, gated.Applied, "requires code_review")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	entries := f.journal.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.TransactionTypeUnlockSkill.String(), entries[0].TransactionType)
	assert.InDelta(t, -25000.0, entries[0].Amount, 1e-9)
}

func TestUpgradeOfficeHandler(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.seed(t, func(st *game.State) { st.Currency = 60000 })
	handler := commands.NewUpgradeOfficeHandler(f.session, f.journal)

	// Act
	moved := send(t, handler, &commands.UpgradeOfficeCommand{}).(*commands.ActionResponse)
	broke := send(t, handler, &commands.UpgradeOfficeCommand{}).(*commands.ActionResponse)

	// Assert
	assert.True(t, moved.Applied)
	assert.Equal(t, 1, moved.State.OfficeLevel)
	assert.False(t, broke.Applied)

	entries := f.journal.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.TransactionTypeUpgradeOffice.String(), entries[0].TransactionType)
	assert.InDelta(t, -50000.0, entries[0].Amount, 1e-9)
	assert.Equal(t, "Moved into Developer Hub", entries[0].Description)
}

func TestToggleIllegalAIHandler_NeedsDarkWeb(t *testing.T) {
	// Arrange
	f := newFixture(t)
	handler := commands.NewToggleIllegalAIHandler(f.session, f.journal)

	// Act
	locked := send(t, handler, &commands.ToggleIllegalAICommand{Enabled: true}).(*commands.ActionResponse)
	f.seed(t, func(st *game.State) { st.DarkWebUnlocked = true })
	enabled := send(t, handler, &commands.ToggleIllegalAICommand{Enabled: true}).(*commands.ActionResponse)
	disabled := send(t, handler, &commands.ToggleIllegalAICommand{Enabled: false}).(*commands.ActionResponse)

	// Assert
	assert.False(t, locked.Applied)
	assert.True(t, enabled.Applied)
	assert.True(t, enabled.State.IllegalAIActive)
	assert.True(t, disabled.Applied)
	assert.False(t, disabled.State.IllegalAIActive)
}

func TestMarkIntroSeenHandler(t *testing.T) {
	f := newFixture(t)
	handler := commands.NewMarkIntroSeenHandler(f.session, f.journal)

	first := send(t, handler, &commands.MarkIntroSeenCommand{}).(*commands.ActionResponse)
	second := send(t, handler, &commands.MarkIntroSeenCommand{}).(*commands.ActionResponse)

	assert.True(t, first.Applied)
	assert.True(t, first.State.HasSeenIntro)
	assert.False(t, second.Applied)
}
