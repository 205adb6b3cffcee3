package commands

import (
	"context"
	"fmt"
	"time"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	ledgerCommands "github.com/andrescamacho/devempire-go/internal/application/ledger/commands"
	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
)

// ActionResponse is returned by every game command
type ActionResponse = gameApp.Outcome

// balances is the pair of currencies the ledger journals
type balances struct {
	loc    float64
	shares float64
}

func balancesOf(st *game.State) balances {
	return balances{loc: st.Currency, shares: st.PrestigeCurrency}
}

// journalEntry is one balance movement to record in the ledger
type journalEntry struct {
	txType      ledger.TransactionType
	unit        ledger.Unit
	before      float64
	after       float64
	description string
	entityType  string
	entityID    string
	metadata    map[string]interface{}
}

// journalFunc turns the balances around an applied mutation into ledger entries
type journalFunc func(before, after balances) []journalEntry

// actionRunner applies a mutation through the session and journals the
// balance changes it made
type actionRunner struct {
	session  *gameApp.Session
	mediator mediator.Mediator
}

func newActionRunner(session *gameApp.Session, m mediator.Mediator) actionRunner {
	return actionRunner{session: session, mediator: m}
}

// apply is run for handlers that return the outcome as is
func (r actionRunner) apply(ctx context.Context, op gameApp.Mutation, journal journalFunc) (mediator.Response, error) {
	out, err := r.run(ctx, op, journal)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r actionRunner) run(ctx context.Context, op gameApp.Mutation, journal journalFunc) (*ActionResponse, error) {
	var before, after balances
	var at time.Time

	out, err := r.session.Apply(ctx, func(st *game.State, now time.Time) (bool, error) {
		before, at = balancesOf(st), now
		applied, err := op(st, now)
		after = balancesOf(st)
		return applied, err
	})
	if err != nil {
		return nil, err
	}

	if out.Applied && journal != nil {
		r.record(ctx, at, journal(before, after))
	}
	return out, nil
}

// record sends one RecordTransactionCommand per entry. Ledger failures are
// logged and never undo the action.
func (r actionRunner) record(ctx context.Context, at time.Time, entries []journalEntry) {
	if r.mediator == nil {
		return
	}
	logger := logging.LoggerFromContext(ctx)

	for _, e := range entries {
		amount := e.after - e.before
		if amount == 0 {
			continue
		}

		_, err := r.mediator.Send(ctx, &ledgerCommands.RecordTransactionCommand{
			TransactionType:   e.txType.String(),
			Unit:              e.unit.String(),
			Amount:            amount,
			BalanceBefore:     e.before,
			BalanceAfter:      e.after,
			Description:       e.description,
			Metadata:          e.metadata,
			RelatedEntityType: e.entityType,
			RelatedEntityID:   e.entityID,
			Timestamp:         &at,
		})
		if err != nil {
			logger.Log(logging.LevelError, "Failed to record transaction in ledger", map[string]interface{}{
				"error":  err.Error(),
				"type":   e.txType.String(),
				"amount": amount,
			})
		}
	}
}

// locEntry journals a change of the LOC balance
func locEntry(txType ledger.TransactionType, before, after balances, description, entityType, entityID string) journalEntry {
	return journalEntry{
		txType:      txType,
		unit:        ledger.UnitLOC,
		before:      before.loc,
		after:       after.loc,
		description: description,
		entityType:  entityType,
		entityID:    entityID,
	}
}

// sharesEntry journals a change of the prestige currency balance
func sharesEntry(txType ledger.TransactionType, before, after balances, description, entityType, entityID string) journalEntry {
	return journalEntry{
		txType:      txType,
		unit:        ledger.UnitShares,
		before:      before.shares,
		after:       after.shares,
		description: description,
		entityType:  entityType,
		entityID:    entityID,
	}
}

func invalidRequest(expected string) error {
	return fmt.Errorf("invalid request type: expected *%s", expected)
}
