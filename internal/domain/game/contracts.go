package game

import (
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// AcceptContract starts work on an offer from the pool
func (e *Engine) AcceptContract(st *State, id string) (bool, error) {
	c, ok := st.findContract(id)
	if !ok {
		return false, shared.NewNotFoundError("contract", id)
	}
	if st.ActiveContractID != "" || !c.RequirementsMet(st.Buildings) {
		return false, nil
	}

	st.ActiveContractID = id
	st.ContractProgress = 0
	return true, nil
}

// CancelContract abandons the active contract and its progress
func (e *Engine) CancelContract(st *State) bool {
	if st.ActiveContractID == "" {
		return false
	}
	st.ActiveContractID = ""
	st.ContractProgress = 0
	return true
}

// CompleteContract pays out the active contract once its workload is covered
// and replaces it in the pool with a fresh offer at the same position.
func (e *Engine) CompleteContract(st *State) bool {
	c, ok := st.ActiveContract()
	if !ok || !c.IsComplete(st.ContractProgress) {
		return false
	}

	reward := c.Reward()
	st.Currency += reward.Currency
	st.PrestigeCurrency += reward.Shares
	st.CompletedContracts = append(st.CompletedContracts, c.ID())
	st.ActiveContractID = ""
	st.ContractProgress = 0

	replacement := e.contracts.Generate(st.ProductionRate, st.Currency)
	for i, offer := range st.AvailableContracts {
		if offer.ID() == c.ID() {
			st.AvailableContracts[i] = replacement
			break
		}
	}
	if reward.Shares > 0 {
		e.recompute(st)
	}
	return true
}

// GenerateContracts redraws every offer except the one being worked on
func (e *Engine) GenerateContracts(st *State) {
	pool := make([]*contract.Contract, 0, contract.PoolSize)
	if active, ok := st.ActiveContract(); ok {
		pool = append(pool, active)
	}
	for len(pool) < contract.PoolSize {
		pool = append(pool, e.contracts.Generate(st.ProductionRate, st.Currency))
	}
	st.AvailableContracts = pool
}
