package service

import (
	"time"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/logging"
	"github.com/walterdalec/hexfield/internal/storage"
)

// GetState returns a detached copy of a battle's current state.
func (a *Arena) GetState(battleID string) (*battle.State, error) {
	inst, err := a.acquire(battleID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return snapshotState(inst.st)
}

// BattleResult is the terminal summary of a finished battle.
type BattleResult struct {
	BattleID   string              `json:"battle_id"`
	Phase      battle.Phase        `json:"phase"`
	Winner     battle.Side         `json:"winner"`
	Rounds     int                 `json:"rounds"`
	Objectives []*battle.Objective `json:"objectives"`
	Survivors  map[battle.Side]int `json:"survivors"`
}

// GetResult summarizes a finished battle; open battles return an error.
func (a *Arena) GetResult(battleID string) (*BattleResult, error) {
	inst, err := a.acquire(battleID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if !inst.st.Phase.Terminal() {
		return nil, ErrBattleNotFinished
	}
	st, err := snapshotState(inst.st)
	if err != nil {
		return nil, err
	}
	winner, _ := st.Winner()
	return &BattleResult{
		BattleID:   st.ID,
		Phase:      st.Phase,
		Winner:     winner,
		Rounds:     st.Round,
		Objectives: st.Objectives,
		Survivors: map[battle.Side]int{
			battle.SideAttacker: len(st.LivingUnits(battle.SideAttacker)),
			battle.SideDefender: len(st.LivingUnits(battle.SideDefender)),
		},
	}, nil
}

// Events returns the persisted event trail from the given round on.
func (a *Arena) Events(battleID string, fromRound int) ([]storage.EventRecord, error) {
	if _, err := a.repo.GetBattleByID(battleID); err != nil {
		return nil, ErrBattleNotFound
	}
	return a.repo.GetEvents(battleID, fromRound)
}

// ListOpenBattles returns the persistence rows of unfinished battles.
func (a *Arena) ListOpenBattles() ([]storage.BattleRecord, error) {
	return a.repo.ListOpenBattles()
}

// DeleteBattle removes a battle and its event trail.
func (a *Arena) DeleteBattle(battleID string) error {
	if _, err := a.repo.GetBattleByID(battleID); err != nil {
		return ErrBattleNotFound
	}
	a.evict(battleID)
	return a.repo.DeleteBattle(battleID)
}

// ExpireStaleBattles force-resolves battles idle past the cutoff until they
// terminate, so abandoned battles cannot accumulate forever. Returns how many
// battles were touched.
func (a *Arena) ExpireStaleBattles(cutoff time.Time) (int, error) {
	recs, err := a.repo.FindStaleBattles(cutoff)
	if err != nil {
		return 0, err
	}
	touched := 0
	for _, rec := range recs {
		touched++
		// Resolving with no orders drains rounds toward the cap; the round
		// limit guarantees termination.
		for {
			st, err := a.ForceResolve(rec.ID)
			if err != nil || st.Phase.Terminal() {
				break
			}
		}
		logging.Info("expired stale battle", logging.Fields{"battle_id": rec.ID})
	}
	return touched, nil
}
