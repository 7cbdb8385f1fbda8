package service

import (
	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/engine"
	"github.com/walterdalec/hexfield/internal/logging"
)

// SubmitOrders stores one side's order set for the current round and, once
// both sides have submitted, resolves the round. Orders are validated
// immediately so the caller gets reason codes back, and validated again at
// resolution against the state the round actually runs on.
func (a *Arena) SubmitOrders(battleID string, side battle.Side, orders []*battle.QueuedOrder) (*battle.State, bool, error) {
	if side != battle.SideAttacker && side != battle.SideDefender {
		return nil, false, ErrUnknownSide
	}
	inst, err := a.acquire(battleID)
	if err != nil {
		return nil, false, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.st.Phase.Terminal() {
		return nil, false, ErrBattleFinished
	}
	if inst.st.Phase != battle.PhaseOrders {
		return nil, false, ErrOrdersLocked
	}

	// Orders may only command the submitting side's own units.
	kept := make([]*battle.QueuedOrder, 0, len(orders))
	for _, o := range orders {
		if u := inst.st.UnitByID(o.ActorID); u == nil || u.Side != side {
			o.Valid = false
			o.Reasons = []battle.ReasonCode{battle.ReasonUnknownActor}
			continue
		}
		kept = append(kept, o)
	}
	engine.ValidateOrders(inst.st, a.cat, kept)

	inst.pending[side] = kept
	inst.submitted[side] = true

	resolved := false
	if inst.submitted[battle.SideAttacker] && inst.submitted[battle.SideDefender] {
		if err := a.resolveLocked(battleID, inst); err != nil {
			return nil, false, err
		}
		resolved = true
	} else if err := a.persistLocked(battleID, inst); err != nil {
		return nil, false, err
	}
	out, err := snapshotState(inst.st)
	if err != nil {
		return nil, false, err
	}
	return out, resolved, nil
}

// ForceResolve resolves the current round with whatever orders are queued.
// Units without orders simply hold. Used by the stale-battle scanner and by
// single-seat battles where the opposing side is scripted elsewhere.
func (a *Arena) ForceResolve(battleID string) (*battle.State, error) {
	inst, err := a.acquire(battleID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.st.Phase.Terminal() {
		return nil, ErrBattleFinished
	}
	if err := a.resolveLocked(battleID, inst); err != nil {
		return nil, err
	}
	return snapshotState(inst.st)
}

// resolveLocked runs one round and persists the outcome. Caller holds the
// instance lock. Attacker orders precede defender orders in the merged set;
// the engine re-sorts by its own keys, so the merge order is cosmetic.
func (a *Arena) resolveLocked(battleID string, inst *instance) error {
	merged := append([]*battle.QueuedOrder{}, inst.pending[battle.SideAttacker]...)
	merged = append(merged, inst.pending[battle.SideDefender]...)

	res := engine.ResolveRound(inst.st, inst.rnd, a.cat, merged, a.hazards)

	inst.pending = make(map[battle.Side][]*battle.QueuedOrder)
	inst.submitted = make(map[battle.Side]bool)

	if err := a.persistLocked(battleID, inst); err != nil {
		return err
	}
	if err := a.repo.AppendEvents(eventRecords(battleID, res.Events)); err != nil {
		logging.Error("failed to append battle events", err, logging.Fields{"battle_id": battleID})
	}
	inst.broadcast(res.Events)

	logging.Info("round resolved", logging.Fields{
		"battle_id": battleID,
		"round":     inst.st.Round,
		"phase":     string(inst.st.Phase),
		"events":    len(res.Events),
	})
	return nil
}

func (a *Arena) persistLocked(battleID string, inst *instance) error {
	rec, err := a.repo.GetBattleByID(battleID)
	if err != nil {
		return ErrBattleNotFound
	}
	if err := syncRecord(rec, inst.st); err != nil {
		return err
	}
	return a.repo.UpdateBattle(rec)
}
