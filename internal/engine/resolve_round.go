package engine

import (
	"sort"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
	"github.com/walterdalec/hexfield/internal/rng"
)

// Result is what one round of resolution produced.
type Result struct {
	Events     []battle.LogEntry
	BattleOver bool
	Phase      battle.Phase
	Winner     battle.Side
}

// RollInitiative draws this-round initiative for every active unit from the
// init stream, in unit-id order so the draw sequence is submission-agnostic.
// Banked wait bonuses from the previous round apply once and clear.
func RollInitiative(st *battle.State, rnd *rng.Manager) {
	units := make([]*battle.Unit, 0, len(st.Units))
	for _, u := range st.Units {
		if u.Active() {
			units = append(units, u)
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	stream := rnd.Stream(rng.StreamInit)
	for _, u := range units {
		u.InitiativeRoll = u.InitiativeBase + stream.Range(1, initiativeDie) + u.NextInitBonus
		u.NextInitBonus = 0
	}
}

// ResolveRound consumes one round's queued orders and executes the five
// resolution phases in fixed order: Movement, Actions, Reactions, Status,
// Morale. The outcome depends only on pre-round state, order content and
// the rng manager's seed state; every phase re-sorts by its documented keys
// so submission order is irrelevant.
func ResolveRound(st *battle.State, rnd *rng.Manager, cat *battle.Catalog, orders []*battle.QueuedOrder, hazards map[battle.Hazard]int) Result {
	firstEvent := len(st.Log)
	if st.Phase.Terminal() {
		return Result{Events: nil, BattleOver: true, Phase: st.Phase}
	}
	st.Phase = battle.PhaseResolution
	rc := newRoundContext(st, rnd, cat, hazards)

	rc.log(battle.EventRoundStart, "", "", "round begins", map[string]interface{}{
		"round": st.Round,
	})

	// Re-stamp validity against the state the round actually resolves on.
	ValidateOrders(st, cat, orders)

	rc.movementPhase(orders) // Phase 1
	rc.actionsPhase(orders)  // Phase 2
	rc.reactionsPhase()      // Phase 3
	rc.statusPhase()         // Phase 4
	st.Phase = battle.PhaseMorale
	rc.moralePhase() // Phase 5

	rc.updateObjectives()

	outcome := st.EvaluateOutcome()
	if outcome.Over {
		st.Phase = outcome.Phase
		rc.log(battle.EventVictory, "", "", "battle ends: "+string(outcome.Phase), map[string]interface{}{
			"winner": string(outcome.Winner),
			"phase":  string(outcome.Phase),
		})
	} else {
		rc.log(battle.EventRoundEnd, "", "", "round ends", map[string]interface{}{
			"round": st.Round,
		})
		st.Round++
		st.Phase = battle.PhaseOrders
		rnd.AdvanceRound()
		for _, u := range st.Units {
			u.AP = u.MaxAP
			u.HasMoved = false
			u.HasActed = false
			u.ReactionsUsed = 0
		}
		RollInitiative(st, rnd)
	}

	return Result{
		Events:     append([]battle.LogEntry(nil), st.Log[firstEvent:]...),
		BattleOver: outcome.Over,
		Phase:      st.Phase,
		Winner:     outcome.Winner,
	}
}

// updateObjectives advances per-round objective progress. Interact-driven
// objectives (capture) progress in the Actions phase instead.
func (rc *roundContext) updateObjectives() {
	st := rc.st
	for _, o := range st.Objectives {
		if o.Completed || o.Failed {
			continue
		}
		before := o.Progress
		switch o.Type {
		case battle.ObjectiveAnnihilate:
			if len(st.LivingUnits(o.Side.Enemy())) == 0 {
				o.Completed = true
			}
		case battle.ObjectiveRout:
			if st.RoutedSides[o.Side.Enemy()] || len(st.ActiveUnits(o.Side.Enemy())) == 0 {
				o.Completed = true
			}
		case battle.ObjectiveHold:
			if rc.sideHoldsObjective(o) {
				o.Progress++
			} else {
				o.Progress = 0
			}
			if o.Progress >= o.Target {
				o.Completed = true
			}
		case battle.ObjectiveControl:
			if rc.sideControlsObjective(o) {
				o.Progress++
				if o.Progress >= o.Target {
					o.Completed = true
				}
			}
		case battle.ObjectiveEscort:
			u := st.UnitByID(o.TargetUnitID)
			if u == nil || !u.Alive() {
				o.Failed = true
			} else if u.Retreated || rc.atAnyExit(u) {
				o.Completed = true
			}
		case battle.ObjectiveDestroy:
			u := st.UnitByID(o.TargetUnitID)
			if u == nil || !u.Alive() {
				o.Completed = true
			}
		case battle.ObjectiveSurvive:
			o.Progress = st.Round
			if o.Progress >= o.Target && len(st.LivingUnits(o.Side)) > 0 {
				o.Completed = true
			}
			if len(st.LivingUnits(o.Side)) == 0 {
				o.Failed = true
			}
		case battle.ObjectiveCapture:
			// Progress accrues through interact orders; completion is
			// stamped there too, nothing to do per round.
		}
		if o.Completed || o.Failed || o.Progress != before {
			rc.log(battle.EventObjective, "", "", "objective update: "+o.ID, map[string]interface{}{
				"objective": o.ID,
				"progress":  o.Progress,
				"completed": o.Completed,
				"failed":    o.Failed,
			})
		}
	}
}

func (rc *roundContext) sideHoldsObjective(o *battle.Objective) bool {
	pos, ok := rc.st.Board.Objectives[o.ID]
	if !ok {
		return false
	}
	u := rc.st.UnitAt(pos)
	return u != nil && u.Side == o.Side
}

func (rc *roundContext) sideControlsObjective(o *battle.Objective) bool {
	pos, ok := rc.st.Board.Objectives[o.ID]
	if !ok {
		return false
	}
	own, enemy := 0, 0
	for _, u := range rc.st.Units {
		if !u.Active() {
			continue
		}
		if hexmap.Distance(pos, u.Pos) <= 1 {
			if u.Side == o.Side {
				own++
			} else {
				enemy++
			}
		}
	}
	return own > enemy
}

func (rc *roundContext) atAnyExit(u *battle.Unit) bool {
	for _, e := range rc.st.Board.Exits {
		if u.Pos == e {
			return true
		}
	}
	return false
}
