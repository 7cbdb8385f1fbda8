// Package engine implements the round-resolution pipeline: order validation,
// the movement/zone-of-control resolver, combat math, status ticking, morale
// and the five-phase orchestrator. All resolution is synchronous, CPU-bound
// and deterministic for a fixed (state, order set, rng) triple.
package engine

import (
	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
	"github.com/walterdalec/hexfield/internal/rng"
)

// Tuning constants for the resolvers.
const (
	// Movement surcharges: climbing costs extra per height step gained,
	// turning costs extra per rotation step.
	elevationCostUnit = 2
	facingCostUnit    = 1

	// AP charged when a contested move collapses entirely.
	collisionFallbackAP = 1

	// Hit formula anchors.
	hitChanceBase  = 75
	hitChanceFloor = 5
	hitChanceCeil  = 95
	critChanceCeil = 50

	// Positional hit bonuses.
	hitBonusSide    = 10
	hitBonusFlanked = 20
	hitBonusRear    = 20

	// Positional damage-multiplier adders (percent).
	dmgBonusSide    = 10
	dmgBonusFlanked = 15
	dmgBonusRear    = 25

	// Positional crit adders.
	critBonusSide    = 5
	critBonusFlanked = 10
	critBonusRear    = 15

	elevationHitBonus = 10
	coverPenaltyLow   = 10
	coverPenaltyHigh  = 20
	// Elevation+cover contributions to the defender never exceed this.
	defenderBonusCap = 30

	critDamageFactor = 1.5

	// Morale tuning.
	routThreshold          = 30
	moralePerCasualty      = -5
	moraleSurrounded       = -10
	moraleCommanderDeath   = -20
	surroundedHostileCount = 4
	maxRetreatSteps        = 20

	// Initiative roll span added to the base each round.
	initiativeDie = 20
)

// Default hazard damage per type; config may override.
var defaultHazardDamage = map[battle.Hazard]int{
	battle.HazardFire:     4,
	battle.HazardPoison:   2,
	battle.HazardPit:      3,
	battle.HazardCaltrops: 2,
}

// queuedReaction is a Phase-3 work item recorded while earlier phases run.
type queuedReaction struct {
	actorID  string
	targetID string
}

// roundContext carries one round's working set through the phases.
type roundContext struct {
	st  *battle.State
	rnd *rng.Manager
	cat *battle.Catalog

	hazardDamage map[battle.Hazard]int

	// claims tracks hex ownership during movement arbitration.
	claims map[hexmap.Axial]string

	// casualties and commanderDown feed the morale phase.
	casualties    map[battle.Side]int
	commanderDown map[battle.Side]bool

	// reactions queued by phases 1-2 for the reaction phase.
	reactions []queuedReaction
}

func newRoundContext(st *battle.State, rnd *rng.Manager, cat *battle.Catalog, hazards map[battle.Hazard]int) *roundContext {
	if hazards == nil {
		hazards = defaultHazardDamage
	}
	return &roundContext{
		st:            st,
		rnd:           rnd,
		cat:           cat,
		hazardDamage:  hazards,
		claims:        make(map[hexmap.Axial]string),
		casualties:    make(map[battle.Side]int),
		commanderDown: make(map[battle.Side]bool),
	}
}

func (rc *roundContext) log(t battle.EventType, actorID, targetID, msg string, payload map[string]interface{}) {
	rc.st.Append(battle.LogEntry{Type: t, ActorID: actorID, TargetID: targetID, Payload: payload, Message: msg})
}

// defect records an engine invariant violation as a defensive no-op: the
// specific action silently fails but the round keeps going.
func (rc *roundContext) defect(actorID, msg string) {
	rc.log(battle.EventDefect, actorID, "", msg, nil)
}

// recordDeath tallies a kill for the morale phase and logs it.
func (rc *roundContext) recordDeath(u *battle.Unit, killerID string) {
	rc.casualties[u.Side]++
	if u.Commander {
		rc.commanderDown[u.Side] = true
	}
	rc.log(battle.EventDeath, killerID, u.ID, u.Name+" falls", nil)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
