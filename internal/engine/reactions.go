package engine

import (
	"sort"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
)

// reactionsPhase is the pluggable step between Actions and Status. It drains
// the reactions queued by the earlier phases inside this round's timing
// window; today that is the guard-stance counterattack, and new reaction
// variants slot in here without touching the other phases.
func (rc *roundContext) reactionsPhase() {
	queue := rc.reactions
	rc.reactions = nil
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].actorID != queue[j].actorID {
			return queue[i].actorID < queue[j].actorID
		}
		return queue[i].targetID < queue[j].targetID
	})

	for _, q := range queue {
		actor := rc.st.UnitByID(q.actorID)
		target := rc.st.UnitByID(q.targetID)
		if actor == nil || target == nil || !actor.Active() || !target.Active() {
			continue
		}
		// The window closed if the attacker stepped away or the slot budget
		// ran out between queueing and resolution.
		if hexmap.Distance(actor.Pos, target.Pos) != 1 {
			continue
		}
		if !actor.SpendReaction() {
			continue
		}
		rc.log(battle.EventReaction, actor.ID, target.ID, actor.Name+" counters", nil)
		rc.resolveStrike(actor, target, battle.BasicAttack, battle.EventAttack)
	}
}
