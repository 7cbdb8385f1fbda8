package engine

import (
	"math"
	"sort"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
	"github.com/walterdalec/hexfield/internal/rng"
)

// ArcClass is the positional classification of an attacker relative to the
// defender's facing.
type ArcClass int

const (
	ArcFront ArcClass = iota
	ArcSide
	ArcFlanked
	ArcRear
)

// ClassifyArc resolves the attack arc by exact hex-direction stepping: the
// rotation distance between the defender's facing and the direction from
// defender to attacker. <=1 is front, 3 is directly behind, otherwise side.
// A side attack upgrades to flanked when the defender is surrounded per
// IsFlanked.
func ClassifyArc(st *battle.State, defender *battle.Unit, attackerPos hexmap.Axial) ArcClass {
	turn := hexmap.TurnDistance(defender.Facing, hexmap.DirectionTo(defender.Pos, attackerPos))
	switch {
	case turn <= 1:
		return ArcFront
	case turn == 3:
		return ArcRear
	default:
		if IsFlanked(st, defender) {
			return ArcFlanked
		}
		return ArcSide
	}
}

// IsFlanked reports the aggregate flank condition, independent of any single
// attacker: hostiles adjacent on both the defender's left- and right-relative
// directions at once, or any hostile in its rear arc.
func IsFlanked(st *battle.State, defender *battle.Unit) bool {
	left, right := false, false
	for _, h := range st.AdjacentEnemies(defender) {
		turnL := hexmap.TurnDistance(defender.Facing+2, hexmap.DirectionTo(defender.Pos, h.Pos))
		turnR := hexmap.TurnDistance(defender.Facing-2, hexmap.DirectionTo(defender.Pos, h.Pos))
		if hexmap.TurnDistance(defender.Facing, hexmap.DirectionTo(defender.Pos, h.Pos)) == 3 {
			return true
		}
		if turnL == 0 {
			left = true
		}
		if turnR == 0 {
			right = true
		}
	}
	return left && right
}

func arcHitBonus(arc ArcClass) int {
	switch arc {
	case ArcSide:
		return hitBonusSide
	case ArcFlanked:
		return hitBonusFlanked
	case ArcRear:
		return hitBonusRear
	}
	return 0
}

func arcDamageBonusPct(arc ArcClass) int {
	switch arc {
	case ArcSide:
		return dmgBonusSide
	case ArcFlanked:
		return dmgBonusFlanked
	case ArcRear:
		return dmgBonusRear
	}
	return 0
}

func arcCritBonus(arc ArcClass) int {
	switch arc {
	case ArcSide:
		return critBonusSide
	case ArcFlanked:
		return critBonusFlanked
	case ArcRear:
		return critBonusRear
	}
	return 0
}

func coverPenalty(c battle.Cover) int {
	switch c {
	case battle.CoverLow:
		return coverPenaltyLow
	case battle.CoverHigh:
		return coverPenaltyHigh
	}
	return 0
}

// HitChance computes the clamped chance to hit for an attacker striking the
// defender from attackerPos. Exposed for the simulation's what-if callers.
func HitChance(st *battle.State, attacker, defender *battle.Unit, attackerPos hexmap.Axial, arc ArcClass) int {
	acc := attacker.Stats.Accuracy + attacker.StatModifier("accuracy")
	eva := defender.Stats.Evasion + defender.StatModifier("evasion")

	atkH := st.Board.HeightAt(attackerPos)
	defH := st.Board.HeightAt(defender.Pos)
	attackerElev := 0
	defenderElev := 0
	if atkH > defH {
		attackerElev = elevationHitBonus
	} else if atkH < defH {
		defenderElev = elevationHitBonus
	}
	cover := 0
	if t := st.Board.TileAt(defender.Pos); t != nil {
		cover = coverPenalty(t.Cover)
	}
	// Defender-side elevation and cover never stack past the cap.
	defenderBonus := defenderElev + cover
	if defenderBonus > defenderBonusCap {
		defenderBonus = defenderBonusCap
	}

	statusAdj := attacker.StatusAccuracyShift() + defender.StatusEvasionShift()

	chance := hitChanceBase + (acc - eva) + arcHitBonus(arc) + attackerElev - defenderBonus + statusAdj
	return clampInt(chance, hitChanceFloor, hitChanceCeil)
}

// CritChance computes the clamped critical chance including positional
// bonuses.
func CritChance(attacker, defender *battle.Unit, arc ArcClass) int {
	crit := attacker.Stats.Crit + attacker.StatModifier("crit") + arcCritBonus(arc)
	resist := defender.Stats.CritResist + defender.StatModifier("crit_resist")
	return clampInt(crit-resist, 0, critChanceCeil)
}

// DamageAmount applies the damage formula: (attack - defense) scaled by the
// ability multiplier plus the positional adder, the crit factor and the
// variance draw, floored at 1.
func DamageAmount(attacker, defender *battle.Unit, multiplierPct int, arc ArcClass, crit bool, variance float64) int {
	atk := attacker.Stats.Attack + attacker.StatModifier("attack")
	def := defender.Stats.Defense + defender.StatModifier("defense")
	mult := float64(multiplierPct+arcDamageBonusPct(arc)) / 100.0
	factor := 1.0
	if crit {
		factor = critDamageFactor
	}
	dmg := int(math.Floor(float64(atk-def) * mult * factor * variance))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// resolveStrike runs one full attack resolution: hit roll, crit roll, damage
// and status attachment, logging every outcome.
func (rc *roundContext) resolveStrike(attacker, defender *battle.Unit, ability *battle.Ability, event battle.EventType) {
	arc := ClassifyArc(rc.st, defender, attacker.Pos)
	chance := HitChance(rc.st, attacker, defender, attacker.Pos, arc)

	if !rc.rnd.Stream(rng.StreamHit).Percent(chance) {
		rc.log(battle.EventMiss, attacker.ID, defender.ID, attacker.Name+" misses "+defender.Name, map[string]interface{}{
			"ability": ability.ID,
			"chance":  chance,
		})
		return
	}

	crit := rc.rnd.Stream(rng.StreamCrit).Percent(CritChance(attacker, defender, arc))
	variance := rc.rnd.Stream(rng.StreamDamage).Uniform(0.9, 1.1)
	dmg := DamageAmount(attacker, defender, ability.MultiplierPct, arc, crit, variance)

	if crit {
		rc.log(battle.EventCrit, attacker.ID, defender.ID, attacker.Name+" lands a critical hit", nil)
	}
	wasAlive := defender.Alive()
	defender.ApplyDamage(dmg)
	rc.log(event, attacker.ID, defender.ID, attacker.Name+" hits "+defender.Name, map[string]interface{}{
		"ability": ability.ID,
		"damage":  dmg,
		"crit":    crit,
		"arc":     int(arc),
	})
	rc.log(battle.EventDamage, attacker.ID, defender.ID, defender.Name+" takes damage", map[string]interface{}{
		"amount": dmg,
		"hp":     defender.HP,
	})

	if wasAlive && defender.Dead {
		rc.recordDeath(defender, attacker.ID)
		return
	}

	if ability.Status != nil && rc.rnd.Stream(rng.StreamStatus).Percent(ability.Status.Chance) {
		defender.Statuses = append(defender.Statuses, ability.Status.Effect(attacker.ID))
		rc.log(battle.EventStatusApply, attacker.ID, defender.ID, defender.Name+" suffers "+ability.Status.Name, map[string]interface{}{
			"status": ability.Status.ID,
		})
	}

	// A guarded defender answers melee hits with a counter in the reaction
	// phase.
	if defender.HasStatus(battle.StatusTaunt) || defender.HasGuardStance() {
		if hexmap.Distance(attacker.Pos, defender.Pos) == 1 && defender.HasReaction() {
			rc.reactions = append(rc.reactions, queuedReaction{actorID: defender.ID, targetID: attacker.ID})
		}
	}
}

// opportunityAttack is the free strike a zone-of-control holder makes
// against a disengaging mover, using the basic attack profile.
func (rc *roundContext) opportunityAttack(holder, mover *battle.Unit) {
	rc.resolveStrike(holder, mover, battle.BasicAttack, battle.EventOpportunity)
}

// actionsPhase resolves attack, cast, ability, item, guard, wait and
// interact orders against the post-movement board, sorted purely by
// this-round initiative roll descending with unit id as tiebreak.
func (rc *roundContext) actionsPhase(orders []*battle.QueuedOrder) {
	acts := make([]*battle.QueuedOrder, 0, len(orders))
	for _, o := range orders {
		if o.Valid && o.Kind != battle.OrderMove {
			acts = append(acts, o)
		}
	}
	sort.SliceStable(acts, func(i, j int) bool {
		ua, ub := rc.st.UnitByID(acts[i].ActorID), rc.st.UnitByID(acts[j].ActorID)
		ra, rb := 0, 0
		if ua != nil {
			ra = ua.InitiativeRoll
		}
		if ub != nil {
			rb = ub.InitiativeRoll
		}
		if ra != rb {
			return ra > rb
		}
		return acts[i].ActorID < acts[j].ActorID
	})

	for _, o := range acts {
		rc.executeAction(o)
	}
}

func (rc *roundContext) executeAction(o *battle.QueuedOrder) {
	actor := rc.st.UnitByID(o.ActorID)
	if actor == nil || !actor.Active() {
		rc.defect(o.ActorID, "validated actor vanished before resolution")
		return
	}

	switch o.Kind {
	case battle.OrderAttack, battle.OrderCast, battle.OrderAbility:
		rc.executeStrikeOrder(actor, o)
	case battle.OrderItem:
		rc.executeItemOrder(actor, o)
	case battle.OrderGuard:
		actor.SpendAP(o.APCost)
		actor.EnterGuardStance()
		rc.log(battle.EventGuard, actor.ID, "", actor.Name+" braces", nil)
	case battle.OrderWait:
		actor.NextInitBonus = actor.AP
		rc.log(battle.EventWait, actor.ID, "", actor.Name+" holds position", map[string]interface{}{
			"banked_ap": actor.AP,
		})
	case battle.OrderInteract:
		rc.executeInteractOrder(actor, o)
	}
	actor.HasActed = true
}

func (rc *roundContext) executeStrikeOrder(actor *battle.Unit, o *battle.QueuedOrder) {
	ability := rc.cat.AbilityByID(o.AbilityID)
	if ability == nil {
		rc.defect(actor.ID, "validated ability missing from catalog")
		return
	}
	target := rc.st.UnitByID(o.TargetID)
	if target == nil || !target.Active() {
		// Target died or fled earlier this round: consume nothing, move on.
		rc.defect(actor.ID, "validated target no longer eligible")
		return
	}
	if hexmap.Distance(actor.Pos, target.Pos) > ability.Range {
		// Post-movement board moved the target out of reach.
		rc.log(battle.EventMiss, actor.ID, target.ID, actor.Name+" finds "+target.Name+" out of reach", nil)
		actor.SpendAP(o.APCost)
		return
	}
	actor.SpendAP(o.APCost)
	if ability.StaminaCost > 0 {
		actor.Stamina -= ability.StaminaCost
		if actor.Stamina < 0 {
			actor.Stamina = 0
		}
	}
	rc.resolveStrike(actor, target, ability, battle.EventAttack)
}

func (rc *roundContext) executeItemOrder(actor *battle.Unit, o *battle.QueuedOrder) {
	item := rc.cat.ItemByID(o.ItemID)
	if item == nil {
		rc.defect(actor.ID, "validated item missing from catalog")
		return
	}
	targetID := o.TargetID
	if targetID == "" || item.SelfOnly {
		targetID = actor.ID
	}
	target := rc.st.UnitByID(targetID)
	if target == nil || !target.Active() {
		rc.defect(actor.ID, "validated item target no longer eligible")
		return
	}
	actor.SpendAP(o.APCost)
	if item.HealAmount > 0 {
		target.Heal(item.HealAmount)
		rc.log(battle.EventHeal, actor.ID, target.ID, target.Name+" is restored", map[string]interface{}{
			"item":   item.ID,
			"amount": item.HealAmount,
			"hp":     target.HP,
		})
	}
	if item.Status != nil && rc.rnd.Stream(rng.StreamStatus).Percent(item.Status.Chance) {
		target.Statuses = append(target.Statuses, item.Status.Effect(actor.ID))
		rc.log(battle.EventStatusApply, actor.ID, target.ID, target.Name+" gains "+item.Status.Name, map[string]interface{}{
			"status": item.Status.ID,
		})
	}
}

func (rc *roundContext) executeInteractOrder(actor *battle.Unit, o *battle.QueuedOrder) {
	for _, obj := range rc.st.Objectives {
		if obj.ID != o.InteractID || obj.Completed || obj.Failed {
			continue
		}
		if obj.Side != actor.Side {
			continue
		}
		actor.SpendAP(o.APCost)
		obj.Progress++
		if obj.Progress >= obj.Target {
			obj.Completed = true
		}
		rc.log(battle.EventInteract, actor.ID, "", actor.Name+" works the objective", map[string]interface{}{
			"objective": obj.ID,
			"progress":  obj.Progress,
			"target":    obj.Target,
		})
		return
	}
	rc.defect(actor.ID, "validated interact objective not available")
}
