package engine

import (
	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
)

// ValidateOrder stamps the order's validity flag, reason codes and declared
// AP cost against current state. Invalid orders are excluded from resolution
// wholesale; they never partially apply.
func ValidateOrder(st *battle.State, cat *battle.Catalog, o *battle.QueuedOrder) {
	o.Valid = false
	o.Reasons = nil

	actor := st.UnitByID(o.ActorID)
	if actor == nil {
		o.Reasons = append(o.Reasons, battle.ReasonUnknownActor)
		return
	}
	if !actor.Active() || actor.HasStatus(battle.StatusStun) {
		o.Reasons = append(o.Reasons, battle.ReasonActorCannotAct)
		return
	}

	switch o.Kind {
	case battle.OrderMove:
		validateMove(st, actor, o)
	case battle.OrderAttack, battle.OrderCast, battle.OrderAbility:
		validateStrike(st, cat, actor, o)
	case battle.OrderItem:
		validateItem(st, cat, actor, o)
	case battle.OrderGuard:
		o.APCost = 1
	case battle.OrderWait:
		o.APCost = 0
	case battle.OrderInteract:
		validateInteract(st, actor, o)
	default:
		o.Reasons = append(o.Reasons, battle.ReasonInvalidTarget)
	}

	if len(o.Reasons) == 0 && o.APCost > actor.AP {
		o.Reasons = append(o.Reasons, battle.ReasonInsufficientAP)
	}
	o.Valid = len(o.Reasons) == 0
}

func validateMove(st *battle.State, actor *battle.Unit, o *battle.QueuedOrder) {
	if actor.HasStatus(battle.StatusRoot) {
		o.Reasons = append(o.Reasons, battle.ReasonActorCannotAct)
		return
	}
	if len(o.Path) == 0 {
		// No explicit path: route with the board-aware cost function.
		o.Path = hexmap.FindPath(actor.Pos, o.Dest, moveCostFunc(st, actor))
		if o.Path == nil {
			o.Reasons = append(o.Reasons, battle.ReasonBadPath)
			return
		}
	}
	if o.Path[0] != actor.Pos || o.Path[len(o.Path)-1] != o.Dest {
		o.Reasons = append(o.Reasons, battle.ReasonBadPath)
		return
	}
	if !st.Board.IsPassable(o.Dest) {
		o.Reasons = append(o.Reasons, battle.ReasonImpassable)
		return
	}
	if st.IsOccupied(o.Dest, actor.ID) {
		o.Reasons = append(o.Reasons, battle.ReasonOccupied)
		return
	}
	cost, ok := pathAPCost(st, actor, o.Path)
	if !ok {
		o.Reasons = append(o.Reasons, battle.ReasonBadPath)
		return
	}
	o.APCost = cost
}

func validateStrike(st *battle.State, cat *battle.Catalog, actor *battle.Unit, o *battle.QueuedOrder) {
	ability := cat.AbilityByID(o.AbilityID)
	if ability == nil {
		o.Reasons = append(o.Reasons, battle.ReasonUnknownAbility)
		return
	}
	if o.Kind == battle.OrderCast && ability.Kind != battle.AbilitySpell {
		o.Reasons = append(o.Reasons, battle.ReasonUnknownAbility)
		return
	}
	target := st.UnitByID(o.TargetID)
	if target == nil || !target.Active() {
		o.Reasons = append(o.Reasons, battle.ReasonInvalidTarget)
		return
	}
	if hexmap.Distance(actor.Pos, target.Pos) > ability.Range {
		o.Reasons = append(o.Reasons, battle.ReasonOutOfRange)
	}
	if ability.Range > 1 && !hexmap.HasLineOfSight(actor.Pos, target.Pos, st.Board.BlocksSight) {
		o.Reasons = append(o.Reasons, battle.ReasonNoLineOfSight)
	}
	if ability.StaminaCost > actor.Stamina {
		o.Reasons = append(o.Reasons, battle.ReasonInsufficientSta)
	}
	o.APCost = ability.APCost
}

func validateItem(st *battle.State, cat *battle.Catalog, actor *battle.Unit, o *battle.QueuedOrder) {
	item := cat.ItemByID(o.ItemID)
	if item == nil {
		o.Reasons = append(o.Reasons, battle.ReasonUnknownItem)
		return
	}
	targetID := o.TargetID
	if targetID == "" || item.SelfOnly {
		targetID = actor.ID
	}
	target := st.UnitByID(targetID)
	if target == nil || !target.Active() || target.Side != actor.Side {
		o.Reasons = append(o.Reasons, battle.ReasonInvalidTarget)
		return
	}
	if target.ID != actor.ID && hexmap.Distance(actor.Pos, target.Pos) > 1 {
		o.Reasons = append(o.Reasons, battle.ReasonOutOfRange)
	}
	o.APCost = item.APCost
}

func validateInteract(st *battle.State, actor *battle.Unit, o *battle.QueuedOrder) {
	pos, ok := st.Board.Objectives[o.InteractID]
	if !ok {
		o.Reasons = append(o.Reasons, battle.ReasonInvalidTarget)
		return
	}
	if hexmap.Distance(actor.Pos, pos) > 1 {
		o.Reasons = append(o.Reasons, battle.ReasonOutOfRange)
		return
	}
	o.APCost = 2
}

// ValidateOrders stamps a whole round's order set, additionally rejecting
// every order after the first for the same actor.
func ValidateOrders(st *battle.State, cat *battle.Catalog, orders []*battle.QueuedOrder) {
	seen := make(map[string]bool, len(orders))
	for _, o := range orders {
		if seen[o.ActorID] {
			o.Valid = false
			o.Reasons = []battle.ReasonCode{battle.ReasonDuplicateOrder}
			continue
		}
		seen[o.ActorID] = true
		ValidateOrder(st, cat, o)
	}
}
