package engine

import (
	"testing"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
)

func testCatalog() *battle.Catalog {
	return &battle.Catalog{
		Abilities: map[string]*battle.Ability{
			"bow": {ID: "bow", Name: "Bow", Kind: battle.AbilityWeapon, APCost: 3, Range: 3, MultiplierPct: 90},
			"firebolt": {
				ID: "firebolt", Name: "Firebolt", Kind: battle.AbilitySpell,
				APCost: 3, StaminaCost: 4, Range: 4, MultiplierPct: 120,
			},
		},
		Items: map[string]*battle.Item{
			"salve": {ID: "salve", Name: "Salve", APCost: 1, HealAmount: 8},
		},
	}
}

func hasReason(o *battle.QueuedOrder, r battle.ReasonCode) bool {
	for _, got := range o.Reasons {
		if got == r {
			return true
		}
	}
	return false
}

func TestValidateUnknownActor(t *testing.T) {
	st := testState(testBoard(8, 8))
	o := &battle.QueuedOrder{ActorID: "ghost", Kind: battle.OrderWait}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonUnknownActor) {
		t.Fatalf("valid=%v reasons=%v, want unknown_actor", o.Valid, o.Reasons)
	}
}

func TestValidateStunnedActorCannotAct(t *testing.T) {
	st := testState(testBoard(8, 8))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	u.Statuses = append(u.Statuses, battle.StatusEffect{ID: "stun", Category: battle.StatusStun, Duration: 1})

	o := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderAttack, TargetID: "a1"}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonActorCannotAct) {
		t.Fatalf("stunned actor validated: %v %v", o.Valid, o.Reasons)
	}
}

func TestValidateMoveAutoRoutesEmptyPath(t *testing.T) {
	st := testState(testBoard(8, 8))
	addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})

	o := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderMove, Dest: hexmap.Axial{Q: 3, R: 1}}
	ValidateOrder(st, testCatalog(), o)
	if !o.Valid {
		t.Fatalf("auto-routed move rejected: %v", o.Reasons)
	}
	if len(o.Path) == 0 || o.Path[0] != (hexmap.Axial{Q: 1, R: 1}) || o.Path[len(o.Path)-1] != o.Dest {
		t.Fatalf("bad auto path %v", o.Path)
	}
	if o.APCost != 2 {
		t.Fatalf("declared cost = %d, want 2", o.APCost)
	}
}

func TestValidateMoveOccupiedDestination(t *testing.T) {
	st := testState(testBoard(8, 8))
	addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 3, R: 1})

	o := &battle.QueuedOrder{
		ActorID: "a1", Kind: battle.OrderMove,
		Dest: hexmap.Axial{Q: 3, R: 1},
		Path: []hexmap.Axial{{Q: 1, R: 1}, {Q: 2, R: 1}, {Q: 3, R: 1}},
	}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonOccupied) {
		t.Fatalf("occupied destination validated: %v %v", o.Valid, o.Reasons)
	}
}

func TestValidateRootedUnitCannotMove(t *testing.T) {
	st := testState(testBoard(8, 8))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	u.Statuses = append(u.Statuses, battle.StatusEffect{ID: "root", Category: battle.StatusRoot, Duration: 2})

	o := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderMove, Dest: hexmap.Axial{Q: 2, R: 1}}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonActorCannotAct) {
		t.Fatalf("rooted move validated: %v %v", o.Valid, o.Reasons)
	}
}

func TestValidateAttackOutOfRange(t *testing.T) {
	st := testState(testBoard(10, 10))
	addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 6, R: 1})

	o := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderAttack, TargetID: "d1"}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonOutOfRange) {
		t.Fatalf("out-of-range attack validated: %v %v", o.Valid, o.Reasons)
	}
}

func TestValidateRangedAttackNeedsLineOfSight(t *testing.T) {
	st := testState(testBoard(10, 10))
	addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 4, R: 1})
	for _, wall := range []hexmap.Axial{{Q: 2, R: 1}, {Q: 3, R: 1}} {
		st.Board.MutateTile(wall, func(tile *battle.Tile) { tile.BlocksLOS = true })
	}

	o := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderAttack, TargetID: "d1", AbilityID: "bow"}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonNoLineOfSight) {
		t.Fatalf("blocked shot validated: %v %v", o.Valid, o.Reasons)
	}
}

func TestValidateCastRequiresSpell(t *testing.T) {
	st := testState(testBoard(8, 8))
	addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 2, R: 1})

	o := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderCast, TargetID: "d1", AbilityID: "bow"}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonUnknownAbility) {
		t.Fatalf("weapon cast validated: %v %v", o.Valid, o.Reasons)
	}
}

func TestValidateSpellStamina(t *testing.T) {
	st := testState(testBoard(8, 8))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 3, R: 1})
	u.Stamina = 2

	o := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderCast, TargetID: "d1", AbilityID: "firebolt"}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonInsufficientSta) {
		t.Fatalf("exhausted cast validated: %v %v", o.Valid, o.Reasons)
	}
}

func TestValidateInsufficientAP(t *testing.T) {
	st := testState(testBoard(8, 8))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 2, R: 1})
	u.AP = 1 // basic attack costs 2

	o := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderAttack, TargetID: "d1"}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonInsufficientAP) {
		t.Fatalf("unaffordable attack validated: %v %v", o.Valid, o.Reasons)
	}
}

func TestValidateItemOnDistantAlly(t *testing.T) {
	st := testState(testBoard(8, 8))
	addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	addUnit(st, "a2", battle.SideAttacker, hexmap.Axial{Q: 5, R: 1})

	o := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderItem, ItemID: "salve", TargetID: "a2"}
	ValidateOrder(st, testCatalog(), o)
	if o.Valid || !hasReason(o, battle.ReasonOutOfRange) {
		t.Fatalf("distant item use validated: %v %v", o.Valid, o.Reasons)
	}
}

func TestValidateOrdersRejectsDuplicates(t *testing.T) {
	st := testState(testBoard(8, 8))
	addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})

	first := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderWait}
	second := &battle.QueuedOrder{ActorID: "a1", Kind: battle.OrderGuard}
	ValidateOrders(st, testCatalog(), []*battle.QueuedOrder{first, second})
	if !first.Valid {
		t.Fatalf("first order rejected: %v", first.Reasons)
	}
	if second.Valid || !hasReason(second, battle.ReasonDuplicateOrder) {
		t.Fatalf("duplicate accepted: %v %v", second.Valid, second.Reasons)
	}
}
