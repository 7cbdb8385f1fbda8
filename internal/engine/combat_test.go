package engine

import (
	"testing"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
)

func TestHitChanceBasic(t *testing.T) {
	st := testState(testBoard(8, 8))
	atk := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	def := addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 2, R: 1})
	atk.Stats.Accuracy = 75
	def.Stats.Evasion = 10
	def.Facing = 0 // facing east, attacker to its east: front arc

	got := HitChance(st, atk, def, atk.Pos, ClassifyArc(st, def, atk.Pos))
	if got != 95 {
		t.Fatalf("hit chance = %d, want clamp(75+65) = 95", got)
	}
}

func TestHitChanceFloor(t *testing.T) {
	st := testState(testBoard(8, 8))
	atk := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	def := addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 2, R: 1})
	atk.Stats.Accuracy = 0
	def.Stats.Evasion = 200
	def.Facing = 0

	got := HitChance(st, atk, def, atk.Pos, ClassifyArc(st, def, atk.Pos))
	if got != 5 {
		t.Fatalf("hit chance = %d, want floor 5", got)
	}
}

func TestRearDamageBonus(t *testing.T) {
	st := testState(testBoard(8, 8))
	atk := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	def := addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 2, R: 1})
	atk.Stats.Attack = 20
	def.Stats.Defense = 10
	// Defender faces east; the attacker at its west is directly behind.
	def.Facing = 0

	arc := ClassifyArc(st, def, hexmap.Axial{Q: 1, R: 1})
	if arc != ArcRear {
		t.Fatalf("arc = %v, want rear", arc)
	}
	got := DamageAmount(atk, def, 100, arc, false, 1.0)
	if got != 12 {
		t.Fatalf("rear damage = %d, want floor(10*1.25) = 12", got)
	}
}

func TestDamageFloorsAtOne(t *testing.T) {
	st := testState(testBoard(8, 8))
	atk := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	def := addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 2, R: 1})
	atk.Stats.Attack = 1
	def.Stats.Defense = 50
	if got := DamageAmount(atk, def, 100, ArcFront, false, 1.0); got != 1 {
		t.Fatalf("damage = %d, want floor of 1", got)
	}
}

func TestArcClassification(t *testing.T) {
	st := testState(testBoard(10, 10))
	def := addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 4, R: 4})
	def.Facing = 0 // east

	cases := []struct {
		from hexmap.Axial
		want ArcClass
	}{
		{hexmap.Axial{Q: 5, R: 4}, ArcFront}, // dead ahead
		{hexmap.Axial{Q: 4, R: 5}, ArcFront}, // one step off facing
		{hexmap.Axial{Q: 3, R: 4}, ArcRear},  // directly behind
		{hexmap.Axial{Q: 3, R: 5}, ArcSide},  // two steps off facing
	}
	for _, tc := range cases {
		if got := ClassifyArc(st, def, tc.from); got != tc.want {
			t.Errorf("arc from %v = %v, want %v", tc.from, got, tc.want)
		}
	}
}

func TestIsFlankedByRearHostile(t *testing.T) {
	st := testState(testBoard(10, 10))
	def := addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 4, R: 4})
	def.Facing = 0
	addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 3, R: 4}) // rear

	if !IsFlanked(st, def) {
		t.Fatal("hostile in rear arc must flank")
	}
}

func TestIsFlankedBySqueeze(t *testing.T) {
	st := testState(testBoard(10, 10))
	def := addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 4, R: 4})
	def.Facing = 0
	// Left-relative (facing+2 = SW) and right-relative (facing-2 = NW)
	// neighbors occupied simultaneously.
	addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 3, R: 5})
	addUnit(st, "a2", battle.SideAttacker, hexmap.Axial{Q: 4, R: 3})

	if !IsFlanked(st, def) {
		t.Fatal("hostiles on both relative sides must flank")
	}
}

func TestCoverAndElevationCap(t *testing.T) {
	st := testState(testBoard(8, 8))
	atk := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	def := addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 2, R: 1})
	atk.Stats.Accuracy = 50
	def.Stats.Evasion = 50
	def.Facing = 0

	// High cover on an elevated tile: 20 + 10 stays within the cap, so the
	// chance drops by exactly 30 from the base 75.
	st.Board.MutateTile(def.Pos, func(tile *battle.Tile) {
		tile.Cover = battle.CoverHigh
		tile.Height = 2
	})
	got := HitChance(st, atk, def, atk.Pos, ArcFront)
	if got != 75-30 {
		t.Fatalf("hit chance = %d, want 45", got)
	}
}

func TestResolveStrikeAppliesDamageDeterministically(t *testing.T) {
	st := testState(testBoard(8, 8))
	atk := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 1, R: 1})
	def := addUnit(st, "d1", battle.SideDefender, hexmap.Axial{Q: 2, R: 1})
	atk.Stats.Accuracy = 200 // force the clamp ceiling
	def.Facing = 0

	rc := newTestContext(st)
	hpBefore := def.HP
	// The ceiling is 95, so a miss is possible; drive draws until the log
	// records an outcome and assert it was consistent.
	rc.resolveStrike(atk, def, battle.BasicAttack, battle.EventAttack)
	hit := false
	for _, e := range st.Log {
		if e.Type == battle.EventDamage {
			hit = true
		}
	}
	if hit && def.HP >= hpBefore {
		t.Fatal("damage event logged but hp unchanged")
	}
	if !hit && def.HP != hpBefore {
		t.Fatal("miss logged but hp changed")
	}
}
