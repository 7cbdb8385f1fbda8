package engine

import (
	"testing"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
	"github.com/walterdalec/hexfield/internal/rng"
)

func TestStatusTickDamageAndExpiry(t *testing.T) {
	st := testState(testBoard(6, 6))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 2, R: 2})
	u.Statuses = append(u.Statuses, battle.StatusEffect{
		ID: "poisoned", Name: "Poisoned", Category: battle.StatusDoT,
		Duration: 1, TickDamage: 4,
	})

	rc := newTestContext(st)
	rc.statusPhase()

	if u.HP != 26 {
		t.Fatalf("hp = %d, want 26 after one tick", u.HP)
	}
	if len(u.Statuses) != 0 {
		t.Fatalf("status survived past its duration: %v", u.Statuses)
	}
	var ticked, expired bool
	for _, e := range st.Log {
		if e.Type == battle.EventStatusTick {
			ticked = true
		}
		if e.Type == battle.EventStatusExpire {
			expired = true
		}
	}
	if !ticked || !expired {
		t.Fatalf("tick=%v expire=%v, want both logged", ticked, expired)
	}
}

func TestStatusDurationsDecrease(t *testing.T) {
	st := testState(testBoard(6, 6))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 2, R: 2})
	u.Statuses = append(u.Statuses,
		battle.StatusEffect{ID: "slowed", Category: battle.StatusSlow, Duration: 3},
		battle.StatusEffect{ID: "cursed", Category: battle.StatusDebuff, Permanent: true},
	)

	rc := newTestContext(st)
	rc.statusPhase()

	if len(u.Statuses) != 2 {
		t.Fatalf("status count = %d, want 2", len(u.Statuses))
	}
	if u.Statuses[0].Duration != 2 {
		t.Fatalf("duration = %d, want 2", u.Statuses[0].Duration)
	}
	if u.Statuses[1].Duration != 0 {
		t.Fatal("permanent status should not count down")
	}
}

func TestDotDeathFeedsMorale(t *testing.T) {
	st := testState(testBoard(6, 6))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 2, R: 2})
	u.HP = 3
	u.Statuses = append(u.Statuses, battle.StatusEffect{
		ID: "bleeding", Category: battle.StatusDoT, Duration: 5, TickDamage: 4,
	})

	rc := newTestContext(st)
	rc.statusPhase()

	if !u.Dead {
		t.Fatal("unit should have bled out")
	}
	if rc.casualties[battle.SideAttacker] != 1 {
		t.Fatalf("casualties = %d, want 1", rc.casualties[battle.SideAttacker])
	}
}

func TestDotAndHotSameTickApplyNet(t *testing.T) {
	st := testState(testBoard(6, 6))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 2, R: 2})
	u.HP = 3
	u.Statuses = append(u.Statuses,
		battle.StatusEffect{ID: "bleeding", Category: battle.StatusDoT, Duration: 2, TickDamage: 5},
		battle.StatusEffect{ID: "mending", Category: battle.StatusHoT, Duration: 2, TickHeal: 5},
	)

	rc := newTestContext(st)
	rc.statusPhase()

	if u.Dead {
		t.Fatal("net-zero tick must not kill")
	}
	if u.HP != 3 {
		t.Fatalf("hp = %d, want 3 when damage and heal cancel", u.HP)
	}
}

func TestHazardTileDamage(t *testing.T) {
	st := testState(testBoard(6, 6))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 2, R: 2})
	st.Board.MutateTile(u.Pos, func(tile *battle.Tile) { tile.Hazard = battle.HazardFire })

	rc := newTestContext(st)
	rc.statusPhase()

	if u.HP != 30-defaultHazardDamage[battle.HazardFire] {
		t.Fatalf("hp = %d after standing in fire", u.HP)
	}
}

func TestHazardOverrideTable(t *testing.T) {
	st := testState(testBoard(6, 6))
	u := addUnit(st, "a1", battle.SideAttacker, hexmap.Axial{Q: 2, R: 2})
	st.Board.MutateTile(u.Pos, func(tile *battle.Tile) { tile.Hazard = battle.HazardPoison })

	rc := newRoundContext(st, rng.NewManager(st.Seed), &battle.Catalog{}, map[battle.Hazard]int{battle.HazardPoison: 9})
	rc.statusPhase()

	if u.HP != 21 {
		t.Fatalf("hp = %d, want 21 with the override table", u.HP)
	}
}
