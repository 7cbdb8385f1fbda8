package engine

import (
	"time"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
	"github.com/walterdalec/hexfield/internal/rng"
)

func testBoard(width, height int) *battle.Board {
	b := &battle.Board{
		Width:      width,
		Height:     height,
		Tiles:      make(map[hexmap.Axial]*battle.Tile),
		Deployment: make(map[battle.Side][]hexmap.Axial),
		Objectives: make(map[string]hexmap.Axial),
	}
	for r := 0; r < height; r++ {
		for q := 0; q < width; q++ {
			pos := hexmap.Axial{Q: q, R: r}
			b.Tiles[pos] = &battle.Tile{Pos: pos, Biome: battle.BiomeGrass, MoveCost: 1, Passable: true}
		}
	}
	return b
}

func testState(board *battle.Board) *battle.State {
	st := battle.NewState("test", 1234, "field", board, 30)
	st.Phase = battle.PhaseOrders
	// Deterministic timestamps keep resolved log streams byte-comparable.
	base := time.Unix(1700000000, 0).UTC()
	n := 0
	st.Clock = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	}
	return st
}

func addUnit(st *battle.State, id string, side battle.Side, pos hexmap.Axial) *battle.Unit {
	u := &battle.Unit{
		ID: id, Side: side, Name: id, Pos: pos,
		HP: 30, MaxHP: 30, AP: 8, MaxAP: 8,
		Stamina: 10, MaxStamina: 10, Morale: 70,
		ReactionSlots: 1, InitiativeBase: 5,
		Stats: battle.Stats{Attack: 12, Defense: 6, Accuracy: 70, Evasion: 10, Crit: 5},
	}
	st.AddUnit(u)
	return u
}

func newTestContext(st *battle.State) *roundContext {
	return newRoundContext(st, rng.NewManager(st.Seed), &battle.Catalog{}, nil)
}
