package boardgen

import (
	"encoding/json"
	"testing"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
)

func TestGenerateIsDeterministic(t *testing.T) {
	g := DefaultGenerator()
	b1, err := g.Generate(42, "field")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b2, err := g.Generate(42, "field")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	raw1, _ := json.Marshal(b1)
	raw2, _ := json.Marshal(b2)
	if string(raw1) != string(raw2) {
		t.Fatal("same seed and kind produced different boards")
	}

	b3, err := g.Generate(43, "field")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	raw3, _ := json.Marshal(b3)
	if string(raw1) == string(raw3) {
		t.Fatal("different seeds produced identical boards")
	}
}

func TestGenerateReturnsIndependentCopies(t *testing.T) {
	g := DefaultGenerator()
	b1, _ := g.Generate(7, "field")
	b2, _ := g.Generate(7, "field")

	pos := hexmap.Axial{Q: 3, R: 3}
	b1.MutateTile(pos, func(tile *battle.Tile) { tile.Height = 99 })
	if b2.TileAt(pos).Height == 99 {
		t.Fatal("two Generate calls share tile storage")
	}
}

func TestDeploymentZonesAreUsable(t *testing.T) {
	g := DefaultGenerator()
	for _, kind := range g.Kinds() {
		b, err := g.Generate(1234, kind)
		if err != nil {
			t.Fatalf("generate %s: %v", kind, err)
		}
		for _, side := range []battle.Side{battle.SideAttacker, battle.SideDefender} {
			zone := b.Deployment[side]
			if len(zone) == 0 {
				t.Fatalf("%s: empty %s deployment zone", kind, side)
			}
			for _, pos := range zone {
				tile := b.TileAt(pos)
				if tile == nil || !tile.Passable {
					t.Fatalf("%s: deployment hex %v not passable", kind, pos)
				}
				if tile.Hazard != battle.HazardNone {
					t.Fatalf("%s: deployment hex %v carries a hazard", kind, pos)
				}
			}
		}
		if len(b.Exits) == 0 {
			t.Fatalf("%s: no retreat edge", kind)
		}
		if _, ok := b.Objectives["center"]; !ok {
			t.Fatalf("%s: missing center objective marker", kind)
		}
	}
}

func TestUnknownKindRejected(t *testing.T) {
	g := DefaultGenerator()
	if _, err := g.Generate(1, "void"); err == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestParseKindsValidation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", "kinds: []"},
		{"no name", "kinds:\n  - width: 8\n    height: 8\n    biome_weights: {grass: 1}"},
		{"duplicate", "kinds:\n  - {name: a, width: 8, height: 8, biome_weights: {grass: 1}}\n  - {name: a, width: 8, height: 8, biome_weights: {grass: 1}}"},
		{"tiny", "kinds:\n  - {name: a, width: 2, height: 8, biome_weights: {grass: 1}}"},
		{"hazard pct without hazards", "kinds:\n  - {name: a, width: 8, height: 8, biome_weights: {grass: 1}, hazard_pct: 5}"},
	}
	for _, tc := range cases {
		if _, err := ParseKinds([]byte(tc.raw)); err == nil {
			t.Errorf("%s: bad kind table accepted", tc.name)
		}
	}
}
