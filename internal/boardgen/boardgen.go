// Package boardgen produces battlefields deterministically from a seed and a
// named board kind. Kind tuning tables (dimensions, biome weights, cover and
// hazard densities) are authored in YAML; the built-in set ships embedded and
// an operator file can replace it wholesale.
package boardgen

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
	"github.com/walterdalec/hexfield/internal/rng"
)

//go:embed kinds.yaml
var builtinKindsYAML []byte

// KindSpec is one board kind's tuning table.
type KindSpec struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	BiomeWeights map[string]int `yaml:"biome_weights"`

	MaxHeight int `yaml:"max_height"`
	RaisedPct int `yaml:"raised_pct"`

	CoverLowPct  int `yaml:"cover_low_pct"`
	CoverHighPct int `yaml:"cover_high_pct"`
	BlockedPct   int `yaml:"blocked_pct"`

	HazardPct int      `yaml:"hazard_pct"`
	Hazards   []string `yaml:"hazards"`
}

type kindFile struct {
	Kinds []KindSpec `yaml:"kinds"`
}

// ParseKinds decodes and validates a kind table document.
func ParseKinds(raw []byte) ([]KindSpec, error) {
	var f kindFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("boardgen: failed to parse kind table: %w", err)
	}
	if len(f.Kinds) == 0 {
		return nil, fmt.Errorf("boardgen: kind table defines no kinds")
	}
	seen := make(map[string]struct{}, len(f.Kinds))
	for _, k := range f.Kinds {
		if k.Name == "" {
			return nil, fmt.Errorf("boardgen: kind entry missing 'name'")
		}
		if _, dup := seen[k.Name]; dup {
			return nil, fmt.Errorf("boardgen: duplicate kind %q", k.Name)
		}
		seen[k.Name] = struct{}{}
		if k.Width < 4 || k.Height < 4 {
			return nil, fmt.Errorf("boardgen: kind %q smaller than 4x4", k.Name)
		}
		if len(k.BiomeWeights) == 0 {
			return nil, fmt.Errorf("boardgen: kind %q has no biome weights", k.Name)
		}
		if k.HazardPct > 0 && len(k.Hazards) == 0 {
			return nil, fmt.Errorf("boardgen: kind %q rolls hazards but lists none", k.Name)
		}
	}
	return f.Kinds, nil
}

// LoadKinds reads a kind table from disk.
func LoadKinds(path string) ([]KindSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("boardgen: failed to read kind table %s: %w", path, err)
	}
	return ParseKinds(raw)
}

// Generator builds boards from its kind table. Concurrent requests for the
// same (kind, seed) pair are collapsed into one build; every caller still
// receives an independent board copy.
type Generator struct {
	kinds map[string]KindSpec
	sf    singleflight.Group
}

// NewGenerator builds a generator around a parsed kind table.
func NewGenerator(kinds []KindSpec) *Generator {
	m := make(map[string]KindSpec, len(kinds))
	for _, k := range kinds {
		m[k.Name] = k
	}
	return &Generator{kinds: m}
}

// DefaultGenerator returns a generator loaded with the embedded kind table.
func DefaultGenerator() *Generator {
	kinds, err := ParseKinds(builtinKindsYAML)
	if err != nil {
		// The embedded table is part of the build; a parse failure is a
		// packaging error, not a runtime condition.
		panic(err)
	}
	return NewGenerator(kinds)
}

// Kinds lists the available kind names, sorted.
func (g *Generator) Kinds() []string {
	out := make([]string, 0, len(g.kinds))
	for name := range g.kinds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HasKind reports whether the named kind exists.
func (g *Generator) HasKind(name string) bool {
	_, ok := g.kinds[name]
	return ok
}

// Generate builds the board for (seed, kind). The same pair always yields the
// same board.
func (g *Generator) Generate(seed int64, kind string) (*battle.Board, error) {
	key := kind + ":" + strconv.FormatInt(seed, 10)
	v, err, _ := g.sf.Do(key, func() (interface{}, error) {
		b, err := g.build(seed, kind)
		if err != nil {
			return nil, err
		}
		return json.Marshal(b)
	})
	if err != nil {
		return nil, err
	}
	// Decode a private copy so deduplicated callers never share tiles.
	var board battle.Board
	if err := json.Unmarshal(v.([]byte), &board); err != nil {
		return nil, fmt.Errorf("boardgen: failed to decode board blueprint: %w", err)
	}
	return &board, nil
}

func (g *Generator) build(seed int64, kind string) (*battle.Board, error) {
	spec, ok := g.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("boardgen: unknown board kind %q", kind)
	}

	// One named stream keeps terrain draws independent from any other use of
	// the seed.
	stream := rng.NewManager(seed).Stream("terrain")

	// Weighted selection needs a stable order; maps do not iterate stably.
	biomes := make([]string, 0, len(spec.BiomeWeights))
	for name := range spec.BiomeWeights {
		biomes = append(biomes, name)
	}
	sort.Strings(biomes)
	weights := make([]int, len(biomes))
	for i, name := range biomes {
		weights[i] = spec.BiomeWeights[name]
	}

	board := &battle.Board{
		Width:      spec.Width,
		Height:     spec.Height,
		Tiles:      make(map[hexmap.Axial]*battle.Tile, spec.Width*spec.Height),
		Deployment: make(map[battle.Side][]hexmap.Axial),
		Objectives: make(map[string]hexmap.Axial),
	}

	for r := 0; r < spec.Height; r++ {
		for q := 0; q < spec.Width; q++ {
			pos := hexmap.Axial{Q: q, R: r}
			board.Tiles[pos] = g.rollTile(stream, spec, pos, biomes, weights)
		}
	}

	g.carveDeployment(board, spec)
	g.placeObjective(board, spec)
	return board, nil
}

func (g *Generator) rollTile(stream *rng.Stream, spec KindSpec, pos hexmap.Axial, biomes []string, weights []int) *battle.Tile {
	t := &battle.Tile{
		Pos:      pos,
		Biome:    battle.Biome(biomes[stream.Weighted(weights)]),
		MoveCost: 1,
		Passable: true,
	}

	switch t.Biome {
	case battle.BiomeWater:
		t.Passable = false
	case battle.BiomeForest:
		t.MoveCost = 2
	case battle.BiomeMarsh:
		t.MoveCost = 2
	}

	if t.Passable && stream.Percent(spec.BlockedPct) {
		t.Passable = false
		t.BlocksLOS = true
	}
	if t.Passable {
		if stream.Percent(spec.RaisedPct) && spec.MaxHeight > 0 {
			t.Height = stream.Range(1, spec.MaxHeight)
		}
		if t.Biome == battle.BiomeHills && t.Height == 0 {
			t.Height = 1
		}
		if stream.Percent(spec.CoverHighPct) {
			t.Cover = battle.CoverHigh
		} else if stream.Percent(spec.CoverLowPct) {
			t.Cover = battle.CoverLow
		} else {
			t.Cover = battle.CoverNone
		}
		if t.Biome == battle.BiomeForest && t.Cover == battle.CoverHigh {
			t.BlocksLOS = true
		}
		if stream.Percent(spec.HazardPct) {
			t.Hazard = battle.Hazard(spec.Hazards[stream.IntN(len(spec.Hazards))])
		}
	}
	return t
}

// carveDeployment reserves the two westmost columns for the attacker and the
// two eastmost for the defender, flattening them so every roster always fits,
// and marks the west rim as the retreat edge.
func (g *Generator) carveDeployment(board *battle.Board, spec KindSpec) {
	clear := func(pos hexmap.Axial) {
		board.MutateTile(pos, func(t *battle.Tile) {
			t.Passable = true
			t.BlocksLOS = false
			t.Hazard = battle.HazardNone
			t.MoveCost = 1
		})
	}
	for r := 0; r < spec.Height; r++ {
		for q := 0; q < 2; q++ {
			pos := hexmap.Axial{Q: q, R: r}
			clear(pos)
			board.Deployment[battle.SideAttacker] = append(board.Deployment[battle.SideAttacker], pos)
		}
		for q := spec.Width - 2; q < spec.Width; q++ {
			pos := hexmap.Axial{Q: q, R: r}
			clear(pos)
			board.Deployment[battle.SideDefender] = append(board.Deployment[battle.SideDefender], pos)
		}
		board.Exits = append(board.Exits, hexmap.Axial{Q: 0, R: r})
	}
}

func (g *Generator) placeObjective(board *battle.Board, spec KindSpec) {
	center := hexmap.Axial{Q: spec.Width / 2, R: spec.Height / 2}
	board.MutateTile(center, func(t *battle.Tile) {
		t.Passable = true
		t.Hazard = battle.HazardNone
	})
	board.Objectives["center"] = center
}
