package battle

import "github.com/walterdalec/hexfield/internal/hexmap"

// Biome is the terrain class of a tile.
type Biome string

const (
	BiomeGrass  Biome = "grass"
	BiomeForest Biome = "forest"
	BiomeHills  Biome = "hills"
	BiomeMarsh  Biome = "marsh"
	BiomeRuin   Biome = "ruin"
	BiomeWater  Biome = "water"
)

// Cover is the defensive cover level a tile grants its occupant.
type Cover string

const (
	CoverNone Cover = "none"
	CoverLow  Cover = "low"
	CoverHigh Cover = "high"
)

// Hazard marks a tile that damages its occupant every Status phase.
type Hazard string

const (
	HazardNone     Hazard = ""
	HazardFire     Hazard = "fire"
	HazardPoison   Hazard = "poison"
	HazardPit      Hazard = "pit"
	HazardCaltrops Hazard = "caltrops"
)

// Tile is one board cell. Passable=false cells can never be entered.
type Tile struct {
	Pos       hexmap.Axial `json:"pos"`
	Biome     Biome        `json:"biome"`
	Height    int          `json:"height"`
	Cover     Cover        `json:"cover"`
	MoveCost  int          `json:"move_cost"`
	Passable  bool         `json:"passable"`
	BlocksLOS bool         `json:"blocks_los"`
	Hazard    Hazard       `json:"hazard"`
}

// Board is the battlefield. It is generated once before the battle and only
// mutated through MutateTile (terrain-altering spell effects).
type Board struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Tiles map[hexmap.Axial]*Tile `json:"tiles"`

	// Deployment lists per side and the rim hexes routed units retreat to.
	Deployment map[Side][]hexmap.Axial `json:"deployment"`
	Exits      []hexmap.Axial          `json:"exits"`
	Objectives map[string]hexmap.Axial `json:"objectives"`
}

// TileAt returns the tile at pos, or nil when off-board.
func (b *Board) TileAt(pos hexmap.Axial) *Tile {
	return b.Tiles[pos]
}

// IsPassable reports whether a unit may stand on pos.
func (b *Board) IsPassable(pos hexmap.Axial) bool {
	t := b.Tiles[pos]
	return t != nil && t.Passable
}

// BlocksSight reports whether pos interrupts line of sight.
func (b *Board) BlocksSight(pos hexmap.Axial) bool {
	t := b.Tiles[pos]
	return t != nil && t.BlocksLOS
}

// HeightAt returns the elevation at pos; off-board reads as 0.
func (b *Board) HeightAt(pos hexmap.Axial) int {
	if t := b.Tiles[pos]; t != nil {
		return t.Height
	}
	return 0
}

// MutateTile is the single mutation point for terrain-effect spells. The
// mutator receives the live tile; unknown positions are ignored.
func (b *Board) MutateTile(pos hexmap.Axial, mutate func(*Tile)) {
	if t := b.Tiles[pos]; t != nil {
		mutate(t)
	}
}
