package hexmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Axial represents axial coordinates (q, r) for pointy-top orientation.
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// MarshalText encodes the coordinate as "q,r" so axial values can serve as
// JSON map keys.
func (a Axial) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(a.Q) + "," + strconv.Itoa(a.R)), nil
}

// UnmarshalText parses the "q,r" form produced by MarshalText.
func (a *Axial) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ",")
	if len(parts) != 2 {
		return fmt.Errorf("hexmap: malformed axial coordinate %q", text)
	}
	q, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("hexmap: malformed axial coordinate %q", text)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("hexmap: malformed axial coordinate %q", text)
	}
	a.Q, a.R = q, r
	return nil
}

// Cube represents cube coordinates (x, y, z) with x+y+z=0.
type Cube struct {
	X int
	Y int
	Z int
}

// Facing is one of the six hex directions, indexed clockwise with 0 = east.
type Facing int

// Directions enumerates the six axial neighbor offsets in fixed clockwise
// order starting at east. Facing values index into this table.
var Directions = [6]Axial{
	{+1, 0},  // 0: E
	{0, +1},  // 1: SE
	{-1, +1}, // 2: SW
	{-1, 0},  // 3: W
	{0, -1},  // 4: NW
	{+1, -1}, // 5: NE
}

// Add returns a+b in axial space.
func (a Axial) Add(b Axial) Axial { return Axial{a.Q + b.Q, a.R + b.R} }

// Sub returns a-b in axial space.
func (a Axial) Sub(b Axial) Axial { return Axial{a.Q - b.Q, a.R - b.R} }

// Mul scales an axial vector by k.
func (a Axial) Mul(k int) Axial { return Axial{a.Q * k, a.R * k} }

// Neighbor returns the adjacent hex in the given direction.
func (a Axial) Neighbor(dir Facing) Axial { return a.Add(Directions[dir.Norm()]) }

// Neighbors returns the six adjacent hexes in clockwise order.
func (a Axial) Neighbors() [6]Axial {
	var out [6]Axial
	for i, d := range Directions {
		out[i] = a.Add(d)
	}
	return out
}

// ToCube converts axial to cube.
func (a Axial) ToCube() Cube {
	x := a.Q
	z := a.R
	return Cube{X: x, Y: -x - z, Z: z}
}

// ToAxial converts cube to axial.
func (c Cube) ToAxial() Axial { return Axial{Q: c.X, R: c.Z} }

// Distance returns the hex distance between two axial coordinates.
func Distance(a, b Axial) int {
	return DistanceCube(a.ToCube(), b.ToCube())
}

// DistanceCube returns hex distance between two cube coordinates.
func DistanceCube(a, b Cube) int {
	dx := absInt(a.X - b.X)
	dy := absInt(a.Y - b.Y)
	dz := absInt(a.Z - b.Z)
	if dx >= dy && dx >= dz {
		return dx
	}
	if dy >= dz {
		return dy
	}
	return dz
}

// Norm wraps a facing into [0, 6).
func (f Facing) Norm() Facing { return Facing(((int(f) % 6) + 6) % 6) }

// Opposite returns the facing pointing the other way.
func (f Facing) Opposite() Facing { return (f + 3).Norm() }

// TurnDistance returns the minimal number of one-step rotations between two
// facings, always in [0, 3].
func TurnDistance(a, b Facing) int {
	d := absInt(int(a.Norm()) - int(b.Norm()))
	if d > 3 {
		d = 6 - d
	}
	return d
}

// DirectionTo returns the hex direction that dominates the vector from `from`
// to `to`. Exact cube-space stepping is used, so arc classification anywhere
// in the engine agrees with this single definition. from==to yields east.
func DirectionTo(from, to Axial) Facing {
	if from == to {
		return 0
	}
	tc := to.ToCube()
	best := Facing(0)
	bestDist := -1
	for i := range Directions {
		// Project one step in each direction, keep the one that closes the
		// most cube distance; ties resolve to the lower index for stability.
		d := DistanceCube(from.Neighbor(Facing(i)).ToCube(), tc)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = Facing(i)
		}
	}
	return best
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
