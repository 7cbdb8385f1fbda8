package hexmap

import "math"

// Ring returns exactly the hexes at distance k from center. k=0 yields the
// center itself; k>0 yields 6k hexes walked clockwise from the west corner.
func Ring(center Axial, k int) []Axial {
	if k <= 0 {
		return []Axial{center}
	}
	out := make([]Axial, 0, 6*k)
	// Start k steps out in direction 4 (NW corner of the ring), then walk
	// each of the six sides. Walking side i uses direction i.
	cur := center.Add(Directions[4].Mul(k))
	for side := 0; side < 6; side++ {
		for step := 0; step < k; step++ {
			out = append(out, cur)
			cur = cur.Neighbor(Facing(side))
		}
	}
	return out
}

// Blast returns the filled disk of all hexes at distance <= radius from
// center, center included.
func Blast(center Axial, radius int) []Axial {
	if radius < 0 {
		return nil
	}
	out := make([]Axial, 0, 1+3*radius*(radius+1))
	for k := 0; k <= radius; k++ {
		out = append(out, Ring(center, k)...)
	}
	return out
}

// Cone walks `length` hexes from origin along `direction`, unioning each axis
// hex with its lateral neighbors up to `width` spread per side. The blocked
// predicate truncates the cone: the walk stops before the first blocking axis
// hex and blocked lateral hexes are skipped. The origin is not included.
func Cone(origin Axial, direction Facing, length, width int, blocked func(Axial) bool) []Axial {
	direction = direction.Norm()
	seen := make(map[Axial]bool)
	out := make([]Axial, 0, length*(1+2*width))
	add := func(a Axial) {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	cur := origin
	for step := 1; step <= length; step++ {
		cur = cur.Neighbor(direction)
		if blocked != nil && blocked(cur) {
			break
		}
		add(cur)
		// Spread widens with distance but never past the declared width.
		spread := step - 1
		if spread > width {
			spread = width
		}
		for _, lat := range []Facing{(direction - 2).Norm(), (direction + 2).Norm()} {
			side := cur
			for w := 0; w < spread; w++ {
				side = side.Neighbor(lat)
				if blocked != nil && blocked(side) {
					break
				}
				add(side)
			}
		}
	}
	return out
}

// Line returns the hexes on the straight line from a to b inclusive, using
// cube-coordinate interpolation in distance(a,b)+1 steps with zero-sum
// preserving rounding.
func Line(a, b Axial) []Axial {
	n := Distance(a, b)
	out := make([]Axial, 0, n+1)
	if n == 0 {
		return append(out, a)
	}
	ac := a.ToCube()
	bc := b.ToCube()
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, roundCube(
			lerp(float64(ac.X), float64(bc.X), t),
			lerp(float64(ac.Y), float64(bc.Y), t),
			lerp(float64(ac.Z), float64(bc.Z), t),
		).ToAxial())
	}
	return out
}

// HasLineOfSight reports whether b is visible from a: visibility fails when
// any interior hex of the connecting line (both endpoints excluded) satisfies
// the blocking predicate.
func HasLineOfSight(a, b Axial, blocked func(Axial) bool) bool {
	if blocked == nil {
		return true
	}
	line := Line(a, b)
	for i := 1; i < len(line)-1; i++ {
		if blocked(line[i]) {
			return false
		}
	}
	return true
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// roundCube rounds fractional cube coordinates to the nearest valid triple,
// recomputing whichever component carries the largest rounding error so that
// x+y+z=0 holds.
func roundCube(x, y, z float64) Cube {
	rx := math.Round(x)
	ry := math.Round(y)
	rz := math.Round(z)
	dx := math.Abs(rx - x)
	dy := math.Abs(ry - y)
	dz := math.Abs(rz - z)
	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	default:
		rz = -rx - ry
	}
	return Cube{X: int(rx), Y: int(ry), Z: int(rz)}
}
