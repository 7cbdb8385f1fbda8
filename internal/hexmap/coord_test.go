package hexmap

import "testing"

func TestCubeRoundTrip(t *testing.T) {
	for q := -5; q <= 5; q++ {
		for r := -5; r <= 5; r++ {
			a := Axial{q, r}
			c := a.ToCube()
			if c.X+c.Y+c.Z != 0 {
				t.Fatalf("cube invariant broken for %v: %v", a, c)
			}
			if back := c.ToAxial(); back != a {
				t.Fatalf("round trip failed: %v -> %v -> %v", a, c, back)
			}
		}
	}
}

func TestDistance(t *testing.T) {
	a := Axial{0, 0}
	if d := Distance(a, a); d != 0 {
		t.Fatalf("distance(a,a) = %d, want 0", d)
	}
	cases := []struct {
		b    Axial
		want int
	}{
		{Axial{1, 0}, 1},
		{Axial{3, 0}, 3},
		{Axial{2, -1}, 2},
		{Axial{-2, 2}, 2},
		{Axial{3, -5}, 5},
	}
	for _, tc := range cases {
		if d := Distance(a, tc.b); d != tc.want {
			t.Errorf("distance(%v,%v) = %d, want %d", a, tc.b, d, tc.want)
		}
	}
}

func TestNeighborsAreAdjacent(t *testing.T) {
	center := Axial{2, -1}
	seen := map[Axial]bool{}
	for _, nb := range center.Neighbors() {
		if Distance(center, nb) != 1 {
			t.Errorf("neighbor %v not adjacent to %v", nb, center)
		}
		if seen[nb] {
			t.Errorf("duplicate neighbor %v", nb)
		}
		seen[nb] = true
	}
}

func TestTurnDistance(t *testing.T) {
	cases := []struct {
		a, b Facing
		want int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 3, 3},
		{0, 5, 1},
		{1, 4, 3},
		{5, 0, 1},
	}
	for _, tc := range cases {
		if d := TurnDistance(tc.a, tc.b); d != tc.want {
			t.Errorf("TurnDistance(%d,%d) = %d, want %d", tc.a, tc.b, d, tc.want)
		}
	}
}

func TestDirectionTo(t *testing.T) {
	from := Axial{0, 0}
	for i, d := range Directions {
		if got := DirectionTo(from, from.Add(d.Mul(3))); got != Facing(i) {
			t.Errorf("DirectionTo along direction %d = %d", i, got)
		}
	}
}
