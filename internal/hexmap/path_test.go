package hexmap

import "testing"

// openField makes every hex passable at uniform cost except the given walls.
func openField(walls ...Axial) CostFunc {
	blocked := make(map[Axial]bool, len(walls))
	for _, w := range walls {
		blocked[w] = true
	}
	return func(h Axial) (int, bool) {
		if blocked[h] {
			return 0, false
		}
		return 1, true
	}
}

func TestFindPathStraight(t *testing.T) {
	start := Axial{0, 0}
	goal := Axial{3, 0}
	path := FindPath(start, goal, openField())
	if path == nil {
		t.Fatal("expected a path")
	}
	if len(path) != 4 {
		t.Fatalf("path length %d, want 4", len(path))
	}
	if path[0] != start || path[len(path)-1] != goal {
		t.Fatalf("bad endpoints: %v", path)
	}
}

func TestFindPathAroundWall(t *testing.T) {
	start := Axial{0, 0}
	goal := Axial{2, 0}
	path := FindPath(start, goal, openField(Axial{1, 0}))
	if path == nil {
		t.Fatal("expected a detour path")
	}
	cost, ok := PathCost(path, openField(Axial{1, 0}))
	if !ok {
		t.Fatal("returned path crosses a wall")
	}
	if cost != 3 {
		t.Fatalf("detour cost %d, want 3", cost)
	}
}

func TestFindPathNoRoute(t *testing.T) {
	start := Axial{0, 0}
	goal := Axial{3, 0}
	// Seal the start hex in completely.
	walls := start.Neighbors()
	if path := FindPath(start, goal, openField(walls[:]...)); path != nil {
		t.Fatalf("expected nil path, got %v", path)
	}
}

func TestReachableRespectsBudget(t *testing.T) {
	start := Axial{0, 0}
	reach := Reachable(start, 2, openField())
	if reach[start] != 0 {
		t.Fatalf("start cost %d, want 0", reach[start])
	}
	// Uniform cost 1 within budget 2: the filled disk of radius 2.
	if len(reach) != 19 {
		t.Fatalf("reachable set size %d, want 19", len(reach))
	}
	for h, c := range reach {
		if c != Distance(start, h) {
			t.Errorf("cost to %v = %d, want %d", h, c, Distance(start, h))
		}
	}
}

func TestReachableCheapestCostWins(t *testing.T) {
	start := Axial{0, 0}
	expensive := Axial{1, 0}
	costOf := func(h Axial) (int, bool) {
		if h == expensive {
			return 5, true
		}
		return 1, true
	}
	reach := Reachable(start, 10, costOf)
	// (2,0) is adjacent to the expensive hex but reachable for 3 by detour.
	if c := reach[Axial{2, 0}]; c != 3 {
		t.Fatalf("cost to (2,0) = %d, want cheapest detour 3", c)
	}
}
