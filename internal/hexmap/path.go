package hexmap

import (
	"container/heap"
	"sort"
)

// CostFunc reports the cost of entering a hex. ok=false marks the hex
// impassable. Costs must be >= 1 for reachable hexes.
type CostFunc func(Axial) (cost int, ok bool)

// FindPath computes a cheapest path from start to goal with A*, using the
// injected per-hex entry cost and straight-line hex distance as heuristic.
// The returned path includes both start and goal; nil means no path exists.
func FindPath(start, goal Axial, costOf CostFunc) []Axial {
	if start == goal {
		return []Axial{start}
	}
	open := &nodePQ{}
	heap.Init(open)
	g := map[Axial]int{start: 0}
	came := map[Axial]Axial{}
	closed := map[Axial]bool{}
	heap.Push(open, &pqNode{at: start, f: Distance(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pqNode).at
		if closed[cur] {
			continue
		}
		closed[cur] = true
		if cur == goal {
			path := []Axial{goal}
			for at := goal; at != start; {
				at = came[at]
				path = append(path, at)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}
		for dir := 0; dir < 6; dir++ {
			nb := cur.Neighbor(Facing(dir))
			if closed[nb] {
				continue
			}
			step, ok := costOf(nb)
			if !ok {
				continue
			}
			if step < 1 {
				step = 1
			}
			tentative := g[cur] + step
			if old, seen := g[nb]; !seen || tentative < old {
				g[nb] = tentative
				came[nb] = cur
				heap.Push(open, &pqNode{at: nb, f: tentative + Distance(nb, goal)})
			}
		}
	}
	return nil
}

// PathCost sums the entry costs of every hex on the path after the first.
// It returns ok=false if any step is impassable or non-adjacent.
func PathCost(path []Axial, costOf CostFunc) (int, bool) {
	total := 0
	for i := 1; i < len(path); i++ {
		if Distance(path[i-1], path[i]) != 1 {
			return 0, false
		}
		c, ok := costOf(path[i])
		if !ok {
			return 0, false
		}
		total += c
	}
	return total, true
}

// Reachable performs a cost-bounded flood fill from start and returns every
// hex reachable within budget together with its cheapest total cost. The
// start hex is included at cost 0.
func Reachable(start Axial, budget int, costOf CostFunc) map[Axial]int {
	out := map[Axial]int{start: 0}
	frontier := &nodePQ{}
	heap.Init(frontier)
	heap.Push(frontier, &pqNode{at: start, f: 0})
	for frontier.Len() > 0 {
		n := heap.Pop(frontier).(*pqNode)
		if n.f > out[n.at] {
			continue
		}
		for dir := 0; dir < 6; dir++ {
			nb := n.at.Neighbor(Facing(dir))
			step, ok := costOf(nb)
			if !ok {
				continue
			}
			if step < 1 {
				step = 1
			}
			total := n.f + step
			if total > budget {
				continue
			}
			if old, seen := out[nb]; !seen || total < old {
				out[nb] = total
				heap.Push(frontier, &pqNode{at: nb, f: total})
			}
		}
	}
	return out
}

// SortAxials orders hexes by (r, q) for deterministic iteration over sets.
func SortAxials(hexes []Axial) {
	sort.Slice(hexes, func(i, j int) bool {
		if hexes[i].R != hexes[j].R {
			return hexes[i].R < hexes[j].R
		}
		return hexes[i].Q < hexes[j].Q
	})
}

type pqNode struct {
	at Axial
	f  int
}

type nodePQ []*pqNode

func (p nodePQ) Len() int            { return len(p) }
func (p nodePQ) Less(i, j int) bool  { return p[i].f < p[j].f }
func (p nodePQ) Swap(i, j int)       { p[i], p[j] = p[j], p[i] }
func (p *nodePQ) Push(x interface{}) { *p = append(*p, x.(*pqNode)) }
func (p *nodePQ) Pop() interface{} {
	old := *p
	n := len(old)
	x := old[n-1]
	*p = old[:n-1]
	return x
}
