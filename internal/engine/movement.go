package engine

import (
	"sort"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
)

// moveCostFunc builds the routing cost function for a unit: base tile cost,
// impassable tiles and occupied hexes blocked. Elevation and facing
// surcharges depend on the walk itself and are charged by pathAPCost.
func moveCostFunc(st *battle.State, actor *battle.Unit) hexmap.CostFunc {
	return func(pos hexmap.Axial) (int, bool) {
		t := st.Board.TileAt(pos)
		if t == nil || !t.Passable {
			return 0, false
		}
		if st.IsOccupied(pos, actor.ID) {
			return 0, false
		}
		return t.MoveCost, true
	}
}

// pathAPCost walks a concrete path and totals the entry cost of every step:
// tile base cost, elevation surcharge when climbing, and facing surcharge
// per rotation step needed to face the step direction.
func pathAPCost(st *battle.State, actor *battle.Unit, path []hexmap.Axial) (int, bool) {
	facing := actor.Facing
	total := 0
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		if hexmap.Distance(from, to) != 1 {
			return 0, false
		}
		tile := st.Board.TileAt(to)
		if tile == nil || !tile.Passable {
			return 0, false
		}
		dir := hexmap.DirectionTo(from, to)
		total += stepAPCost(st, from, to, facing, dir)
		facing = dir
	}
	return total, true
}

func stepAPCost(st *battle.State, from, to hexmap.Axial, facing, dir hexmap.Facing) int {
	cost := st.Board.TileAt(to).MoveCost
	if climb := st.Board.HeightAt(to) - st.Board.HeightAt(from); climb > 0 {
		cost += climb * elevationCostUnit
	}
	cost += hexmap.TurnDistance(facing, dir) * facingCostUnit
	return cost
}

// inFrontArc reports whether pos lies in the unit's front-facing arc (within
// one rotation step of its facing).
func inFrontArc(u *battle.Unit, pos hexmap.Axial) bool {
	if u.Pos == pos {
		return true
	}
	return hexmap.TurnDistance(u.Facing, hexmap.DirectionTo(u.Pos, pos)) <= 1
}

// zocHolders returns the active hostiles adjacent to pos that can still
// react, ordered by id.
func (rc *roundContext) zocHolders(actor *battle.Unit, pos hexmap.Axial) []*battle.Unit {
	out := make([]*battle.Unit, 0, 6)
	for _, nb := range pos.Neighbors() {
		if h := rc.st.UnitAt(nb); h != nil && h.Side != actor.Side && h.HasReaction() {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// movementPhase resolves all move orders of the round. Orders are sorted by
// timing bucket, then this-round initiative roll descending, then unit id,
// and destination claims are arbitrated in that sequence.
func (rc *roundContext) movementPhase(orders []*battle.QueuedOrder) {
	moves := make([]*battle.QueuedOrder, 0, len(orders))
	for _, o := range orders {
		if o.Valid && o.Kind == battle.OrderMove {
			moves = append(moves, o)
		}
	}
	sort.SliceStable(moves, func(i, j int) bool {
		a, b := moves[i], moves[j]
		if a.Timing.Rank() != b.Timing.Rank() {
			return a.Timing.Rank() < b.Timing.Rank()
		}
		ua, ub := rc.st.UnitByID(a.ActorID), rc.st.UnitByID(b.ActorID)
		ra, rb := 0, 0
		if ua != nil {
			ra = ua.InitiativeRoll
		}
		if ub != nil {
			rb = ub.InitiativeRoll
		}
		if ra != rb {
			return ra > rb
		}
		return a.ActorID < b.ActorID
	})

	// Every active unit claims its current hex; movers release the claim
	// when they actually leave it.
	for _, u := range rc.st.Units {
		if u.Active() {
			rc.claims[u.Pos] = u.ID
		}
	}

	for _, o := range moves {
		rc.executeMove(o)
	}
}

func (rc *roundContext) executeMove(o *battle.QueuedOrder) {
	actor := rc.st.UnitByID(o.ActorID)
	if actor == nil || !actor.Active() {
		rc.defect(o.ActorID, "validated mover vanished before resolution")
		return
	}

	origin := actor.Pos
	facing := actor.Facing
	cur := origin
	apCharged := 0
	intercepted := false

walk:
	for i := 1; i < len(o.Path); i++ {
		next := o.Path[i]
		tile := rc.st.Board.TileAt(next)
		if tile == nil || !tile.Passable {
			rc.defect(actor.ID, "validated path crosses impassable hex")
			break
		}
		// Zone of control: leaving a reacting hostile's front arc either
		// halts the move or, on an explicit disengage, provokes one
		// opportunity attack per holder before the step lands.
		for _, holder := range rc.zocHolders(actor, cur) {
			if !inFrontArc(holder, cur) || inFrontArc(holder, next) {
				continue
			}
			holder.SpendReaction()
			rc.log(battle.EventZoCTrigger, holder.ID, actor.ID, holder.Name+" intercepts "+actor.Name, map[string]interface{}{
				"at":        cur,
				"disengage": o.Disengage,
			})
			if !o.Disengage {
				intercepted = true
				break walk
			}
			rc.opportunityAttack(holder, actor)
			if !actor.Active() {
				break walk
			}
		}
		dir := hexmap.DirectionTo(cur, next)
		apCharged += stepAPCost(rc.st, cur, next, facing, dir)
		facing = dir
		cur = next
	}

	final := cur
	if final != origin {
		if claimant, taken := rc.claims[final]; taken && claimant != actor.ID {
			// Destination already claimed by an earlier-processed unit:
			// divert to the best unclaimed passable neighbor, or stay put
			// for a minimal AP charge.
			if div, ok := rc.divertTarget(final, o.Dest); ok {
				rc.log(battle.EventDivert, actor.ID, claimant, actor.Name+" is pushed aside", map[string]interface{}{
					"contested": final,
					"diverted":  div,
				})
				final = div
			} else {
				rc.log(battle.EventDivert, actor.ID, claimant, actor.Name+" cannot advance", map[string]interface{}{
					"contested": final,
				})
				final = origin
				apCharged = collisionFallbackAP
			}
		}
	}

	if final != origin {
		delete(rc.claims, origin)
		rc.claims[final] = actor.ID
		actor.Pos = final
		actor.Facing = facing
		actor.HasMoved = true
	}
	actor.SpendAP(apCharged)

	rc.log(battle.EventMove, actor.ID, "", actor.Name+" moves", map[string]interface{}{
		"from":        origin,
		"to":          final,
		"ap":          apCharged,
		"intercepted": intercepted,
	})
}

// divertTarget picks the unclaimed passable neighbor of the contested hex
// closest to the intended destination; ties resolve by direction index.
func (rc *roundContext) divertTarget(contested, dest hexmap.Axial) (hexmap.Axial, bool) {
	best := hexmap.Axial{}
	bestDist := -1
	found := false
	for dir := 0; dir < 6; dir++ {
		nb := contested.Neighbor(hexmap.Facing(dir))
		if _, taken := rc.claims[nb]; taken {
			continue
		}
		if !rc.st.Board.IsPassable(nb) {
			continue
		}
		d := hexmap.Distance(nb, dest)
		if !found || d < bestDist {
			found = true
			bestDist = d
			best = nb
		}
	}
	return best, found
}
