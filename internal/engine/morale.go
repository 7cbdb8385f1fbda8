package engine

import (
	"sort"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/hexmap"
)

// moralePhase applies this round's morale deductions, checks each side
// against the rout threshold and withdraws broken sides from the field.
func (rc *roundContext) moralePhase() {
	for _, side := range []battle.Side{battle.SideAttacker, battle.SideDefender} {
		rc.applyMoraleDeductions(side)
	}
	for _, side := range []battle.Side{battle.SideAttacker, battle.SideDefender} {
		if rc.st.RoutedSides[side] {
			continue
		}
		avg, living := rc.averageMorale(side)
		if living == 0 {
			continue
		}
		rc.log(battle.EventMorale, "", "", "morale report: "+string(side), map[string]interface{}{
			"side":    string(side),
			"average": avg,
		})
		if avg < routThreshold {
			rc.routSide(side)
		}
	}
}

func (rc *roundContext) applyMoraleDeductions(side battle.Side) {
	sideWide := rc.casualties[side] * moralePerCasualty
	if rc.commanderDown[side] {
		sideWide += moraleCommanderDeath
	}
	for _, u := range rc.st.ActiveUnits(side) {
		delta := sideWide
		if len(rc.st.AdjacentEnemies(u)) >= surroundedHostileCount {
			delta += moraleSurrounded
		}
		if delta != 0 {
			u.AdjustMorale(delta)
		}
	}
}

func (rc *roundContext) averageMorale(side battle.Side) (int, int) {
	total, n := 0, 0
	for _, u := range rc.st.LivingUnits(side) {
		total += u.Morale
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return total / n, n
}

// routSide marks the side broken and walks every living, non-retreated unit
// toward the nearest exit. Retreat movement is free of AP and immediate.
func (rc *roundContext) routSide(side battle.Side) {
	rc.st.RoutedSides[side] = true
	rc.log(battle.EventRout, "", "", string(side)+" breaks and routs", map[string]interface{}{
		"side": string(side),
	})
	if len(rc.st.Board.Exits) == 0 {
		// Nowhere to run: units hold in place, the battle ends by outcome
		// evaluation instead.
		return
	}

	units := rc.st.ActiveUnits(side)
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	for _, u := range units {
		rc.retreatUnit(u)
	}
}

func (rc *roundContext) retreatUnit(u *battle.Unit) {
	exit, ok := rc.nearestExit(u.Pos)
	if !ok {
		return
	}
	path := []hexmap.Axial{}
	cur := u.Pos
	for step := 0; step < maxRetreatSteps && cur != exit; step++ {
		next, ok := rc.bestRetreatStep(u, cur, exit)
		if !ok {
			break
		}
		cur = next
		path = append(path, next)
	}
	if cur != u.Pos {
		delete(rc.claims, u.Pos)
		rc.claims[cur] = u.ID
		u.Facing = hexmap.DirectionTo(path[len(path)-1], exit)
		u.Pos = cur
	}
	u.Retreated = true
	rc.log(battle.EventRetreat, u.ID, "", u.Name+" flees the field", map[string]interface{}{
		"to":      cur,
		"reached": cur == exit,
	})
}

func (rc *roundContext) nearestExit(from hexmap.Axial) (hexmap.Axial, bool) {
	best := hexmap.Axial{}
	bestDist := -1
	for _, e := range rc.st.Board.Exits {
		d := hexmap.Distance(from, e)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = e
		}
	}
	return best, bestDist >= 0
}

// bestRetreatStep greedily picks the unclaimed passable neighbor minimizing
// distance-to-exit minus twice the distance to the nearest hostile, so
// routed units run for the edge while shying away from the enemy.
func (rc *roundContext) bestRetreatStep(u *battle.Unit, cur, exit hexmap.Axial) (hexmap.Axial, bool) {
	best := hexmap.Axial{}
	bestScore := 0
	found := false
	for dir := 0; dir < 6; dir++ {
		nb := cur.Neighbor(hexmap.Facing(dir))
		if !rc.st.Board.IsPassable(nb) {
			continue
		}
		if holder, taken := rc.claims[nb]; taken && holder != u.ID {
			continue
		}
		if rc.st.IsOccupied(nb, u.ID) {
			continue
		}
		score := hexmap.Distance(nb, exit) - 2*rc.distanceToNearestHostile(u, nb)
		if !found || score < bestScore {
			found = true
			bestScore = score
			best = nb
		}
	}
	if !found {
		return hexmap.Axial{}, false
	}
	// Refuse steps that walk away from the exit with no hostile pressure to
	// justify them; greedy loops would never terminate otherwise.
	if hexmap.Distance(best, exit) >= hexmap.Distance(cur, exit) && bestScore >= hexmap.Distance(cur, exit)-2*rc.distanceToNearestHostile(u, cur) {
		return hexmap.Axial{}, false
	}
	return best, true
}

func (rc *roundContext) distanceToNearestHostile(u *battle.Unit, from hexmap.Axial) int {
	best := -1
	for _, other := range rc.st.Units {
		if other.Side == u.Side || !other.Active() {
			continue
		}
		d := hexmap.Distance(from, other.Pos)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		// No hostiles left: treat the field as safe everywhere.
		return 0
	}
	return best
}
