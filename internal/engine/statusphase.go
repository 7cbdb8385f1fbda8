package engine

import "github.com/walterdalec/hexfield/internal/battle"

// statusPhase ticks every living, non-retreated unit once: the net of the
// damage- and heal-over-time sums applies to hp, non-permanent durations
// decrement, and
// expired effects drop with a log entry. Hazard tiles then damage whoever is
// standing on them.
func (rc *roundContext) statusPhase() {
	for _, u := range rc.st.Units {
		if !u.Active() {
			continue
		}
		rc.tickStatuses(u)
		if !u.Active() {
			continue
		}
		rc.tickHazard(u)
	}
}

func (rc *roundContext) tickStatuses(u *battle.Unit) {
	dot, hot := 0, 0
	for i := range u.Statuses {
		dot += u.Statuses[i].TickDamage
		hot += u.Statuses[i].TickHeal
	}
	if dot > 0 || hot > 0 {
		wasAlive := u.Alive()
		// Both sums land in the same instant, so only the net moves hp.
		switch net := dot - hot; {
		case net > 0:
			u.ApplyDamage(net)
		case net < 0:
			u.Heal(-net)
		}
		rc.log(battle.EventStatusTick, "", u.ID, u.Name+" is worn by lingering effects", map[string]interface{}{
			"damage": dot,
			"heal":   hot,
			"hp":     u.HP,
		})
		if wasAlive && u.Dead {
			rc.recordDeath(u, "")
			return
		}
	}

	kept := u.Statuses[:0]
	for i := range u.Statuses {
		s := u.Statuses[i]
		if !s.Permanent {
			s.Duration--
			if s.Duration <= 0 {
				rc.log(battle.EventStatusExpire, "", u.ID, s.Name+" fades from "+u.Name, map[string]interface{}{
					"status": s.ID,
				})
				continue
			}
		}
		kept = append(kept, s)
	}
	u.Statuses = kept
}

func (rc *roundContext) tickHazard(u *battle.Unit) {
	tile := rc.st.Board.TileAt(u.Pos)
	if tile == nil || tile.Hazard == battle.HazardNone {
		return
	}
	dmg := rc.hazardDamage[tile.Hazard]
	if dmg <= 0 {
		return
	}
	wasAlive := u.Alive()
	u.ApplyDamage(dmg)
	rc.log(battle.EventHazard, "", u.ID, u.Name+" suffers the "+string(tile.Hazard), map[string]interface{}{
		"hazard": string(tile.Hazard),
		"damage": dmg,
		"hp":     u.HP,
	})
	if wasAlive && u.Dead {
		rc.recordDeath(u, "")
	}
}
