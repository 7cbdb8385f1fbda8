package battle

import "github.com/walterdalec/hexfield/internal/hexmap"

// Side identifies which roster a unit fights for.
type Side string

const (
	SideAttacker Side = "attacker"
	SideDefender Side = "defender"
)

// Enemy returns the opposing side.
func (s Side) Enemy() Side {
	if s == SideAttacker {
		return SideDefender
	}
	return SideAttacker
}

// Stats is the combat-derived snapshot taken at battle start. It never
// recomputes from equipment mid-battle.
type Stats struct {
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	Accuracy   int `json:"accuracy"`
	Evasion    int `json:"evasion"`
	Crit       int `json:"crit"`
	CritResist int `json:"crit_resist"`
}

// Unit is one combatant. Units are created once per roster entry at battle
// init and never deleted mid-battle; dead, downed or retreated units stay in
// the table and are excluded by predicate.
type Unit struct {
	ID   string `json:"id"`
	Side Side   `json:"side"`

	// RosterRef is an opaque reference back to the roster/campaign entry the
	// unit was built from. The engine never dereferences it.
	RosterRef string `json:"roster_ref"`

	Name  string `json:"name"`
	Level int    `json:"level"`

	Pos    hexmap.Axial  `json:"pos"`
	Facing hexmap.Facing `json:"facing"`

	HP         int `json:"hp"`
	MaxHP      int `json:"max_hp"`
	AP         int `json:"ap"`
	MaxAP      int `json:"max_ap"`
	Stamina    int `json:"stamina"`
	MaxStamina int `json:"max_stamina"`

	Stats Stats `json:"stats"`

	InitiativeBase int `json:"initiative_base"`
	InitiativeRoll int `json:"initiative_roll"`
	// NextInitBonus carries banked initiative from a wait order into the
	// next round's roll.
	NextInitBonus int `json:"next_init_bonus,omitempty"`

	Morale int `json:"morale"` // 0..100

	Statuses []StatusEffect `json:"statuses"`

	ReactionSlots int `json:"reaction_slots"`
	ReactionsUsed int `json:"reactions_used"`

	Commander bool `json:"commander"`

	Downed    bool `json:"downed"`
	Dead      bool `json:"dead"`
	Retreated bool `json:"retreated"`
	HasMoved  bool `json:"has_moved"`
	HasActed  bool `json:"has_acted"`

	// GearDurability is tracked for the campaign layer; the resolver treats
	// it as opaque pass-through data.
	GearDurability map[string]int `json:"gear_durability,omitempty"`
}

// Alive reports whether the unit still counts toward its side's roster.
func (u *Unit) Alive() bool { return !u.Dead && !u.Downed }

// Active reports whether the unit may still receive and execute orders.
func (u *Unit) Active() bool { return u.Alive() && !u.Retreated }

// HasReaction reports whether an unused reaction slot remains this round.
func (u *Unit) HasReaction() bool { return u.Active() && u.ReactionsUsed < u.ReactionSlots }

// SpendReaction consumes one reaction slot if available.
func (u *Unit) SpendReaction() bool {
	if !u.HasReaction() {
		return false
	}
	u.ReactionsUsed++
	return true
}

// SpendAP deducts cost from the unit's action points, clamped at zero. The
// validator guarantees accepted orders never overdraw; the clamp is the
// §7-style defensive floor for invariant defects.
func (u *Unit) SpendAP(cost int) {
	u.AP -= cost
	if u.AP < 0 {
		u.AP = 0
	}
}

// ApplyDamage reduces HP and flips the dead flag at zero. Overkill clamps.
func (u *Unit) ApplyDamage(amount int) {
	if amount <= 0 {
		return
	}
	u.HP -= amount
	if u.HP <= 0 {
		u.HP = 0
		u.Dead = true
	}
}

// Heal restores HP up to the maximum.
func (u *Unit) Heal(amount int) {
	if amount <= 0 || !u.Alive() {
		return
	}
	u.HP += amount
	if u.HP > u.MaxHP {
		u.HP = u.MaxHP
	}
}

// AdjustMorale shifts morale, clamped to [0, 100].
func (u *Unit) AdjustMorale(delta int) {
	u.Morale += delta
	if u.Morale < 0 {
		u.Morale = 0
	}
	if u.Morale > 100 {
		u.Morale = 100
	}
}

// StatusAccuracyShift sums the hit-chance adjustments contributed by the
// unit's active statuses when it attacks.
func (u *Unit) StatusAccuracyShift() int {
	shift := 0
	for i := range u.Statuses {
		switch u.Statuses[i].Category {
		case StatusBlind:
			shift -= 25
		case StatusFear:
			shift -= 10
		}
	}
	return shift
}

// StatusEvasionShift sums the hit-chance adjustments the unit's statuses
// grant attackers targeting it (positive means easier to hit).
func (u *Unit) StatusEvasionShift() int {
	shift := 0
	for i := range u.Statuses {
		switch u.Statuses[i].Category {
		case StatusStun:
			shift += 15
		case StatusRoot:
			shift += 5
		}
	}
	return shift
}

// HasStatus reports whether any active status has the given category.
func (u *Unit) HasStatus(cat StatusCategory) bool {
	for i := range u.Statuses {
		if u.Statuses[i].Category == cat {
			return true
		}
	}
	return false
}

// guardStatusID marks the defend stance granted by a guard order.
const guardStatusID = "guard"

// EnterGuardStance grants the defend stance until the next Status phase:
// harder to hit, and melee hits are answered in the reaction phase.
func (u *Unit) EnterGuardStance() {
	if u.HasGuardStance() {
		return
	}
	u.Statuses = append(u.Statuses, StatusEffect{
		ID:       guardStatusID,
		Name:     "Guard",
		Category: StatusBuff,
		Duration: 1,
		SourceID: u.ID,
		StatMods: map[string]int{"evasion": 15},
	})
}

// HasGuardStance reports whether the defend stance is active.
func (u *Unit) HasGuardStance() bool {
	for i := range u.Statuses {
		if u.Statuses[i].ID == guardStatusID {
			return true
		}
	}
	return false
}

// StatModifier sums the named stat modifier across active statuses.
func (u *Unit) StatModifier(stat string) int {
	total := 0
	for i := range u.Statuses {
		if u.Statuses[i].StatMods != nil {
			total += u.Statuses[i].StatMods[stat]
		}
	}
	return total
}
