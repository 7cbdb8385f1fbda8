package battle

// StatusCategory is the closed set of status effect classes the resolvers
// match over.
type StatusCategory string

const (
	StatusBuff   StatusCategory = "buff"
	StatusDebuff StatusCategory = "debuff"
	StatusDoT    StatusCategory = "dot"
	StatusHoT    StatusCategory = "hot"
	StatusStun   StatusCategory = "stun"
	StatusRoot   StatusCategory = "root"
	StatusSlow   StatusCategory = "slow"
	StatusBlind  StatusCategory = "blind"
	StatusFear   StatusCategory = "fear"
	StatusTaunt  StatusCategory = "taunt"
)

// StatusEffect is one active effect on a unit. Durations only ever decrease;
// the Status phase prunes effects that reach zero.
type StatusEffect struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Category  StatusCategory `json:"category"`
	Duration  int            `json:"duration"`
	Permanent bool           `json:"permanent"`
	Magnitude int            `json:"magnitude"`
	SourceID  string         `json:"source_id"`

	// StatMods maps stat names (attack, defense, accuracy, evasion, crit,
	// crit_resist) to flat adjustments while the effect is active.
	StatMods map[string]int `json:"stat_mods,omitempty"`

	// TickDamage and TickHeal apply once per Status phase.
	TickDamage int `json:"tick_damage,omitempty"`
	TickHeal   int `json:"tick_heal,omitempty"`
}

// PreventsAction reports whether the category forbids acting entirely.
func (c StatusCategory) PreventsAction() bool { return c == StatusStun }

// PreventsMovement reports whether the category forbids movement.
func (c StatusCategory) PreventsMovement() bool { return c == StatusStun || c == StatusRoot }
