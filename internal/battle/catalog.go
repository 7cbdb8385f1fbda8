package battle

// AbilityKind splits weapon techniques from spells; spells spend stamina in
// addition to AP.
type AbilityKind string

const (
	AbilityWeapon AbilityKind = "weapon"
	AbilitySpell  AbilityKind = "spell"
)

// StatusSpec is the catalog description of a status an ability or item may
// attach on a successful hit.
type StatusSpec struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Category   StatusCategory `json:"category"`
	Chance     int            `json:"chance"`
	Duration   int            `json:"duration"`
	Permanent  bool           `json:"permanent"`
	Magnitude  int            `json:"magnitude"`
	StatMods   map[string]int `json:"stat_mods,omitempty"`
	TickDamage int            `json:"tick_damage,omitempty"`
	TickHeal   int            `json:"tick_heal,omitempty"`
}

// Effect instantiates the spec as an active effect stamped with its source.
func (s *StatusSpec) Effect(sourceID string) StatusEffect {
	return StatusEffect{
		ID:         s.ID,
		Name:       s.Name,
		Category:   s.Category,
		Duration:   s.Duration,
		Permanent:  s.Permanent,
		Magnitude:  s.Magnitude,
		SourceID:   sourceID,
		StatMods:   s.StatMods,
		TickDamage: s.TickDamage,
		TickHeal:   s.TickHeal,
	}
}

// Ability is one catalog entry the resolver executes generically; the
// content itself is authored outside the core and loaded from config.
type Ability struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Kind          AbilityKind `json:"kind"`
	APCost        int         `json:"ap_cost"`
	StaminaCost   int         `json:"stamina_cost"`
	Range         int         `json:"range"`
	MultiplierPct int         `json:"multiplier_pct"`
	Status        *StatusSpec `json:"status,omitempty"`
}

// Item is a usable consumable. Durability/stock is the campaign layer's
// problem; the core resolves the use.
type Item struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	APCost     int         `json:"ap_cost"`
	HealAmount int         `json:"heal_amount"`
	SelfOnly   bool        `json:"self_only"`
	Status     *StatusSpec `json:"status,omitempty"`
}

// Catalog is the ability/item content the engine resolves against.
type Catalog struct {
	Abilities map[string]*Ability
	Items     map[string]*Item
}

// BasicAttack is the built-in weapon profile used when an attack order names
// no ability.
var BasicAttack = &Ability{
	ID:            "basic_attack",
	Name:          "Strike",
	Kind:          AbilityWeapon,
	APCost:        2,
	Range:         1,
	MultiplierPct: 100,
}

// AbilityByID resolves an ability id, falling back to the basic attack for
// the empty id.
func (c *Catalog) AbilityByID(id string) *Ability {
	if id == "" || id == BasicAttack.ID {
		return BasicAttack
	}
	if c == nil {
		return nil
	}
	return c.Abilities[id]
}

// ItemByID resolves an item id.
func (c *Catalog) ItemByID(id string) *Item {
	if c == nil {
		return nil
	}
	return c.Items[id]
}
