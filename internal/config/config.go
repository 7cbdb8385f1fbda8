package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/walterdalec/hexfield/internal/battle"
)

type statusEntry struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Chance     int            `json:"chance"`
	Duration   int            `json:"duration"`
	Permanent  bool           `json:"permanent"`
	Magnitude  int            `json:"magnitude"`
	StatMods   map[string]int `json:"stat_mods"`
	TickDamage int            `json:"tick_damage"`
	TickHeal   int            `json:"tick_heal"`
}

type abilityEntry struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Kind          string       `json:"kind"`
	APCost        int          `json:"ap_cost"`
	StaminaCost   int          `json:"stamina_cost"`
	Range         int          `json:"range"`
	MultiplierPct int          `json:"multiplier_pct"`
	Status        *statusEntry `json:"status"`
}

type itemEntry struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	APCost     int          `json:"ap_cost"`
	HealAmount int          `json:"heal_amount"`
	SelfOnly   bool         `json:"self_only"`
	Status     *statusEntry `json:"status"`
}

type rawConfig struct {
	AbilityList []abilityEntry `json:"ability_list"`
	ItemList    []itemEntry    `json:"item_list"`
	Server      *struct {
		Address string `json:"address"`
	} `json:"server"`
	MaxRounds int `json:"max_rounds"`
	// Optional hazard damage overrides keyed by hazard name.
	HazardDamage map[string]int `json:"hazard_damage"`
	// Optional path to a YAML board-kind table replacing the built-in set.
	BoardKindsPath string `json:"board_kinds_path"`
	// Battles idle longer than this are expired by the background scanner.
	StaleBattleMinutes int `json:"stale_battle_minutes"`
}

// LoadedConfig is the validated runtime configuration: the ability/item
// catalog the engine resolves against plus server settings.
type LoadedConfig struct {
	Catalog        *battle.Catalog
	ServerAddress  string
	MaxRounds      int
	HazardDamage   map[battle.Hazard]int
	BoardKindsPath string
	StaleBattleTTL time.Duration
}

var validCategories = map[string]battle.StatusCategory{
	"buff": battle.StatusBuff, "debuff": battle.StatusDebuff,
	"dot": battle.StatusDoT, "hot": battle.StatusHoT,
	"stun": battle.StatusStun, "root": battle.StatusRoot,
	"slow": battle.StatusSlow, "blind": battle.StatusBlind,
	"fear": battle.StatusFear, "taunt": battle.StatusTaunt,
}

// LoadConfig reads and validates the configuration file at path. It requires
// the key `ability_list`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.AbilityList) == 0 {
		return nil, fmt.Errorf("config file %s: ability_list is empty (provide an 'ability_list' array)", path)
	}

	cat := &battle.Catalog{
		Abilities: make(map[string]*battle.Ability, len(rc.AbilityList)),
		Items:     make(map[string]*battle.Item, len(rc.ItemList)),
	}

	for _, a := range rc.AbilityList {
		if strings.TrimSpace(a.ID) == "" {
			return nil, fmt.Errorf("config file %s: ability entry missing 'id'", path)
		}
		if _, dup := cat.Abilities[a.ID]; dup || a.ID == battle.BasicAttack.ID {
			return nil, fmt.Errorf("config file %s: duplicate ability id '%s'", path, a.ID)
		}
		kind := battle.AbilityKind(a.Kind)
		if kind != battle.AbilityWeapon && kind != battle.AbilitySpell {
			return nil, fmt.Errorf("config file %s: ability '%s' has invalid kind '%s'", path, a.ID, a.Kind)
		}
		if a.Range < 1 {
			return nil, fmt.Errorf("config file %s: ability '%s' needs range >= 1", path, a.ID)
		}
		if a.APCost < 1 {
			return nil, fmt.Errorf("config file %s: ability '%s' needs ap_cost >= 1", path, a.ID)
		}
		status, err := buildStatus(path, "ability", a.ID, a.Status)
		if err != nil {
			return nil, err
		}
		cat.Abilities[a.ID] = &battle.Ability{
			ID: a.ID, Name: a.Name, Kind: kind,
			APCost: a.APCost, StaminaCost: a.StaminaCost,
			Range: a.Range, MultiplierPct: a.MultiplierPct,
			Status: status,
		}
	}

	for _, it := range rc.ItemList {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("config file %s: item entry missing 'id'", path)
		}
		if _, dup := cat.Items[it.ID]; dup {
			return nil, fmt.Errorf("config file %s: duplicate item id '%s'", path, it.ID)
		}
		if it.HealAmount <= 0 && it.Status == nil {
			return nil, fmt.Errorf("config file %s: item '%s' has no effect", path, it.ID)
		}
		status, err := buildStatus(path, "item", it.ID, it.Status)
		if err != nil {
			return nil, err
		}
		cat.Items[it.ID] = &battle.Item{
			ID: it.ID, Name: it.Name, APCost: it.APCost,
			HealAmount: it.HealAmount, SelfOnly: it.SelfOnly,
			Status: status,
		}
	}

	hazards := make(map[battle.Hazard]int, len(rc.HazardDamage))
	for name, dmg := range rc.HazardDamage {
		if dmg < 0 {
			return nil, fmt.Errorf("config file %s: hazard '%s' has negative damage", path, name)
		}
		hazards[battle.Hazard(name)] = dmg
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	maxRounds := 30
	if rc.MaxRounds > 0 {
		maxRounds = rc.MaxRounds
	}
	staleTTL := 30 * time.Minute
	if rc.StaleBattleMinutes > 0 {
		staleTTL = time.Duration(rc.StaleBattleMinutes) * time.Minute
	}

	return &LoadedConfig{
		Catalog:        cat,
		ServerAddress:  addr,
		MaxRounds:      maxRounds,
		HazardDamage:   hazards,
		BoardKindsPath: strings.TrimSpace(rc.BoardKindsPath),
		StaleBattleTTL: staleTTL,
	}, nil
}

func buildStatus(path, owner, ownerID string, e *statusEntry) (*battle.StatusSpec, error) {
	if e == nil {
		return nil, nil
	}
	if strings.TrimSpace(e.ID) == "" {
		return nil, fmt.Errorf("config file %s: %s '%s' status missing 'id'", path, owner, ownerID)
	}
	cat, ok := validCategories[e.Category]
	if !ok {
		return nil, fmt.Errorf("config file %s: %s '%s' status '%s' has invalid category '%s'", path, owner, ownerID, e.ID, e.Category)
	}
	if e.Chance < 1 || e.Chance > 100 {
		return nil, fmt.Errorf("config file %s: %s '%s' status '%s' chance must be 1..100", path, owner, ownerID, e.ID)
	}
	if !e.Permanent && e.Duration < 1 {
		return nil, fmt.Errorf("config file %s: %s '%s' status '%s' needs duration >= 1", path, owner, ownerID, e.ID)
	}
	return &battle.StatusSpec{
		ID: e.ID, Name: e.Name, Category: cat,
		Chance: e.Chance, Duration: e.Duration, Permanent: e.Permanent,
		Magnitude: e.Magnitude, StatMods: e.StatMods,
		TickDamage: e.TickDamage, TickHeal: e.TickHeal,
	}, nil
}
