package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/walterdalec/hexfield/internal/battle"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexfield_config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `{
  "ability_list": [
    {"id": "bow", "name": "Bow", "kind": "weapon", "ap_cost": 3, "range": 4, "multiplier_pct": 100},
    {"id": "firebolt", "name": "Firebolt", "kind": "spell", "ap_cost": 3, "stamina_cost": 4, "range": 4, "multiplier_pct": 130,
     "status": {"id": "burning", "name": "Burning", "category": "dot", "chance": 35, "duration": 2, "tick_damage": 3}}
  ],
  "item_list": [
    {"id": "salve", "name": "Salve", "ap_cost": 2, "heal_amount": 8}
  ],
  "server": {"address": ":9090"},
  "max_rounds": 20,
  "stale_battle_minutes": 10,
  "hazard_damage": {"fire": 5}
}`

func TestLoadConfigValid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("address = %s", cfg.ServerAddress)
	}
	if cfg.MaxRounds != 20 {
		t.Fatalf("max rounds = %d", cfg.MaxRounds)
	}
	if cfg.StaleBattleTTL != 10*time.Minute {
		t.Fatalf("stale ttl = %v", cfg.StaleBattleTTL)
	}
	if cfg.HazardDamage[battle.HazardFire] != 5 {
		t.Fatalf("fire damage = %d", cfg.HazardDamage[battle.HazardFire])
	}

	fb := cfg.Catalog.Abilities["firebolt"]
	if fb == nil || fb.Kind != battle.AbilitySpell || fb.Status == nil {
		t.Fatalf("firebolt loaded wrong: %+v", fb)
	}
	if fb.Status.Category != battle.StatusDoT || fb.Status.TickDamage != 3 {
		t.Fatalf("firebolt status loaded wrong: %+v", fb.Status)
	}
	if cfg.Catalog.Items["salve"].HealAmount != 8 {
		t.Fatal("salve heal amount lost")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"ability_list": [
		{"id": "bow", "name": "Bow", "kind": "weapon", "ap_cost": 2, "range": 3}
	]}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("default address = %s", cfg.ServerAddress)
	}
	if cfg.MaxRounds != 30 {
		t.Fatalf("default max rounds = %d", cfg.MaxRounds)
	}
	if cfg.StaleBattleTTL != 30*time.Minute {
		t.Fatalf("default stale ttl = %v", cfg.StaleBattleTTL)
	}
}

func TestLoadConfigRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing file list", `{}`, "ability_list is empty"},
		{"missing id", `{"ability_list": [{"name": "X", "kind": "weapon", "ap_cost": 2, "range": 1}]}`, "missing 'id'"},
		{"reserved id", `{"ability_list": [{"id": "basic_attack", "kind": "weapon", "ap_cost": 2, "range": 1}]}`, "duplicate ability id"},
		{"bad kind", `{"ability_list": [{"id": "x", "kind": "song", "ap_cost": 2, "range": 1}]}`, "invalid kind"},
		{"bad range", `{"ability_list": [{"id": "x", "kind": "weapon", "ap_cost": 2, "range": 0}]}`, "range >= 1"},
		{"bad ap", `{"ability_list": [{"id": "x", "kind": "weapon", "ap_cost": 0, "range": 1}]}`, "ap_cost >= 1"},
		{"bad status category", `{"ability_list": [{"id": "x", "kind": "spell", "ap_cost": 2, "range": 1,
			"status": {"id": "s", "category": "hex", "chance": 50, "duration": 1}}]}`, "invalid category"},
		{"bad status chance", `{"ability_list": [{"id": "x", "kind": "spell", "ap_cost": 2, "range": 1,
			"status": {"id": "s", "category": "dot", "chance": 0, "duration": 1}}]}`, "chance must be 1..100"},
		{"status without duration", `{"ability_list": [{"id": "x", "kind": "spell", "ap_cost": 2, "range": 1,
			"status": {"id": "s", "category": "dot", "chance": 50}}]}`, "duration >= 1"},
		{"useless item", `{"ability_list": [{"id": "x", "kind": "weapon", "ap_cost": 2, "range": 1}],
			"item_list": [{"id": "rock", "ap_cost": 1}]}`, "has no effect"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
