package battle

import "time"

// EventType tags log entries so external renderers can dispatch on them.
type EventType string

const (
	EventRoundStart   EventType = "round_start"
	EventMove         EventType = "move"
	EventDivert       EventType = "divert"
	EventZoCTrigger   EventType = "zoc_trigger"
	EventOpportunity  EventType = "opportunity_attack"
	EventAttack       EventType = "attack"
	EventMiss         EventType = "miss"
	EventCrit         EventType = "crit"
	EventDamage       EventType = "damage"
	EventHeal         EventType = "heal"
	EventDeath        EventType = "death"
	EventStatusApply  EventType = "status_apply"
	EventStatusTick   EventType = "status_tick"
	EventStatusExpire EventType = "status_expire"
	EventHazard       EventType = "hazard"
	EventGuard        EventType = "guard"
	EventWait         EventType = "wait"
	EventInteract     EventType = "interact"
	EventReaction     EventType = "reaction"
	EventMorale       EventType = "morale"
	EventRout         EventType = "rout"
	EventRetreat      EventType = "retreat"
	EventObjective    EventType = "objective"
	EventVictory      EventType = "victory"
	EventDefect       EventType = "engine_defect"
	EventRoundEnd     EventType = "round_end"
)

// LogEntry is the sole externally consumable record of what happened. The
// stream is append-only and sufficient to reconstruct a round without
// replaying the simulation.
type LogEntry struct {
	Round     int                    `json:"round"`
	Timestamp time.Time              `json:"ts"`
	Type      EventType              `json:"type"`
	ActorID   string                 `json:"actor_id,omitempty"`
	TargetID  string                 `json:"target_id,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Message   string                 `json:"message"`
}
