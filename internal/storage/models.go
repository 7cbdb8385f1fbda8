package storage

import "time"

// BattleRecord is the persisted row for one battle. The full simulation state
// is stored as a JSON snapshot; the scalar columns exist so listings and the
// stale-battle scanner can query without decoding snapshots.
type BattleRecord struct {
	ID        string `gorm:"primaryKey"`
	Seed      int64
	BoardKind string

	Phase      string
	Round      int
	PlayerSide string
	Winner     string

	// Snapshot is the JSON-encoded battle.State.
	Snapshot []byte

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventRecord is one resolved log entry, kept as an append-only audit trail
// separate from the snapshot so clients can page through history cheaply.
type EventRecord struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	BattleID string `gorm:"index:idx_event_battle_round"`
	Round    int    `gorm:"index:idx_event_battle_round"`

	Type     string
	ActorID  string
	TargetID string
	Message  string
	// Payload is the JSON-encoded event payload map.
	Payload []byte

	OccurredAt time.Time
}
