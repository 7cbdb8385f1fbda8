package storage

import "time"

// Repository is the persistence boundary of the battle service. Battles are
// stored as snapshot rows plus an append-only event trail.
type Repository interface {
	CreateBattle(rec *BattleRecord) error
	GetBattleByID(id string) (*BattleRecord, error)
	UpdateBattle(rec *BattleRecord) error
	DeleteBattle(id string) error

	// ListOpenBattles returns battles whose phase is not terminal, newest
	// first.
	ListOpenBattles() ([]BattleRecord, error)

	AppendEvents(events []EventRecord) error
	// GetEvents returns a battle's events from the given round on, in
	// insertion order.
	GetEvents(battleID string, fromRound int) ([]EventRecord, error)

	// FindStaleBattles returns open battles not updated since the cutoff.
	// The caller decides how to dispose of them.
	FindStaleBattles(cutoff time.Time) ([]BattleRecord, error)
}
