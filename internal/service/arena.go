// Package service owns the battle lifecycle between the HTTP layer and the
// engine: creating battles, queueing orders, resolving rounds and persisting
// snapshots plus the event trail. The arena keeps live battles in memory with
// one lock per battle; the engine itself is single-writer per state.
package service

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/boardgen"
	"github.com/walterdalec/hexfield/internal/logging"
	"github.com/walterdalec/hexfield/internal/rng"
	"github.com/walterdalec/hexfield/internal/storage"
)

// Arena hosts every live battle instance.
type Arena struct {
	repo      storage.Repository
	gen       *boardgen.Generator
	cat       *battle.Catalog
	maxRounds int
	hazards   map[battle.Hazard]int

	mu   sync.Mutex
	live map[string]*instance
}

// instance is one live battle: canonical state, its rng manager and the
// orders queued for the round in progress.
type instance struct {
	mu sync.Mutex

	st  *battle.State
	rnd *rng.Manager

	pending   map[battle.Side][]*battle.QueuedOrder
	submitted map[battle.Side]bool

	subs []chan battle.LogEntry
}

// NewArena assembles the battle service.
func NewArena(repo storage.Repository, gen *boardgen.Generator, cat *battle.Catalog, maxRounds int, hazards map[battle.Hazard]int) *Arena {
	if len(hazards) == 0 {
		hazards = nil
	}
	return &Arena{
		repo:      repo,
		gen:       gen,
		cat:       cat,
		maxRounds: maxRounds,
		hazards:   hazards,
		live:      make(map[string]*instance),
	}
}

// Catalog exposes the loaded ability/item catalog.
func (a *Arena) Catalog() *battle.Catalog { return a.cat }

// BoardKinds lists the board kinds battles can be created on.
func (a *Arena) BoardKinds() []string { return a.gen.Kinds() }

// newBattleID returns a random 16-hex-char identifier.
func newBattleID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; ids just need
		// uniqueness, so fall back to an unlikely constant-free path.
		panic(err)
	}
	return hex.EncodeToString(b)
}

// acquire returns the live instance, rehydrating from the snapshot store when
// the battle is not resident (for example after a restart).
func (a *Arena) acquire(battleID string) (*instance, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if inst, ok := a.live[battleID]; ok {
		return inst, nil
	}

	rec, err := a.repo.GetBattleByID(battleID)
	if err != nil {
		return nil, ErrBattleNotFound
	}
	st, err := decodeState(rec.Snapshot)
	if err != nil {
		logging.Error("failed to decode battle snapshot", err, logging.Fields{"battle_id": battleID})
		return nil, err
	}
	// Stream states re-derive from (seed, round); no draws are consumed
	// between rounds, so resuming is exact.
	rnd := rng.NewManager(st.Seed)
	rnd.SetRound(st.Round)

	inst := newInstance(st, rnd)
	a.live[battleID] = inst
	return inst, nil
}

func newInstance(st *battle.State, rnd *rng.Manager) *instance {
	return &instance{
		st:        st,
		rnd:       rnd,
		pending:   make(map[battle.Side][]*battle.QueuedOrder),
		submitted: make(map[battle.Side]bool),
	}
}

// evict drops a battle from the live table.
func (a *Arena) evict(battleID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if inst, ok := a.live[battleID]; ok {
		inst.mu.Lock()
		for _, ch := range inst.subs {
			close(ch)
		}
		inst.subs = nil
		inst.mu.Unlock()
		delete(a.live, battleID)
	}
}

func encodeState(st *battle.State) ([]byte, error) {
	return json.Marshal(st)
}

func decodeState(raw []byte) (*battle.State, error) {
	var st battle.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	st.Rehydrate()
	return &st, nil
}

// snapshotState returns a detached deep copy of the state. Callers outside
// the instance lock only ever see copies; handing out the live pointer would
// let the JSON encoder race a concurrent resolve.
func snapshotState(st *battle.State) (*battle.State, error) {
	raw, err := encodeState(st)
	if err != nil {
		return nil, err
	}
	return decodeState(raw)
}

// syncRecord refreshes the scalar columns and snapshot from live state.
func syncRecord(rec *storage.BattleRecord, st *battle.State) error {
	snap, err := encodeState(st)
	if err != nil {
		return err
	}
	rec.Phase = string(st.Phase)
	rec.Round = st.Round
	rec.Snapshot = snap
	if winner, over := st.Winner(); over {
		rec.Winner = string(winner)
	}
	return nil
}

// eventRecords converts resolved log entries into persistence rows.
func eventRecords(battleID string, events []battle.LogEntry) []storage.EventRecord {
	out := make([]storage.EventRecord, 0, len(events))
	for _, e := range events {
		var payload []byte
		if e.Payload != nil {
			payload, _ = json.Marshal(e.Payload)
		}
		out = append(out, storage.EventRecord{
			BattleID:   battleID,
			Round:      e.Round,
			Type:       string(e.Type),
			ActorID:    e.ActorID,
			TargetID:   e.TargetID,
			Message:    e.Message,
			Payload:    payload,
			OccurredAt: e.Timestamp,
		})
	}
	return out
}

// broadcast fans resolved events out to stream subscribers. Slow consumers
// drop entries rather than stall resolution.
func (inst *instance) broadcast(events []battle.LogEntry) {
	for _, ch := range inst.subs {
		for _, e := range events {
			select {
			case ch <- e:
			default:
			}
		}
	}
}

// Subscribe registers a live event stream for a battle. The returned cancel
// function must be called when the consumer goes away.
func (a *Arena) Subscribe(battleID string) (<-chan battle.LogEntry, func(), error) {
	inst, err := a.acquire(battleID)
	if err != nil {
		return nil, nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	ch := make(chan battle.LogEntry, 256)
	inst.subs = append(inst.subs, ch)
	cancel := func() {
		inst.mu.Lock()
		defer inst.mu.Unlock()
		for i, c := range inst.subs {
			if c == ch {
				inst.subs = append(inst.subs[:i], inst.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel, nil
}
