package battle

import (
	"sort"
	"time"

	"github.com/walterdalec/hexfield/internal/hexmap"
)

// Phase is the battle lifecycle state. Transitions only move along
// deployment -> orders -> resolution -> morale -> orders ... until a
// terminal phase (victory, defeat, retreat) is reached.
type Phase string

const (
	PhaseDeployment Phase = "deployment"
	PhaseOrders     Phase = "orders"
	PhaseResolution Phase = "resolution"
	PhaseMorale     Phase = "morale"
	PhaseVictory    Phase = "victory"
	PhaseDefeat     Phase = "defeat"
	PhaseRetreat    Phase = "retreat"
)

// Terminal reports whether the battle has ended.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseRetreat
}

// State owns the canonical mutable board and unit table of one battle. It
// performs no movement or combat logic itself; the engine package mutates it
// through the resolvers. Single-writer: one resolve at a time (§ concurrency
// model), no internal locking.
type State struct {
	ID        string
	Seed      int64
	BoardKind string

	Board *Board

	// Units holds every roster entry in creation order; dead, downed and
	// retreated units stay in the table so references never dangle.
	Units []*Unit
	byID  map[string]*Unit

	Objectives []*Objective

	Round     int
	MaxRounds int
	Phase     Phase

	// PlayerSide is the perspective side used to pick the victory, defeat
	// or retreat terminal phase.
	PlayerSide Side

	// RoutedSides records sides that broke this battle.
	RoutedSides map[Side]bool

	Log []LogEntry

	// Clock stamps log entries; injectable so tests and replays can produce
	// byte-identical streams.
	Clock func() time.Time `json:"-"`
}

// NewState assembles a battle state around a generated board.
func NewState(id string, seed int64, kind string, board *Board, maxRounds int) *State {
	return &State{
		ID:          id,
		Seed:        seed,
		BoardKind:   kind,
		Board:       board,
		byID:        make(map[string]*Unit),
		Round:       1,
		MaxRounds:   maxRounds,
		Phase:       PhaseDeployment,
		PlayerSide:  SideAttacker,
		RoutedSides: make(map[Side]bool),
		Clock:       time.Now,
	}
}

// Rehydrate rebuilds the derived fields after decoding a snapshot.
func (s *State) Rehydrate() {
	s.byID = make(map[string]*Unit, len(s.Units))
	for _, u := range s.Units {
		s.byID[u.ID] = u
	}
	if s.RoutedSides == nil {
		s.RoutedSides = make(map[Side]bool)
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}
}

// AddUnit registers a unit into the table. IDs must be unique.
func (s *State) AddUnit(u *Unit) {
	s.Units = append(s.Units, u)
	s.byID[u.ID] = u
}

// UnitByID returns the unit with the given id, or nil.
func (s *State) UnitByID(id string) *Unit {
	return s.byID[id]
}

// UnitAt returns the active unit occupying pos, or nil.
func (s *State) UnitAt(pos hexmap.Axial) *Unit {
	for _, u := range s.Units {
		if u.Active() && u.Pos == pos {
			return u
		}
	}
	return nil
}

// IsOccupied reports whether an active unit other than self stands on pos.
func (s *State) IsOccupied(pos hexmap.Axial, selfID string) bool {
	u := s.UnitAt(pos)
	return u != nil && u.ID != selfID
}

// UnitsOnSide returns every table entry for a side, in creation order.
func (s *State) UnitsOnSide(side Side) []*Unit {
	out := make([]*Unit, 0, len(s.Units))
	for _, u := range s.Units {
		if u.Side == side {
			out = append(out, u)
		}
	}
	return out
}

// LivingUnits returns a side's units that are neither dead nor downed,
// retreated included.
func (s *State) LivingUnits(side Side) []*Unit {
	out := make([]*Unit, 0, len(s.Units))
	for _, u := range s.Units {
		if u.Side == side && u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// ActiveUnits returns a side's units still eligible to fight.
func (s *State) ActiveUnits(side Side) []*Unit {
	out := make([]*Unit, 0, len(s.Units))
	for _, u := range s.Units {
		if u.Side == side && u.Active() {
			out = append(out, u)
		}
	}
	return out
}

// AdjacentEnemies returns the active hostiles standing next to u, ordered by
// unit id for deterministic processing.
func (s *State) AdjacentEnemies(u *Unit) []*Unit {
	out := make([]*Unit, 0, 6)
	for _, nb := range u.Pos.Neighbors() {
		if other := s.UnitAt(nb); other != nil && other.Side != u.Side {
			out = append(out, other)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Append records a log entry stamped with the current round and clock.
func (s *State) Append(e LogEntry) {
	e.Round = s.Round
	e.Timestamp = s.Clock()
	s.Log = append(s.Log, e)
}

// Outcome is the result of the victory predicate.
type Outcome struct {
	Over   bool
	Phase  Phase
	Winner Side
}

// EvaluateOutcome encodes the victory predicate as a pure read over current
// state: annihilation of a side's living roster, a routed side, completion
// or failure of required objectives, or the round cap. Safe to call at any
// point without side effects.
func (s *State) EvaluateOutcome() Outcome {
	player := s.PlayerSide
	enemy := player.Enemy()

	playerAlive := len(s.ActiveUnits(player))
	enemyAlive := len(s.ActiveUnits(enemy))

	if s.RoutedSides[player] || (playerAlive == 0 && len(s.LivingUnits(player)) == 0) {
		// A rout that leaves living units ends in retreat; annihilation in
		// defeat. A mutual wipe still reads as defeat.
		if s.RoutedSides[player] && len(s.LivingUnits(player)) > 0 {
			return Outcome{Over: true, Phase: PhaseRetreat, Winner: enemy}
		}
		return Outcome{Over: true, Phase: PhaseDefeat, Winner: enemy}
	}
	if s.RoutedSides[enemy] || enemyAlive == 0 {
		return Outcome{Over: true, Phase: PhaseVictory, Winner: player}
	}

	required := 0
	completed := 0
	for _, o := range s.Objectives {
		if o.Side != player || !o.Required {
			continue
		}
		required++
		if o.Failed {
			return Outcome{Over: true, Phase: PhaseDefeat, Winner: enemy}
		}
		if o.Completed {
			completed++
		}
	}
	if required > 0 && completed == required {
		return Outcome{Over: true, Phase: PhaseVictory, Winner: player}
	}

	if s.MaxRounds > 0 && s.Round >= s.MaxRounds {
		return Outcome{Over: true, Phase: PhaseDefeat, Winner: enemy}
	}
	return Outcome{Phase: s.Phase}
}

// IsBattleOver reports whether any terminal condition currently holds.
func (s *State) IsBattleOver() bool { return s.EvaluateOutcome().Over }

// Winner returns the winning side once a terminal condition holds; the
// second result is false while the battle is still open.
func (s *State) Winner() (Side, bool) {
	o := s.EvaluateOutcome()
	return o.Winner, o.Over
}
