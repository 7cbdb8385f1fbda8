package service

import (
	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/engine"
	"github.com/walterdalec/hexfield/internal/hexmap"
	"github.com/walterdalec/hexfield/internal/logging"
	"github.com/walterdalec/hexfield/internal/rng"
	"github.com/walterdalec/hexfield/internal/storage"
)

// UnitSpec describes one roster entry at battle creation. Stats are a
// snapshot; the engine never recomputes them from equipment.
type UnitSpec struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Side      battle.Side  `json:"side"`
	RosterRef string       `json:"roster_ref"`
	Level     int          `json:"level"`
	MaxHP     int          `json:"max_hp"`
	MaxAP     int          `json:"max_ap"`
	MaxSta    int          `json:"max_stamina"`
	Stats     battle.Stats `json:"stats"`
	InitBase  int          `json:"initiative_base"`
	Reactions int          `json:"reaction_slots"`
	Morale    int          `json:"morale"`
	Commander bool         `json:"commander"`
}

// CreateBattleRequest is everything needed to initialize a battle.
type CreateBattleRequest struct {
	Seed       int64               `json:"seed"`
	BoardKind  string              `json:"board_kind"`
	MaxRounds  int                 `json:"max_rounds"`
	PlayerSide battle.Side         `json:"player_side"`
	Units      []UnitSpec          `json:"units"`
	Objectives []*battle.Objective `json:"objectives"`
}

// CreateBattle generates the board, deploys both rosters, rolls first-round
// initiative and persists the initial snapshot.
func (a *Arena) CreateBattle(req CreateBattleRequest) (*battle.State, error) {
	if !a.gen.HasKind(req.BoardKind) {
		return nil, ErrUnknownBoardKind
	}
	sides := map[battle.Side]int{}
	seen := map[string]bool{}
	for _, u := range req.Units {
		if u.Side != battle.SideAttacker && u.Side != battle.SideDefender {
			return nil, ErrUnknownSide
		}
		if u.ID == "" || seen[u.ID] {
			return nil, ErrDuplicateUnitID
		}
		seen[u.ID] = true
		sides[u.Side]++
	}
	if sides[battle.SideAttacker] == 0 || sides[battle.SideDefender] == 0 {
		return nil, ErrNoUnits
	}

	board, err := a.gen.Generate(req.Seed, req.BoardKind)
	if err != nil {
		return nil, err
	}

	maxRounds := req.MaxRounds
	if maxRounds <= 0 {
		maxRounds = a.maxRounds
	}
	id := newBattleID()
	st := battle.NewState(id, req.Seed, req.BoardKind, board, maxRounds)
	if req.PlayerSide != "" {
		if req.PlayerSide != battle.SideAttacker && req.PlayerSide != battle.SideDefender {
			return nil, ErrUnknownSide
		}
		st.PlayerSide = req.PlayerSide
	}
	st.Objectives = req.Objectives

	if err := deploy(st, req.Units); err != nil {
		return nil, err
	}

	rnd := rng.NewManager(req.Seed)
	st.Phase = battle.PhaseOrders
	engine.RollInitiative(st, rnd)

	rec := &storage.BattleRecord{
		ID:         id,
		Seed:       req.Seed,
		BoardKind:  req.BoardKind,
		PlayerSide: string(st.PlayerSide),
	}
	if err := syncRecord(rec, st); err != nil {
		return nil, err
	}
	if err := a.repo.CreateBattle(rec); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.live[id] = newInstance(st, rnd)
	a.mu.Unlock()

	logging.Info("battle created", logging.Fields{
		"battle_id":  id,
		"board_kind": req.BoardKind,
		"seed":       req.Seed,
		"units":      len(req.Units),
	})
	return snapshotState(st)
}

// deploy places each roster on its side's deployment zone in submission
// order. Attackers face east, defenders west.
func deploy(st *battle.State, units []UnitSpec) error {
	next := map[battle.Side]int{}
	for _, spec := range units {
		zone := st.Board.Deployment[spec.Side]
		idx := next[spec.Side]
		if idx >= len(zone) {
			return ErrDeploymentOverflow
		}
		next[spec.Side]++

		facing := hexFacingFor(spec.Side)
		morale := spec.Morale
		if morale <= 0 {
			morale = 70
		}
		st.AddUnit(&battle.Unit{
			ID:             spec.ID,
			Side:           spec.Side,
			RosterRef:      spec.RosterRef,
			Name:           spec.Name,
			Level:          spec.Level,
			Pos:            zone[idx],
			Facing:         facing,
			HP:             spec.MaxHP,
			MaxHP:          spec.MaxHP,
			AP:             spec.MaxAP,
			MaxAP:          spec.MaxAP,
			Stamina:        spec.MaxSta,
			MaxStamina:     spec.MaxSta,
			Stats:          spec.Stats,
			InitiativeBase: spec.InitBase,
			Morale:         morale,
			ReactionSlots:  spec.Reactions,
			Commander:      spec.Commander,
		})
	}
	return nil
}

func hexFacingFor(side battle.Side) hexmap.Facing {
	if side == battle.SideAttacker {
		return 0
	}
	return 3
}
